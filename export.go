package hotloop

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// GeoJSON returns the network as a FeatureCollection with one LineString per
// road. Coordinates are world units, not longitude and latitude.
func (n *Network) GeoJSON() ([]byte, error) {
	b, err := n.featureCollection().MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal road network")
	}
	return b, nil
}

func (n *Network) featureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, r := range n.roads {
		f := geojson.NewLineStringFeature([][]float64{{r.X1, r.Y1}, {r.X2, r.Y2}})
		f.ID = i
		f.SetProperty("kind", "road")
		f.SetProperty("color", r.Color.Hex())
		f.SetProperty("width", r.Width)
		f.SetProperty("glow", r.Glow)
		f.SetProperty("age", r.Age)
		fc.AddFeature(f)
	}
	return fc
}

// GeoJSON returns the road network plus one Point feature per car at its
// current position.
func (s *Scene) GeoJSON() ([]byte, error) {
	fc := s.network.featureCollection()
	for i, c := range s.traffic.Cars() {
		x, y := s.traffic.PositionOf(c)
		f := geojson.NewPointFeature([]float64{x, y})
		f.SetProperty("kind", "car")
		f.SetProperty("index", i)
		f.SetProperty("road", c.Road)
		f.SetProperty("progress", c.Progress)
		f.SetProperty("speed", c.Speed)
		f.SetProperty("color", c.Color.Hex())
		fc.AddFeature(f)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal scene")
	}
	return b, nil
}
