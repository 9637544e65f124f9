package hotloop

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func TestNetworkGeoJSON(t *testing.T) {
	n := NewNetwork(NewRand(1))
	n.Init(4, 100)
	data, err := n.GeoJSON()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("output is not a FeatureCollection: %v", err)
	}
	if len(fc.Features) != 4 {
		t.Fatalf("features = %d, want 4", len(fc.Features))
	}
	f := fc.Features[0]
	if !f.Geometry.IsLineString() || len(f.Geometry.LineString) != 2 {
		t.Fatalf("geometry = %+v", f.Geometry)
	}
	assertNear(t, "x1", f.Geometry.LineString[0][0], 100)
	if c, _ := f.PropertyString("color"); c != Palette[0].Hex() {
		t.Errorf("color = %q, want %q", c, Palette[0].Hex())
	}
	if w, _ := f.PropertyFloat64("width"); w != ringRoadWidth {
		t.Errorf("width = %v, want %v", w, ringRoadWidth)
	}
}

func TestSceneGeoJSONIncludesCars(t *testing.T) {
	s, _ := testScene(t, quietConfig())
	s.Traffic().SpawnOn(2)
	data, err := s.GeoJSON()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != DefaultRingSegments+1 {
		t.Fatalf("features = %d, want %d", len(fc.Features), DefaultRingSegments+1)
	}
	car := fc.Features[len(fc.Features)-1]
	if !car.Geometry.IsPoint() {
		t.Fatalf("car geometry = %+v", car.Geometry)
	}
	if kind, _ := car.PropertyString("kind"); kind != "car" {
		t.Errorf("kind = %q, want car", kind)
	}
	if road, _ := car.PropertyFloat64("road"); road != 2 {
		t.Errorf("road = %v, want 2", road)
	}
}
