package hotloop

// Defaults for the car population.
const (
	DefaultInitialCars    = 5
	DefaultMaxCars        = 20
	DefaultCarSpawnChance = 0.01
)

var (
	carSpeedRange = Range{0.002, 0.005}
	carSizeRange  = Range{15, 25}
)

// Car drives along one road at a time. Road is an index into the Network;
// several cars may share a road.
type Car struct {
	Road int
	// Progress is the fraction of the road covered, in [0, 1).
	Progress float64
	// Speed is the progress added per tick. Always positive.
	Speed float64
	Size  float64
	Color Color
	// Trail is reserved for a motion trail and not consumed yet.
	Trail []Vec2
}

// Traffic advances cars along the network and moves them across junctions.
type Traffic struct {
	// MaxCars caps the population. Spawns above the cap are suppressed.
	MaxCars int
	// SpawnChance is the per-tick probability of an ambient spawn.
	SpawnChance float64

	cars    []Car
	net     *Network
	rng     Rand
	connBuf []int
}

// newTraffic creates an empty car population on net.
func newTraffic(net *Network, rng Rand) *Traffic {
	return &Traffic{
		MaxCars:     DefaultMaxCars,
		SpawnChance: DefaultCarSpawnChance,
		cars:        make([]Car, 0, DefaultMaxCars),
		net:         net,
		rng:         rng,
	}
}

// Len returns the number of cars.
func (t *Traffic) Len() int {
	return len(t.cars)
}

// Cars returns the car list. The returned slice MUST NOT be mutated.
func (t *Traffic) Cars() []Car {
	return t.cars
}

// Spawn adds a car on a uniformly random road. It is a no-op on an empty
// network and reports whether a car was added.
func (t *Traffic) Spawn() bool {
	if t.net.Len() == 0 {
		return false
	}
	return t.SpawnOn(randIndex(t.rng, t.net.Len()))
}

// SpawnOn adds a car on road with random progress, speed, size and color.
// It reports false when road is not a valid index.
func (t *Traffic) SpawnOn(road int) bool {
	if road < 0 || road >= t.net.Len() {
		return false
	}
	c := Car{Road: road}
	c.Progress = t.rng.Float64()
	c.Speed = carSpeedRange.Random(t.rng)
	c.Size = carSizeRange.Random(t.rng)
	c.Color = randomColor(t.rng)
	t.cars = append(t.cars, c)
	return true
}

// PositionOf returns the car's world position on its current road.
func (t *Traffic) PositionOf(c Car) (x, y float64) {
	return t.net.Road(c.Road).PointAt(c.Progress)
}

// scaleSpeeds multiplies every car's current speed by f.
func (t *Traffic) scaleSpeeds(f float64) {
	for i := range t.cars {
		t.cars[i].Speed *= f
	}
}

// update advances every car, performs junction transitions, and rolls the
// ambient spawn.
func (t *Traffic) update() {
	for i := range t.cars {
		c := &t.cars[i]
		c.Progress += c.Speed
		if c.Progress >= 1 {
			t.transition(c)
		}
	}

	if t.rng.Float64() < t.SpawnChance && len(t.cars) < t.MaxCars {
		t.Spawn()
	}
}

// transition moves a car that reached the end of its road onto a random
// connected road, or onto any random road when its end is a dead end.
func (t *Traffic) transition(c *Car) {
	t.connBuf = t.net.ConnectedAt(c.Road, t.connBuf[:0])
	if len(t.connBuf) > 0 {
		c.Road = t.connBuf[randIndex(t.rng, len(t.connBuf))]
	} else {
		c.Road = randIndex(t.rng, t.net.Len())
	}
	c.Progress = 0
}
