package hotloop

import "testing"

func junctionNetwork(rng Rand) *Network {
	n := NewNetwork(rng)
	n.append(Road{X1: 0, Y1: 0, X2: 100, Y2: 0}, false)     // 0
	n.append(Road{X1: 100, Y1: 0, X2: 200, Y2: 0}, false)   // 1
	n.append(Road{X1: 100, Y1: 0, X2: 100, Y2: 100}, false) // 2
	return n
}

func TestCarTransitionAtJunction(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		rng := NewRand(seed)
		tr := newTraffic(junctionNetwork(rng), rng)
		tr.SpawnChance = 0
		tr.cars = append(tr.cars, Car{Road: 0, Progress: 0.999, Speed: 0.002})

		tr.update()
		c := tr.Cars()[0]
		if c.Progress != 0 {
			t.Errorf("seed %d: Progress = %v, want 0", seed, c.Progress)
		}
		if c.Road != 1 && c.Road != 2 {
			t.Errorf("seed %d: Road = %d, want 1 or 2", seed, c.Road)
		}
	}
}

func TestCarTransitionDeadEndFallsBack(t *testing.T) {
	n := NewNetwork(constRand(0.9))
	n.append(Road{X1: 0, Y1: 0, X2: 100, Y2: 0}, false)
	n.append(Road{X1: 500, Y1: 500, X2: 600, Y2: 500}, false)
	tr := newTraffic(n, constRand(0.9))
	tr.SpawnChance = 0
	tr.cars = append(tr.cars, Car{Road: 0, Progress: 0.9995, Speed: 0.001})

	tr.update()
	c := tr.Cars()[0]
	if c.Road != 1 || c.Progress != 0 {
		t.Errorf("car = road %d progress %v, want road 1 progress 0", c.Road, c.Progress)
	}
}

func TestCarAdvancesWithoutTransition(t *testing.T) {
	rng := NewRand(1)
	tr := newTraffic(junctionNetwork(rng), rng)
	tr.SpawnChance = 0
	tr.cars = append(tr.cars, Car{Road: 2, Progress: 0.5, Speed: 0.004})
	tr.update()
	c := tr.Cars()[0]
	assertNear(t, "Progress", c.Progress, 0.504)
	if c.Road != 2 {
		t.Errorf("Road = %d, want 2", c.Road)
	}
	x, y := tr.PositionOf(c)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 50.4)
}

func TestSpawnEmptyNetwork(t *testing.T) {
	rng := NewRand(1)
	tr := newTraffic(NewNetwork(rng), rng)
	if tr.Spawn() {
		t.Error("Spawn on empty network = true")
	}
	tr.SpawnChance = 1
	tr.update()
	if tr.Len() != 0 {
		t.Errorf("Len = %d, want 0", tr.Len())
	}
}

func TestSpawnOnDraws(t *testing.T) {
	rng := constRand(0.5)
	tr := newTraffic(junctionNetwork(rng), rng)
	if !tr.SpawnOn(1) {
		t.Fatal("SpawnOn(1) = false")
	}
	c := tr.Cars()[0]
	assertNear(t, "Progress", c.Progress, 0.5)
	assertNear(t, "Speed", c.Speed, 0.0035)
	assertNear(t, "Size", c.Size, 20)
	if c.Color != Palette[3] || c.Road != 1 {
		t.Errorf("car = %+v", c)
	}
	if tr.SpawnOn(3) || tr.SpawnOn(-1) {
		t.Error("SpawnOn accepted an invalid road")
	}
}

func TestSpawnCap(t *testing.T) {
	rng := NewRand(4)
	tr := newTraffic(junctionNetwork(rng), rng)
	tr.MaxCars = 3
	tr.SpawnChance = 1
	for i := 0; i < 50; i++ {
		tr.update()
		if tr.Len() > 3 {
			t.Fatalf("tick %d: Len = %d, above cap", i, tr.Len())
		}
	}
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3", tr.Len())
	}
}

func TestScaleSpeeds(t *testing.T) {
	rng := NewRand(1)
	tr := newTraffic(junctionNetwork(rng), rng)
	tr.cars = append(tr.cars, Car{Speed: 0.002}, Car{Speed: 0.004})
	tr.scaleSpeeds(2)
	assertNear(t, "speed 0", tr.Cars()[0].Speed, 0.004)
	assertNear(t, "speed 1", tr.Cars()[1].Speed, 0.008)
}

func TestTrafficInvariants(t *testing.T) {
	s, _ := testScene(t, DefaultConfig())
	for i := 0; i < 50; i++ {
		s.CreateRoadAt(float64(i*37%800), float64(i*53%600))
	}
	for tick := 0; tick < 3000; tick++ {
		s.Update()
		for i, c := range s.Traffic().Cars() {
			if c.Progress < 0 || c.Progress >= 1 {
				t.Fatalf("tick %d car %d: Progress = %v", tick, i, c.Progress)
			}
			if c.Road < 0 || c.Road >= s.Network().Len() {
				t.Fatalf("tick %d car %d: Road = %d", tick, i, c.Road)
			}
			if c.Speed <= 0 {
				t.Fatalf("tick %d car %d: Speed = %v", tick, i, c.Speed)
			}
		}
		if s.Traffic().Len() > s.Config().MaxCars+50 {
			t.Fatalf("tick %d: %d cars", tick, s.Traffic().Len())
		}
	}
}

func TestAmbientSpawnChanceIsStrict(t *testing.T) {
	tests := []struct {
		roll  float64
		spawn bool
	}{
		{0, true},
		{0.0099, true},
		{0.01, false},
		{0.5, false},
	}
	for _, tt := range tests {
		n := junctionNetwork(constRand(tt.roll))
		tr := newTraffic(n, constRand(tt.roll))
		tr.SpawnChance = 0.01
		tr.MaxCars = 10

		tr.update()
		if got := tr.Len() == 1; got != tt.spawn {
			t.Errorf("roll %v: spawned = %v, want %v", tt.roll, got, tt.spawn)
		}
	}
}
