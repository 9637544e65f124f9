package hotloop

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level structure of a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected gestures, commands and screenshots across
// frames. Attach it to a Scene with SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	executed  int

	// release is set while a hold step is waiting to lift the pointer.
	release            bool
	releaseX, releaseY float64
}

// LoadTestScript parses a test script and returns a TestRunner ready to be
// attached with SetTestRunner. Scripts are YAML; JSON documents parse too.
//
//	{"steps": [
//	  {"action": "tap", "x": 400, "y": 300},
//	  {"action": "wait", "frames": 30},
//	  {"action": "swipe", "fromX": 100, "fromY": 300, "toX": 600, "toY": 300, "frames": 4},
//	  {"action": "hold", "x": 400, "y": 300, "frames": 45},
//	  {"action": "screenshot", "label": "after"}
//	]}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrap(err, "parse test script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "swipe", "hold", "wait", "screenshot", "road", "boost":
		default:
			return nil, errors.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. Its step method runs at
// the start of every Scene.Update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Executed returns the number of steps started so far.
func (r *TestRunner) Executed() int {
	return r.executed
}

// step advances the runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.release {
		r.release = false
		s.InjectRelease(r.releaseX, r.releaseY)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.executed++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "swipe":
		s.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "hold":
		s.InjectPress(st.X, st.Y)
		r.waitCount = max(st.Frames, 1)
		r.release = true
		r.releaseX, r.releaseY = st.X, st.Y
	case "road":
		s.CreateRoadAt(st.X, st.Y)
	case "boost":
		s.Boost()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.release && len(s.injectQueue) == 0 {
		r.done = true
	}
}
