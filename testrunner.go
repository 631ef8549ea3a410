package kenburns

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a run script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
	// Shown makes "wait" block until this many images have been displayed.
	Shown int `json:"shown,omitempty"`
}

type runScript struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner plays a scripted sequence of pauses, resumes, waits and
// screenshots against a Show, one step per tick, for automated visual runs.
// Attach it with SetTestRunner.
//
// Supported actions: "screenshot" (label), "pause", "resume",
// "wait" (frames, or shown to wait for the n-th image).
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitShown int
	done      bool
}

// LoadTestScript parses a JSON run script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script runScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "pause", "resume", "wait":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a runner; its steps run at the start of every Update.
func (s *Show) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run. It turns true one tick after the
// last step, so a final screenshot has been drawn by then.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *TestRunner) step(s *Show) {
	if r.done {
		return
	}
	if r.waitShown > 0 {
		if s.scheduler.Status().Shown < r.waitShown {
			return
		}
		r.waitShown = 0
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "pause":
		s.scheduler.StopAnimating()
	case "resume":
		s.scheduler.StartAnimating()
	case "wait":
		if st.Shown > 0 {
			r.waitShown = st.Shown
		}
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
}
