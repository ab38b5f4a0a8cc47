package texticles

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Name   string  `json:"name,omitempty"`
	Text   string  `json:"text,omitempty"`
	Value  float64 `json:"value,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed sequence of pointer moves, control changes, waits and
// snapshots, replayed against a Headless driver.
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

func knownAction(a string) bool {
	switch a {
	case "move", "leave", "drag", "scatter", "text", "mode", "palette",
		"density", "size", "speed", "strength", "wait", "snapshot":
		return true
	}
	return false
}

// RunScript executes every step in order. Each pointer or control step is
// followed by one frame; "wait" runs its frame count; "snapshot" writes the
// current canvas. It returns the paths of the written snapshots.
func (h *Headless) RunScript(s *Script) ([]string, error) {
	var shots []string
	for i, st := range s.steps {
		if err := h.runStep(st, &shots); err != nil {
			return shots, fmt.Errorf("texticles: script step %d (%s): %w", i, st.Action, err)
		}
	}
	return shots, nil
}

func (h *Headless) runStep(st scriptStep, shots *[]string) error {
	sim := h.Sim
	switch st.Action {
	case "move":
		sim.PointerMove(st.X, st.Y)
	case "leave":
		sim.PointerLeave()
	case "drag":
		// Moves linearly from (FromX, FromY) to (ToX, ToY), one frame per move.
		frames := max(st.Frames, 2)
		for i := 0; i < frames; i++ {
			t := float64(i) / float64(frames-1)
			sim.PointerMove(st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t)
			h.Frames(1)
		}
		return nil
	case "scatter":
		sim.Scatter()
	case "text":
		if err := sim.SetText(st.Text); err != nil {
			return err
		}
	case "mode":
		m, ok := ParseMode(st.Name)
		if !ok {
			logf("script: unknown mode %q, using %s", st.Name, m)
		}
		sim.SetMode(m)
	case "palette":
		p, ok := ParsePalette(st.Name)
		if !ok {
			logf("script: unknown palette %q, using %s", st.Name, p)
		}
		if err := sim.SetPalette(p); err != nil {
			return err
		}
	case "density":
		if err := sim.SetDensity(st.Value); err != nil {
			return err
		}
	case "size":
		sim.SetSize(st.Value)
	case "speed":
		sim.SetSpeed(st.Value)
	case "strength":
		sim.SetStrength(st.Value)
	case "wait":
		h.Frames(max(st.Frames, 1))
		return nil
	case "snapshot":
		path, err := h.Snapshot(st.Label)
		if err != nil {
			return err
		}
		*shots = append(*shots, path)
		return nil
	}
	h.Frames(1)
	return nil
}
