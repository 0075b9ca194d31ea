// Package replay loads keying scripts from YAML files and plays them back
// as button edges, so a full decode can run without a physical key.
package replay

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kc3fua/keydecoder/internal/button"
)

var (
	// ErrEmptyScript indicates a script with no steps
	ErrEmptyScript = errors.New("replay: script has no steps")
)

// Script is the YAML document: an optional name and a list of steps in
// ticks. Example:
//
//	name: sos
//	steps:
//	  - press: 10
//	  - gap: 10
//	  - press: 10
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one span of the script. Exactly one of Press or Gap must be set;
// the value is a duration in ticks.
type Step struct {
	Press int `yaml:"press"`
	Gap   int `yaml:"gap"`
}

// Parse decodes and validates a YAML keying script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("replay: parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read script: %w", err)
	}
	return Parse(data)
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}
	for i, st := range s.Steps {
		if st.Press != 0 && st.Gap != 0 {
			return fmt.Errorf("replay: step %d sets both press and gap", i+1)
		}
		if st.Press == 0 && st.Gap == 0 {
			return fmt.Errorf("replay: step %d sets neither press nor gap", i+1)
		}
		if st.Press < 0 || st.Gap < 0 {
			return fmt.Errorf("replay: step %d has a negative duration", i+1)
		}
	}
	return nil
}

// Source builds the button source replaying this script.
func (s *Script) Source() *button.Script {
	steps := make([]button.Step, 0, len(s.Steps))
	for _, st := range s.Steps {
		if st.Press > 0 {
			steps = append(steps, button.Step{Pressed: true, Ticks: st.Press})
		} else {
			steps = append(steps, button.Step{Pressed: false, Ticks: st.Gap})
		}
	}
	return button.NewScript(steps)
}
