// Package script loads automation script documents and executes them step by
// step against the session store, the target resolver, and the platform's
// action services.
package script

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is an ordered list of named automation steps.
type Script struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []Step `json:"steps"                 yaml:"steps"`
}

// Step is one script action: a caller-chosen id for reporting, the command
// name, and a parameter bag validated per command at execution time.
type Step struct {
	StepID  string         `json:"stepId"            yaml:"stepId"`
	Comment string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Command string         `json:"command"           yaml:"command"`
	Params  map[string]any `json:"params,omitempty"  yaml:"params,omitempty"`
}

// jsonTip is appended to JSON decode failures. Malformed enum-coded fields
// (an unquoted direction, a misspelled command) are the most common
// authoring mistake, so the error has to point there.
const jsonTip = `Tip: every step needs a string "command"; enum-valued params like "button", "direction", and "op" must be quoted strings (e.g. "direction": "down")`

// Load decodes a script document. Documents are JSON on disk (the persisted
// contract); YAML is accepted for stdin convenience. The input is treated as
// JSON when it starts with '{' and as YAML otherwise.
func Load(data []byte) (*Script, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, errf(KindInvalidInput, "empty script document")
	}

	var sc Script
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &sc); err != nil {
			return nil, errf(KindInvalidInput, "invalid script JSON: %v. %s", err, jsonTip)
		}
	} else {
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, errf(KindInvalidInput, "invalid script YAML: %v. %s", err, jsonTip)
		}
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads and decodes a script document from path, or from stdin
// when path is "-".
func LoadFile(path string) (*Script, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Load(data)
}

// validate fills in default step ids and rejects duplicates so per-step
// reporting stays unambiguous.
func (sc *Script) validate() error {
	if len(sc.Steps) == 0 {
		return errf(KindInvalidInput, "script has no steps")
	}
	seen := make(map[string]int, len(sc.Steps))
	for i := range sc.Steps {
		step := &sc.Steps[i]
		if step.StepID == "" {
			step.StepID = fmt.Sprintf("step-%d", i+1)
		}
		if step.Command == "" {
			return errf(KindInvalidInput, "step %q: missing command", step.StepID)
		}
		if prev, dup := seen[step.StepID]; dup {
			return errf(KindInvalidInput, "duplicate stepId %q (steps %d and %d)", step.StepID, prev+1, i+1)
		}
		seen[step.StepID] = i
	}
	return nil
}
