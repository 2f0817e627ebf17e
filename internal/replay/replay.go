// Package replay runs scripted surface transitions through the deduction
// engine. Scripts are TOML:
//
//	emoji = true            # default couldBeEmojiInput hint
//
//	[[step]]
//	text = "Hello world!"
//	sel_start = 6
//	sel_end = 11
//
//	[[step]]
//	text = "Hello other!"
//	sel_start = 11
//	sel_end = 11
//	expect_text = "other"
//	expect_delete = 0
//
// Each step is diffed against the one before it; the first step, and any
// step with reset = true, is diffed against the empty state.
package replay

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tide-ime/internal/logger"
	"github.com/bethropolis/tide-ime/internal/textarea"
)

// Step is one observed surface state.
type Step struct {
	Name     string `toml:"name"`
	Reset    bool   `toml:"reset"`
	Text     string `toml:"text"`
	SelStart int    `toml:"sel_start"`
	SelEnd   int    `toml:"sel_end"`
	Emoji    *bool  `toml:"emoji"`

	ExpectText   *string `toml:"expect_text"`
	ExpectDelete *int    `toml:"expect_delete"`
}

// Script is a decoded replay file.
type Script struct {
	Name  string `toml:"name"`
	Emoji bool   `toml:"emoji"`
	Steps []Step `toml:"step"`
}

// Load reads and decodes a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay script '%s': %w", path, err)
	}
	script, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("replay script '%s': %w", path, err)
	}
	if script.Name == "" {
		script.Name = path
	}
	return script, nil
}

// Parse decodes a script from TOML text.
func Parse(data string) (*Script, error) {
	var script Script
	metadata, err := toml.Decode(data, &script)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unrecognized keys: %v", undecoded)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("no steps")
	}
	return &script, nil
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index    int
	Name     string
	Previous textarea.Snapshot
	Current  textarea.Snapshot
	Edit     textarea.Edit
	Failures []string
}

// Passed reports whether every expectation of the step held.
func (r StepResult) Passed() bool {
	return len(r.Failures) == 0
}

func (r StepResult) String() string {
	status := "ok"
	if !r.Passed() {
		status = "FAIL"
	}
	label := fmt.Sprintf("step %d", r.Index+1)
	if r.Name != "" {
		label += " (" + r.Name + ")"
	}
	return fmt.Sprintf("%-4s %s: %v", status, label, r.Edit)
}

// Report collects the results of a script.
type Report struct {
	Name  string
	Steps []StepResult
}

// Failed counts the failing steps.
func (r Report) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if !s.Passed() {
			n++
		}
	}
	return n
}

// Passed reports whether every step passed.
func (r Report) Passed() bool {
	return r.Failed() == 0
}

// Run deduces every step of script against its predecessor.
func Run(script *Script) Report {
	report := Report{Name: script.Name, Steps: make([]StepResult, 0, len(script.Steps))}
	previous := textarea.Empty

	for i, step := range script.Steps {
		if step.Reset {
			previous = textarea.Empty
		}
		current := textarea.FromSurface(step.Text, step.SelStart, step.SelEnd)
		hint := script.Emoji
		if step.Emoji != nil {
			hint = *step.Emoji
		}

		edit := textarea.Deduce(previous, current, hint)
		result := StepResult{
			Index:    i,
			Name:     step.Name,
			Previous: previous,
			Current:  current,
			Edit:     edit,
		}
		if step.ExpectText != nil && edit.Text != *step.ExpectText {
			result.Failures = append(result.Failures, fmt.Sprintf("text: got %q, want %q", edit.Text, *step.ExpectText))
		}
		if step.ExpectDelete != nil && edit.DeleteCount != *step.ExpectDelete {
			result.Failures = append(result.Failures, fmt.Sprintf("delete: got %d, want %d", edit.DeleteCount, *step.ExpectDelete))
		}
		if !result.Passed() {
			logger.WarnTagf("replay", "%s step %d: %v", script.Name, i+1, result.Failures)
		}
		report.Steps = append(report.Steps, result)

		if current.IsCollapsed() {
			current = current.Collapse()
		}
		previous = current
	}
	return report
}
