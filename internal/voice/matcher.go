// Package voice matches spoken transcripts against a fixed command list.
package voice

import (
	"strings"

	"golang.org/x/text/cases"
)

// Command is a phrase-triggered action. Any one pattern appearing in a
// transcript, ignoring case, selects the command.
type Command struct {
	Name     string
	Patterns []string
	Action   func()
	Feedback string
}

// Result describes what Dispatch did with a transcript.
type Result struct {
	Matched  bool
	Command  string
	Pattern  string
	Feedback string
	// Passthrough is the original transcript when nothing matched.
	Passthrough string
}

// Matcher holds commands in priority order.
type Matcher struct {
	commands []Command
	folded   [][]string
}

// NewMatcher builds a matcher. Earlier commands win when several match.
func NewMatcher(commands ...Command) *Matcher {
	fold := cases.Fold()
	m := &Matcher{
		commands: commands,
		folded:   make([][]string, len(commands)),
	}
	for i, c := range commands {
		for _, p := range c.Patterns {
			if blank(p) {
				continue
			}
			m.folded[i] = append(m.folded[i], fold.String(p))
		}
	}
	return m
}

// Find returns the index of the first matching command and the pattern that
// hit, or -1.
func (m *Matcher) Find(transcript string) (int, string) {
	text := cases.Fold().String(transcript)
	for i, patterns := range m.folded {
		for j, p := range patterns {
			if strings.Contains(text, p) {
				return i, m.original(i, j)
			}
		}
	}
	return -1, ""
}

// Dispatch runs the first matching command's action once and returns its
// feedback. Unmatched transcripts come back untouched in Passthrough.
func (m *Matcher) Dispatch(transcript string) Result {
	i, pattern := m.Find(transcript)
	if i < 0 {
		return Result{Passthrough: transcript}
	}

	cmd := m.commands[i]
	if cmd.Action != nil {
		cmd.Action()
	}
	return Result{
		Matched:  true,
		Command:  cmd.Name,
		Pattern:  pattern,
		Feedback: cmd.Feedback,
	}
}

// Commands returns the registered commands in order.
func (m *Matcher) Commands() []Command {
	out := make([]Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// original maps the j-th non-empty folded pattern back to its source text.
func (m *Matcher) original(i, j int) string {
	n := 0
	for _, p := range m.commands[i].Patterns {
		if blank(p) {
			continue
		}
		if n == j {
			return p
		}
		n++
	}
	return ""
}

// blank patterns never match. Other patterns are used verbatim, surrounding
// spaces included.
func blank(p string) bool {
	return strings.TrimSpace(p) == ""
}
