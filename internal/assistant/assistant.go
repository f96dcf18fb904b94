// Package assistant backs the dashboard chat widget: voice-style commands
// first, free-text replies otherwise.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaupilot/internal/voice"
)

// ErrEmptyMessage is returned for blank chat input.
var ErrEmptyMessage = errors.New("message is empty")

// Reply kinds.
const (
	KindCommand = "command"
	KindChat    = "chat"
)

// Reply is the assistant's answer to one message.
type Reply struct {
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Command  string `json:"command,omitempty"`
	Navigate string `json:"navigate,omitempty"`
	Source   string `json:"source"`
}

// Page is a dashboard destination reachable by voice.
type Page struct {
	Name     string
	Path     string
	Patterns []string
	Feedback string
}

// Pages lists the navigation commands in match priority order.
var Pages = []Page{
	{Name: "inventory", Path: "inventory", Patterns: []string{"show inventory", "open inventory", "check stock", "low stock"}, Feedback: "Opening inventory."},
	{Name: "payroll", Path: "payroll", Patterns: []string{"open payroll", "show payroll", "run payroll"}, Feedback: "Opening payroll."},
	{Name: "schedule", Path: "schedule", Patterns: []string{"show schedule", "open schedule", "who is working", "staff schedule"}, Feedback: "Opening the staff schedule."},
	{Name: "compliance", Path: "compliance", Patterns: []string{"open compliance", "show compliance", "inspections"}, Feedback: "Opening compliance."},
	{Name: "maintenance", Path: "maintenance", Patterns: []string{"open maintenance", "show maintenance", "equipment"}, Feedback: "Opening maintenance."},
	{Name: "sustainability", Path: "sustainability", Patterns: []string{"sustainability", "carbon", "diversion"}, Feedback: "Opening sustainability."},
	{Name: "training", Path: "training", Patterns: []string{"open training", "show training", "training progress"}, Feedback: "Opening training."},
	{Name: "waste", Path: "waste", Patterns: []string{"log waste", "show waste", "waste log"}, Feedback: "Opening waste management."},
	{Name: "integrations", Path: "integrations", Patterns: []string{"integrations", "marketplace", "extensions"}, Feedback: "Opening the integrations marketplace."},
	{Name: "analytics", Path: "analytics", Patterns: []string{"analytics", "chain report", "compare locations"}, Feedback: "Opening chain analytics."},
	{Name: "bills", Path: "bills", Patterns: []string{"split the bill", "split bill", "split check"}, Feedback: "Opening bill splitting."},
	{Name: "dashboard", Path: "", Patterns: []string{"go home", "dashboard", "main page"}, Feedback: "Back to the dashboard."},
}

// Observer is notified about each reply, e.g. for metrics.
type Observer func(reply Reply)

// Assistant routes messages to navigation commands or a responder.
type Assistant struct {
	responder Responder
	observe   Observer
}

// New creates an assistant. observe may be nil.
func New(responder Responder, observe Observer) *Assistant {
	return &Assistant{responder: responder, observe: observe}
}

// Handle answers one message for a restaurant.
func (a *Assistant) Handle(ctx context.Context, restaurantID uint, message string) (Reply, error) {
	var navigate string
	commands := make([]voice.Command, len(Pages))
	for i, p := range Pages {
		commands[i] = voice.Command{
			Name:     p.Name,
			Patterns: p.Patterns,
			Feedback: p.Feedback,
			Action:   func() { navigate = pagePath(restaurantID, p.Path) },
		}
	}

	res := voice.NewMatcher(commands...).Dispatch(message)
	if res.Matched {
		reply := Reply{
			Kind:     KindCommand,
			Text:     res.Feedback,
			Command:  res.Command,
			Navigate: navigate,
			Source:   "voice",
		}
		a.notify(reply)
		return reply, nil
	}

	if strings.TrimSpace(res.Passthrough) == "" {
		return Reply{}, ErrEmptyMessage
	}

	text, err := a.responder.Respond(ctx, res.Passthrough)
	if err != nil {
		return Reply{}, err
	}
	reply := Reply{Kind: KindChat, Text: text, Source: a.responder.Name()}
	a.notify(reply)
	return reply, nil
}

func (a *Assistant) notify(r Reply) {
	if a.observe != nil {
		a.observe(r)
	}
}

func pagePath(restaurantID uint, page string) string {
	base := fmt.Sprintf("/restaurants/%d", restaurantID)
	if page == "" {
		return base
	}
	return base + "/" + page
}
