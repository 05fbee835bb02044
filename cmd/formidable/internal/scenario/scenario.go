// Package scenario loads and replays scripted event sequences against a
// form engine.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/formidable/pkg/form"
	"github.com/go-drift/formidable/pkg/schema"
)

// Scenario is a scripted form session:
//
//	schema: signup.schema.yaml
//	form: signup
//	initialValues: {email: ""}
//	events: [change, submit]
//	validateOn: [change]
//	steps:
//	  - {set: email, value: me@example.com}
//	  - {focus: name}
//	  - {blur: name}
//	  - {submit: true}
//	  - {reinit: {email: loaded@example.com}}
//	  - {reset: true}
type Scenario struct {
	// Schema is a schema document path, relative to the scenario file.
	Schema        string         `yaml:"schema"`
	Form          string         `yaml:"form"`
	InitialValues map[string]any `yaml:"initialValues"`
	Events        []string       `yaml:"events"`
	ValidateOn    []string       `yaml:"validateOn"`
	Steps         []Step         `yaml:"steps"`

	dir string
}

// Step is a single engine call. Exactly one action must be set.
type Step struct {
	Set    string         `yaml:"set"`
	Value  any            `yaml:"value"`
	Event  string         `yaml:"event"`
	Focus  string         `yaml:"focus"`
	Blur   string         `yaml:"blur"`
	Submit bool           `yaml:"submit"`
	Reset  bool           `yaml:"reset"`
	Reinit map[string]any `yaml:"reinit"`
}

// Notification is one handler call observed during a replay.
type Notification struct {
	Event  form.Event  `yaml:"event"`
	Values form.Values `yaml:"values"`
	Status form.Status `yaml:"status"`
}

// LoadFile reads a scenario document.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	for i, step := range s.Steps {
		if err := step.check(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (st Step) check() error {
	n := 0
	for _, set := range []bool{st.Set != "", st.Focus != "", st.Blur != "", st.Submit, st.Reset, st.Reinit != nil} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("no action (want one of set, focus, blur, submit, reset, reinit)")
	case n > 1:
		return fmt.Errorf("more than one action")
	case st.Event != "" && st.Set == "":
		return fmt.Errorf("event only applies to set")
	}
	return nil
}

// Options builds engine options from the scenario. handler receives every
// notification the engine delivers.
func (s *Scenario) Options(handler form.Handler) (form.Options, error) {
	opts := form.Options{
		InitialValues: form.Values(s.InitialValues),
		Handler:       handler,
	}

	var err error
	if opts.Events, err = parseEvents(s.Events); err != nil {
		return opts, fmt.Errorf("events: %w", err)
	}
	if opts.ValidateOn, err = parseEvents(s.ValidateOn); err != nil {
		return opts, fmt.Errorf("validateOn: %w", err)
	}

	if s.Schema != "" {
		path := s.Schema
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		obj, err := schema.LoadFile(path)
		if err != nil {
			return opts, err
		}
		opts.Schema = obj
	}
	return opts, nil
}

// Run replays the steps on an engine built from opts and returns it along
// with the notifications recorded through opts.Handler. A handler already
// set in opts is still called.
func (s *Scenario) Run(opts form.Options) (*form.Engine, []Notification, error) {
	var got []Notification
	next := opts.Handler
	opts.Handler = func(values form.Values, status form.Status, event form.Event) {
		got = append(got, Notification{Event: event, Values: values, Status: status})
		if next != nil {
			next(values, status, event)
		}
	}

	e := form.New(opts)
	for i, st := range s.Steps {
		if err := apply(e, st); err != nil {
			return e, got, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return e, got, nil
}

func apply(e *form.Engine, st Step) error {
	switch {
	case st.Set != "":
		event := form.EventChange
		if st.Event != "" {
			var err error
			if event, err = form.ParseEvent(st.Event); err != nil {
				return err
			}
		}
		e.SetField(st.Set, st.Value, event)
	case st.Focus != "":
		e.HandleFocus(st.Focus)
	case st.Blur != "":
		e.HandleBlur(st.Blur)
	case st.Submit:
		e.HandleSubmit()
	case st.Reset:
		e.HandleReset()
	case st.Reinit != nil:
		e.Reinitialize(form.Values(st.Reinit))
	default:
		return st.check()
	}
	return nil
}

func parseEvents(names []string) (form.Events, error) {
	if names == nil {
		return nil, nil
	}
	events := make(form.Events, 0, len(names))
	for _, n := range names {
		e, err := form.ParseEvent(n)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
