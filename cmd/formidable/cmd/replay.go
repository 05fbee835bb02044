package cmd

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/formidable/cmd/formidable/internal/scenario"
	"github.com/go-drift/formidable/pkg/drafts"
)

func init() {
	RegisterCommand(&Command{
		Name:  "replay",
		Short: "Replay a scripted form session",
		Long: `Replay a scenario file against a form and print every notification
the form delivers, as YAML documents.

A scenario names a schema document, initial values, the events to
notify and validate on, and a list of steps:

  schema: signup.schema.yaml
  form: signup
  validateOn: [change, submit]
  steps:
    - {set: email, value: bad}
    - {blur: email}
    - {submit: true}

Flags:
  --drafts   Autosave the session to the draft store under the scenario's form ID`,
		Usage: "formidable replay [--drafts] SCENARIO",
		Run:   runReplay,
	})
}

func runReplay(args []string) error {
	var path string
	var useDrafts bool
	for _, arg := range args {
		switch {
		case arg == "--drafts":
			useDrafts = true
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case path == "":
			path = arg
		default:
			return fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if path == "" {
		return fmt.Errorf("scenario file is required")
	}

	sc, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	opts, err := sc.Options(nil)
	if err != nil {
		return err
	}

	if useDrafts {
		if sc.Form == "" {
			return fmt.Errorf("--drafts requires a form ID in the scenario")
		}
		store, err := drafts.Open(settings.DraftsPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Handler = drafts.Autosave(store, sc.Form, nil)
	}

	_, notes, runErr := sc.Run(opts)

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	for _, n := range notes {
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("failed to write notification: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return runErr
}
