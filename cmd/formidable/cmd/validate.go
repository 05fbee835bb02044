package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/formidable/pkg/form"
	"github.com/go-drift/formidable/pkg/schema"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Validate a values file against a schema",
		Long: `Validate a YAML or JSON values file against a schema document.

The values are loaded into a form and submitted. Every failing field is
printed as "field: message" and the command exits with status 1.

Flags:
  --schema FILE   Schema document (required)`,
		Usage: "formidable validate --schema FILE VALUES",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	var schemaPath, valuesPath string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--schema" || arg == "-schema":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", arg)
			}
			schemaPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--schema="):
			schemaPath = strings.TrimPrefix(arg, "--schema=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		case valuesPath == "":
			valuesPath = arg
		default:
			return fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if schemaPath == "" {
		return fmt.Errorf("--schema is required")
	}
	if valuesPath == "" {
		return fmt.Errorf("values file is required")
	}

	obj, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}
	values, err := loadValues(valuesPath)
	if err != nil {
		return err
	}

	e := form.New(form.Options{
		InitialValues: values,
		Schema:        obj,
		ValidateOn:    form.Events{form.EventSubmit},
		Events:        form.Events{},
	})
	e.HandleSubmit()

	errs := e.State().Errors
	if len(errs) == 0 {
		fmt.Fprintln(stdout, paint(ansiGreen, "ok"))
		return nil
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s: %s\n", paint(ansiRed, k), errs[k].Message)
	}
	return fmt.Errorf("%d field(s) failed validation", len(errs))
}

// loadValues reads a YAML or JSON document with a mapping at the top level.
func loadValues(path string) (form.Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse values %s: %w", path, err)
	}
	return form.Values(values), nil
}
