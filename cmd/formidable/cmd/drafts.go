package cmd

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/formidable/pkg/drafts"
)

func init() {
	RegisterCommand(&Command{
		Name:  "drafts",
		Short: "Inspect saved form drafts",
		Long: `Inspect the draft store.

Subcommands:
  list        List the IDs of saved drafts
  show ID     Print a draft as YAML
  rm ID       Delete a draft

Flags:
  --db FILE   Draft store path (default: drafts.path or ~/.formidable/drafts.db)`,
		Usage: "formidable drafts <list|show|rm> [ID] [--db FILE]",
		Run:   runDrafts,
	})
}

func runDrafts(args []string) error {
	var dbPath string
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--db" || arg == "-db":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", arg)
			}
			dbPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--db="):
			dbPath = strings.TrimPrefix(arg, "--db=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag %q", arg)
		default:
			rest = append(rest, arg)
		}
	}
	if len(rest) == 0 {
		return fmt.Errorf("subcommand required (list, show, rm)")
	}
	if dbPath == "" {
		dbPath = settings.DraftsPath
	}

	sub, rest := rest[0], rest[1:]
	switch sub {
	case "list":
		if len(rest) != 0 {
			return fmt.Errorf("list takes no arguments")
		}
	case "show", "rm":
		if len(rest) != 1 {
			return fmt.Errorf("%s requires a draft ID", sub)
		}
	default:
		return fmt.Errorf("unknown drafts subcommand %q", sub)
	}

	store, err := drafts.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub {
	case "list":
		ids, err := store.List()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
	case "show":
		d, err := store.Load(rest[0])
		if err != nil {
			return fmt.Errorf("draft %q: %w", rest[0], err)
		}
		fmt.Fprintf(stdout, "# %s saved %s\n", paint(ansiCyan, d.FormID), d.SavedAt.Format("2006-01-02 15:04:05 MST"))
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(struct {
			Values any `yaml:"values"`
			Status any `yaml:"status"`
		}{d.Values, d.Status}); err != nil {
			return err
		}
		return enc.Close()
	case "rm":
		return store.Delete(rest[0])
	}
	return nil
}
