// Package cmd implements the formidable CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (validate, replay, drafts).
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-drift/formidable/cmd/formidable/internal/config"
	"github.com/go-drift/formidable/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "formidable",
	Short: "formidable - form state, validation and drafts",
	Long: `formidable works with form schemas, scripted form sessions and the
draft store outside of an application.

Use "formidable <command> --help" for more information about a command.`,
	Usage: "formidable [--config FILE] <command> [flags]",
}

var commands = make(map[string]*Command)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// settings holds the resolved configuration for the running command.
	settings *config.Resolved
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp()
		return nil
	}

	var configPath string
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp()
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "formidable version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config":
			if len(filteredArgs) > 0 {
				filteredArgs = append(filteredArgs, arg)
				continue
			}
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		default:
			if len(filteredArgs) == 0 && strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp()
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp()
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	settings, err = config.Resolve(wd, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	errors.SetHandler(&errors.LogHandler{Verbose: settings.Verbose, Out: stderr})

	return cmd.Run(cmdArgs)
}

func printHelp() {
	fmt.Fprintln(stdout, rootCmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(stdout, "  %-14s %s\n", name, commands[name].Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintf(stdout, "  --config FILE        Configuration file (default: ./%s)\n", config.FileName)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Environment:")
	fmt.Fprintf(stdout, "  %-20s Draft store path (overrides drafts.path)\n", config.EnvDraftsPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  formidable validate --schema signup.yaml values.yaml")
	fmt.Fprintln(stdout, "  formidable replay session.yaml")
	fmt.Fprintln(stdout, "  formidable drafts list")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
