// Package cmd implements the neutral CLI commands.
//
// A root command dispatches to subcommands (generators, trace) that register
// themselves from init functions.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nerrors "github.com/go-drift/neutral/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "neutral",
	Short: "neutral - inspect backend-neutral widget trees",
	Long: `neutral inspects the generators known to this build and traces how a
widget tree is loaded and updated against them.

Use "neutral <command> --help" for more information about a command.`,
	Usage: "neutral <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// stdout receives command output, stderr plain error messages.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// projectDir overrides project root discovery when set by --project.
var projectDir string

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments. A failing command's
// error is reported before it is returned.
func Execute() error {
	err := execute(os.Args[1:])
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError sends structured errors to the error handler, which honors
// errors.verbose from neutral.yaml, and prints anything else.
func reportError(err error) {
	var ne *nerrors.NeutralError
	if errors.As(err, &ne) {
		nerrors.Report(ne)
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}

func execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "neutral version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--project":
			if i+1 >= len(args) {
				return fmt.Errorf("--project requires a directory path")
			}
			projectDir = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--project=") {
				projectDir = strings.TrimPrefix(arg, "--project=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	w := stdout
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --project DIR        Read neutral.yaml from DIR instead of searching upward")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  neutral generators          List generators and their capabilities")
	fmt.Fprintln(w, "  neutral trace form.yaml     Load and update a fixture tree")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
