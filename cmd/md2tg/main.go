package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	md2tg "github.com/alnah/go-md2tg"
	"github.com/alnah/go-md2tg/internal/config"
	"github.com/alnah/go-md2tg/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()
	configureMaxProcs(wantsVerbose(os.Args[1:]), env.Stderr)
	os.Exit(runMain(os.Args, env))
}

// runMain dispatches commands and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) > 1 && isCommand(args[1]) {
		return runCommand(args[1], args[2:], env)
	}

	flags, positional, err := parseConvertFlags(args[1:], env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, fmt.Errorf("%w: %w", ErrUsage, err))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return reportError(env, runConvert(ctx, positional, flags, env))
}

// isCommand reports whether arg names a subcommand. A file named like a
// command can still be converted as ./name.
func isCommand(arg string) bool {
	switch arg {
	case "version", "help", "config", "completion":
		return true
	}
	return false
}

func runCommand(name string, args []string, env *Environment) int {
	switch name {
	case "version":
		fmt.Fprintf(env.Stdout, "md2tg %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(args, env)
		return ExitSuccess
	case "completion":
		return reportError(env, runCompletion(args, env))
	default:
		err := runConfig(args, env)
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, err)
	}
}

// reportError prints err with an actionable hint and returns its exit code.
func reportError(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hintFor returns the hint matching err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		name := os.Getenv("MD2TG_CONFIG")
		if name == "" {
			name = "md2tg"
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	case errors.Is(err, md2tg.ErrInvalidMaxLength):
		return hints.ForMaxLength(md2tg.DefaultMaxLength)
	case errors.Is(err, md2tg.ErrInvalidLengthUnit):
		return hints.ForLengthUnit()
	case errors.Is(err, ErrInvalidExtension):
		return hints.ForInputExtension()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// wantsVerbose reports whether args request verbose output, before flags
// are fully parsed.
func wantsVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
