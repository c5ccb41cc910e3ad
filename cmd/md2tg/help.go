package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tg [flags] [file|dir ...]")
	fmt.Fprintln(w, "       md2tg <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown into Telegram MarkdownV2 messages.")
	fmt.Fprintln(w, "Reads stdin when no file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Write <name>.NNN.txt per chunk")
	fmt.Fprintln(w, "      --separator <s>       Separator between chunks on stdout")
	fmt.Fprintln(w, "      --json                Print a JSON array of chunks per document")
	fmt.Fprintln(w, "      --plain               Emit plain text without markup")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Messages:")
	fmt.Fprintln(w, "  -m, --max-length <n>      Maximum chunk length (default 4096)")
	fmt.Fprintln(w, "      --length-unit <s>     Length unit: runes, utf16")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --lenient-config      Ignore unknown keys in the config file")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show chunk counts and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2TG_CONFIG, MD2TG_MAX_LENGTH, MD2TG_LENGTH_UNIT,")
	fmt.Fprintln(w, "  MD2TG_WORKERS, MD2TG_OUTPUT_DIR")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2tg help <command>' for details on a specific command.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tg config [-c name] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying the config file,")
	fmt.Fprintln(w, "MD2TG_* environment variables and flags, as YAML.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2tg version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2tg help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
