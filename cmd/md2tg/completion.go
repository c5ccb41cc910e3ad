package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a subcommand for completion.
type commandDef struct {
	Name string
	Desc string
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"length-unit": {Values: []string{"runes", "utf16"}},
	"config":      {FileGlob: "*.yaml,*.yml"},
	"output":      {IsDir: true},
}

// commands lists the subcommands offered before file arguments.
var commands = []commandDef{
	{Name: "config", Desc: "Print the effective configuration"},
	{Name: "version", Desc: "Show version information"},
	{Name: "help", Desc: "Show help for a command"},
	{Name: "completion", Desc: "Generate shell completion script"},
}

// buildConvertFlagSet creates a FlagSet with all convert flags, registered
// the same way as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("md2tg", flag.ContinueOnError)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addMessageFlags(fs, &f.message)
	addOutputFlags(fs, &f.output)

	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	flags := extractFlagsFromFlagSet(buildConvertFlagSet())

	var buf bytes.Buffer
	switch shell {
	case ShellBash:
		generateBash(&buf, flags)
	case ShellZsh:
		generateZsh(&buf, flags)
	case ShellFish:
		generateFish(&buf, flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func commandNames() string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer, flags []flagDef) {
	var all []string
	for _, f := range flags {
		all = append(all, "--"+f.Long)
		if f.Short != "" {
			all = append(all, "-"+f.Short)
		}
	}

	fmt.Fprintln(w, "# bash completion for md2tg")
	fmt.Fprintln(w, "_md2tg() {")
	fmt.Fprintln(w, `    local cur prev`)
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(w, `    case "$prev" in`)
	for _, f := range flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(w, "        %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(w, "        %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", pattern)
		case flagDir:
			fmt.Fprintf(w, "        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
		case flagString, flagInt:
			fmt.Fprintf(w, "        %s) return ;;\n", pattern)
		}
	}
	fmt.Fprintln(w, `    esac`)
	fmt.Fprintln(w, `    if [[ "$cur" == -* ]]; then`)
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(all, " "))
	fmt.Fprintln(w, `    elif [[ $COMP_CWORD -eq 1 ]]; then`)
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", commandNames())
	fmt.Fprintln(w, `    else`)
	fmt.Fprintln(w, `        COMPREPLY=($(compgen -f -X '!*.@(md|markdown)' -- "$cur") $(compgen -d -- "$cur"))`)
	fmt.Fprintln(w, `    fi`)
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "shopt -s extglob")
	fmt.Fprintln(w, "complete -F _md2tg md2tg")
}

func generateZsh(w io.Writer, flags []flagDef) {
	fmt.Fprintln(w, "#compdef md2tg")
	fmt.Fprintln(w, "_md2tg() {")
	fmt.Fprintln(w, "  _arguments -s \\")
	for _, f := range flags {
		action := ""
		switch f.Type {
		case flagEnum:
			action = ":value:(" + strings.Join(f.Values, " ") + ")"
		case flagFile:
			action = ":file:_files -g '" + strings.ReplaceAll(f.FileGlob, ",", " ") + "'"
		case flagDir:
			action = ":directory:_files -/"
		case flagString, flagInt:
			action = ":value:"
		}
		desc := zshEscape(f.Desc)
		if f.Short != "" {
			fmt.Fprintf(w, "    '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
		} else {
			fmt.Fprintf(w, "    '--%s[%s]%s' \\\n", f.Long, desc, action)
		}
	}
	fmt.Fprintf(w, "    '1: :(%s)' \\\n", commandNames())
	fmt.Fprintln(w, "    '*:markdown file:_files -g \"*.(md|markdown)\"'")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, `compdef _md2tg md2tg`)
}

func generateFish(w io.Writer, flags []flagDef) {
	fmt.Fprintln(w, "# fish completion for md2tg")
	for _, c := range commands {
		fmt.Fprintf(w, "complete -c md2tg -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	for _, f := range flags {
		line := "complete -c md2tg -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch f.Type {
		case flagEnum:
			line += " -x -a '" + strings.Join(f.Values, " ") + "'"
		case flagFile:
			line += " -r -F"
		case flagDir:
			line += " -x -a '(__fish_complete_directories)'"
		case flagString, flagInt:
			line += " -x"
		}
		fmt.Fprintf(w, "%s -d '%s'\n", line, fishEscape(f.Desc))
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tg completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2tg completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2tg completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2tg completion fish > ~/.config/fish/completions/md2tg.fish")
}
