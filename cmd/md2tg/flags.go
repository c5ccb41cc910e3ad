package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config        string
	lenientConfig bool
	quiet         bool
	verbose       bool
}

// messageFlags holds message size flags.
type messageFlags struct {
	maxLength  int
	lengthUnit string
}

// outputFlags holds output destination and format flags.
type outputFlags struct {
	dir          string
	separator    string
	separatorSet bool // --separator given, even as ""
	json         bool
	plain        bool
}

// convertFlags holds all flags for the default convert command.
type convertFlags struct {
	common  commonFlags
	message messageFlags
	output  outputFlags
	workers int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.lenientConfig, "lenient-config", false, "ignore unknown keys in the config file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show chunk counts and timing")
}

// addMessageFlags adds message size flags to a FlagSet.
func addMessageFlags(fs *flag.FlagSet, f *messageFlags) {
	fs.IntVarP(&f.maxLength, "max-length", "m", 0, "maximum chunk length (default 4096)")
	fs.StringVar(&f.lengthUnit, "length-unit", "", "length unit: runes, utf16")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "write <name>.NNN.txt chunk files to this directory")
	fs.StringVar(&f.separator, "separator", "", "separator between chunks on stdout")
	fs.BoolVar(&f.json, "json", false, "print each document as a JSON array of chunks")
	fs.BoolVar(&f.plain, "plain", false, "emit plain text without markup")
}

// parseConvertFlags parses convert flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("md2tg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addMessageFlags(fs, &f.message)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.output.separatorSet = fs.Changed("separator")

	return f, fs.Args(), nil
}

// parseConfigFlags parses flags of the config command.
func parseConfigFlags(args []string, stderr io.Writer) (*convertFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	addCommonFlags(fs, &f.common)
	addMessageFlags(fs, &f.message)
	addOutputFlags(fs, &f.output)

	fs.Usage = func() { printConfigUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	f.output.separatorSet = fs.Changed("separator")
	return f, nil
}
