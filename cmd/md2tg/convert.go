package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	md2tg "github.com/alnah/go-md2tg"
	"github.com/alnah/go-md2tg/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxStdinSize bounds how much of stdin is read.
const maxStdinSize = config.MaxInputSizeLimit

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		plain:     flags.output.plain,
		json:      flags.output.json,
		separator: cfg.Output.Separator,
	}
	outputDir := cfg.Output.DefaultDir

	var files []FileToConvert
	if len(positionalArgs) == 0 {
		f, err := readStdin(env.Stdin, outputDir)
		if err != nil {
			return err
		}
		files = []FileToConvert{f}
	} else {
		files, err = discoverFiles(positionalArgs, outputDir)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: no markdown files found", ErrNoInput)
		}
	}

	workers := resolvePoolSize(flags.workers, envCfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d document(s) with %d worker(s)\n", len(files), workers)
	}

	results := convertBatch(ctx, conv, files, workers, params)

	failedCount := printResults(results, params, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}
	return nil
}

// resolveConfig loads the config file, then applies environment overrides
// and flags. Precedence: flags > env > file > defaults.
func resolveConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		load := config.LoadConfig
		if flags.common.lenientConfig {
			load = config.LoadConfigLenient
		}
		loaded, err := load(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.message.maxLength < 0 {
		return fmt.Errorf("%w: %d", md2tg.ErrInvalidMaxLength, flags.message.maxLength)
	}
	if flags.message.maxLength > 0 {
		cfg.Message.MaxLength = flags.message.maxLength
	}
	if flags.message.lengthUnit != "" {
		if _, err := md2tg.ParseLengthUnit(flags.message.lengthUnit); err != nil {
			return err
		}
		cfg.Message.LengthUnit = flags.message.lengthUnit
	}
	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
	if flags.output.separatorSet {
		cfg.Output.Separator = flags.output.separator
	}
	return nil
}

// newConverter builds a converter from a validated config.
func newConverter(cfg *config.Config) (*md2tg.Converter, error) {
	unit, err := md2tg.ParseLengthUnit(cfg.Message.LengthUnit)
	if err != nil {
		return nil, err
	}

	opts := []md2tg.Option{
		md2tg.WithLengthUnit(unit),
		md2tg.WithStyle(md2tg.Style{
			H1Marker:    cfg.Style.H1Marker,
			H2Marker:    cfg.Style.H2Marker,
			Checked:     cfg.Style.Checked,
			Unchecked:   cfg.Style.Unchecked,
			Rule:        cfg.Style.Rule,
			ImageMarker: cfg.Style.ImageMarker,
			EmojiScheme: cfg.Style.EmojiScheme,
		}),
	}
	if cfg.Message.MaxLength > 0 {
		opts = append(opts, md2tg.WithMaxLength(cfg.Message.MaxLength))
	}
	if cfg.Message.MaxInputSize > 0 {
		opts = append(opts, md2tg.WithMaxInputSize(cfg.Message.MaxInputSize))
	}
	return md2tg.NewConverter(opts...)
}

// readStdin reads the whole of r as a single document.
func readStdin(r io.Reader, outputDir string) (FileToConvert, error) {
	if r == nil {
		return FileToConvert{}, ErrNoInput
	}
	content, err := io.ReadAll(io.LimitReader(r, maxStdinSize))
	if err != nil {
		return FileToConvert{}, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}

	f := FileToConvert{InputPath: "-", content: content}
	if outputDir != "" {
		f.OutputBase = resolveOutputBase(stdinName, outputDir, "")
	}
	return f, nil
}

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
