package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtractFlagsFromFlagSet(t *testing.T) {
	t.Parallel()

	flags := extractFlagsFromFlagSet(buildConvertFlagSet())
	byName := make(map[string]flagDef, len(flags))
	for _, f := range flags {
		byName[f.Long] = f
	}

	tests := []struct {
		name  string
		short string
		typ   flagType
	}{
		{"output", "o", flagDir},
		{"config", "c", flagFile},
		{"length-unit", "", flagEnum},
		{"max-length", "m", flagInt},
		{"json", "", flagBool},
		{"separator", "", flagString},
	}

	for _, tt := range tests {
		f, ok := byName[tt.name]
		if !ok {
			t.Errorf("flag --%s missing", tt.name)
			continue
		}
		if f.Short != tt.short || f.Type != tt.typ {
			t.Errorf("--%s = {short %q, type %d}, want {short %q, type %d}", tt.name, f.Short, f.Type, tt.short, tt.typ)
		}
	}
	if got := byName["length-unit"].Values; len(got) != 2 {
		t.Errorf("--length-unit values = %v, want runes and utf16", got)
	}
}

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{ShellBash, []string{"complete -F _md2tg md2tg", "--max-length", "runes utf16"}},
		{ShellZsh, []string{"#compdef md2tg", "--length-unit", "(runes utf16)"}},
		{ShellFish, []string{"complete -c md2tg -l max-length -s m", "-a config"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("tcsh"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want %v", err, ErrUnsupportedShell)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for unsupported shell", buf.Len())
	}
}

func TestRunMain_Completion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv("")
	if code := runMain([]string{"md2tg", "completion"}, env); code != ExitSuccess {
		t.Errorf("runMain(completion) = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stdout.String(), "Usage: md2tg completion") {
		t.Errorf("stdout = %q, want completion usage", stdout)
	}

	env, _, _ = newTestEnv("")
	if code := runMain([]string{"md2tg", "completion", "tcsh"}, env); code != ExitUsage {
		t.Errorf("runMain(completion tcsh) = %d, want %d", code, ExitUsage)
	}
}
