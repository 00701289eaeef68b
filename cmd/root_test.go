package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEffectiveLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		verbose bool
		env     string
		want    string
	}{
		{name: "flag wins", flag: "debug", verbose: true, env: "error", want: "debug"},
		{name: "verbose", verbose: true, env: "error", want: "info"},
		{name: "environment", env: "error", want: "error"},
		{name: "nothing set", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := effectiveLogLevel(tc.flag, tc.verbose, tc.env); got != tc.want {
				t.Fatalf("effectiveLogLevel() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("INCLUDEDEPS_TEST_VALUE=from-file\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	t.Setenv("INCLUDEDEPS_TEST_VALUE", "")
	os.Unsetenv("INCLUDEDEPS_TEST_VALUE")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile() error = %v", err)
	}
	if got := os.Getenv("INCLUDEDEPS_TEST_VALUE"); got != "from-file" {
		t.Fatalf("INCLUDEDEPS_TEST_VALUE = %q, want %q", got, "from-file")
	}
}

func TestLoadEnvFile_MissingExplicitFileFails(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing explicit env file")
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"resolve", "graph", "why", "watch", "package", "languages"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"languages", "--log-level", "loud", "--env-file", ""})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected invalid log level error, got %v", err)
	}
}

func TestRootCommand_Version(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "includedeps version dev") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}
