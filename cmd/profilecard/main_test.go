package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommand_Subcommands(t *testing.T) {
	cmd := newCommand()
	names := map[string]bool{}
	for _, sub := range cmd.Commands {
		names[sub.Name] = true
	}
	for _, want := range []string{"once", "version"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestCommand_Version(t *testing.T) {
	if err := newCommand().Run(context.Background(), []string{"profilecard", "version"}); err != nil {
		t.Fatalf("version: %v", err)
	}
}

func TestCommand_OnceReportsConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("poll_interval = \"often\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	err := newCommand().Run(context.Background(), []string{"profilecard", "--config", path, "once"})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("err = %v, want load config error", err)
	}
}
