package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/wordsift/pkg/search"
	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		description string
		modify      func(*Config)
		contains    string
	}{
		{"cutoff below range", func(c *Config) { c.Dict.Cutoff = 10 }, "cutoff"},
		{"bounds inverted", func(c *Config) { c.Dict.MinCutoff = 9000; c.Dict.MaxCutoff = 600 }, "bounds"},
		{"input limit too large", func(c *Config) { c.Search.MaxInputLen = 64 }, "max_input_len"},
		{"no workers", func(c *Config) { c.Search.Workers = 0 }, "workers"},
		{"negative timeout", func(c *Config) { c.Search.TimeoutSeconds = -1 }, "timeout"},
		{"unknown mode", func(c *Config) { c.Grammar.Mode = "magic" }, "unknown mode"},
		{"command without binary", func(c *Config) { c.Grammar.Mode = GrammarCommand }, "needs a command"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := DefaultConfig()
			tc.modify(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("Validate() = %v, want an error containing %q", err, tc.contains)
			}
		})
	}

	c := DefaultConfig()
	c.Search.Workers = 0
	c.Grammar.Mode = "magic"
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "workers") || !strings.Contains(err.Error(), "magic") {
		t.Errorf("Validate() should report every problem, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[dict]
path = "words.db"
cutoff = 2000

[search]
workers = 4
naive = true
timeout_seconds = 30

[grammar]
mode = "command"
command = "parser"
args = ["-q", "--stdin"]

[log]
level = "debug"
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Dict.Path = "words.db"
	want.Dict.Cutoff = 2000
	want.Search.Workers = 4
	want.Search.Naive = true
	want.Search.TimeoutSeconds = 30
	want.Grammar = GrammarConfig{Mode: GrammarCommand, Command: "parser", Args: []string{"-q", "--stdin"}}
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}
	if c.SearchTimeout() != 30*time.Second {
		t.Errorf("SearchTimeout() = %v", c.SearchTimeout())
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[dict]
path = "words.db"
cutoff = "lots"

[search]
workers = 3
progress = "yes"
`)
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Dict.Path != "words.db" || c.Search.Workers != 3 {
		t.Errorf("well typed values lost: path=%q workers=%d", c.Dict.Path, c.Search.Workers)
	}
	def := DefaultConfig()
	if c.Dict.Cutoff != def.Dict.Cutoff || c.Search.Progress != def.Search.Progress {
		t.Errorf("bad values should keep defaults: cutoff=%d progress=%v", c.Dict.Cutoff, c.Search.Progress)
	}
}

func TestLoadConfigBrokenSyntax(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "[dict\npath = "))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), c); diff != "" {
		t.Errorf("broken file should give defaults (-want +got):\n%s", diff)
	}
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), c); diff != "" {
		t.Errorf("InitConfig mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	c.Dict.Cutoff = 1234
	if err := SaveConfig(c, path); err != nil {
		t.Fatal(err)
	}
	reloaded, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Dict.Cutoff != 1234 {
		t.Errorf("saved cutoff not reloaded: %d", reloaded.Dict.Cutoff)
	}
}

func TestLoadConfigWithPriority(t *testing.T) {
	custom := writeConfig(t, "[dict]\ncutoff = 700\n")
	defaultPath := filepath.Join(t.TempDir(), "config.toml")

	c, used, err := LoadConfigWithPriority(custom, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	if used != custom || c.Dict.Cutoff != 700 {
		t.Errorf("custom path: used %q cutoff %d", used, c.Dict.Cutoff)
	}

	c, used, err = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"), defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	if used != defaultPath || c.Dict.Cutoff != DefaultConfig().Dict.Cutoff {
		t.Errorf("missing custom path should fall back to default: used %q", used)
	}

	c, used, err = LoadConfigWithPriority("", "")
	if err != nil || used != "" || c == nil {
		t.Errorf("no paths: (%v, %q, %v), want built-in defaults", c, used, err)
	}
}

func TestSearchOptions(t *testing.T) {
	c := DefaultConfig()
	c.Score.OneLetterRank = 3
	c.Score.TwoLetterRank = 9
	c.Search.Workers = 2
	c.Search.Naive = true
	want := search.Options{OneLetterRank: 3, TwoLetterRank: 9, Workers: 2, Naive: true, MaxInputLen: 40}
	if diff := cmp.Diff(want, c.SearchOptions()); diff != "" {
		t.Errorf("SearchOptions mismatch (-want +got):\n%s", diff)
	}
}
