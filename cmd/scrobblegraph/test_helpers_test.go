package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrobblegraph/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	inputPath  string
	outputPath string
	cachePath  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	for _, key := range []string{"SCROBBLEGRAPH_INPUT", "SCROBBLEGRAPH_OUTPUT", "SCROBBLEGRAPH_LOOKUP_ENDPOINT"} {
		t.Setenv(key, "")
	}

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(homeDir, ".config", "scrobblegraph", "config.toml"),
		inputPath:  filepath.Join(base, "data", "scrobbles.tsv"),
		outputPath: filepath.Join(base, "out", "scrobbles.ttl"),
		cachePath:  filepath.Join(base, "cache", "lookup.db"),
	}
	writeTestConfig(t, env, "http://127.0.0.1:1/unreachable")
	testsupport.WriteScrobbles(t, env.inputPath, []testsupport.Scrobble{
		{ISOTime: "2015-01-18T20:57:06", Track: "Bing Bada Bang", TrackMBID: "66c49cfb", Artist: "Futumani", ArtistMBID: "fe58d045", Application: "Last.fm Scrobbler"},
		{ISOTime: "2015-01-18T21:01:10", Track: "I Said Yes", Artist: "Chris Remo", Album: "Gone Home", AlbumArtist: "Chris Remo", Application: "Last.fm Scrobbler"},
	})
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv, endpoint string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
input = %q
output = %q

[lookup]
enabled = true
endpoint = %q
max_retries = 0
initial_backoff_ms = 1
max_backoff_ms = 1

[lookup_cache]
enabled = false
path = %q

[logging]
level = "error"
`, env.inputPath, env.outputPath, endpoint, env.cachePath)
	testsupport.WriteFile(t, env.configPath, content)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
