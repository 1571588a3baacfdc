package envguard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mercator-hq/oneshot/pkg/config"
)

func TestBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handoff.env")
	if err := os.WriteFile(path, []byte("MY_TOKEN=staged-value\n"), 0600); err != nil {
		t.Fatal(err)
	}

	env := newFakeEnv(map[string]string{
		config.EnvTokens:         "MY_TOKEN, OTHER_TOKEN",
		config.EnvCacheFile:      path,
		config.EnvMetricsEnabled: "true",
		"OTHER_TOKEN":            "other-value",
	})
	registry := prometheus.NewRegistry()
	var logs bytes.Buffer

	p := Bootstrap(bg, BootstrapOptions{
		Resolver:  env,
		Table:     env,
		Fatal:     func(msg string, err error) { t.Fatalf("unexpected fatal: %s: %v", msg, err) },
		LogWriter: &logs,
		Registry:  registry,
	})

	if p.Metrics == nil {
		t.Fatal("expected metrics collector when metrics are enabled")
	}
	if got := p.Config.Tokens.String(); got != "MY_TOKEN, OTHER_TOKEN" {
		t.Errorf("expected configured tokens, got %q", got)
	}

	if v := p.Engine.Getenv("MY_TOKEN"); v != "staged-value" {
		t.Errorf("expected pre-staged value, got %q", v)
	}
	if v := p.Engine.Getenv("OTHER_TOKEN"); v != "other-value" {
		t.Errorf("expected live value, got %q", v)
	}
	if env.Exposed("OTHER_TOKEN") || env.Exposed(config.EnvCacheFile) {
		t.Error("expected protected name and cache file variable to be scrubbed")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("expected cache file to be deleted")
	}

	expected := `
# HELP oneshot_guard_handoff_entries_total Total protected values loaded from hand-off files
# TYPE oneshot_guard_handoff_entries_total counter
oneshot_guard_handoff_entries_total 1
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "oneshot_guard_handoff_entries_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	if !strings.Contains(logs.String(), "protected names loaded") {
		t.Errorf("expected registry record in logs:\n%s", logs.String())
	}
	if strings.Contains(logs.String(), "staged-value") || strings.Contains(logs.String(), "other-value") {
		t.Errorf("logs contain a full value:\n%s", logs.String())
	}
}

func TestBootstrap_InvalidConfigDegrades(t *testing.T) {
	env := newFakeEnv(map[string]string{
		config.EnvLogLevel:  "loud",
		config.EnvSkipUnset: "maybe",
		"GITHUB_TOKEN":      "ghp_abc123",
	})
	var logs bytes.Buffer

	p := Bootstrap(bg, BootstrapOptions{
		Resolver:  env,
		Table:     env,
		LogWriter: &logs,
	})

	if p.Metrics != nil {
		t.Error("expected metrics to be disabled by default")
	}
	if p.Config.Logging.Level != config.DefaultLoggingLevel {
		t.Errorf("expected invalid level to reset to default, got %q", p.Config.Logging.Level)
	}
	if !strings.Contains(logs.String(), "configuration problems") {
		t.Errorf("expected configuration warning:\n%s", logs.String())
	}

	p.Engine.Getenv("GITHUB_TOKEN")
	if env.Exposed("GITHUB_TOKEN") {
		t.Error("invalid skip-unset value must not disable scrubbing")
	}
}

func TestProcess_WriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oneshot.prom")
	env := newFakeEnv(map[string]string{
		config.EnvMetricsEnabled: "1",
		config.EnvMetricsFile:    path,
		"GITHUB_TOKEN":           "ghp_abc123",
	})

	p := Bootstrap(bg, BootstrapOptions{Resolver: env, Table: env, LogWriter: &bytes.Buffer{}})
	p.Engine.Getenv("GITHUB_TOKEN")

	if err := p.WriteMetrics(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `oneshot_guard_first_access_total{origin="getenv",result="present"} 1`) {
		t.Errorf("unexpected textfile contents:\n%s", data)
	}
}
