package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Dir != "." {
		t.Fatalf("expected dir ., got %q", cfg.App.Dir)
	}
	if cfg.App.HoverDelay != 500*time.Millisecond {
		t.Fatalf("expected 500ms hover delay, got %s", cfg.App.HoverDelay)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled by default")
	}
	if cfg.Logging.FilePath != "files-tooltip.log" || cfg.Logging.Trace {
		t.Fatalf("unexpected logging defaults %#v", cfg.Logging)
	}
}

func TestLoadArgsEnvironmentFallbacks(t *testing.T) {
	env := []string{
		"FILES_TOOLTIP_WIDTH=100",
		"FILES_TOOLTIP_HEIGHT=not-a-number",
		"FILES_TOOLTIP_HOVER_DELAY=250ms",
		"FILES_TOOLTIP_FOOTER=false",
		"FILES_TOOLTIP_TRACE=1",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Width != 100 {
		t.Fatalf("expected width 100, got %d", cfg.App.Width)
	}
	if cfg.App.Height != 0 {
		t.Fatalf("expected invalid height to fall back to 0, got %d", cfg.App.Height)
	}
	if cfg.App.HoverDelay != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", cfg.App.HoverDelay)
	}
	if cfg.App.ShowFooter || !cfg.Logging.Trace {
		t.Fatalf("expected footer off and trace on, got %v/%v", cfg.App.ShowFooter, cfg.Logging.Trace)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs(
		[]string{"-hover-delay", "1s", "-dir", "/tmp", "-script", "run.yaml"},
		[]string{"FILES_TOOLTIP_HOVER_DELAY=250ms", "FILES_TOOLTIP_DIR=/srv"},
	)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.HoverDelay != time.Second || cfg.App.Dir != "/tmp" || cfg.App.Script != "run.yaml" {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if cfg.Flags["hoverDelay"] != "1s" {
		t.Fatalf("expected hoverDelay flag 1s, got %q", cfg.Flags["hoverDelay"])
	}
}

func TestLoadArgsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tooltip.env")
	body := "FILES_TOOLTIP_DIR=/from-file\nFILES_TOOLTIP_TRACE=true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	for _, args := range [][]string{
		{"-env-file", path},
		{"--env-file=" + path},
	} {
		cfg, err := LoadArgs(args, []string{"FILES_TOOLTIP_DIR=/from-env"})
		if err != nil {
			t.Fatalf("load %v failed: %v", args, err)
		}
		if cfg.App.Dir != "/from-env" {
			t.Fatalf("expected process environment to win, got %q", cfg.App.Dir)
		}
		if !cfg.Logging.Trace {
			t.Fatalf("expected trace from env file")
		}
		if cfg.EnvFile != path {
			t.Fatalf("expected env file %q, got %q", path, cfg.EnvFile)
		}
	}
}

func TestLoadArgsMissingEnvFile(t *testing.T) {
	_, err := LoadArgs([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}, nil)
	if err == nil || !strings.Contains(err.Error(), "read env file") {
		t.Fatalf("expected env file error, got %v", err)
	}
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg, err := LoadArgs([]string{"-width", "-1", "-hover-delay", "-1s", "-script", "/missing.yaml", "-dir", "/nope"}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	err = validateFs(cfg, fs)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"width", "hover delay", "script file", "directory /nope"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateAcceptsExistingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/srv/files", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/etc/toolbar.yaml", []byte("buttons: []"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs([]string{"-dir", "/srv/files", "-toolbar", "/etc/toolbar.yaml"}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := validateFs(cfg, fs); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
