package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/files-tooltip/internal/app"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	EnvFile string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDir        = "FILES_TOOLTIP_DIR"
	envToolbar    = "FILES_TOOLTIP_TOOLBAR"
	envHoverDelay = "FILES_TOOLTIP_HOVER_DELAY"
	envScript     = "FILES_TOOLTIP_SCRIPT"
	envWidth      = "FILES_TOOLTIP_WIDTH"
	envHeight     = "FILES_TOOLTIP_HEIGHT"
	envShowFooter = "FILES_TOOLTIP_FOOTER"
	envTrace      = "FILES_TOOLTIP_TRACE"
	envLogFile    = "FILES_TOOLTIP_LOG_FILE"

	defaultHoverDelay = 500 * time.Millisecond
	defaultLogFile    = "files-tooltip.log"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	envFile := envFileArg(args)
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return Config{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range fileEnv {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}

	fs := flag.NewFlagSet("files-tooltip", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	dir := fs.String("dir", envOrDefault(env, envDir, "."), "directory to browse")
	toolbarFile := fs.String("toolbar", envOrDefault(env, envToolbar, ""), "YAML file describing the toolbar buttons")
	hoverDelay := fs.Duration("hover-delay", envOrDuration(env, envHoverDelay, defaultHoverDelay), "delay before a hovered button shows its tooltip (0 shows at once)")
	script := fs.String("script", envOrDefault(env, envScript, ""), "YAML event script to replay instead of running interactively")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key help footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, defaultLogFile), "path to the log file")
	fs.String("env-file", envFile, "dotenv file merged under the process environment")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Dir:        *dir,
			Toolbar:    *toolbarFile,
			HoverDelay: *hoverDelay,
			Script:     *script,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		EnvFile: envFile,
		Flags: map[string]string{
			"dir":        *dir,
			"toolbar":    *toolbarFile,
			"hoverDelay": hoverDelay.String(),
			"script":     *script,
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"footer":     strconv.FormatBool(*footer),
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
			"envFile":    envFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// envFileArg finds -env-file ahead of flag parsing so its values can feed
// the other flags' defaults.
func envFileArg(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "env-file="); ok {
			return value
		}
		if name == "env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks value ranges and that referenced files exist.
func Validate(cfg Config) error {
	return validateFs(cfg, afero.NewOsFs())
}

func validateFs(cfg Config, fs afero.Fs) error {
	var errs []error
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.HoverDelay < 0 {
		errs = append(errs, fmt.Errorf("hover delay must be >= 0 (got %s)", cfg.App.HoverDelay))
	}
	for _, f := range []struct{ name, path string }{
		{"toolbar", cfg.App.Toolbar},
		{"script", cfg.App.Script},
	} {
		if f.path == "" {
			continue
		}
		if ok, err := afero.Exists(fs, f.path); err != nil || !ok {
			errs = append(errs, fmt.Errorf("%s file %s not found", f.name, f.path))
		}
	}
	if ok, err := afero.DirExists(fs, cfg.App.Dir); cfg.App.Dir != "" && (err != nil || !ok) {
		errs = append(errs, fmt.Errorf("directory %s not found", cfg.App.Dir))
	}
	return errors.Join(errs...)
}
