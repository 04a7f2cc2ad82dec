package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Credentials are the portal login pair.
type Credentials struct {
	Username string
	Password string
}

// Header is a default request header sent with every portal call.
type Header struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// Config captures everything spaggo reads from config.toml and the environment.
type Config struct {
	BaseURL       string
	TokenPath     string
	MaxRelogins   int
	Credentials   Credentials
	Headers       []Header
	WrapWidth     int
	Theme         string
	HTTPTimeout   time.Duration
	LogLevel      string
	LogFile       string
	WatchSchedule string
}

const (
	defaultConfigPath    = "~/.config/spaggo/config.toml"
	defaultTokenPath     = "~/.config/spaggo/credentials.json"
	defaultBaseURL       = "https://web.spaggiari.eu/rest/v1"
	defaultMaxRelogins   = 1
	defaultWrapWidth     = 30
	defaultTheme         = "Nightfox"
	defaultHTTPTimeout   = 15 * time.Second
	defaultLogLevel      = "warn"
	defaultWatchSchedule = "*/30 * * * *"
)

// Environment variables that override file values.
const (
	EnvUsername = "SPAGGO_USERNAME"
	EnvPassword = "SPAGGO_PASSWORD"
	EnvLogLevel = "SPAGGO_LOG_LEVEL"
)

// DefaultHeaders are used when the config file does not declare any.
var DefaultHeaders = []Header{
	{Key: "User-Agent", Value: "CVVS/std/4.1.7 Android/10"},
	{Key: "Z-Dev-Apikey", Value: "Tg1NWEwNGIgIC0K"},
	{Key: "Content-Type", Value: "application/json"},
}

// Default returns a Config populated with built-in defaults.
func Default() Config {
	return Config{
		BaseURL:       defaultBaseURL,
		TokenPath:     mustExpand(defaultTokenPath),
		MaxRelogins:   defaultMaxRelogins,
		Headers:       append([]Header(nil), DefaultHeaders...),
		WrapWidth:     defaultWrapWidth,
		Theme:         defaultTheme,
		HTTPTimeout:   defaultHTTPTimeout,
		LogLevel:      defaultLogLevel,
		WatchSchedule: defaultWatchSchedule,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
// A .env file in the working directory and SPAGGO_* variables are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL     string `toml:"base_url"`
		TokenPath   string `toml:"token_path"`
		MaxRelogins *int   `toml:"max_relogins"`
		Credentials struct {
			Username string `toml:"username"`
			Password string `toml:"password"`
		} `toml:"credentials"`
		Headers []Header `toml:"headers"`
		Display struct {
			WrapWidth int    `toml:"wrap_width"`
			Theme     string `toml:"theme"`
		} `toml:"display"`
		HTTP struct {
			Timeout string `toml:"timeout"`
		} `toml:"http"`
		Log struct {
			Level string `toml:"level"`
			File  string `toml:"file"`
		} `toml:"log"`
		Watch struct {
			Schedule string `toml:"schedule"`
		} `toml:"watch"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.TokenPath); v != "" {
		cfg.TokenPath = mustExpand(v)
	}
	if raw.MaxRelogins != nil {
		if *raw.MaxRelogins < 0 {
			return Config{}, fmt.Errorf("max_relogins must not be negative, got %d", *raw.MaxRelogins)
		}
		cfg.MaxRelogins = *raw.MaxRelogins
	}
	cfg.Credentials = Credentials{
		Username: strings.TrimSpace(raw.Credentials.Username),
		Password: raw.Credentials.Password,
	}

	if len(raw.Headers) > 0 {
		cfg.Headers = cfg.Headers[:0]
		for _, h := range raw.Headers {
			key := strings.TrimSpace(h.Key)
			if key == "" {
				continue
			}
			cfg.Headers = append(cfg.Headers, Header{Key: key, Value: strings.TrimSpace(h.Value)})
		}
	}

	if raw.Display.WrapWidth > 0 {
		cfg.WrapWidth = raw.Display.WrapWidth
	}
	if v := strings.TrimSpace(raw.Display.Theme); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(raw.HTTP.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse http.timeout %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}
	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Watch.Schedule); v != "" {
		cfg.WatchSchedule = v
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Validate reports whether the config carries what a login needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Credentials.Username) == "" {
		return fmt.Errorf("credentials.username is empty (set it in config.toml or %s)", EnvUsername)
	}
	if c.Credentials.Password == "" {
		return fmt.Errorf("credentials.password is empty (set it in config.toml or %s)", EnvPassword)
	}
	return nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func applyEnv(cfg *Config) {
	// .env is optional; existing variables win.
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv(EnvUsername)); v != "" {
		cfg.Credentials.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Credentials.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
