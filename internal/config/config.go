package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is everything profilecard reads from config.toml.
type Config struct {
	Path         string
	UserID       string
	APIBase      string
	PollInterval time.Duration
	LogFile      string
	Profile      Profile
}

// Profile is the static half of the card.
type Profile struct {
	Name    string
	Bio     string
	Socials []Social
}

// Social is one contact link on the card.
type Social struct {
	Name   string
	Handle string
	URL    string
}

const (
	defaultConfigPath   = "~/.config/profilecard/config.toml"
	defaultLogFile      = "~/.local/state/profilecard/profilecard.log"
	defaultUserID       = "1040674597235863623"
	defaultAPIBase      = "https://api.lanyard.rest"
	defaultPollInterval = 5 * time.Second
	minPollInterval     = time.Second
)

// DefaultProfile is the card shown when config.toml has no [profile] section.
func DefaultProfile() Profile {
	return Profile{
		Name: "Matt",
		Bio:  "Im Matt. i usually mess with technology and install linux on old PCs",
		Socials: []Social{
			{Name: "Instagram", Handle: "brokensamsaj5", URL: "https://instagram.com/brokensamsaj5"},
			{Name: "TikTok", Handle: "brokensamsaj5", URL: "https://tiktok.com/@brokensamsaj5"},
			{Name: "Telegram", Handle: "bsj5", URL: "https://t.me/bsj5"},
			{Name: "Email", Handle: "matt@peakfemboy.cfd", URL: "mailto:matt@peakfemboy.cfd"},
			{Name: "Mastodon", Handle: "@matt", URL: "https://mastodon.v0dev.cfd/@matt"},
		},
	}
}

type rawSocial struct {
	Name   string `toml:"name"`
	Handle string `toml:"handle"`
	URL    string `toml:"url"`
}

type rawConfig struct {
	UserID       string `toml:"user_id"`
	APIBase      string `toml:"api_base"`
	PollInterval string `toml:"poll_interval"`
	LogFile      string `toml:"log_file"`
	Profile      *struct {
		Name    string      `toml:"name"`
		Bio     string      `toml:"bio"`
		Socials []rawSocial `toml:"socials"`
	} `toml:"profile"`
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.UserID); v != "" {
		cfg.UserID = v
	}
	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: poll_interval: %w", err)
		}
		cfg.PollInterval = ClampPollInterval(d)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	if p := raw.Profile; p != nil {
		if v := strings.TrimSpace(p.Name); v != "" {
			cfg.Profile.Name = v
		}
		if v := strings.TrimSpace(p.Bio); v != "" {
			cfg.Profile.Bio = v
		}
		if len(p.Socials) > 0 {
			var socials []Social
			for _, s := range p.Socials {
				social := Social{
					Name:   strings.TrimSpace(s.Name),
					Handle: strings.TrimSpace(s.Handle),
					URL:    strings.TrimSpace(s.URL),
				}
				if social.Name == "" || social.URL == "" {
					continue
				}
				socials = append(socials, social)
			}
			cfg.Profile.Socials = socials
		}
	}

	return cfg, nil
}

// ClampPollInterval applies the default to non-positive intervals and keeps
// the rest at or above one second.
func ClampPollInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return defaultPollInterval
	case d < minPollInterval:
		return minPollInterval
	default:
		return d
	}
}

func defaults() Config {
	return Config{
		UserID:       defaultUserID,
		APIBase:      defaultAPIBase,
		PollInterval: defaultPollInterval,
		LogFile:      mustExpand(defaultLogFile),
		Profile:      DefaultProfile(),
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
