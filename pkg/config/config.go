package config

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// EnvironmentsConfig lists the environment pool. AutoClaimable entries are
// eligible for automatic assignment; Fixed entries (staging, demo) can only
// be claimed by name. Declaration order is meaningful: listings and
// auto-pick both follow it.
type EnvironmentsConfig struct {
	AutoClaimable []string `json:"auto_claimable"`
	Fixed         []string `json:"fixed"`
}

// SlackConfig configures the outbound incoming-webhook channel.
type SlackConfig struct {
	WebhookURL  string `json:"webhook_url"`
	Channel     string `json:"channel"`
	BotUsername string `json:"bot_username"`
}

// GitHubConfig configures inbound deploy webhook verification.
type GitHubConfig struct {
	WebhookSecret string `json:"webhook_secret"`
}

// StorageConfig configures the lease store backend.
type StorageConfig struct {
	Type     string `json:"type"` // "dynamodb" or "memory"
	Table    string `json:"table"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"` // local/dev endpoint override
}

// Config is the process-wide configuration, built once at startup and
// passed by reference into the engine and controllers.
type Config struct {
	Environments    EnvironmentsConfig `json:"environments"`
	Slack           SlackConfig        `json:"slack"`
	GitHub          GitHubConfig       `json:"github"`
	Storage         StorageConfig      `json:"storage"`
	DisplayTimezone string             `json:"display_timezone"`
	UserAliases     map[string]string  `json:"user_aliases"`
	// DigestSchedule is an optional cron spec; when set, the active-lease
	// summary is posted to the chat channel on that schedule.
	DigestSchedule string `json:"digest_schedule,omitempty"`
}

// LoadConfig loads configuration from a JSON file, fills defaults, and
// applies environment-variable overrides for the secret-bearing fields.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	if filename != "" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := file.Close(); err != nil {
				log.Printf("Failed to close config file: %v", err)
			}
		}()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
	}

	config.applyEnvOverrides()
	config.applyDefaults()
	return config, nil
}

// DefaultConfig returns the configuration used when no file is given. The
// environment names match the long-standing demo pool.
func DefaultConfig() *Config {
	config := &Config{
		Environments: EnvironmentsConfig{
			AutoClaimable: []string{
				"amstel",
				"budvar",
				"corona",
				"doombar",
				"estrella",
				"fruli",
				"gambrinus",
				"holba",
			},
			Fixed: []string{"staging", "demo"},
		},
		Slack: SlackConfig{
			Channel:     "#demo-environments",
			BotUsername: "demo-env-bot",
		},
		Storage: StorageConfig{
			Type:  "dynamodb",
			Table: "demo-env-slackbot.environments",
		},
		DisplayTimezone: "Local",
	}
	config.applyEnvOverrides()
	return config
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		c.Slack.WebhookURL = v
	}
	if v := os.Getenv("SLACK_CHANNEL"); v != "" {
		c.Slack.Channel = v
	}
	if v := os.Getenv("GITHUB_WEBHOOK_SECRET"); v != "" {
		c.GitHub.WebhookSecret = v
	}
	if v := os.Getenv("DYNAMO_TABLE"); v != "" {
		c.Storage.Table = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && c.Storage.Region == "" {
		c.Storage.Region = v
	}
	if v := os.Getenv("DYNAMO_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
}

func (c *Config) applyDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = "dynamodb"
	}
	if c.DisplayTimezone == "" {
		c.DisplayTimezone = "Local"
	}
}

// DisplayLocation resolves the configured display timezone. Unresolvable
// names fall back to the server's local zone with a warning rather than
// failing startup.
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		log.Printf("Warning: unknown display timezone %q, using local time: %v", c.DisplayTimezone, err)
		return time.Local
	}
	return loc
}
