package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	obs "github.com/hablemos-club/league-bot/app/shared/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Discord       DiscordConfig       `yaml:"discord"`
	League        LeagueConfig        `yaml:"league"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	NATSCreds     NATSCredsConfig     `yaml:"nats_creds"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// DiscordConfig holds the IDs the backend needs to scope and annotate
// gateway-bound events. The gateway process owns the bot token.
type DiscordConfig struct {
	GuildID           string `yaml:"guild_id"`
	AnnounceChannelID string `yaml:"announce_channel_id"`
	ChampionRoleID    string `yaml:"champion_role_id"`
}

// LeagueConfig holds the scoring and rotation tunables.
type LeagueConfig struct {
	PointsPerMessage   int           `yaml:"points_per_message"`
	ActiveDayBonus     int           `yaml:"active_day_bonus"`
	ChampionCount      int           `yaml:"champion_count"`
	DisplayCount       int           `yaml:"display_count"`
	MessageCooldown    time.Duration `yaml:"message_cooldown"`
	DailyCap           int           `yaml:"daily_cap"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
	SweepInterval      time.Duration `yaml:"sweep_interval"`
	CloseCheckInterval time.Duration `yaml:"close_check_interval"`
}

// HTTPConfig holds the ops/API listener configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// NATSCredsConfig holds the gateway NATS credential minting settings. The
// signing key seed must belong to (or be a signing key of) the issuer account.
type NATSCredsConfig struct {
	Enabled        bool   `yaml:"enabled"`
	SigningKeySeed string `yaml:"signing_key_seed"`
	IssuerAccount  string `yaml:"issuer_account"`
	ProvisionKey   string `yaml:"provision_key"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		cfg.Discord.GuildID = v
	}
	if v := os.Getenv("DISCORD_ANNOUNCE_CHANNEL_ID"); v != "" {
		cfg.Discord.AnnounceChannelID = v
	}
	if v := os.Getenv("DISCORD_CHAMPION_ROLE_ID"); v != "" {
		cfg.Discord.ChampionRoleID = v
	}
	if v := os.Getenv("LEAGUE_MESSAGE_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.League.MessageCooldown = d
		}
	}
	if v := os.Getenv("LEAGUE_DAILY_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.League.DailyCap = n
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_DEFAULT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.DefaultTTL = d
		}
	}
	if v := os.Getenv("NATS_CREDS_ENABLED"); v != "" {
		cfg.NATSCreds.Enabled = v == "true"
	}
	if v := os.Getenv("NATS_CREDS_SIGNING_KEY_SEED"); v != "" {
		cfg.NATSCreds.SigningKeySeed = v
	}
	if v := os.Getenv("NATS_CREDS_ISSUER_ACCOUNT"); v != "" {
		cfg.NATSCreds.IssuerAccount = v
	}
	if v := os.Getenv("NATS_CREDS_PROVISION_KEY"); v != "" {
		cfg.NATSCreds.ProvisionKey = v
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	// Load Postgres DSN
	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	// Load NATS URL
	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	// Load Discord IDs
	cfg.Discord.GuildID = os.Getenv("DISCORD_GUILD_ID")
	if cfg.Discord.GuildID == "" {
		return nil, fmt.Errorf("DISCORD_GUILD_ID environment variable not set")
	}
	cfg.Discord.AnnounceChannelID = os.Getenv("DISCORD_ANNOUNCE_CHANNEL_ID")
	cfg.Discord.ChampionRoleID = os.Getenv("DISCORD_CHAMPION_ROLE_ID")

	// Load league tunables
	if v := os.Getenv("LEAGUE_MESSAGE_COOLDOWN"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LEAGUE_MESSAGE_COOLDOWN value: %v", err)
		}
		cfg.League.MessageCooldown = d
	}
	if v := os.Getenv("LEAGUE_DAILY_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LEAGUE_DAILY_CAP value: %v", err)
		}
		cfg.League.DailyCap = n
	}

	// Load HTTP listener address
	cfg.HTTP.Address = os.Getenv("HTTP_ADDR")

	// Load Observability settings
	cfg.Observability.Environment = os.Getenv("ENV")

	// Load JWT settings
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	jwtDefaultTTL := os.Getenv("JWT_DEFAULT_TTL")
	if jwtDefaultTTL == "" {
		cfg.JWT.DefaultTTL = 24 * time.Hour
	} else {
		var err error
		cfg.JWT.DefaultTTL, err = time.ParseDuration(jwtDefaultTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_DEFAULT_TTL value: %v", err)
		}
	}

	// Load NATS credential minting settings
	cfg.NATSCreds.Enabled = os.Getenv("NATS_CREDS_ENABLED") == "true"
	cfg.NATSCreds.SigningKeySeed = os.Getenv("NATS_CREDS_SIGNING_KEY_SEED")
	cfg.NATSCreds.IssuerAccount = os.Getenv("NATS_CREDS_ISSUER_ACCOUNT")
	cfg.NATSCreds.ProvisionKey = os.Getenv("NATS_CREDS_PROVISION_KEY")

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills in the league tunables that were left unset. Zero is not
// a meaningful value for any of them.
func (cfg *Config) applyDefaults() {
	if cfg.League.PointsPerMessage == 0 {
		cfg.League.PointsPerMessage = 1
	}
	if cfg.League.ActiveDayBonus == 0 {
		cfg.League.ActiveDayBonus = 5
	}
	if cfg.League.ChampionCount == 0 {
		cfg.League.ChampionCount = 3
	}
	if cfg.League.DisplayCount == 0 {
		cfg.League.DisplayCount = 10
	}
	if cfg.League.MessageCooldown == 0 {
		cfg.League.MessageCooldown = 120 * time.Second
	}
	if cfg.League.DailyCap == 0 {
		cfg.League.DailyCap = 50
	}
	if cfg.League.CacheTTL == 0 {
		cfg.League.CacheTTL = 30 * time.Second
	}
	if cfg.League.SweepInterval == 0 {
		cfg.League.SweepInterval = time.Minute
	}
	if cfg.League.CloseCheckInterval == 0 {
		cfg.League.CloseCheckInterval = time.Minute
	}
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 24 * time.Hour
	}
}

func ToObsConfig(appCfg *Config) obs.Config {
	return obs.Config{
		ServiceName: "league-bot",
		Environment: appCfg.Observability.Environment,
		Version:     "0.3.0", // Could inject via `ldflags`
	}
}
