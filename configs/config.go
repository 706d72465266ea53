package configs

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration, loaded once at startup.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Farm    FarmConfig    `mapstructure:"farm"`
	Poll    PollConfig    `mapstructure:"poll"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Voice   VoiceConfig   `mapstructure:"voice"`
	Relays  RelayConfig   `mapstructure:"relays"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port        int  `mapstructure:"port"`
	EnablePprof bool `mapstructure:"enable_pprof"`
}

// FarmConfig points at the external farm data service.
type FarmConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DeviceID       string        `mapstructure:"device_id"`
}

type PollConfig struct {
	SnapshotInterval time.Duration `mapstructure:"snapshot_interval"`
	EvalInterval     time.Duration `mapstructure:"eval_interval"`
	DebounceWindow   time.Duration `mapstructure:"debounce_window"`
	HistorySchedule  string        `mapstructure:"history_schedule"`
	HistoryHours     int           `mapstructure:"history_hours"`
	HistoryLimit     int           `mapstructure:"history_limit"`
	RefreshDelay     time.Duration `mapstructure:"refresh_delay"`
}

type NotifyConfig struct {
	DangerTTL  time.Duration `mapstructure:"danger_ttl"`
	WarningTTL time.Duration `mapstructure:"warning_ttl"`
	// Inline relay command feedback: errors stay visible longer than
	// confirmations.
	CommandOkTTL  time.Duration `mapstructure:"command_ok_ttl"`
	CommandErrTTL time.Duration `mapstructure:"command_err_ttl"`
}

type VoiceConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Locale       string        `mapstructure:"locale"`
	UtteranceGap time.Duration `mapstructure:"utterance_gap"`
}

type RelayConfig struct {
	IDs []string `mapstructure:"ids"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads the YAML config at path, applying env overrides and the
// built-in defaults for anything unset.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewEmptyConfig returns a config carrying only defaults. Used by tests.
func NewEmptyConfig() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8900)
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("farm.request_timeout", "10s")
	v.SetDefault("poll.snapshot_interval", "5s")
	v.SetDefault("poll.eval_interval", "20s")
	v.SetDefault("poll.debounce_window", "5s")
	v.SetDefault("poll.history_schedule", "@every 1m")
	v.SetDefault("poll.history_hours", 24)
	v.SetDefault("poll.history_limit", 20)
	v.SetDefault("poll.refresh_delay", "2s")
	v.SetDefault("notify.danger_ttl", "12s")
	v.SetDefault("notify.warning_ttl", "7s")
	v.SetDefault("notify.command_ok_ttl", "4s")
	v.SetDefault("notify.command_err_ttl", "10s")
	v.SetDefault("voice.locale", "en")
	v.SetDefault("voice.utterance_gap", "500ms")
	v.SetDefault("relays.ids", []string{"motor", "hv", "hv_auto"})
	v.SetDefault("logging.level", "info")
}
