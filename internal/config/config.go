package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string        `mapstructure:"port"`
	StaticDir       string        `mapstructure:"static_dir"`
	HandlerTimeout  time.Duration `mapstructure:"handler_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	LogLevel        string        `mapstructure:"log_level"`
	LogDevelopment  bool          `mapstructure:"log_development"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	// TraceOutput is empty to disable tracing, "stdout", or a file path.
	TraceOutput string `mapstructure:"trace_output"`
}

func Defaults() Config {
	return Config{
		Port:            "8080",
		StaticDir:       "./public",
		HandlerTimeout:  15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
		MetricsEnabled:  true,
	}
}

// Flags registers the server flags on fs.
func Flags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("config", "", "optional config file (yaml, toml or json)")
	fs.String("port", d.Port, "listen port")
	fs.String("static-dir", d.StaticDir, "directory served at / (empty disables)")
	fs.Duration("handler-timeout", d.HandlerTimeout, "per-request handler timeout")
	fs.Duration("shutdown-timeout", d.ShutdownTimeout, "graceful shutdown timeout")
	fs.String("log-level", d.LogLevel, "trace, debug, info, warn or error")
	fs.Bool("log-development", d.LogDevelopment, "human-readable console logs")
	fs.Bool("metrics-enabled", d.MetricsEnabled, "expose /metrics")
	fs.String("trace-output", d.TraceOutput, "span output: stdout or a file path (empty disables)")
}

// Load resolves configuration from, in order of precedence: flags, TRIAGE_*
// environment variables (PORT is also honoured), the optional config file,
// and defaults. args are parsed into a fresh flag set.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("triage-server", pflag.ContinueOnError)
	Flags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	return FromFlags(fs)
}

func FromFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("static_dir", d.StaticDir)
	v.SetDefault("handler_timeout", d.HandlerTimeout)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_development", d.LogDevelopment)
	v.SetDefault("metrics_enabled", d.MetricsEnabled)
	v.SetDefault("trace_output", d.TraceOutput)

	if err := v.BindEnv("port", "TRIAGE_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	for key, flag := range map[string]string{
		"port":             "port",
		"static_dir":       "static-dir",
		"handler_timeout":  "handler-timeout",
		"shutdown_timeout": "shutdown-timeout",
		"log_level":        "log-level",
		"log_development":  "log-development",
		"metrics_enabled":  "metrics-enabled",
		"trace_output":     "trace-output",
	} {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", f.Value.String(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// FromEnv resolves configuration without command-line flags.
func FromEnv() (Config, error) {
	return Load(nil)
}
