package store

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved client configuration.
type Config interface {
	// BasePath is where the local transcript archive lives.
	BasePath() string
	Server() string
	Agent() string
	TimelineLimit() int
	ReportLimit() int
	ReportCacheTTL() time.Duration
	Timeout() time.Duration
	LogLevel() string
}

const (
	DefaultServer = "http://127.0.0.1:5000"
	DefaultPath   = "~/.ami.db"
)

// LoadConfig reads .ami.yaml from AMI_CONFIG_PATH or the working directory,
// then AMI_* environment variables (a .env file is loaded first when present).
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.SetDefault("server", DefaultServer)
	viper.SetDefault("agent", "")
	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("timeline_limit", 5)
	viper.SetDefault("report_limit", 5)
	viper.SetDefault("report_cache_ttl", 30*time.Second)
	viper.SetDefault("timeout", time.Duration(0))
	viper.SetDefault("log_level", "warn")
	viper.SetConfigName(".ami") // .yaml is implicit
	viper.SetEnvPrefix("AMI")
	viper.AutomaticEnv()

	if override := os.Getenv("AMI_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:           path,
		ServerURL:      viper.GetString("server"),
		DefaultAgent:   viper.GetString("agent"),
		Timeline:       viper.GetInt("timeline_limit"),
		Reports:        viper.GetInt("report_limit"),
		ReportCache:    viper.GetDuration("report_cache_ttl"),
		RequestTimeout: viper.GetDuration("timeout"),
		Level:          viper.GetString("log_level"),
	}, nil
}

type fileConfig struct {
	Path           string        `json:"path"`
	ServerURL      string        `json:"server"`
	DefaultAgent   string        `json:"agent,omitempty"`
	Timeline       int           `json:"timeline_limit"`
	Reports        int           `json:"report_limit"`
	ReportCache    time.Duration `json:"report_cache_ttl"`
	RequestTimeout time.Duration `json:"timeout"`
	Level          string        `json:"log_level"`
}

func (f *fileConfig) BasePath() string              { return f.Path }
func (f *fileConfig) Server() string                { return f.ServerURL }
func (f *fileConfig) Agent() string                 { return f.DefaultAgent }
func (f *fileConfig) TimelineLimit() int            { return f.Timeline }
func (f *fileConfig) ReportLimit() int              { return f.Reports }
func (f *fileConfig) ReportCacheTTL() time.Duration { return f.ReportCache }
func (f *fileConfig) Timeout() time.Duration        { return f.RequestTimeout }
func (f *fileConfig) LogLevel() string              { return f.Level }
