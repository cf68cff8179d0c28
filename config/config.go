// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports if credentials for the mail transport are present.
// Without them every notification is logged as skipped.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Password != ""
}

type GitlabConfig struct {
	URL   string
	Token string
}

type AzureDevOpsConfig struct {
	OrgURL  string
	PAT     string
	Project string
}

type Config struct {
	Port               int
	Environment        string
	LogLevel           string
	Database           DatabaseConfig
	DisableAutoMigrate bool

	JWTSecret    string
	JWTExpiresIn time.Duration

	CORSOrigins []string
	FrontendURL string

	SMTP        SMTPConfig
	UploadDir   string
	Gitlab      GitlabConfig
	AzureDevOps AzureDevOpsConfig

	ErrorTrackingDSN      string
	OTLPEndpoint          string
	NotificationQueueSize int
}

func (c Config) IsDev() bool {
	return c.Environment == "dev" || c.Environment == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3001)
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("LOG_LEVEL", "debug")

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "dashcase")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("POSTGRES_DB", "dashcase")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 4*time.Hour)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 15*time.Minute)
	v.SetDefault("DISABLE_AUTOMIGRATE", false)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", 7*24*time.Hour)
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "DashCase <noreply@dashcase.com>")

	v.SetDefault("UPLOAD_DIR", "static")
	v.SetDefault("GITLAB_URL", "")
	v.SetDefault("GITLAB_TOKEN", "")
	v.SetDefault("AZURE_DEVOPS_ORG_URL", "")
	v.SetDefault("AZURE_DEVOPS_PAT", "")
	v.SetDefault("AZURE_DEVOPS_PROJECT", "")

	v.SetDefault("ERROR_TRACKING_DSN", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("NOTIFICATION_QUEUE_SIZE", 100)
}

// Load reads the optional .env file and builds the configuration from the
// environment. Flags which are set take precedence over the environment.
// A flag named "log-level" is bound to LOG_LEVEL.
func Load(flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			key := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindPFlag(key, f); err != nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return Config{}, fmt.Errorf("could not bind flags: %w", bindErr)
		}
	}

	return FromViper(v)
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:        v.GetInt("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			MaxOpenConns:    v.GetInt32("DB_MAX_OPEN_CONNS"),
			MinConns:        v.GetInt32("DB_MIN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		DisableAutoMigrate: v.GetBool("DISABLE_AUTOMIGRATE"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
		CORSOrigins:  splitList(v.GetString("CORS_ORIGIN")),
		FrontendURL:  strings.TrimSuffix(v.GetString("FRONTEND_URL"), "/"),

		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("SMTP_FROM"),
		},
		UploadDir: v.GetString("UPLOAD_DIR"),
		Gitlab: GitlabConfig{
			URL:   v.GetString("GITLAB_URL"),
			Token: v.GetString("GITLAB_TOKEN"),
		},
		AzureDevOps: AzureDevOpsConfig{
			OrgURL:  v.GetString("AZURE_DEVOPS_ORG_URL"),
			PAT:     v.GetString("AZURE_DEVOPS_PAT"),
			Project: v.GetString("AZURE_DEVOPS_PROJECT"),
		},

		ErrorTrackingDSN:      v.GetString("ERROR_TRACKING_DSN"),
		OTLPEndpoint:          v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		NotificationQueueSize: v.GetInt("NOTIFICATION_QUEUE_SIZE"),
	}

	if cfg.JWTExpiresIn <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRES_IN must be a positive duration")
	}
	if cfg.NotificationQueueSize <= 0 {
		cfg.NotificationQueueSize = 100
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 25
	}

	return cfg, nil
}

// ValidateForServing checks the settings which are only required by the api server
func (c Config) ValidateForServing() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
