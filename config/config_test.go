package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper(t *testing.T) {
	t.Run("should apply the defaults", func(t *testing.T) {
		v := viper.New()
		setDefaults(v)

		cfg, err := FromViper(v)
		assert.Nil(t, err)
		assert.Equal(t, 3001, cfg.Port)
		assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
		assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.Equal(t, "DashCase <noreply@dashcase.com>", cfg.SMTP.From)
		assert.Equal(t, "static", cfg.UploadDir)
		assert.Equal(t, 100, cfg.NotificationQueueSize)
		assert.Equal(t, int32(25), cfg.Database.MaxOpenConns)
		assert.Equal(t, int32(5), cfg.Database.MinConns)
		assert.Equal(t, 4*time.Hour, cfg.Database.ConnMaxLifetime)
		assert.False(t, cfg.SMTP.Configured())
	})

	t.Run("should split multiple cors origins", func(t *testing.T) {
		v := viper.New()
		setDefaults(v)
		v.Set("CORS_ORIGIN", "http://a.example, http://b.example,")

		cfg, err := FromViper(v)
		assert.Nil(t, err)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	})

	t.Run("should reject a non positive token lifetime", func(t *testing.T) {
		v := viper.New()
		setDefaults(v)
		v.Set("JWT_EXPIRES_IN", "0s")

		_, err := FromViper(v)
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("should read values from the environment", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("SMTP_USER", "mailer")
		t.Setenv("SMTP_PASS", "secret")
		t.Setenv("FRONTEND_URL", "https://dash.example/")

		cfg, err := Load(nil)
		assert.Nil(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.True(t, cfg.SMTP.Configured())
		assert.Equal(t, "https://dash.example", cfg.FrontendURL)
	})

	t.Run("should prefer changed flags over the environment", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "info")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("log-level", "debug", "")
		assert.Nil(t, flags.Parse([]string{"--log-level", "error"}))

		cfg, err := Load(flags)
		assert.Nil(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})
}

func TestValidateForServing(t *testing.T) {
	t.Run("should require a jwt secret", func(t *testing.T) {
		cfg := Config{Port: 3001}
		assert.Error(t, cfg.ValidateForServing())

		cfg.JWTSecret = "secret"
		assert.Nil(t, cfg.ValidateForServing())
	})
}
