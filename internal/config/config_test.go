package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		WorkerID:      "pdfgen-1",
		RedisAddr:     "localhost:6379",
		StreamKey:     "pdfgen.render",
		ConsumerGroup: "pdfgen-workers",
		ResultStream:  "pdfgen.rendered",
		BlockTime:     time.Second,
		TemplateDir:   "templates",
		HealthPort:    8082,
		LogLevel:      "info",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pdfgen-1", cfg.WorkerID)
	assert.Equal(t, "pdfgen.render", cfg.StreamKey)
	assert.Equal(t, "pdfgen-workers", cfg.ConsumerGroup)
	assert.Equal(t, "pdfgen.rendered", cfg.ResultStream)
	assert.Equal(t, time.Second, cfg.BlockTime)
	assert.Equal(t, "templates", cfg.TemplateDir)
	assert.Equal(t, "resources/images", cfg.ImageDir)
	assert.Equal(t, "resources", cfg.ResourceDir)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 8082, cfg.HealthPort)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("WORKER_ID", "pdfgen-7")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_PASS", "secret")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BLOCK_TIME", "250ms")
	t.Setenv("TEMPLATE_DIR", "/srv/templates")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pdfgen-7", cfg.WorkerID)
	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, "secret", cfg.RedisPassword)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 250*time.Millisecond, cfg.BlockTime)
	assert.Equal(t, "/srv/templates", cfg.TemplateDir)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HEALTH_PORT", "not-a-port")
	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse config")

	t.Setenv("HEALTH_PORT", "8082")
	t.Setenv("LOG_LEVEL", "verbose")
	_, err = Load()
	assert.ErrorContains(t, err, "invalid config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing worker id", mutate: func(c *Config) { c.WorkerID = "" }, errMsg: "WORKER_ID"},
		{name: "missing redis", mutate: func(c *Config) { c.RedisAddr = "" }, errMsg: "REDIS_ADDR"},
		{name: "missing stream", mutate: func(c *Config) { c.StreamKey = "" }, errMsg: "STREAM_KEY"},
		{name: "missing group", mutate: func(c *Config) { c.ConsumerGroup = "" }, errMsg: "CONSUMER_GROUP"},
		{name: "missing result stream", mutate: func(c *Config) { c.ResultStream = "" }, errMsg: "RESULT_STREAM is required"},
		{name: "result stream loops back", mutate: func(c *Config) { c.ResultStream = c.StreamKey }, errMsg: "must differ"},
		{name: "missing template dir", mutate: func(c *Config) { c.TemplateDir = "" }, errMsg: "TEMPLATE_DIR"},
		{name: "zero block time", mutate: func(c *Config) { c.BlockTime = 0 }, errMsg: "BLOCK_TIME"},
		{name: "port out of range", mutate: func(c *Config) { c.HealthPort = 70000 }, errMsg: "HEALTH_PORT"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, errMsg: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestString_HidesPassword(t *testing.T) {
	cfg := validConfig()
	cfg.RedisPassword = "hunter2"

	s := cfg.String()
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, "WorkerID=pdfgen-1")
}
