package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"press-lens/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CONFIG_FILE), []byte(body), 0o644))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("MONGO_URI", "")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "google", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.TimeoutPerAttempt())
	assert.Equal(t, 2, cfg.LLM.Retries())
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.2, cfg.LLM.Temp(), 1e-6)
	assert.Equal(t, int32(8192), cfg.LLM.MaxOutputTokens)
	assert.Equal(t, 5*time.Second, cfg.LLM.DeadlineMargin())
	assert.Equal(t, "g-key", cfg.LLM.APIKey("google"))
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Importer.Parser)
	assert.Equal(t, 5*time.Minute, cfg.Recovery.Interval())
	assert.Equal(t, 15*time.Minute, cfg.Recovery.StaleAfter())
	assert.Equal(t, 24*time.Hour, cfg.Recovery.ExpireAfter())
	assert.Equal(t, int64(100), cfg.Recovery.BatchSize)
}

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "")
	t.Setenv("LOG_LEVEL", "")

	dir := writeConfig(t, `
logging:
  level: debug
llm:
  provider: openai
  model: gpt-4o-mini
  fallback_model: gpt-4o
  timeout_per_attempt_ms: 1500
  max_retries: 0
  temperature: 0
analysis_quota:
  requests_per_minute: 10
  requests_per_day: 100
mongo:
  uri: mongodb://file:27017
importer:
  parser: trafilatura
  fetch_images: true
feeds:
  - name: PR TIMES
    rss_url: https://prtimes.jp/index.rdf
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "openai", cfg.LLM.FallbackProvider)
	assert.Equal(t, "gpt-4o", cfg.LLM.FallbackModel)
	assert.Equal(t, 1500*time.Millisecond, cfg.LLM.TimeoutPerAttempt())
	assert.Equal(t, 0, cfg.LLM.Retries())
	// 명시한 0 은 기본값으로 바뀌지 않는다.
	assert.Zero(t, cfg.LLM.Temp())
	assert.Equal(t, "o-key", cfg.LLM.APIKey("openai"))
	assert.Equal(t, 10, cfg.AnalysisQuota.RequestsPerMinute)
	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
	assert.Equal(t, "press_lens", cfg.Mongo.Database)
	assert.True(t, cfg.Importer.FetchImages)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, "PR TIMES", cfg.Feeds[0].Name)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "unknown provider", body: "llm:\n  provider: cohere\n"},
		{name: "unknown parser", body: "importer:\n  parser: boilerpipe\n"},
		{name: "too many retries", body: "llm:\n  max_retries: 50\n"},
		{name: "negative temperature", body: "llm:\n  temperature: -0.5\n"},
		{name: "broken yaml", body: "llm: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}
