package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging       LoggingConfig       `yaml:"logging"`
	LLM           LLMConfig           `yaml:"llm"`
	AnalysisQuota AnalysisQuotaConfig `yaml:"analysis_quota"`
	HTTP          HTTPConfig          `yaml:"http"`
	Mongo         MongoConfig         `yaml:"mongo"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Importer      ImporterConfig      `yaml:"importer"`
	Recovery      RecoveryConfig      `yaml:"recovery"`
	Feeds         []FeedSource        `yaml:"feeds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig 는 구조화 추출 호출 설정이다. API 키는 yaml 이 아니라 환경변수에서 읽는다.
type LLMConfig struct {
	Provider            string   `yaml:"provider"`
	Model               string   `yaml:"model"`
	FallbackProvider    string   `yaml:"fallback_provider"`
	FallbackModel       string   `yaml:"fallback_model"`
	TimeoutPerAttemptMs int      `yaml:"timeout_per_attempt_ms"`
	MaxRetries          *int     `yaml:"max_retries"`
	Temperature         *float32 `yaml:"temperature"`
	MaxOutputTokens     int32    `yaml:"max_output_tokens"`
	DeadlineMarginMs    int      `yaml:"deadline_margin_ms"`

	GeminiAPIKey    string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
}

// TimeoutPerAttempt 는 시도 1회의 제한 시간이다.
func (c LLMConfig) TimeoutPerAttempt() time.Duration {
	return time.Duration(c.TimeoutPerAttemptMs) * time.Millisecond
}

// DeadlineMargin 은 전체 데드라인에 더하는 여유 시간이다.
func (c LLMConfig) DeadlineMargin() time.Duration {
	return time.Duration(c.DeadlineMarginMs) * time.Millisecond
}

// Retries 는 max_retries 값이다. 설정되지 않으면 기본값 2.
func (c LLMConfig) Retries() int {
	if c.MaxRetries == nil || *c.MaxRetries < 0 {
		return DefaultMaxRetries
	}
	return *c.MaxRetries
}

// Temp 는 temperature 값이다. 0 은 유효한 값이고, 설정되지 않았을 때만 기본값 0.2.
func (c LLMConfig) Temp() float32 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// APIKey 는 provider 이름에 맞는 키를 돌려준다.
func (c LLMConfig) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "google", "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	}
	return ""
}

// AnalysisQuotaConfig 는 분석용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type AnalysisQuotaConfig struct {
	// RequestsPerMinute 는 분당 최대 요청 수이다. 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 일일 최대 요청 수이다. 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// MongoConfig 의 URI 가 비어 있으면 영속화 없이 동작한다.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type KafkaConfig struct {
	Brokers string `yaml:"brokers"`
	GroupID string `yaml:"group_id"`
}

// ImporterConfig 는 URL 로부터 보도자료를 가져오는 방식을 정한다.
type ImporterConfig struct {
	// Parser 는 auto | readability | trafilatura | goose
	Parser         string `yaml:"parser"`
	RenderJS       bool   `yaml:"render_js"`
	FetchImages    bool   `yaml:"fetch_images"`
	FetchTimeoutMs int    `yaml:"fetch_timeout_ms"`
	ChromePath     string `yaml:"chrome_path"`
}

func (c ImporterConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// RecoveryConfig 는 pending 상태로 멈춘 비동기 작업을 다시 발행하는 주기를 정한다.
type RecoveryConfig struct {
	IntervalMinutes   int   `yaml:"interval_minutes"`
	StaleAfterMinutes int   `yaml:"stale_after_minutes"`
	ExpireAfterHours  int   `yaml:"expire_after_hours"`
	BatchSize         int64 `yaml:"batch_size"`
}

func (c RecoveryConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

func (c RecoveryConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterMinutes) * time.Minute
}

func (c RecoveryConfig) ExpireAfter() time.Duration {
	return time.Duration(c.ExpireAfterHours) * time.Hour
}

// FeedSource 는 피드 목록 API 에서 rss_url 을 생략했을 때 쓰는 보도자료 배포 사이트다.
type FeedSource struct {
	Name   string `yaml:"name"`
	RSSURL string `yaml:"rss_url"`
}

const (
	DefaultProvider         = "google"
	DefaultModel            = "gemini-2.5-flash"
	DefaultTimeoutMs        = 60000
	DefaultMaxRetries       = 2
	DefaultTemperature      = 0.2
	DefaultMaxOutputTokens  = 8192
	DefaultDeadlineMarginMs = 5000
	DefaultHTTPAddr         = ":8080"
	DefaultMongoDatabase    = "press_lens"
	DefaultKafkaGroupID     = "press-lens-processor"
	DefaultFetchTimeoutMs   = 20000
	DefaultParser           = "auto"
	DefaultRecoveryInterval = 5
	DefaultStaleAfter       = 15
	DefaultExpireAfter      = 24
	DefaultRecoveryBatch    = 100
)

var config *AppConfig

// Load 는 dir 의 .env 와 config.yaml 을 읽는다. config.yaml 이 없으면 기본값만 사용한다.
func Load(dir string) (*AppConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	var c AppConfig
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", CONFIG_FILE, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", CONFIG_FILE, err)
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *AppConfig) applyEnv() {
	c.LLM.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.LLM.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	c.LLM.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("KAFKA_BOOTSTRAP_SERVERS"); v != "" {
		c.Kafka.Brokers = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.FallbackModel != "" && c.LLM.FallbackProvider == "" {
		c.LLM.FallbackProvider = c.LLM.Provider
	}
	if c.LLM.TimeoutPerAttemptMs <= 0 {
		c.LLM.TimeoutPerAttemptMs = DefaultTimeoutMs
	}
	if c.LLM.MaxRetries == nil {
		r := DefaultMaxRetries
		c.LLM.MaxRetries = &r
	}
	if c.LLM.Temperature == nil {
		t := float32(DefaultTemperature)
		c.LLM.Temperature = &t
	}
	if c.LLM.MaxOutputTokens <= 0 {
		c.LLM.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.LLM.DeadlineMarginMs <= 0 {
		c.LLM.DeadlineMarginMs = DefaultDeadlineMarginMs
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultHTTPAddr
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = DefaultMongoDatabase
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = DefaultKafkaGroupID
	}
	if c.Importer.FetchTimeoutMs <= 0 {
		c.Importer.FetchTimeoutMs = DefaultFetchTimeoutMs
	}
	if c.Importer.Parser == "" {
		c.Importer.Parser = DefaultParser
	}
	if c.Recovery.IntervalMinutes <= 0 {
		c.Recovery.IntervalMinutes = DefaultRecoveryInterval
	}
	if c.Recovery.StaleAfterMinutes <= 0 {
		c.Recovery.StaleAfterMinutes = DefaultStaleAfter
	}
	if c.Recovery.ExpireAfterHours <= 0 {
		c.Recovery.ExpireAfterHours = DefaultExpireAfter
	}
	if c.Recovery.BatchSize <= 0 {
		c.Recovery.BatchSize = DefaultRecoveryBatch
	}
}

// Validate 는 값의 조합이 유효한지 확인한다.
func (c *AppConfig) Validate() error {
	for _, p := range []string{c.LLM.Provider, c.LLM.FallbackProvider} {
		switch strings.ToLower(p) {
		case "", "google", "gemini", "openai", "anthropic":
		default:
			return fmt.Errorf("unsupported llm provider %q", p)
		}
	}
	if c.LLM.Retries() > 10 {
		return fmt.Errorf("llm.max_retries must be <= 10, got %d", c.LLM.Retries())
	}
	if t := c.LLM.Temp(); t < 0 || t > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %g", t)
	}
	switch strings.ToLower(c.Importer.Parser) {
	case "auto", "readability", "trafilatura", "goose":
	default:
		return fmt.Errorf("unsupported importer.parser %q", c.Importer.Parser)
	}
	return nil
}

func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	config = c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
