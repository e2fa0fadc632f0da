package config

import "time"

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Mongo             MongoConfig       `mapstructure:"mongo"`
	Elastic           ElasticConfig     `mapstructure:"elastic"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaBookConsumer KafkaBookConsumer `mapstructure:"kafka_book_consumer"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
	LLM               LLMConfig         `mapstructure:"llm"`
	GoogleBooks       GoogleBooksConfig `mapstructure:"google_books"`
	Recommend         RecommendConfig   `mapstructure:"recommend"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	BookIndex string `mapstructure:"book_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaBookConsumer struct {
	Enable  bool   `mapstructure:"enable"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
	Level   string `mapstructure:"level"`
}

type LLMConfig struct {
	URL           string           `mapstructure:"url"`
	TextModel     string           `mapstructure:"text_model"`
	ApiKey        string           `mapstructure:"api_key"`
	MaxConcurrent int64            `mapstructure:"max_concurrent"`
	ThinkingMode  string           `mapstructure:"thinking_mode"`
	PromptsPath   PromptPathConfig `mapstructure:"prompts_path"`
}

type PromptPathConfig struct {
	SuggestTitles      string `mapstructure:"suggest_titles"`
	AnalyzeBook        string `mapstructure:"analyze_book"`
	EnhanceDescription string `mapstructure:"enhance_description"`
}

// GoogleBooksConfig 外部图书检索
type GoogleBooksConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	ApiKey          string        `mapstructure:"api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RatePerSecond   float64       `mapstructure:"rate_per_second"`
	Burst           int           `mapstructure:"burst"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	UseFixture      bool          `mapstructure:"use_fixture"`
}

// RecommendConfig 推荐流水线参数
type RecommendConfig struct {
	DefaultLimit    int           `mapstructure:"default_limit"`
	MaxLimit        int           `mapstructure:"max_limit"`
	AISuggestions   int           `mapstructure:"ai_suggestions"`
	LikedHistory    int           `mapstructure:"liked_history"`
	PopularQuery    string        `mapstructure:"popular_query"`
	PopularWarmCron string        `mapstructure:"popular_warm_cron"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

func (c *Config) applyDefaults() {
	gb := &c.GoogleBooks
	if gb.BaseURL == "" {
		gb.BaseURL = "https://www.googleapis.com/books/v1"
	}
	if gb.Timeout <= 0 {
		gb.Timeout = 8 * time.Second
	}
	if gb.RatePerSecond <= 0 {
		gb.RatePerSecond = 5
	}
	if gb.Burst <= 0 {
		gb.Burst = 10
	}
	if gb.BreakerFailures == 0 {
		gb.BreakerFailures = 5
	}
	if gb.BreakerTimeout <= 0 {
		gb.BreakerTimeout = 30 * time.Second
	}
	if gb.CacheTTL <= 0 {
		gb.CacheTTL = 6 * time.Hour
	}

	rc := &c.Recommend
	if rc.DefaultLimit <= 0 {
		rc.DefaultLimit = 20
	}
	if rc.MaxLimit < rc.DefaultLimit {
		rc.MaxLimit = max(40, rc.DefaultLimit)
	}
	if rc.AISuggestions <= 0 {
		rc.AISuggestions = 5
	}
	if rc.LikedHistory <= 0 {
		rc.LikedHistory = 20
	}
	if rc.PopularQuery == "" {
		rc.PopularQuery = "bestseller fiction"
	}
	if rc.PopularWarmCron == "" {
		rc.PopularWarmCron = "0 */6 * * *"
	}
	if rc.CacheTTL <= 0 {
		rc.CacheTTL = 10 * time.Minute
	}

	if c.LLM.MaxConcurrent <= 0 {
		c.LLM.MaxConcurrent = 4
	}
}
