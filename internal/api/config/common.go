package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Cron     CronConfig     `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置，Address 为空时仅输出到 stdout
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// GraphConfig 平台 Graph API 配置
type GraphConfig struct {
	// 单次外部调用超时（秒），超时视为调用失败
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// 内容列表单页条数上限
	PageLimit int            `mapstructure:"page_limit"`
	Instagram PlatformConfig `mapstructure:"instagram"`
	Facebook  PlatformConfig `mapstructure:"facebook"`
}

// PlatformConfig 单个平台的接入凭据
type PlatformConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	OAuthURL     string `mapstructure:"oauth_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// CronConfig 定时任务表达式
type CronConfig struct {
	TokenRefreshSpec string `mapstructure:"token_refresh_spec"`
	MetricFetchSpec  string `mapstructure:"metric_fetch_spec"`
	ScoreSpec        string `mapstructure:"score_spec"`
}
