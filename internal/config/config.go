package config

import (
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	TLS     bool   `toml:"tls"`

	// DevLogin 开启 /login，按邮箱直接签发 token，仅用于本地和测试环境
	DevLogin bool `toml:"devLogin"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
	Level   string `toml:"level"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

type KafkaConfig struct {
	Brokers         []string `toml:"brokers"`
	ClientID        string   `toml:"clientID"`
	TelemetryTopic  string   `toml:"telemetryTopic"`
	ActionTopic     string   `toml:"actionTopic"`
	ConsumerGroupID string   `toml:"consumerGroupID"`
}

type RedisConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"poolSize"`
	MinIdleConns int    `toml:"minIdleConns"`
}

// DigestConfig 趋势摘要任务配置
type DigestConfig struct {
	TimeZone        string `toml:"timeZone"`
	// TargetHour 未配置时为 nil，默认 7 点
	TargetHour      *int   `toml:"targetHour"`
	CooldownMinutes int    `toml:"cooldownMinutes"`
	TopN            int    `toml:"topN"`
	CronSecret      string `toml:"cronSecret"`
	InProcessCron   bool   `toml:"inProcessCron"`
	CronSpec        string `toml:"cronSpec"`
	// mysql | redis
	LockBackend string `toml:"lockBackend"`
	AppURL      string `toml:"appURL"`
}

type EmailConfig struct {
	SMTPHost       string `toml:"smtpHost"`
	SMTPPort       int    `toml:"smtpPort"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	From           string `toml:"from"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	Concurrency    int    `toml:"concurrency"`
}

type Config struct {
	MainConfig   `toml:"mainConfig"`
	MysqlConfig  `toml:"mysqlConfig"`
	JwtConfig    `toml:"jwtConfig"`
	KafkaConfig  `toml:"kafkaConfig"`
	LogConfig    `toml:"logConfig"`
	RedisConfig  `toml:"redisConfig"`
	DigestConfig `toml:"digestConfig"`
	EmailConfig  `toml:"emailConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := "configs/config_local.toml"
	if p := os.Getenv("FLEETOPS_CONFIG"); p != "" {
		configPath = p
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("load config %s failed: %v, using defaults", configPath, err)
		return err
	}
	return nil
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}

// Location 返回摘要任务所在时区，配置无效时回退到 America/Chicago
func (d DigestConfig) Location() *time.Location {
	name := d.TimeZone
	if name == "" {
		name = "America/Chicago"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid digest time zone %q: %v, falling back to UTC", name, err)
		return time.UTC
	}
	return loc
}

func (d DigestConfig) Hour() int {
	if d.TargetHour == nil || *d.TargetHour < 0 || *d.TargetHour > 23 {
		return 7
	}
	return *d.TargetHour
}

func (d DigestConfig) Cooldown() time.Duration {
	if d.CooldownMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(d.CooldownMinutes) * time.Minute
}

func (d DigestConfig) TopAssets() int {
	if d.TopN <= 0 {
		return 5
	}
	return d.TopN
}

func (d DigestConfig) Spec() string {
	if d.CronSpec == "" {
		return "* * * * *"
	}
	return d.CronSpec
}

func (e EmailConfig) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

func (e EmailConfig) Workers() int {
	if e.Concurrency <= 0 {
		return 5
	}
	return e.Concurrency
}
