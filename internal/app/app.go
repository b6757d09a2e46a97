package app

import (
	"os"
	"time"

	"vehiql-main/internal/auth"
	"vehiql-main/internal/dealership"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CfgDB           ConfigDB            `yaml:"db"`
	CfgRedis        ConfigRedis         `yaml:"redis"`
	CfgES           ConfigES            `yaml:"es"`
	CfgKafka        ConfigKafka         `yaml:"kafka"`
	CfgMongo        ConfigMongo         `yaml:"mongo"`
	CfgCatalog      ConfigCatalog       `yaml:"catalog"`
	CfgUpload       ConfigUpload        `yaml:"upload"`
	Admin           auth.Policy         `yaml:"admin"`
	Dealership      dealership.Defaults `yaml:"dealership"`
	ETLInterval     time.Duration       `yaml:"etl_interval"`
	ETLTimeout      time.Duration       `yaml:"etl_search_timeout"`
	MaxOpenConns    int                 `yaml:"max_open_conns"`
	PublicURL       string              `yaml:"public_url"`
	Secret          string              `yaml:"secret"`
	ServerPort      string              `yaml:"srv_port"`
	SessionDuration time.Duration       `yaml:"session_duration"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

type ConfigRedis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ConfigES struct {
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
}

type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

type ConfigMongo struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type ConfigCatalog struct {
	MaxPageSize   int `yaml:"max_page_size"`
	FeaturedLimit int `yaml:"featured_limit"`
}

type ConfigUpload struct {
	MaxBytes      int64   `yaml:"max_bytes"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	c.setDefaults()

	return &c, nil
}

func (c *Config) setDefaults() {
	if c.CfgCatalog.MaxPageSize <= 0 {
		c.CfgCatalog.MaxPageSize = 100
	}
	if c.CfgCatalog.FeaturedLimit <= 0 {
		c.CfgCatalog.FeaturedLimit = 3
	}
	if c.CfgUpload.MaxBytes <= 0 {
		c.CfgUpload.MaxBytes = 10 << 20
	}
	if c.CfgUpload.RatePerSecond <= 0 {
		c.CfgUpload.RatePerSecond = 1
	}
	if c.CfgUpload.Burst <= 0 {
		c.CfgUpload.Burst = 5
	}
	if c.ETLInterval <= 0 {
		c.ETLInterval = time.Minute
	}
	if c.SessionDuration <= 0 {
		c.SessionDuration = 24 * time.Hour
	}
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
}
