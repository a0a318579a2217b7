package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // pethosting
	Version   string `yaml:"version"`   // v1.0.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Chat struct {
	HistoryLimit  int `yaml:"historyLimit"`  // дефолтный limit истории
	MaxContentLen int `yaml:"maxContentLen"` // максимальная длина сообщения
}

type Security struct {
	BcryptCost        int `yaml:"bcryptCost"`
	PasswordMinLength int `yaml:"passwordMinLength"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Chat     Chat     `yaml:"chat"`
	Security Security `yaml:"security"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	// дефолты, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "pethosting"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v1.0.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Chat.HistoryLimit <= 0 {
		c.Chat.HistoryLimit = 4000
	}
	if c.Chat.MaxContentLen <= 0 {
		c.Chat.MaxContentLen = 4000
	}
	return nil
}
