package logger

import (
	"log/slog"
	"os"
	"strings"
)

type Backend string

const (
	BackendStd Backend = "std" // текстовый handler стандартной библиотеки
	BackendZap Backend = "zap" // JSON через slog-zap
)

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	// метаданные
	Service    string
	Version    string
	InstanceID string

	// вывод
	Level   slog.Level
	Env     Env
	Backend Backend
	Debug   bool

	// сэмплирование zap-ядра при всплесках
	SampleInitial    int
	SampleThereafter int

	AddSource bool
}

func DetectEnv() Env {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case "prod", "production":
		return EnvProd
	default:
		return EnvDev
	}
}
