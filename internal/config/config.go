package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type BackofficeConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	BackofficeDB   `yaml:"backoffice_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	RedisCache     `yaml:"redis-cache"`
	Withdrawal     `yaml:"withdrawal"`
	MigrationsPath string `yaml:"migrations_path"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type BackofficeDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic"`
}

type RedisCache struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

type Withdrawal struct {
	MinAmount string `yaml:"min_amount"`
}

func MustLoad() *BackofficeConfig {

	// Processing env config variable and file
	configPath := os.Getenv("BACKOFFICE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("BACKOFFICE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg BackofficeConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
