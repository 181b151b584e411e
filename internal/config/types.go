package config

import "time"

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

type Model struct {
	Path          string        `mapstructure:"path" yaml:"path"`
	Backend       string        `mapstructure:"backend" yaml:"backend"`
	Endpoint      string        `mapstructure:"endpoint" yaml:"endpoint"`
	HealthTimeout time.Duration `mapstructure:"healthTimeout" yaml:"healthTimeout"`
}

type Gateway struct {
	Port         string `mapstructure:"port" yaml:"port"`
	Stage        string `mapstructure:"stage" yaml:"stage"`
	FunctionName string `mapstructure:"functionName" yaml:"functionName"`
}

type Server struct {
	Name         string            `mapstructure:"name" yaml:"name"`
	Image        string            `mapstructure:"image" yaml:"image"`
	Architecture string            `mapstructure:"architecture" yaml:"architecture"`
	Port         string            `mapstructure:"port" yaml:"port"`
	Cmd          []string          `mapstructure:"cmd" yaml:"cmd"`
	Environment  map[string]string `mapstructure:"environment" yaml:"environment"`
}

type Config struct {
	LogLevel string  `mapstructure:"logLevel" yaml:"logLevel"`
	Model    Model   `mapstructure:"model" yaml:"model"`
	Gateway  Gateway `mapstructure:"gateway" yaml:"gateway"`
	Server   Server  `mapstructure:"server" yaml:"server"`
}
