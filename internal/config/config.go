package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//PEGCommandEnv overrides the configured PEG command when set.
const PEGCommandEnv = "LDPC_PEG_COMMAND"

type PEG struct {
	Command string        `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
	Dir     string        `yaml:"dir"`
}

//Config holds the settings shared by the create commands.
type Config struct {
	PEG     PEG   `yaml:"peg"`
	Seed    int64 `yaml:"seed"`    // 0 means seed from the clock
	Threads int   `yaml:"threads"` // 0 means use the number of cpus

	// EnvFile is a dotenv file consulted for PEGCommandEnv before the process environment.
	EnvFile string `yaml:"env_file"`
}

//Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		PEG: PEG{
			Command: "MainPEG",
			Timeout: 5 * time.Minute,
		},
	}
}

//Load reads the YAML file at path on top of Default. An empty path only applies
// defaults and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error while reading config %v: %w", path, err)
		}
		if err := yaml.Unmarshal(bs, cfg); err != nil {
			return nil, fmt.Errorf("error while parsing config %v: %w", path, err)
		}
	}

	if cfg.EnvFile != "" {
		vars, err := godotenv.Read(cfg.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("error while reading env file %v: %w", cfg.EnvFile, err)
		}
		if cmd := vars[PEGCommandEnv]; cmd != "" {
			cfg.PEG.Command = cmd
		}
	}
	if cmd := os.Getenv(PEGCommandEnv); cmd != "" {
		cfg.PEG.Command = cmd
	}

	if cfg.PEG.Timeout < 0 {
		return nil, fmt.Errorf("peg timeout must not be negative: %v", cfg.PEG.Timeout)
	}
	if cfg.Threads < 0 {
		return nil, fmt.Errorf("threads must not be negative: %v", cfg.Threads)
	}
	return cfg, nil
}
