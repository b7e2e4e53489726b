// Package config loads the settings of the colexpr tool.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "COLEXPR"

type LogConfig struct {
	Path          string
	BufferSize    int
	FlushInterval time.Duration
	Verbose       bool
	Level         string
}

type ExecConfig struct {
	// BatchSize is the number of CSV rows read into one record.
	BatchSize     int
	CheckOverflow bool
}

type Config struct {
	Log  LogConfig
	Exec ExecConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.path", "")
	v.SetDefault("log.buffer_size", 4096)
	v.SetDefault("log.flush_interval", time.Second)
	v.SetDefault("log.verbose", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("exec.batch_size", 1024)
	v.SetDefault("exec.check_overflow", true)
}

// Load reads the YAML file at path when path is not empty, then applies
// COLEXPR_* environment variables such as COLEXPR_EXEC_BATCH_SIZE.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	conf := &Config{
		Log: LogConfig{
			Path:          v.GetString("log.path"),
			BufferSize:    v.GetInt("log.buffer_size"),
			FlushInterval: v.GetDuration("log.flush_interval"),
			Verbose:       v.GetBool("log.verbose"),
			Level:         v.GetString("log.level"),
		},
		Exec: ExecConfig{
			BatchSize:     v.GetInt("exec.batch_size"),
			CheckOverflow: v.GetBool("exec.check_overflow"),
		},
	}
	return conf, conf.validate()
}

func (conf *Config) validate() error {
	if conf.Exec.BatchSize <= 0 {
		return errors.New(fmt.Sprintf("exec.batch_size must be positive, got %d", conf.Exec.BatchSize))
	}
	if conf.Log.BufferSize < 0 {
		return errors.New(fmt.Sprintf("log.buffer_size must not be negative, got %d", conf.Log.BufferSize))
	}
	return nil
}
