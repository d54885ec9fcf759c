package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"cmdprobe/internal/shared/types"
)

const (
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultCommand    = "your_custom_command"
	DefaultBufferSize = 1024
	DefaultLogLevel   = "info"
)

// Default returns the configuration used when no ini file is present.
func Default() *types.Config {
	return &types.Config{
		ClientConf: types.ClientConf{
			Host:       DefaultHost,
			Port:       DefaultPort,
			Command:    DefaultCommand,
			BufferSize: DefaultBufferSize,
		},
		LogConf: types.LogConf{
			Level: DefaultLogLevel,
		},
	}
}

// LoadIni 在 cfg 的现有值之上叠加 ini 文件和环境变量。
// 文件不存在时不报错，只应用环境变量。空值的键保留原有值。
// 不做校验：调用方在应用完所有覆盖项之后再调用 Validate。
func LoadIni(cfg *types.Config, fileName string) error {
	if fileName != "" {
		iniFile, err := ini.Load(fileName)
		switch {
		case err == nil:
			if err := iniFile.MapTo(cfg); err != nil {
				return fmt.Errorf("failed to map %s: %w", fileName, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return err
		}
	}
	overrideFromEnvString(&cfg.ClientConf.Host, "CMDPROBE_HOST")
	overrideFromEnvInt(&cfg.ClientConf.Port, "CMDPROBE_PORT")
	overrideFromEnvString(&cfg.ClientConf.Command, "CMDPROBE_COMMAND")
	return nil
}

// Validate rejects values the client cannot work with.
func Validate(cfg *types.Config) error {
	c := cfg.ClientConf
	if c.Host == "" {
		return errors.New("client.host must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("client.port out of range: %d", c.Port)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("client.buffer_size must be positive: %d", c.BufferSize)
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("client.dial_timeout must not be negative: %d", c.DialTimeout)
	}
	return nil
}

func overrideFromEnvString(target *string, envName string) {
	if envValue := os.Getenv(envName); envValue != "" {
		*target = envValue
	}
}

func overrideFromEnvInt(target *int, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if intValue, err := strconv.Atoi(envValue); err == nil {
			*target = intValue
		}
	}
}
