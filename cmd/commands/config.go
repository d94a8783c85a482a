package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Benchmark string      `mapstructure:"benchmark"`
	Systems   string      `mapstructure:"systems"`
	Datasets  string      `mapstructure:"datasets"`
	Languages string      `mapstructure:"languages"`
	Output    string      `mapstructure:"output"`
	Format    string      `mapstructure:"format"`
	ByCreator bool        `mapstructure:"by_creator"`
	Workers   int         `mapstructure:"workers"`
	Snapshot  string      `mapstructure:"snapshot_dir"`
	Cache     CacheConfig `mapstructure:"cache"`
}

type CacheConfig struct {
	Dir        string `mapstructure:"dir"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".globalbench")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
