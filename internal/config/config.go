package config

import "github.com/spf13/viper"

type Config struct {
	DBPath  string
	LogFile string
}

// Load reads configuration from the environment. The database path
// may still be overridden by the positional CLI argument.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("chirp")
	v.AutomaticEnv()
	v.SetDefault("db", "./chirp.db")
	v.SetDefault("log", "")

	return Config{
		DBPath:  v.GetString("db"),
		LogFile: v.GetString("log"),
	}
}
