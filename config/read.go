package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alijeyrad/trialbook_backend/pkg/constants"
)

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	setDefaults(v)

	// Allow env vars to override config values.
	// e.g. TRIALBOOK_NLU_RASA_URL overrides nlu.rasa.url
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; defaults plus env vars are enough to boot the demo.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}

	GlobalConf = config

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000", "http://localhost:3001"})
	v.SetDefault("server.cors.allow_credentials", true)
	v.SetDefault("server.chat_rate_limit.requests_per_minute", 60)

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.seed", true)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.dbname", "trialbook")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("dialogue.session_store", SessionStoreMemory)
	v.SetDefault("dialogue.session_ttl_minutes", 30)

	v.SetDefault("nlu.provider", NLUProviderRasa)
	v.SetDefault("nlu.rasa.url", "http://localhost:5005")
	v.SetDefault("nlu.rasa.timeout_seconds", 10)
	v.SetDefault("nlu.gemini.model", "gemini-2.0-flash")
	v.SetDefault("nlu.gemini.timeout_seconds", 20)

	v.SetDefault("sms.default_region", "US")

	v.SetDefault("observability.service_name", constants.ServiceName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
}
