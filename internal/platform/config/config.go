package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the users service.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"` // json or text

	UsersServiceHTTPPort       int `mapstructure:"USERS_SERVICE_HTTP_PORT"`
	UsersServiceMetricsPort    int `mapstructure:"USERS_SERVICE_METRICS_PORT"`
	UsersServiceGRPCHealthPort int `mapstructure:"USERS_SERVICE_GRPC_HEALTH_PORT"` // 0 disables the gRPC health listener

	HTTPRequestTimeout time.Duration `mapstructure:"HTTP_REQUEST_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads config.defaults.yaml from the usual config directories, then
// applies APP_-prefixed environment variables. A .env file in the working
// directory is loaded first if present. serviceName is only used for logging.
func Load(serviceName string) (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")        // repo root
	v.AddConfigPath("../configs")       // cmd/
	v.AddConfigPath("../../configs")    // cmd/users_service
	v.AddConfigPath("../../../configs") // tests within internal/<pkg>/<subpkg>
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_LOG_LEVEL, APP_USERS_SERVICE_HTTP_PORT etc.

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Printf("%s: base configuration file ('config.defaults.yaml') not found; using defaults and environment variables.", serviceName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every known key so that AutomaticEnv can resolve it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("USERS_SERVICE_HTTP_PORT", 8080)
	v.SetDefault("USERS_SERVICE_METRICS_PORT", 9095)
	v.SetDefault("USERS_SERVICE_GRPC_HEALTH_PORT", 50055)

	v.SetDefault("HTTP_REQUEST_TIMEOUT", "60s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}
