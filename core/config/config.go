package config

import (
	"reflect"
	"strings"

	"fleet-report/core/fleetapi"
	"fleet-report/core/logger"
	"fleet-report/core/output"
	"fleet-report/core/server"
	"fleet-report/core/storage"
	"fleet-report/core/warehouse"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Fleet holds the fleet API endpoint and pipeline settings.
	Fleet fleetapi.Config `mapstructure:"fleet"`
	// Warehouse holds the position warehouse connection.
	Warehouse warehouse.Config `mapstructure:"warehouse"`
	// Report selects where generated workbooks are written.
	Report output.Config `mapstructure:"report"`
	// Storage holds the object storage used by the s3 report sink.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and a .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FLEET_URL -> fleet.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key with its
// `default` tag so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
