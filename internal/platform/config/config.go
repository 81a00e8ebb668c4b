package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa todo lo que el servicio lee del entorno (y opcionalmente de .env).
type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Backend REST (OpenMRS). BaseURL incluye el prefijo /ws/rest/v1.
	OpenMRSBaseURL        string        `mapstructure:"OPENMRS_BASE_URL"`
	OpenMRSUsername       string        `mapstructure:"OPENMRS_USERNAME"`
	OpenMRSPassword       string        `mapstructure:"OPENMRS_PASSWORD"`
	OpenMRSTimeout        time.Duration `mapstructure:"OPENMRS_TIMEOUT"`
	OpenMRSRateLimitRPS   float64       `mapstructure:"OPENMRS_RATE_LIMIT_RPS"`
	OpenMRSRateLimitBurst int           `mapstructure:"OPENMRS_RATE_LIMIT_BURST"`

	EncounterRepresentation   string `mapstructure:"ENCOUNTER_REPRESENTATION"`
	FollowupEncounterTypeUUID string `mapstructure:"FOLLOWUP_ENCOUNTER_TYPE_UUID"`

	DefaultPageSize int `mapstructure:"DEFAULT_PAGE_SIZE"`

	// Instancias de widgets sin uso por más de esto se desmontan solas.
	WidgetIdleTimeout time.Duration `mapstructure:"WIDGET_IDLE_TIMEOUT"`

	// Opcional: si viene, el access log va a Postgres. Si no, in-memory.
	DBDSN string `mapstructure:"DB_DSN"`
}

const DefaultEncounterRepresentation = "custom:(uuid,encounterDatetime,encounterType:(uuid,display),location:(uuid,display),patient:(uuid,display),obs:(uuid,obsDatetime,concept:(uuid,display),value))"

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"OPENMRS_BASE_URL", "OPENMRS_USERNAME", "OPENMRS_PASSWORD", "OPENMRS_TIMEOUT",
	"OPENMRS_RATE_LIMIT_RPS", "OPENMRS_RATE_LIMIT_BURST",
	"ENCOUNTER_REPRESENTATION", "FOLLOWUP_ENCOUNTER_TYPE_UUID",
	"DEFAULT_PAGE_SIZE", "WIDGET_IDLE_TIMEOUT", "DB_DSN",
}

// Load lee env vars y, si existe, un archivo .env en el directorio actual.
func Load() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "patient-summary")
	v.SetDefault("OPENMRS_BASE_URL", "http://localhost:8080/openmrs/ws/rest/v1")
	v.SetDefault("OPENMRS_TIMEOUT", "10s")
	v.SetDefault("OPENMRS_RATE_LIMIT_RPS", 0)
	v.SetDefault("OPENMRS_RATE_LIMIT_BURST", 10)
	v.SetDefault("ENCOUNTER_REPRESENTATION", DefaultEncounterRepresentation)
	v.SetDefault("FOLLOWUP_ENCOUNTER_TYPE_UUID", "136b2ded-22a3-4831-a39a-088d35a50ef5")
	v.SetDefault("DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("WIDGET_IDLE_TIMEOUT", "30m")

	// Bind explícito para que Unmarshal vea las env vars sin default.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional, pero si existe tiene que parsear
	if envFile != "" {
		if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func missingConfig(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &nf)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.OpenMRSBaseURL) == "" {
		return fmt.Errorf("OPENMRS_BASE_URL is required")
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.WidgetIdleTimeout < 0 {
		return fmt.Errorf("WIDGET_IDLE_TIMEOUT must not be negative")
	}
	if c.OpenMRSRateLimitRPS < 0 {
		return fmt.Errorf("OPENMRS_RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Addr devuelve la dirección de escucha del servidor HTTP.
func (c *Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}
