package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Persistence     Persistence     `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Metrics         Metrics         `mapstructure:",squash"`
	CustomerSync    CustomerSync    `mapstructure:",squash"`
	MRRSnapshotSync MRRSnapshotSync `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns       int `mapstructure:"database_max_open_conns"`
	MaxIdleConns       int `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetimeMin int `mapstructure:"database_conn_max_lifetime_minutes"`
}

// Persistence aponta para o serviço externo que guarda os clientes
type Persistence struct {
	URL            string `mapstructure:"persistence_url"`
	Token          string `mapstructure:"persistence_token"`
	TimeoutSeconds int    `mapstructure:"persistence_timeout_seconds"`
}

func (p Persistence) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type Auth struct {
	Secret        string `mapstructure:"auth_secret"`
	TokenTTLHours int    `mapstructure:"auth_token_ttl_hours"`
}

// Metrics reúne as constantes de negócio usadas no painel
type Metrics struct {
	SalesTeamCost          float64 `mapstructure:"metrics_sales_team_cost"`
	RetentionHorizonMonths int     `mapstructure:"metrics_retention_horizon_months"`
	ConversionValue        float64 `mapstructure:"metrics_conversion_value"`
	ForecastMode           string  `mapstructure:"metrics_forecast_mode"`
	ForecastSeed           int64   `mapstructure:"metrics_forecast_seed"`
	MovementMode           string  `mapstructure:"metrics_movement_mode"`
}

type CustomerSync struct {
	CronSchedule string `mapstructure:"customer_sync_cron"`
	Enabled      bool   `mapstructure:"customer_sync_enabled"`
}

type MRRSnapshotSync struct {
	CronSchedule string `mapstructure:"mrr_snapshot_sync_cron"`
	Enabled      bool   `mapstructure:"mrr_snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/saas_metrics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME_MINUTES", 30)

	viper.SetDefault("PERSISTENCE_URL", "http://localhost:3000/api")
	viper.SetDefault("PERSISTENCE_TOKEN", "")
	viper.SetDefault("PERSISTENCE_TIMEOUT_SECONDS", 15)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("METRICS_SALES_TEAM_COST", 450000)      // custo fixo mensal do time de vendas (¥)
	viper.SetDefault("METRICS_RETENTION_HORIZON_MONTHS", 24) // horizonte usado no LTV
	viper.SetDefault("METRICS_CONVERSION_VALUE", 25000)      // receita atribuída a cada conversão
	viper.SetDefault("METRICS_FORECAST_MODE", "trailing")    // trailing | seeded
	viper.SetDefault("METRICS_FORECAST_SEED", 42)
	viper.SetDefault("METRICS_MOVEMENT_MODE", "diff") // diff | fixed

	viper.SetDefault("CUSTOMER_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("CUSTOMER_SYNC_ENABLED", true)

	viper.SetDefault("MRR_SNAPSHOT_SYNC_CRON", "55 23 * * *") // Todos os dias às 23h55
	viper.SetDefault("MRR_SNAPSHOT_SYNC_ENABLED", true)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) validate() error {
	switch c.Metrics.ForecastMode {
	case "trailing", "seeded":
	default:
		return fmt.Errorf("config: METRICS_FORECAST_MODE inválido: %q", c.Metrics.ForecastMode)
	}

	switch c.Metrics.MovementMode {
	case "diff", "fixed":
	default:
		return fmt.Errorf("config: METRICS_MOVEMENT_MODE inválido: %q", c.Metrics.MovementMode)
	}

	if c.Metrics.RetentionHorizonMonths < 0 {
		return fmt.Errorf("config: METRICS_RETENTION_HORIZON_MONTHS não pode ser negativo")
	}

	return nil
}

// loadEnvFile procura o .env em algumas localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
