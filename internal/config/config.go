package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Amazon     Amazon     `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	ReportSync ReportSync `mapstructure:",squash"`
	Insights   Insights   `mapstructure:",squash"`
	SecretKey  string     `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Amazon struct {
	BaseURL      string `mapstructure:"amazon_base_url"`
	TokenURL     string `mapstructure:"amazon_token_url"`
	ClientID     string `mapstructure:"amazon_client_id"`
	ClientSecret string `mapstructure:"amazon_client_secret"`
	RefreshToken string `mapstructure:"amazon_refresh_token"`
	ProfileID    string `mapstructure:"amazon_profile_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type ReportSync struct {
	CronSchedule        string `mapstructure:"report_sync_cron"`
	MaxRetries          int    `mapstructure:"report_sync_max_retries"`
	InitialBackoffSecs  int    `mapstructure:"report_sync_initial_backoff_seconds"`
	IngestionBatchSize  int    `mapstructure:"report_sync_ingestion_batch_size"`
	RequestDelaySeconds int    `mapstructure:"report_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"report_sync_enabled"`
}

type Insights struct {
	CacheTTLMinutes    int `mapstructure:"insights_cache_ttl_minutes"`
	FallbackWindowDays int `mapstructure:"insights_fallback_window_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_performance")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AMAZON_BASE_URL", "https://advertising-api.amazon.com")
	viper.SetDefault("AMAZON_TOKEN_URL", "https://api.amazon.com/auth/o2/token")
	viper.SetDefault("AMAZON_CLIENT_ID", "your_client_id")
	viper.SetDefault("AMAZON_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("AMAZON_REFRESH_TOKEN", "your_refresh_token")
	viper.SetDefault("AMAZON_PROFILE_ID", "")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Defaults do pipeline de relatórios
	viper.SetDefault("REPORT_SYNC_CRON", "*/10 * * * *")         // A cada 10 minutos
	viper.SetDefault("REPORT_SYNC_MAX_RETRIES", 3)               // 3 tentativas de geração
	viper.SetDefault("REPORT_SYNC_INITIAL_BACKOFF_SECONDS", 5)   // Backoff inicial de 5s (5 * 2^tentativa)
	viper.SetDefault("REPORT_SYNC_INGESTION_BATCH_SIZE", 100)    // ~100 datas agrupadas por flush
	viper.SetDefault("REPORT_SYNC_REQUEST_DELAY_SECONDS", 2)     // 2 segundos entre requisições
	viper.SetDefault("REPORT_SYNC_ENABLED", false)               // Habilitar polling de relatórios

	viper.SetDefault("INSIGHTS_CACHE_TTL_MINUTES", 10)  // TTL do cache de agregações
	viper.SetDefault("INSIGHTS_FALLBACK_WINDOW_DAYS", 30)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
