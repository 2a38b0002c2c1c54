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
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Import       Import       `mapstructure:",squash"`
	FolderImport FolderImport `mapstructure:",squash"`
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
	Path     string `mapstructure:"database_path"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Import agrupa os parâmetros do pipeline de importação de analytics
type Import struct {
	DefaultYear     int     `mapstructure:"import_default_year"`
	DefaultArtist   string  `mapstructure:"import_default_artist"`
	Distributor     string  `mapstructure:"import_distributor"`
	Territory       string  `mapstructure:"import_territory"`
	UploadDir       string  `mapstructure:"import_upload_dir"`
	RevenueOnUpdate string  `mapstructure:"import_revenue_on_update"`
	UnknownMonth    string  `mapstructure:"import_unknown_month"`
	FallbackMonth   int     `mapstructure:"import_fallback_month"`
	DefaultRate     float64 `mapstructure:"import_default_rate"`
	RatesFile       string  `mapstructure:"import_rates_file"`
}

type FolderImport struct {
	CronSchedule string `mapstructure:"folder_import_cron"`
	Enabled      bool   `mapstructure:"folder_import_enabled"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/analytics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_PATH", "data/music_distribution.db") // usado apenas com sqlite

	// Defaults do pipeline de importação
	viper.SetDefault("IMPORT_DEFAULT_YEAR", 2024)         // Ano aplicado às colunas "8 set", "9 set"...
	viper.SetDefault("IMPORT_DEFAULT_ARTIST", "AllMark")  // Artista quando nenhum é informado
	viper.SetDefault("IMPORT_DISTRIBUTOR", "general")     // Rótulo gravado no histórico
	viper.SetDefault("IMPORT_TERRITORY", "Global")        // Território dos registros
	viper.SetDefault("IMPORT_UPLOAD_DIR", "data/uploads") // Pasta monitorada pelo agendador
	viper.SetDefault("IMPORT_REVENUE_ON_UPDATE", "keep")  // keep | recompute
	viper.SetDefault("IMPORT_UNKNOWN_MONTH", "fallback")  // fallback | strict
	viper.SetDefault("IMPORT_FALLBACK_MONTH", 9)          // Setembro
	viper.SetDefault("IMPORT_DEFAULT_RATE", 0.003)        // USD por stream para DSPs sem tarifa
	viper.SetDefault("IMPORT_RATES_FILE", "")             // YAML opcional com a tabela de tarifas

	viper.SetDefault("FOLDER_IMPORT_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("FOLDER_IMPORT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = buildDSN(config.Database)

	return config, nil
}

// Validate verifica os valores que não podem ser corrigidos silenciosamente
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: driver de banco não suportado: %s", c.Database.Driver)
	}

	switch c.Import.RevenueOnUpdate {
	case "keep", "recompute":
	default:
		return fmt.Errorf("config: IMPORT_REVENUE_ON_UPDATE inválido: %s", c.Import.RevenueOnUpdate)
	}

	switch c.Import.UnknownMonth {
	case "fallback", "strict":
	default:
		return fmt.Errorf("config: IMPORT_UNKNOWN_MONTH inválido: %s", c.Import.UnknownMonth)
	}

	if c.Import.FallbackMonth < 1 || c.Import.FallbackMonth > 12 {
		return fmt.Errorf("config: IMPORT_FALLBACK_MONTH fora do intervalo 1-12: %d", c.Import.FallbackMonth)
	}

	if c.Import.DefaultRate < 0 {
		return fmt.Errorf("config: IMPORT_DEFAULT_RATE não pode ser negativo")
	}

	return nil
}

func buildDSN(db Database) string {
	if db.Driver == DriverSQLite {
		return db.Path
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
