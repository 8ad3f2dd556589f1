package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Input        Input        `mapstructure:",squash"`
	Filter       Filter       `mapstructure:",squash"`
	ProductsAPI  ProductsAPI  `mapstructure:",squash"`
	Output       Output       `mapstructure:",squash"`
	Analysis     Analysis     `mapstructure:",squash"`
	PipelineSync PipelineSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Input struct {
	Path      string `mapstructure:"input_path"`
	Delimiter string `mapstructure:"input_delimiter"`
	HasHeader bool   `mapstructure:"input_has_header"`
}

// Filter carrega os filtros opcionais da execução. Zero significa filtro ausente:
// região vazia não filtra e valores de corte 0 não se aplicam (toda transação
// válida tem receita positiva).
type Filter struct {
	Region    string  `mapstructure:"filter_region"`
	MinAmount float64 `mapstructure:"filter_min_amount"`
	MaxAmount float64 `mapstructure:"filter_max_amount"`
}

type ProductsAPI struct {
	BaseURL        string `mapstructure:"products_api_url"`
	Limit          int    `mapstructure:"products_api_limit"`
	TimeoutSeconds int    `mapstructure:"products_api_timeout_seconds"`
	MaxRetries     int    `mapstructure:"products_api_max_retries"`
}

type Output struct {
	Dir            string `mapstructure:"output_dir"`
	EnrichedFile   string `mapstructure:"output_enriched_file"`
	ReportFile     string `mapstructure:"output_report_file"`
	JSONReportFile string `mapstructure:"output_json_report_file"`
}

type Analysis struct {
	TopRankingSize      int     `mapstructure:"top_ranking_size"`
	LowPerformanceRatio float64 `mapstructure:"low_performance_ratio"`
	CurrencySymbol      string  `mapstructure:"currency_symbol"`
}

type PipelineSync struct {
	CronSchedule string `mapstructure:"pipeline_sync_cron"`
	Enabled      bool   `mapstructure:"pipeline_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("INPUT_PATH", "data/sales_data.txt")
	viper.SetDefault("INPUT_DELIMITER", ",")
	viper.SetDefault("INPUT_HAS_HEADER", true)

	viper.SetDefault("FILTER_REGION", "")
	viper.SetDefault("FILTER_MIN_AMOUNT", 0.0)
	viper.SetDefault("FILTER_MAX_AMOUNT", 0.0)

	viper.SetDefault("PRODUCTS_API_URL", "https://dummyjson.com")
	viper.SetDefault("PRODUCTS_API_LIMIT", 100)
	viper.SetDefault("PRODUCTS_API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PRODUCTS_API_MAX_RETRIES", 2)

	viper.SetDefault("OUTPUT_DIR", "output")
	viper.SetDefault("OUTPUT_ENRICHED_FILE", "enriched_sales_data.txt")
	viper.SetDefault("OUTPUT_REPORT_FILE", "sales_report.txt")
	viper.SetDefault("OUTPUT_JSON_REPORT_FILE", "sales_report.json")

	viper.SetDefault("TOP_RANKING_SIZE", 5)
	viper.SetDefault("LOW_PERFORMANCE_RATIO", 0.5)
	viper.SetDefault("CURRENCY_SYMBOL", "₹")

	// Defaults para execução agendada do pipeline
	viper.SetDefault("PIPELINE_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("PIPELINE_SYNC_ENABLED", false)
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
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando defaults e variáveis de ambiente")
}
