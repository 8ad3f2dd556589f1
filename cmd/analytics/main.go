package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products/productclient"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/storage/flatfile"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/scheduler"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/analyzing"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/enriching"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/filtering"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/parsing"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/processing"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/reporting"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/validating"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/apperrors"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/utils"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	flagInput     string
	flagRegion    string
	flagMinAmount float64
	flagMaxAmount float64
	flagOutputDir string
)

var rootCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Sales Analytics System - pipeline de processamento de vendas",
	Long: `Sales Analytics System processa arquivos de transações de venda:
limpa e valida os registros, aplica filtros opcionais, calcula os agregados
analíticos, enriquece os dados com metadados de produto da API externa e
gera o relatório multi-seção e o arquivo de dados enriquecidos.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa o pipeline uma vez",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runner := buildRunner(cfg)

		result, err := runner.Run(context.Background())
		if err != nil {
			exitWithError(err)
		}

		if result.NoData {
			logrus.Warn("Nenhuma transação restou após os filtros; relatório não gerado")
			os.Exit(apperrors.ExitCode(apperrors.ErrEmptyDataset))
		}

		logrus.WithFields(logrus.Fields{
			"run_id":        result.RunID,
			"lines_read":    result.LinesRead,
			"accepted":      result.Accepted,
			"rejected":      result.Rejections.Total(),
			"filtered":      result.Filtered,
			"total_revenue": fmt.Sprintf("%.2f", result.Report.TotalRevenue),
		}).Info("Pipeline concluído com sucesso")

		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			logrus.Debug("Resumo do enriquecimento:\n", utils.PrettyJson(result.Enrichment))
		}
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Executa o pipeline periodicamente conforme o cron configurado",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runner := buildRunner(cfg)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		syncService := scheduler.NewPipelineSyncService(runner, cfg)
		if err := syncService.Start(ctx); err != nil {
			logrus.WithError(err).Fatal("Erro ao iniciar o agendador do pipeline")
		}

		<-ctx.Done()
		logrus.Info("Agendador do pipeline encerrado")
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lista o catálogo de produtos da API de enriquecimento",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		client := productclient.NewClient(cfg)

		productList, err := client.ListProducts(cfg.ProductsAPI.Limit)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao listar o catálogo de produtos")
		}

		fmt.Println(utils.PrettyJson(productList))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão da aplicação",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sales-analytics-system v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagInput, "input", "", "arquivo de vendas de entrada (sobrepõe INPUT_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "filtra por região (sobrepõe FILTER_REGION)")
	rootCmd.PersistentFlags().Float64Var(&flagMinAmount, "min-amount", 0, "valor mínimo da transação (sobrepõe FILTER_MIN_AMOUNT)")
	rootCmd.PersistentFlags().Float64Var(&flagMaxAmount, "max-amount", 0, "valor máximo da transação (sobrepõe FILTER_MAX_AMOUNT)")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "", "diretório das saídas (sobrepõe OUTPUT_DIR)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	configureLogger()

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func loadConfig() *config.Config {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Flags de linha de comando sobrepõem a configuração
	if flagInput != "" {
		cfg.Input.Path = flagInput
	}
	if flagRegion != "" {
		cfg.Filter.Region = flagRegion
	}
	if flagMinAmount > 0 {
		cfg.Filter.MinAmount = flagMinAmount
	}
	if flagMaxAmount > 0 {
		cfg.Filter.MaxAmount = flagMaxAmount
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}

	return cfg
}

// buildRunner monta o pipeline completo com suas dependências
func buildRunner(cfg *config.Config) processing.Runner {
	storage := flatfile.NewStorage(cfg)

	productsClient := productclient.NewClient(cfg)
	productsIntegrator := products.New(cfg, productsClient)

	return processing.NewService(
		cfg,
		storage,
		parsing.NewService(cfg),
		validating.NewService(),
		filtering.NewService(),
		analyzing.NewService(cfg),
		enriching.NewService(productsIntegrator),
		reporting.NewService(cfg),
	)
}

func exitWithError(err error) {
	var appErr apperrors.AppError
	if errors.As(err, &appErr) {
		logrus.WithField("code", appErr.Code).Error(appErr.Message)
		os.Exit(apperrors.ExitCode(appErr.Code))
	}

	logrus.Error(err)
	os.Exit(1)
}
