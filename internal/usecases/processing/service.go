package processing

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/storage/flatfile"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/analyzing"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/enriching"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/filtering"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/parsing"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/reporting"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/validating"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/apperrors"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/log"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/utils"
)

// RunResult é o resultado consolidado de uma execução completa do pipeline.
type RunResult struct {
	RunID      string
	LinesRead  int
	Accepted   int
	Rejections domain.RejectionSummary
	Filtered   int
	// NoData indica que o conjunto filtrado ficou vazio: nenhum relatório é
	// gerado e nenhum agregado zerado é fabricado.
	NoData     bool
	Report     *domain.AnalyticsReport
	Enriched   []*domain.EnrichedTransaction
	Enrichment *domain.EnrichmentSummary
}

// Runner executa o pipeline completo de ponta a ponta.
type Runner interface {
	Run(ctx context.Context) (*RunResult, error)
}

// Service orquestra leitura, parse, validação, filtro, análise, enriquecimento
// e gravação das saídas. Cada etapa consome um retrato imutável e devolve um
// resultado novo.
type Service struct {
	cfg       *config.Config
	storage   flatfile.Storage
	parser    parsing.Parser
	validator validating.Validator
	filterer  filtering.Filterer
	analyzer  analyzing.Analyzer
	enricher  enriching.Enricher
	reporter  reporting.Reporter
}

func NewService(
	cfg *config.Config,
	storage flatfile.Storage,
	parser parsing.Parser,
	validator validating.Validator,
	filterer filtering.Filterer,
	analyzer analyzing.Analyzer,
	enricher enriching.Enricher,
	reporter reporting.Reporter,
) Runner {
	return &Service{
		cfg:       cfg,
		storage:   storage,
		parser:    parser,
		validator: validator,
		filterer:  filterer,
		analyzer:  analyzer,
		enricher:  enricher,
		reporter:  reporter,
	}
}

func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, apperrors.FromError(err, apperrors.ErrInternal)
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)
	startedAt := time.Now()

	result := &RunResult{
		RunID:      runID,
		Rejections: make(domain.RejectionSummary),
	}

	// Leitura
	lines, err := s.storage.ReadLines(s.cfg.Input.Path)
	if err != nil {
		code := apperrors.ErrFileEncoding
		if os.IsNotExist(errors.Cause(err)) {
			code = apperrors.ErrFileNotFound
		}
		return nil, apperrors.FromError(err, code)
	}
	result.LinesRead = len(lines)

	if len(lines) == 0 {
		return nil, apperrors.AppError{
			Code:    apperrors.ErrFileEmpty,
			Message: "arquivo de entrada sem registros",
			Details: s.cfg.Input.Path,
		}
	}

	logger.WithFields(log.Fields{
		"stage":   "read",
		"file":    s.cfg.Input.Path,
		"records": len(lines),
	}).Info("Arquivo de vendas lido")

	// Parse + validação: erros de parse e rejeições de validação alimentam o
	// mesmo resumo, cada registro com exatamente um motivo
	accepted := make([]*domain.Transaction, 0, len(lines))
	for _, line := range lines {
		transaction, parseErr := s.parser.ParseLine(line)
		if parseErr != nil {
			result.Rejections.Add(domain.ReasonParseError)
			logger.WithError(parseErr).WithField("stage", "parse").Debug("Linha descartada")
			continue
		}

		validation := s.validator.Validate(transaction, line)
		if !validation.Accepted() {
			result.Rejections.Add(validation.Reason)
			continue
		}

		accepted = append(accepted, validation.Transaction)
	}
	result.Accepted = len(accepted)

	logger.WithFields(log.Fields{
		"stage":          "validate",
		"records":        result.Accepted,
		"rejected_total": result.Rejections.Total(),
	}).Info("Transações validadas")

	// Filtro
	filtered := s.filterer.Apply(accepted, filtering.FromConfig(s.cfg.Filter))
	result.Filtered = len(filtered)

	// Análise: conjunto vazio é um desfecho explícito de "sem dados", nunca
	// um relatório com agregados zerados
	report, err := s.analyzer.Analyze(filtered)
	if err != nil {
		if errors.Is(err, analyzing.ErrEmptyDataset) {
			result.NoData = true
			logger.WithField("stage", "analyze").
				Warn("Nenhuma transação após os filtros, relatório não será gerado")
			return result, nil
		}
		return nil, apperrors.FromError(err, apperrors.ErrInternal)
	}
	result.Report = report

	// Enriquecimento
	result.Enriched, result.Enrichment = s.enricher.Enrich(filtered)

	// Saídas
	if err := s.writeOutputs(result); err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"stage":       "done",
		"records":     result.Filtered,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}).Info("Execução do pipeline concluída")

	return result, nil
}

func (s *Service) writeOutputs(result *RunResult) error {
	enrichedPath := filepath.Join(s.cfg.Output.Dir, s.cfg.Output.EnrichedFile)
	enrichedContent := flatfile.RenderEnriched(result.Enriched, s.cfg.Input.Delimiter)
	if err := s.storage.WriteText(enrichedPath, enrichedContent); err != nil {
		return apperrors.FromError(err, apperrors.ErrEnrichedWrite)
	}

	reportPath := filepath.Join(s.cfg.Output.Dir, s.cfg.Output.ReportFile)
	reportContent := s.reporter.RenderText(result.Report, result.Enrichment, time.Now())
	if err := s.storage.WriteText(reportPath, reportContent); err != nil {
		return apperrors.FromError(err, apperrors.ErrReportWrite)
	}

	jsonContent, err := s.reporter.RenderJSON(result.Report, result.Enrichment)
	if err != nil {
		return apperrors.FromError(err, apperrors.ErrReportWrite)
	}

	jsonPath := filepath.Join(s.cfg.Output.Dir, s.cfg.Output.JSONReportFile)
	if err := s.storage.WriteText(jsonPath, jsonContent); err != nil {
		return apperrors.FromError(err, apperrors.ErrReportWrite)
	}

	return nil
}
