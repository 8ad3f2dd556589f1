// Package scheduler contém o agendamento de execuções periódicas do pipeline
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/processing"
)

type PipelineSyncConfig struct {
	CronSchedule string
	Enabled      bool
}

type PipelineSyncService struct {
	scheduler          *gocron.Scheduler
	runner             processing.Runner
	config             PipelineSyncConfig
	syncRunning        bool
	syncMutex          sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

func NewPipelineSyncService(runner processing.Runner, cfg *config.Config) *PipelineSyncService {
	syncConfig := PipelineSyncConfig{
		CronSchedule: cfg.PipelineSync.CronSchedule, // Default: 5h da manhã todos os dias
		Enabled:      cfg.PipelineSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
	}).Info("Configuração do agendador do pipeline carregada")

	return &PipelineSyncService{
		scheduler: scheduler,
		runner:    runner,
		config:    syncConfig,
	}
}

func (s *PipelineSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Execução agendada do pipeline desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de execução do pipeline")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunOnce(ctx); err != nil {
			logrus.WithError(err).Error("Erro na execução agendada do pipeline")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar execução do pipeline: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do pipeline")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa o pipeline uma vez, garantindo que execuções agendadas não
// se sobreponham.
func (s *PipelineSyncService) RunOnce(ctx context.Context) error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Execução do pipeline já está em andamento")
		return nil
	}

	s.syncRunning = true
	s.lastRunStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastRunCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando execução agendada do pipeline")

	result, err := s.runner.Run(ctx)
	if err != nil {
		return err
	}

	if result.NoData {
		logrus.Warn("Execução agendada concluída sem dados após os filtros")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"records":  result.Filtered,
		"rejected": result.Rejections.Total(),
	}).Info("Execução agendada do pipeline concluída")

	return nil
}
