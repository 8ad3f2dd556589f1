package scheduler

import (
	"context"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/log"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/processing"
	"github.com/somrent17-glitch/sales-analytics-system/internal/usecases/processing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func newSyncService(runner processing.Runner, enabled bool) *PipelineSyncService {
	cfg := &config.Config{}
	cfg.PipelineSync.CronSchedule = "0 5 * * *"
	cfg.PipelineSync.Enabled = enabled

	return NewPipelineSyncService(runner, cfg)
}

func TestPipelineSyncService_Start_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	// Desabilitado: nenhum agendamento e nenhuma execução

	service := newSyncService(runner, false)

	require.NoError(t, service.Start(context.Background()))
}

func TestPipelineSyncService_RunOnce(t *testing.T) {
	t.Run("executa o pipeline e registra o desfecho", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)

		runner.EXPECT().Run(gomock.Any()).Return(&processing.RunResult{
			RunID:    "a1b2c3",
			Filtered: 10,
		}, nil)

		service := newSyncService(runner, true)

		require.NoError(t, service.RunOnce(context.Background()))
		assert.False(t, service.syncRunning)
		assert.False(t, service.lastRunCompletedAt.IsZero())
	})

	t.Run("desfecho sem dados não é erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)

		runner.EXPECT().Run(gomock.Any()).Return(&processing.RunResult{
			RunID:  "a1b2c3",
			NoData: true,
		}, nil)

		service := newSyncService(runner, true)

		require.NoError(t, service.RunOnce(context.Background()))
	})

	t.Run("erro do pipeline é propagado e libera a próxima execução", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)

		runner.EXPECT().Run(gomock.Any()).
			Return(nil, errors.New("arquivo de entrada não encontrado"))

		service := newSyncService(runner, true)

		require.Error(t, service.RunOnce(context.Background()))
		assert.False(t, service.syncRunning)
	})

	t.Run("execução em andamento não é sobreposta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)
		// Nenhuma chamada ao runner é esperada

		service := newSyncService(runner, true)
		service.syncRunning = true

		require.NoError(t, service.RunOnce(context.Background()))
	})
}
