package enriching

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products/mocks"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func transaction(id, product string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: id,
		ProductID:     product,
		CustomerID:    "C001",
		Region:        "North",
		Quantity:      1,
		UnitPrice:     10.00,
		Revenue:       10.00,
	}
}

func TestService_Enrich(t *testing.T) {
	t.Run("uma consulta por produto distinto e taxa de sucesso por produto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := mocks.NewMockProductIntegrator(ctrl)

		// Três transações, dois produtos distintos: exatamente duas consultas
		integrator.EXPECT().FetchProduct("P101").Return(&domain.ProductInfo{
			Category: "beauty",
			Brand:    "Essence",
			Rating:   4.5,
		}, nil).Times(1)
		integrator.EXPECT().FetchProduct("P999").Return(nil, nil).Times(1)

		service := NewService(integrator)

		enriched, summary := service.Enrich([]*domain.Transaction{
			transaction("T001", "P101"),
			transaction("T002", "P999"),
			transaction("T003", "P101"),
		})

		require.Len(t, enriched, 3)

		assert.Equal(t, 2, summary.DistinctProducts)
		assert.Equal(t, 1, summary.SuccessfulLookups)
		assert.Equal(t, 1, summary.FailedLookups)
		assert.Equal(t, 0.5, summary.SuccessRate)
		assert.Equal(t, 2, summary.MatchedTransactions)
		assert.Equal(t, []string{"P999"}, summary.UnmatchedProducts)
	})

	t.Run("produto encontrado preenche os campos e marca o match", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := mocks.NewMockProductIntegrator(ctrl)

		integrator.EXPECT().FetchProduct("P101").Return(&domain.ProductInfo{
			Category: "groceries",
			Brand:    "Nestlé",
			Rating:   3.9,
		}, nil)

		service := NewService(integrator)

		enriched, _ := service.Enrich([]*domain.Transaction{transaction("T001", "P101")})

		require.Len(t, enriched, 1)
		assert.True(t, enriched[0].Matched)
		require.NotNil(t, enriched[0].Category)
		assert.Equal(t, "groceries", *enriched[0].Category)
		require.NotNil(t, enriched[0].Brand)
		assert.Equal(t, "Nestlé", *enriched[0].Brand)
		require.NotNil(t, enriched[0].Rating)
		assert.Equal(t, 3.9, *enriched[0].Rating)
	})

	t.Run("produto ausente deixa os campos nulos sem descartar a transação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := mocks.NewMockProductIntegrator(ctrl)

		integrator.EXPECT().FetchProduct("P404").Return(nil, nil)

		service := NewService(integrator)

		enriched, summary := service.Enrich([]*domain.Transaction{transaction("T001", "P404")})

		require.Len(t, enriched, 1)
		assert.False(t, enriched[0].Matched)
		assert.Nil(t, enriched[0].Category)
		assert.Nil(t, enriched[0].Brand)
		assert.Nil(t, enriched[0].Rating)
		assert.Equal(t, 0.0, summary.SuccessRate)
	})

	t.Run("erro na API vale como ausência, nunca aborta a execução", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := mocks.NewMockProductIntegrator(ctrl)

		integrator.EXPECT().FetchProduct("P101").
			Return(nil, errors.New("api indisponível"))
		integrator.EXPECT().FetchProduct("P102").Return(&domain.ProductInfo{
			Category: "furniture",
			Brand:    "Annibale Colombo",
			Rating:   4.1,
		}, nil)

		service := NewService(integrator)

		enriched, summary := service.Enrich([]*domain.Transaction{
			transaction("T001", "P101"),
			transaction("T002", "P102"),
		})

		require.Len(t, enriched, 2)
		assert.False(t, enriched[0].Matched)
		assert.True(t, enriched[1].Matched)
		assert.Equal(t, 1, summary.FailedLookups)
		assert.Equal(t, []string{"P101"}, summary.UnmatchedProducts)
	})

	t.Run("ordem das transações é preservada no resultado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := mocks.NewMockProductIntegrator(ctrl)

		integrator.EXPECT().FetchProduct(gomock.Any()).Return(nil, nil).Times(3)

		service := NewService(integrator)

		enriched, _ := service.Enrich([]*domain.Transaction{
			transaction("T003", "P300"),
			transaction("T001", "P100"),
			transaction("T002", "P200"),
		})

		require.Len(t, enriched, 3)
		assert.Equal(t, "T003", enriched[0].TransactionID)
		assert.Equal(t, "T001", enriched[1].TransactionID)
		assert.Equal(t, "T002", enriched[2].TransactionID)
	})

	t.Run("conjunto vazio devolve sumário zerado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := mocks.NewMockProductIntegrator(ctrl)

		service := NewService(integrator)

		enriched, summary := service.Enrich(nil)

		assert.Empty(t, enriched)
		assert.Equal(t, 0, summary.DistinctProducts)
		assert.Equal(t, 0.0, summary.SuccessRate)
	})
}
