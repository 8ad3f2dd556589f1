package filtering

import (
	"testing"
	"time"

	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
	"github.com/stretchr/testify/assert"
)

func transaction(id, region string, quantity int, unitPrice float64) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: id,
		ProductID:     "P101",
		CustomerID:    "C001",
		Region:        region,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Date:          time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		Revenue:       float64(quantity) * unitPrice,
	}
}

func amount(v float64) *float64 {
	return &v
}

func TestService_Apply(t *testing.T) {
	filterer := NewService()

	input := []*domain.Transaction{
		transaction("T001", "North", 2, 100), // 200
		transaction("T002", "south", 1, 50),  // 50
		transaction("T003", "North", 1, 300), // 300
	}

	t.Run("Sem filtros é identidade: mesmos elementos, mesma ordem", func(t *testing.T) {
		filtered := filterer.Apply(input, Options{})

		assert.Equal(t, input, filtered)
	})

	t.Run("Filtro de região é exato sem diferenciar maiúsculas", func(t *testing.T) {
		filtered := filterer.Apply(input, Options{Region: "SOUTH"})

		assert.Len(t, filtered, 1)
		assert.Equal(t, "T002", filtered[0].TransactionID)
	})

	t.Run("Corte mínimo é inclusivo sobre a receita", func(t *testing.T) {
		filtered := filterer.Apply(input, Options{MinAmount: amount(200)})

		assert.Len(t, filtered, 2)
		assert.Equal(t, "T001", filtered[0].TransactionID)
		assert.Equal(t, "T003", filtered[1].TransactionID)
	})

	t.Run("Corte máximo é inclusivo sobre a receita", func(t *testing.T) {
		filtered := filterer.Apply(input, Options{MaxAmount: amount(200)})

		assert.Len(t, filtered, 2)
		assert.Equal(t, "T001", filtered[0].TransactionID)
		assert.Equal(t, "T002", filtered[1].TransactionID)
	})

	t.Run("Filtros compõem com E lógico", func(t *testing.T) {
		filtered := filterer.Apply(input, Options{
			Region:    "North",
			MinAmount: amount(250),
		})

		assert.Len(t, filtered, 1)
		assert.Equal(t, "T003", filtered[0].TransactionID)
	})

	t.Run("Entrada não é mutada e o resultado é um slice novo", func(t *testing.T) {
		filtered := filterer.Apply(input, Options{Region: "North"})

		filtered[0] = transaction("T999", "West", 1, 1)

		assert.Equal(t, "T001", input[0].TransactionID)
		assert.Len(t, input, 3)
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("Zeros da configuração significam filtros ausentes", func(t *testing.T) {
		opts := FromConfig(config.Filter{})

		assert.Empty(t, opts.Region)
		assert.Nil(t, opts.MinAmount)
		assert.Nil(t, opts.MaxAmount)
	})

	t.Run("Valores positivos viram cortes", func(t *testing.T) {
		opts := FromConfig(config.Filter{Region: "North", MinAmount: 100, MaxAmount: 500})

		assert.Equal(t, "North", opts.Region)
		assert.Equal(t, 100.0, *opts.MinAmount)
		assert.Equal(t, 500.0, *opts.MaxAmount)
	})
}
