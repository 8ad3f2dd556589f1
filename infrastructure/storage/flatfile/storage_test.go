package flatfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	return path
}

func TestFileStorage_ReadLines(t *testing.T) {
	t.Run("arquivo UTF-8 com linhas em branco e espaços", func(t *testing.T) {
		path := writeInput(t, []byte(
			"T001,P101,C001,North,2,45000.50,2024-01-15\n"+
				"\n"+
				"  T002,P102,C002,South,1,1200.00,2024-01-16  \n"+
				"   \n"))

		storage := NewStorage(&config.Config{})

		lines, err := storage.ReadLines(path)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"T001,P101,C001,North,2,45000.50,2024-01-15",
			"T002,P102,C002,South,1,1200.00,2024-01-16",
		}, lines)
	})

	t.Run("cabeçalho é descartado quando configurado", func(t *testing.T) {
		path := writeInput(t, []byte(
			"TransactionID,ProductID,CustomerID,Region,Quantity,UnitPrice,Date\n"+
				"T001,P101,C001,North,2,45000.50,2024-01-15\n"))

		cfg := &config.Config{}
		cfg.Input.HasHeader = true
		storage := NewStorage(cfg)

		lines, err := storage.ReadLines(path)
		require.NoError(t, err)

		require.Len(t, lines, 1)
		assert.Equal(t, "T001,P101,C001,North,2,45000.50,2024-01-15", lines[0])
	})

	t.Run("bytes fora de UTF-8 caem na codificação alternativa", func(t *testing.T) {
		// "São Paulo" em ISO-8859-1: 0xE3 não é UTF-8 válido
		raw := append([]byte("T001,P101,C001,S"), 0xE3)
		raw = append(raw, []byte("o Paulo,2,45000.50,2024-01-15\n")...)
		path := writeInput(t, raw)

		storage := NewStorage(&config.Config{})

		lines, err := storage.ReadLines(path)
		require.NoError(t, err)

		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "São Paulo")
	})

	t.Run("arquivo inexistente devolve erro", func(t *testing.T) {
		storage := NewStorage(&config.Config{})

		lines, err := storage.ReadLines(filepath.Join(t.TempDir(), "nao_existe.txt"))

		assert.Nil(t, lines)
		require.Error(t, err)
		assert.True(t, os.IsNotExist(errors.Cause(err)))
	})

	t.Run("arquivo vazio devolve zero linhas sem erro", func(t *testing.T) {
		path := writeInput(t, []byte(""))

		storage := NewStorage(&config.Config{})

		lines, err := storage.ReadLines(path)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestFileStorage_WriteText(t *testing.T) {
	t.Run("cria o diretório de destino quando necessário", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output", "nested", "sales_report.txt")

		storage := NewStorage(&config.Config{})

		require.NoError(t, storage.WriteText(path, "conteúdo do relatório\n"))

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "conteúdo do relatório\n", string(written))
	})
}

func TestRenderEnriched(t *testing.T) {
	date, err := time.Parse(time.DateOnly, "2024-01-15")
	require.NoError(t, err)

	base := domain.Transaction{
		TransactionID: "T001",
		ProductID:     "P101",
		CustomerID:    "C001",
		Region:        "North",
		Quantity:      2,
		UnitPrice:     45000.5,
		Date:          date,
		Revenue:       90001.0,
	}

	t.Run("transação com match preenche as colunas da API", func(t *testing.T) {
		category := "beauty"
		brand := "Essence"
		rating := 4.5

		content := RenderEnriched([]*domain.EnrichedTransaction{{
			Transaction: base,
			Category:    &category,
			Brand:       &brand,
			Rating:      &rating,
			Matched:     true,
		}}, ",")

		assert.Equal(t,
			"TransactionID,ProductID,CustomerID,Region,Quantity,UnitPrice,Date,API_Category,API_Brand,API_Rating,API_Match\n"+
				"T001,P101,C001,North,2,45000.50,2024-01-15,beauty,Essence,4.50,true\n",
			content)
	})

	t.Run("transação sem match deixa as colunas da API vazias", func(t *testing.T) {
		content := RenderEnriched([]*domain.EnrichedTransaction{{
			Transaction: base,
		}}, ",")

		assert.Contains(t, content,
			"T001,P101,C001,North,2,45000.50,2024-01-15,,,,false\n")
	})

	t.Run("delimitador do arquivo de origem é respeitado", func(t *testing.T) {
		content := RenderEnriched([]*domain.EnrichedTransaction{{
			Transaction: base,
		}}, "|")

		assert.Contains(t, content, "T001|P101|C001|North|2|45000.50|2024-01-15")
	})

	t.Run("sem transações o arquivo tem apenas o cabeçalho", func(t *testing.T) {
		content := RenderEnriched(nil, "")

		assert.Equal(t,
			"TransactionID,ProductID,CustomerID,Region,Quantity,UnitPrice,Date,API_Category,API_Brand,API_Rating,API_Match\n",
			content)
	})
}
