package flatfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
)

// enrichedColumns é o cabeçalho do arquivo enriquecido: os sete campos
// canônicos seguidos das colunas da API.
var enrichedColumns = []string{
	"TransactionID", "ProductID", "CustomerID", "Region",
	"Quantity", "UnitPrice", "Date",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// RenderEnriched serializa as transações enriquecidas no mesmo delimitador do
// arquivo de origem. Campos de enriquecimento ausentes saem vazios, com
// API_Match=false, para que a taxa de enriquecimento continue aferível no
// arquivo gerado.
func RenderEnriched(enriched []*domain.EnrichedTransaction, delimiter string) string {
	if delimiter == "" {
		delimiter = ","
	}

	var b strings.Builder
	b.WriteString(strings.Join(enrichedColumns, delimiter))
	b.WriteString("\n")

	for _, t := range enriched {
		fields := []string{
			t.TransactionID,
			t.ProductID,
			t.CustomerID,
			t.Region,
			strconv.Itoa(t.Quantity),
			strconv.FormatFloat(t.UnitPrice, 'f', 2, 64),
			t.Date.Format(time.DateOnly),
			stringOrEmpty(t.Category),
			stringOrEmpty(t.Brand),
			ratingOrEmpty(t.Rating),
			strconv.FormatBool(t.Matched),
		}

		b.WriteString(strings.Join(fields, delimiter))
		b.WriteString("\n")
	}

	return b.String()
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func ratingOrEmpty(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}
