package enriching

import (
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
)

// Enricher anexa metadados externos de produto às transações. O enriquecimento
// nunca descarta nem rejeita uma transação: na ausência do produto os campos
// ficam explicitamente ausentes.
type Enricher interface {
	Enrich(transactions []*domain.Transaction) ([]*domain.EnrichedTransaction, *domain.EnrichmentSummary)
}

type Service struct {
	products products.ProductIntegrator
}

func NewService(productsService products.ProductIntegrator) Enricher {
	return &Service{products: productsService}
}

// Enrich consulta a API exatamente uma vez por ProductID distinto. O cache é
// escopado a esta execução, sem estado entre execuções. As consultas são
// emitidas em ordem crescente de ID para que o resultado independa de ordem
// de conclusão, e a taxa de sucesso é contada por produto distinto, não por
// transação.
func (s *Service) Enrich(transactions []*domain.Transaction) ([]*domain.EnrichedTransaction, *domain.EnrichmentSummary) {
	distinctIDs := distinctProductIDs(transactions)

	cache := make(map[string]*domain.ProductInfo, len(distinctIDs))
	summary := &domain.EnrichmentSummary{
		DistinctProducts:  len(distinctIDs),
		UnmatchedProducts: make([]string, 0),
	}

	for _, productID := range distinctIDs {
		info, err := s.products.FetchProduct(productID)
		if err != nil {
			logrus.WithError(err).WithField("product_id", productID).
				Warn("Falha ao buscar produto na API, registro seguirá sem enriquecimento")
			info = nil
		}

		cache[productID] = info

		if info != nil {
			summary.SuccessfulLookups++
		} else {
			summary.FailedLookups++
			summary.UnmatchedProducts = append(summary.UnmatchedProducts, productID)
		}
	}

	if summary.DistinctProducts > 0 {
		summary.SuccessRate = float64(summary.SuccessfulLookups) / float64(summary.DistinctProducts)
	}

	enriched := make([]*domain.EnrichedTransaction, 0, len(transactions))
	for _, t := range transactions {
		entry := &domain.EnrichedTransaction{Transaction: *t}

		if info := cache[t.ProductID]; info != nil {
			category := info.Category
			brand := info.Brand
			rating := info.Rating

			entry.Category = &category
			entry.Brand = &brand
			entry.Rating = &rating
			entry.Matched = true
			summary.MatchedTransactions++
		}

		enriched = append(enriched, entry)
	}

	return enriched, summary
}

// distinctProductIDs devolve os IDs de produto únicos em ordem crescente,
// garantindo merge determinístico dos resultados.
func distinctProductIDs(transactions []*domain.Transaction) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)

	for _, t := range transactions {
		if _, exists := seen[t.ProductID]; exists {
			continue
		}
		seen[t.ProductID] = struct{}{}
		ids = append(ids, t.ProductID)
	}

	sort.Strings(ids)

	return ids
}
