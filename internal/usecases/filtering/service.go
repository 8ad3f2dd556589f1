package filtering

import (
	"strings"

	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
)

// Options são os filtros opcionais de uma execução. Ponteiro nil ou região
// vazia significa filtro ausente, que é identidade, nunca "excluir tudo".
type Options struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// FromConfig converte os filtros da configuração, onde zero significa ausente.
func FromConfig(filter config.Filter) Options {
	opts := Options{Region: filter.Region}

	if filter.MinAmount > 0 {
		min := filter.MinAmount
		opts.MinAmount = &min
	}

	if filter.MaxAmount > 0 {
		max := filter.MaxAmount
		opts.MaxAmount = &max
	}

	return opts
}

// Filterer aplica os filtros de região e valor ao conjunto validado.
type Filterer interface {
	Apply(transactions []*domain.Transaction, opts Options) []*domain.Transaction
}

type Service struct{}

func NewService() Filterer {
	return &Service{}
}

// Apply compõe os filtros com E lógico e devolve um novo slice preservando a
// ordem relativa original. A entrada nunca é mutada. O filtro de região é
// comparação exata sem diferenciar maiúsculas; os cortes de valor são
// inclusivos sobre a receita (Quantity * UnitPrice).
func (s *Service) Apply(transactions []*domain.Transaction, opts Options) []*domain.Transaction {
	filtered := make([]*domain.Transaction, 0, len(transactions))

	for _, t := range transactions {
		if opts.Region != "" && !strings.EqualFold(t.Region, opts.Region) {
			continue
		}

		amount := t.Amount()

		if opts.MinAmount != nil && amount < *opts.MinAmount {
			continue
		}

		if opts.MaxAmount != nil && amount > *opts.MaxAmount {
			continue
		}

		filtered = append(filtered, t)
	}

	return filtered
}
