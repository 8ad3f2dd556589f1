package validating

import (
	"strings"

	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
)

// Validator aplica as regras de negócio a uma transação já parseada.
// A avaliação segue uma ordem fixa e a primeira regra violada determina o
// motivo reportado. A ordem importa para expectativas determinísticas.
type Validator interface {
	Validate(t *domain.Transaction, rawLine string) domain.ValidationResult
}

type Service struct{}

func NewService() Validator {
	return &Service{}
}

// Validate aplica as regras na ordem:
//  1. campos obrigatórios presentes
//  2. quantidade > 0
//  3. preço unitário > 0
//  4. TransactionID começa com 'T'
//  5. ProductID começa com 'P'
//  6. CustomerID começa com 'C'
//
// No sucesso a receita é calculada e anexada uma única vez. Não existe
// aceitação parcial: ou o registro passa inteiro ou é rejeitado com
// exatamente um motivo.
func (s *Service) Validate(t *domain.Transaction, rawLine string) domain.ValidationResult {
	if reason, ok := s.firstViolation(t); ok {
		return domain.ValidationResult{Reason: reason, RawLine: rawLine}
	}

	t.Revenue = t.Amount()

	return domain.ValidationResult{Transaction: t}
}

func (s *Service) firstViolation(t *domain.Transaction) (domain.RejectionReason, bool) {
	if t.TransactionID == "" || t.ProductID == "" || t.CustomerID == "" ||
		t.Region == "" || t.Date.IsZero() {
		return domain.ReasonMissingField, true
	}

	if t.Quantity <= 0 {
		return domain.ReasonQuantityNonPositive, true
	}

	if t.UnitPrice <= 0 {
		return domain.ReasonPriceNonPositive, true
	}

	if !strings.HasPrefix(t.TransactionID, "T") {
		return domain.ReasonBadTransactionIDPrefix, true
	}

	if !strings.HasPrefix(t.ProductID, "P") {
		return domain.ReasonBadProductIDPrefix, true
	}

	if !strings.HasPrefix(t.CustomerID, "C") {
		return domain.ReasonBadCustomerIDPrefix, true
	}

	return "", false
}
