package domain

// RejectionReason identifica a regra de negócio que um registro bruto violou.
// O conjunto é fechado para permitir tratamento exaustivo e asserções precisas.
type RejectionReason string

const (
	ReasonMissingField           RejectionReason = "MISSING_FIELD"
	ReasonQuantityNonPositive    RejectionReason = "QUANTITY_NON_POSITIVE"
	ReasonPriceNonPositive       RejectionReason = "PRICE_NON_POSITIVE"
	ReasonBadTransactionIDPrefix RejectionReason = "BAD_TRANSACTION_ID_PREFIX"
	ReasonBadProductIDPrefix     RejectionReason = "BAD_PRODUCT_ID_PREFIX"
	ReasonBadCustomerIDPrefix    RejectionReason = "BAD_CUSTOMER_ID_PREFIX"
	ReasonParseError             RejectionReason = "PARSE_ERROR"
)

// AllRejectionReasons lista os motivos na ordem em que aparecem no resumo de rejeições.
var AllRejectionReasons = []RejectionReason{
	ReasonParseError,
	ReasonMissingField,
	ReasonQuantityNonPositive,
	ReasonPriceNonPositive,
	ReasonBadTransactionIDPrefix,
	ReasonBadProductIDPrefix,
	ReasonBadCustomerIDPrefix,
}

// ValidationResult marca um registro como aceito ou rejeitado com exatamente um motivo.
// Transaction preenchido indica aceitação; caso contrário Reason e RawLine descrevem
// a rejeição. Não existe aceitação parcial.
type ValidationResult struct {
	Transaction *Transaction
	Reason      RejectionReason
	RawLine     string
}

// Accepted informa se o registro passou por todas as regras de validação.
func (r ValidationResult) Accepted() bool {
	return r.Transaction != nil
}

// RejectionSummary acumula a contagem de rejeições por motivo em uma única execução.
// Rejeições são valores ordinários, nunca erros propagados.
type RejectionSummary map[RejectionReason]int

// Add registra mais uma rejeição para o motivo informado.
func (s RejectionSummary) Add(reason RejectionReason) {
	s[reason]++
}

// Total retorna o número total de registros rejeitados.
func (s RejectionSummary) Total() int {
	total := 0
	for _, count := range s {
		total += count
	}
	return total
}
