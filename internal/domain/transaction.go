package domain

import "time"

// Transaction representa um registro de venda já convertido para o modelo canônico.
// Revenue é derivado de Quantity * UnitPrice no momento da validação e tratado como
// imutável a partir daí, nunca lido do arquivo de entrada.
type Transaction struct {
	TransactionID string    `json:"transaction_id"`
	ProductID     string    `json:"product_id"`
	CustomerID    string    `json:"customer_id"`
	Region        string    `json:"region"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	Date          time.Time `json:"date"`
	Revenue       float64   `json:"revenue"`
}

// Amount retorna o valor bruto da transação calculado a partir dos campos de origem.
func (t *Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// ProductInfo são os metadados externos de um produto retornados pela API de produtos.
type ProductInfo struct {
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// EnrichedTransaction é uma cópia derivada da transação com os metadados da API.
// Os campos de enriquecimento são ponteiros: nil indica ausência explícita da
// informação, distinta de um valor que veio vazio da API. Transações não
// enriquecidas nunca são descartadas.
type EnrichedTransaction struct {
	Transaction
	Category *string  `json:"api_category"`
	Brand    *string  `json:"api_brand"`
	Rating   *float64 `json:"api_rating"`
	Matched  bool     `json:"api_match"`
}
