package domain

import "time"

// RegionStats consolida as vendas de uma região dentro do conjunto analisado.
type RegionStats struct {
	Region            string  `json:"region"`
	TotalSales        float64 `json:"total_sales"`
	TransactionCount  int     `json:"transaction_count"`
	Percentage        float64 `json:"percentage"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// ProductRanking é uma posição do ranking de produtos por receita.
type ProductRanking struct {
	ProductID    string  `json:"product_id"`
	UnitsSold    int     `json:"units_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// CustomerRanking é uma posição do ranking de clientes por valor gasto.
type CustomerRanking struct {
	CustomerID        string  `json:"customer_id"`
	TotalSpent        float64 `json:"total_spent"`
	PurchaseCount     int     `json:"purchase_count"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DailyTrendEntry consolida as vendas de um dia.
type DailyTrendEntry struct {
	Date             time.Time `json:"date"`
	Revenue          float64   `json:"revenue"`
	TransactionCount int       `json:"transaction_count"`
	UniqueCustomers  int       `json:"unique_customers"`
}

// ProductPerformance reúne a análise de desempenho de produtos: o melhor dia de
// vendas e os produtos com receita abaixo do corte sobre a média por produto.
type ProductPerformance struct {
	BestDay            *DailyTrendEntry `json:"best_day"`
	MeanProductRevenue float64          `json:"mean_product_revenue"`
	LowPerformers      []ProductRanking `json:"low_performers"`
}

// AnalyticsReport é um retrato calculado de um conjunto imutável de transações
// filtradas. Todos os campos derivados são funções puras do conjunto de entrada,
// sem estado mutável entre execuções.
type AnalyticsReport struct {
	TotalRevenue      float64            `json:"total_revenue"`
	TotalTransactions int                `json:"total_transactions"`
	AverageOrderValue float64            `json:"average_order_value"`
	StartDate         time.Time          `json:"start_date"`
	EndDate           time.Time          `json:"end_date"`
	RegionalBreakdown []RegionStats      `json:"regional_breakdown"`
	TopProducts       []ProductRanking   `json:"top_products"`
	TopCustomers      []CustomerRanking  `json:"top_customers"`
	DailyTrend        []DailyTrendEntry  `json:"daily_trend"`
	Performance       ProductPerformance `json:"performance"`
}

// EnrichmentSummary descreve o resultado do enriquecimento de uma execução.
// A taxa de sucesso é contada por produto distinto, não por transação, para que
// produtos populares não inflem o índice.
type EnrichmentSummary struct {
	DistinctProducts    int      `json:"distinct_products"`
	SuccessfulLookups   int      `json:"successful_lookups"`
	FailedLookups       int      `json:"failed_lookups"`
	SuccessRate         float64  `json:"success_rate"`
	MatchedTransactions int      `json:"matched_transactions"`
	UnmatchedProducts   []string `json:"unmatched_products"`
}
