package reporting

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const sectionWidth = 50

// Reporter transforma o retrato analítico em saídas legíveis. A renderização
// é plumbing: consome as estruturas prontas sem recalcular nada.
type Reporter interface {
	RenderText(report *domain.AnalyticsReport, enrichment *domain.EnrichmentSummary, generatedAt time.Time) string
	RenderJSON(report *domain.AnalyticsReport, enrichment *domain.EnrichmentSummary) (string, error)
}

type Service struct {
	currency string
}

func NewService(cfg *config.Config) Reporter {
	currency := cfg.Analysis.CurrencySymbol
	if currency == "" {
		currency = "₹"
	}

	return &Service{currency: currency}
}

// RenderText monta o relatório multi-seção de largura fixa: cabeçalho, resumo
// geral, desempenho regional, top 5 produtos, top 5 clientes, tendência
// diária, análise de desempenho e resumo do enriquecimento.
func (s *Service) RenderText(report *domain.AnalyticsReport, enrichment *domain.EnrichmentSummary, generatedAt time.Time) string {
	lines := make([]string, 0, 64)
	rule := strings.Repeat("=", sectionWidth)
	thinRule := strings.Repeat("-", sectionWidth)

	// Cabeçalho
	lines = append(lines,
		rule,
		"SALES ANALYTICS REPORT",
		fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Records Processed: %d", report.TotalTransactions),
		rule,
		"",
	)

	// Resumo geral
	lines = append(lines,
		"OVERALL SUMMARY",
		thinRule,
		fmt.Sprintf("Total Revenue: %s%.2f", s.currency, report.TotalRevenue),
		fmt.Sprintf("Total Transactions: %d", report.TotalTransactions),
		fmt.Sprintf("Average Order Value: %s%.2f", s.currency, report.AverageOrderValue),
		fmt.Sprintf("Date Range: %s to %s",
			report.StartDate.Format(time.DateOnly),
			report.EndDate.Format(time.DateOnly)),
		"",
	)

	// Desempenho regional
	lines = append(lines,
		"REGION-WISE PERFORMANCE",
		thinRule,
		fmt.Sprintf("%-15s %-20s %-12s %-12s", "Region", "Sales", "% of Total", "Transactions"),
		thinRule,
	)
	for _, region := range report.RegionalBreakdown {
		lines = append(lines, fmt.Sprintf("%-15s %s%15.2f  %8.2f%%  %10d",
			region.Region, s.currency, region.TotalSales, region.Percentage, region.TransactionCount))
	}
	lines = append(lines, "")

	// Top produtos
	lines = append(lines,
		fmt.Sprintf("TOP %d PRODUCTS", len(report.TopProducts)),
		thinRule,
		fmt.Sprintf("%-6s %-15s %-12s %-15s", "Rank", "Product ID", "Units", "Revenue"),
		thinRule,
	)
	for idx, product := range report.TopProducts {
		lines = append(lines, fmt.Sprintf("%-6d %-15s %-12d %s%12.2f",
			idx+1, product.ProductID, product.UnitsSold, s.currency, product.TotalRevenue))
	}
	lines = append(lines, "")

	// Top clientes
	lines = append(lines,
		fmt.Sprintf("TOP %d CUSTOMERS", len(report.TopCustomers)),
		thinRule,
		fmt.Sprintf("%-6s %-15s %-20s %-10s", "Rank", "Customer ID", "Total Spent", "Orders"),
		thinRule,
	)
	for idx, customer := range report.TopCustomers {
		lines = append(lines, fmt.Sprintf("%-6d %-15s %s%15.2f  %8d",
			idx+1, customer.CustomerID, s.currency, customer.TotalSpent, customer.PurchaseCount))
	}
	lines = append(lines, "")

	// Tendência diária
	lines = append(lines,
		"DAILY SALES TREND",
		thinRule,
		fmt.Sprintf("%-15s %-20s %-14s %-16s", "Date", "Revenue", "Transactions", "Unique Customers"),
		thinRule,
	)
	for _, day := range report.DailyTrend {
		lines = append(lines, fmt.Sprintf("%-15s %s%15.2f  %12d  %15d",
			day.Date.Format(time.DateOnly), s.currency, day.Revenue, day.TransactionCount, day.UniqueCustomers))
	}
	lines = append(lines, "")

	// Análise de desempenho
	lines = append(lines, "PRODUCT PERFORMANCE ANALYSIS", thinRule)
	if report.Performance.BestDay != nil {
		lines = append(lines, fmt.Sprintf("Best Selling Day: %s (%s%.2f)",
			report.Performance.BestDay.Date.Format(time.DateOnly),
			s.currency, report.Performance.BestDay.Revenue))
	}
	if len(report.Performance.LowPerformers) > 0 {
		lines = append(lines, "", "Low Performing Products:")
		for _, product := range report.Performance.LowPerformers {
			lines = append(lines, fmt.Sprintf("  - %s: %d units (%s%.2f)",
				product.ProductID, product.UnitsSold, s.currency, product.TotalRevenue))
		}
	} else {
		lines = append(lines, "Low Performing Products: None")
	}
	lines = append(lines, "", "Average Transaction Value per Region:")
	for _, region := range report.RegionalBreakdown {
		lines = append(lines, fmt.Sprintf("  - %s: %s%.2f",
			region.Region, s.currency, region.AverageOrderValue))
	}
	lines = append(lines, "")

	// Resumo do enriquecimento
	if enrichment != nil {
		lines = append(lines,
			"API ENRICHMENT SUMMARY",
			thinRule,
			fmt.Sprintf("Distinct Products Looked Up: %d", enrichment.DistinctProducts),
			fmt.Sprintf("Successful Lookups: %d/%d", enrichment.SuccessfulLookups, enrichment.DistinctProducts),
			fmt.Sprintf("Success Rate: %.2f%%", enrichment.SuccessRate*100),
			fmt.Sprintf("Transactions Enriched: %d/%d", enrichment.MatchedTransactions, report.TotalTransactions),
		)
		if len(enrichment.UnmatchedProducts) > 0 {
			lines = append(lines, fmt.Sprintf("Products Not Enriched: %s",
				strings.Join(enrichment.UnmatchedProducts, ", ")))
		} else {
			lines = append(lines, "Products Not Enriched: None")
		}
		lines = append(lines, "")
	}

	lines = append(lines, rule, "END OF REPORT", rule)

	return strings.Join(lines, "\n") + "\n"
}

// RenderJSON serializa o retrato analítico para consumo por máquina.
func (s *Service) RenderJSON(report *domain.AnalyticsReport, enrichment *domain.EnrichmentSummary) (string, error) {
	payload := struct {
		Report     *domain.AnalyticsReport   `json:"report"`
		Enrichment *domain.EnrichmentSummary `json:"enrichment,omitempty"`
	}{
		Report:     report,
		Enrichment: enrichment,
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar o relatório em JSON")
	}

	return string(out) + "\n", nil
}
