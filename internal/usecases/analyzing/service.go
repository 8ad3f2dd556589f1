package analyzing

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/utils"
)

// ErrEmptyDataset indica que a análise foi chamada com um conjunto vazio.
// Agregados não são definidos sobre conjunto vazio e nunca devem virar zeros
// que se passam por resultado válido; o chamador precisa tratar este caso.
var ErrEmptyDataset = errors.New("conjunto de transações vazio: análise indisponível")

// percentageTolerance é a tolerância de ponto flutuante aceita na soma dos
// percentuais regionais, que deve fechar em 100.
const percentageTolerance = 1e-6

// Analyzer calcula o retrato analítico de um conjunto imutável de transações.
type Analyzer interface {
	Analyze(transactions []*domain.Transaction) (*domain.AnalyticsReport, error)
}

type Service struct {
	topRankingSize      int
	lowPerformanceRatio float64
}

func NewService(cfg *config.Config) Analyzer {
	topRankingSize := cfg.Analysis.TopRankingSize
	if topRankingSize <= 0 {
		topRankingSize = 5
	}

	lowPerformanceRatio := cfg.Analysis.LowPerformanceRatio
	if lowPerformanceRatio <= 0 {
		lowPerformanceRatio = 0.5
	}

	return &Service{
		topRankingSize:      topRankingSize,
		lowPerformanceRatio: lowPerformanceRatio,
	}
}

// Analyze é uma função pura do conjunto de entrada: nenhum estado é carregado
// entre execuções e a entrada nunca é mutada.
func (s *Service) Analyze(transactions []*domain.Transaction) (*domain.AnalyticsReport, error) {
	if len(transactions) == 0 {
		return nil, ErrEmptyDataset
	}

	totalRevenue := 0.0
	startDate := transactions[0].Date
	endDate := transactions[0].Date

	for _, t := range transactions {
		totalRevenue += t.Revenue

		if t.Date.Before(startDate) {
			startDate = t.Date
		}
		if t.Date.After(endDate) {
			endDate = t.Date
		}
	}

	report := &domain.AnalyticsReport{
		TotalRevenue:      totalRevenue,
		TotalTransactions: len(transactions),
		AverageOrderValue: totalRevenue / float64(len(transactions)),
		StartDate:         startDate,
		EndDate:           endDate,
		RegionalBreakdown: s.regionalBreakdown(transactions, totalRevenue),
		TopProducts:       s.topProducts(transactions),
		TopCustomers:      s.topCustomers(transactions),
		DailyTrend:        s.dailyTrend(transactions),
	}

	report.Performance = s.productPerformance(transactions, report.DailyTrend)

	return report, nil
}

// regionalBreakdown agrupa por região somando receita e contagem. A soma dos
// percentuais sobre todas as regiões deve fechar em 100, invariante conferida
// aqui e coberta por teste.
func (s *Service) regionalBreakdown(transactions []*domain.Transaction, totalRevenue float64) []domain.RegionStats {
	grouped := make(map[string]*domain.RegionStats)

	for _, t := range transactions {
		stats, exists := grouped[t.Region]
		if !exists {
			stats = &domain.RegionStats{Region: t.Region}
			grouped[t.Region] = stats
		}

		stats.TotalSales += t.Revenue
		stats.TransactionCount++
	}

	breakdown := make([]domain.RegionStats, 0, len(grouped))
	percentageSum := 0.0

	for _, stats := range grouped {
		stats.Percentage = stats.TotalSales / totalRevenue * 100
		stats.AverageOrderValue = stats.TotalSales / float64(stats.TransactionCount)
		percentageSum += stats.Percentage
		breakdown = append(breakdown, *stats)
	}

	if math.Abs(percentageSum-100) > percentageTolerance {
		logrus.WithField("percentage_sum", percentageSum).
			Warn("Percentuais regionais não fecharam em 100")
	}

	// Receita decrescente; empate desfeito pelo nome da região para
	// resultado determinístico
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].TotalSales != breakdown[j].TotalSales {
			return breakdown[i].TotalSales > breakdown[j].TotalSales
		}
		return breakdown[i].Region < breakdown[j].Region
	})

	return breakdown
}

// topProducts ranqueia produtos por receita decrescente, empate desfeito pelo
// ID crescente, truncado ao tamanho configurado.
func (s *Service) topProducts(transactions []*domain.Transaction) []domain.ProductRanking {
	rankings := s.productRankings(transactions)

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].TotalRevenue != rankings[j].TotalRevenue {
			return rankings[i].TotalRevenue > rankings[j].TotalRevenue
		}
		return rankings[i].ProductID < rankings[j].ProductID
	})

	if len(rankings) > s.topRankingSize {
		rankings = rankings[:s.topRankingSize]
	}

	return rankings
}

// productRankings agrega unidades e receita por produto, sem ordenação.
func (s *Service) productRankings(transactions []*domain.Transaction) []domain.ProductRanking {
	grouped := make(map[string]*domain.ProductRanking)

	for _, t := range transactions {
		ranking, exists := grouped[t.ProductID]
		if !exists {
			ranking = &domain.ProductRanking{ProductID: t.ProductID}
			grouped[t.ProductID] = ranking
		}

		ranking.UnitsSold += t.Quantity
		ranking.TotalRevenue += t.Revenue
	}

	rankings := make([]domain.ProductRanking, 0, len(grouped))
	for _, ranking := range grouped {
		rankings = append(rankings, *ranking)
	}

	return rankings
}

func (s *Service) topCustomers(transactions []*domain.Transaction) []domain.CustomerRanking {
	grouped := make(map[string]*domain.CustomerRanking)

	for _, t := range transactions {
		ranking, exists := grouped[t.CustomerID]
		if !exists {
			ranking = &domain.CustomerRanking{CustomerID: t.CustomerID}
			grouped[t.CustomerID] = ranking
		}

		ranking.TotalSpent += t.Revenue
		ranking.PurchaseCount++
	}

	rankings := make([]domain.CustomerRanking, 0, len(grouped))
	for _, ranking := range grouped {
		ranking.AverageOrderValue = utils.RoundWithTwoDecimalPlace(
			ranking.TotalSpent / float64(ranking.PurchaseCount),
		)
		rankings = append(rankings, *ranking)
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].TotalSpent != rankings[j].TotalSpent {
			return rankings[i].TotalSpent > rankings[j].TotalSpent
		}
		return rankings[i].CustomerID < rankings[j].CustomerID
	})

	if len(rankings) > s.topRankingSize {
		rankings = rankings[:s.topRankingSize]
	}

	return rankings
}

// dailyTrend agrupa por data somando receita, contagem e clientes únicos,
// em ordem cronológica crescente.
func (s *Service) dailyTrend(transactions []*domain.Transaction) []domain.DailyTrendEntry {
	type dailyAccumulator struct {
		revenue   float64
		count     int
		customers map[string]struct{}
	}

	grouped := make(map[time.Time]*dailyAccumulator)

	for _, t := range transactions {
		day := t.Date
		acc, exists := grouped[day]
		if !exists {
			acc = &dailyAccumulator{customers: make(map[string]struct{})}
			grouped[day] = acc
		}

		acc.revenue += t.Revenue
		acc.count++
		acc.customers[t.CustomerID] = struct{}{}
	}

	trend := make([]domain.DailyTrendEntry, 0, len(grouped))
	for day, acc := range grouped {
		trend = append(trend, domain.DailyTrendEntry{
			Date:             day,
			Revenue:          acc.revenue,
			TransactionCount: acc.count,
			UniqueCustomers:  len(acc.customers),
		})
	}

	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date.Before(trend[j].Date)
	})

	return trend
}

// productPerformance identifica o melhor dia de vendas e os produtos cuja
// receita fica abaixo do corte configurado sobre a média por produto.
func (s *Service) productPerformance(transactions []*domain.Transaction, trend []domain.DailyTrendEntry) domain.ProductPerformance {
	var bestDay *domain.DailyTrendEntry
	for i := range trend {
		// Empate resolvido pela data mais antiga, já que o trend é cronológico
		if bestDay == nil || trend[i].Revenue > bestDay.Revenue {
			bestDay = &trend[i]
		}
	}

	rankings := s.productRankings(transactions)

	totalProductRevenue := 0.0
	for _, ranking := range rankings {
		totalProductRevenue += ranking.TotalRevenue
	}
	meanProductRevenue := totalProductRevenue / float64(len(rankings))

	cutoff := meanProductRevenue * s.lowPerformanceRatio
	lowPerformers := make([]domain.ProductRanking, 0)
	for _, ranking := range rankings {
		if ranking.TotalRevenue < cutoff {
			lowPerformers = append(lowPerformers, ranking)
		}
	}

	sort.Slice(lowPerformers, func(i, j int) bool {
		if lowPerformers[i].TotalRevenue != lowPerformers[j].TotalRevenue {
			return lowPerformers[i].TotalRevenue < lowPerformers[j].TotalRevenue
		}
		return lowPerformers[i].ProductID < lowPerformers[j].ProductID
	})

	return domain.ProductPerformance{
		BestDay:            bestDay,
		MeanProductRevenue: meanProductRevenue,
		LowPerformers:      lowPerformers,
	}
}
