package products

import (
	"strconv"
	"strings"

	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products/productclient"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
)

// ProductIntegrator expõe a busca de metadados de produto para o pipeline.
// FetchProduct retorna (nil, nil) quando o produto não existe no catálogo:
// ausência é um resultado válido, não um erro.
type ProductIntegrator interface {
	FetchProduct(productID string) (*domain.ProductInfo, error)
}

type ProductsService struct {
	cfg    *config.Config
	Client productclient.Client
}

func New(cfg *config.Config, client productclient.Client) ProductIntegrator {
	return &ProductsService{
		cfg:    cfg,
		Client: client,
	}
}

// FetchProduct extrai o ID numérico do ProductID canônico (P101 -> 101) e
// consulta a API. IDs fora do formato esperado contam como ausência, não como
// erro, para que o registro siga no pipeline sem enriquecimento.
func (s *ProductsService) FetchProduct(productID string) (*domain.ProductInfo, error) {
	numericPart := strings.TrimPrefix(productID, "P")
	if numericPart == productID || numericPart == "" {
		return nil, nil
	}

	id, err := strconv.Atoi(numericPart)
	if err != nil {
		return nil, nil
	}

	product, err := s.Client.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, nil
	}

	return &domain.ProductInfo{
		Category: product.Category,
		Brand:    product.Brand,
		Rating:   product.Rating,
	}, nil
}
