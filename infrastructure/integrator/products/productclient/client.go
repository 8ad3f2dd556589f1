package productclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	productsdomain "github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products/domain"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client fala com a API externa de catálogo de produtos. A política de retry
// e timeout mora aqui; o restante do pipeline só consome o resultado.
type Client interface {
	GetProductByID(id int) (*productsdomain.Product, error)
	ListProducts(limit int) ([]productsdomain.Product, error)
}

type ProductsClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.ProductsAPI.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ProductsClient{
		Cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetProductByID busca um produto pelo ID numérico. Produto inexistente não é
// erro: retorna (nil, nil), para que ausência seja distinguível de falha.
func (c *ProductsClient) GetProductByID(id int) (*productsdomain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.Cfg.ProductsAPI.BaseURL, id)

	var lastErr error

	attempts := c.Cfg.ProductsAPI.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.httpClient.Get(url)
		if err != nil {
			lastErr = err
			logrus.WithError(err).WithFields(logrus.Fields{
				"product_id": id,
				"attempt":    attempt,
			}).Warn("Falha na requisição à API de produtos")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = errors.Errorf("API de produtos respondeu %s para o produto %d", resp.Status, id)
			continue
		}

		product := &productsdomain.Product{}
		if err := json.Unmarshal(body, product); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar produto da API")
		}

		return product, nil
	}

	return nil, errors.Wrap(lastErr, "esgotadas as tentativas na API de produtos")
}

// ListProducts busca o catálogo completo de uma vez, limitado ao tamanho
// configurado.
func (c *ProductsClient) ListProducts(limit int) ([]productsdomain.Product, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.Cfg.ProductsAPI.BaseURL, limit)

	body, err := utils.MakeRequest(url)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar produtos da API")
	}

	response := &productsdomain.ProductListResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar listagem de produtos")
	}

	return response.Products, nil
}
