package products

import (
	"testing"

	"github.com/pkg/errors"
	apidomain "github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products/domain"
	"github.com/somrent17-glitch/sales-analytics-system/infrastructure/integrator/products/productclient/mocks"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProductsService_FetchProduct(t *testing.T) {
	t.Run("ID canônico é convertido para o ID numérico da API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		client.EXPECT().GetProductByID(101).Return(&apidomain.Product{
			ID:       101,
			Title:    "Essence Mascara Lash Princess",
			Category: "beauty",
			Brand:    "Essence",
			Rating:   4.5,
		}, nil)

		service := New(&config.Config{}, client)

		info, err := service.FetchProduct("P101")
		require.NoError(t, err)

		require.NotNil(t, info)
		assert.Equal(t, "beauty", info.Category)
		assert.Equal(t, "Essence", info.Brand)
		assert.Equal(t, 4.5, info.Rating)
	})

	t.Run("produto inexistente na API é ausência, não erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		client.EXPECT().GetProductByID(999).Return(nil, nil)

		service := New(&config.Config{}, client)

		info, err := service.FetchProduct("P999")
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("ID fora do formato canônico é ausência sem consultar a API", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		// Nenhuma chamada esperada

		service := New(&config.Config{}, client)

		for _, productID := range []string{"101", "P", "PABC", ""} {
			info, err := service.FetchProduct(productID)
			require.NoError(t, err, "productID=%s", productID)
			assert.Nil(t, info, "productID=%s", productID)
		}
	})

	t.Run("erro do cliente é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		client.EXPECT().GetProductByID(101).
			Return(nil, errors.New("timeout na API"))

		service := New(&config.Config{}, client)

		info, err := service.FetchProduct("P101")
		require.Error(t, err)
		assert.Nil(t, info)
	})
}
