package parsing

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"github.com/somrent17-glitch/sales-analytics-system/internal/domain"
	"github.com/somrent17-glitch/sales-analytics-system/pkg/utils"
)

// fieldCount é o número exato de campos de um registro de venda. A ordem dos
// campos e o delimitador são o contrato bit-exato com os arquivos de entrada:
// TransactionID,ProductID,CustomerID,Region,Quantity,UnitPrice,Date
const fieldCount = 7

// Parser converte uma linha bruta do arquivo de vendas em uma transação tipada.
// Falhas de conversão são erros de parse, uma classe anterior e distinta das
// rejeições de validação.
type Parser interface {
	ParseLine(line string) (*domain.Transaction, error)
}

type Service struct {
	delimiter string
}

// NewService cria um parser com o delimitador configurado (vírgula por padrão,
// pipe nos arquivos legados).
func NewService(cfg *config.Config) Parser {
	delimiter := cfg.Input.Delimiter
	if delimiter == "" {
		delimiter = ","
	}

	return &Service{delimiter: delimiter}
}

// ParseLine é uma função pura: não tem efeitos colaterais e não rejeita por
// regra de negócio, apenas por linha malformada.
func (s *Service) ParseLine(line string) (*domain.Transaction, error) {
	fields := strings.Split(line, s.delimiter)
	if len(fields) != fieldCount {
		return nil, errors.Errorf("esperados %d campos, encontrados %d", fieldCount, len(fields))
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	quantityStr := fields[4]
	unitPriceStr := fields[5]

	// Arquivos legados delimitados por pipe trazem separador de milhar nos
	// campos numéricos (ex.: 45,000). Com delimitador vírgula isso não ocorre.
	if s.delimiter != "," {
		quantityStr = strings.ReplaceAll(quantityStr, ",", "")
		unitPriceStr = strings.ReplaceAll(unitPriceStr, ",", "")
	}

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		return nil, errors.Wrap(err, "quantidade inválida")
	}

	unitPrice, err := strconv.ParseFloat(unitPriceStr, 64)
	if err != nil {
		return nil, errors.Wrap(err, "preço unitário inválido")
	}

	date, err := utils.ParseDate(fields[6])
	if err != nil {
		return nil, errors.Wrap(err, "data inválida")
	}

	return &domain.Transaction{
		TransactionID: fields[0],
		ProductID:     fields[1],
		CustomerID:    fields[2],
		Region:        fields[3],
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Date:          *date,
	}, nil
}
