package apperrors

import "fmt"

// Códigos de erro do pipeline
const (
	// Erros de entrada (INP)
	ErrFileNotFound = "INP_001" // Arquivo de entrada não encontrado
	ErrFileEncoding = "INP_002" // Nenhuma codificação suportada conseguiu ler o arquivo
	ErrFileEmpty    = "INP_003" // Arquivo sem registros após o cabeçalho

	// Erros de processamento (PRC)
	ErrEmptyDataset  = "PRC_001" // Conjunto filtrado vazio, análise impossível
	ErrReportWrite   = "PRC_002" // Falha ao gravar o relatório
	ErrEnrichedWrite = "PRC_003" // Falha ao gravar o arquivo enriquecido

	// Erros de serviços externos (SRV)
	ErrExternalService = "SRV_001" // Erro na API de produtos
	ErrInternal        = "SRV_002" // Erro interno inesperado
)

// Mapeamento de códigos de erro para códigos de saída do processo
var exitCodeMap = map[string]int{
	ErrFileNotFound:    2,
	ErrFileEncoding:    2,
	ErrFileEmpty:       3,
	ErrEmptyDataset:    3,
	ErrReportWrite:     4,
	ErrEnrichedWrite:   4,
	ErrExternalService: 5,
	ErrInternal:        1,
}

// AppError representa um erro padronizado do pipeline
type AppError struct {
	Code    string `json:"code"`              // Código de erro para o operador
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

func (e AppError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ExitCode retorna o código de saída do processo para um código de erro
func ExitCode(code string) int {
	if exit, exists := exitCodeMap[code]; exists {
		return exit
	}
	return 1
}

// FromError cria um erro padronizado a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro do pipeline
func FromError(err error, code string) AppError {
	if err == nil {
		return AppError{
			Code:    ErrInternal,
			Message: "Erro desconhecido",
		}
	}

	return AppError{
		Code:    code,
		Message: err.Error(),
	}
}
