package flatfile

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/somrent17-glitch/sales-analytics-system/internal/config"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Storage lê e grava os arquivos texto do pipeline. A leitura resolve a
// codificação por tentativa: exportações legadas chegam em Windows-1252 ou
// ISO-8859-1 além de UTF-8.
type Storage interface {
	ReadLines(path string) ([]string, error)
	WriteText(path string, content string) error
}

type FileStorage struct {
	hasHeader bool
}

func NewStorage(cfg *config.Config) Storage {
	return &FileStorage{hasHeader: cfg.Input.HasHeader}
}

// fallbackEncodings na ordem de tentativa após UTF-8. ISO-8859-1 aceita
// qualquer sequência de bytes, então precisa ser a última.
var fallbackEncodings = []struct {
	name    string
	decoder *encoding.Decoder
}{
	{"windows-1252", charmap.Windows1252.NewDecoder()},
	{"iso-8859-1", charmap.ISO8859_1.NewDecoder()},
}

// ReadLines devolve as linhas de registro do arquivo: cabeçalho descartado,
// linhas em branco removidas, espaços das bordas aparados.
func (s *FileStorage) ReadLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o arquivo %s", path)
	}

	content, encodingName, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "nenhuma codificação suportada conseguiu ler %s", path)
	}

	if encodingName != "utf-8" {
		logrus.WithFields(logrus.Fields{
			"file":     path,
			"encoding": encodingName,
		}).Info("Arquivo lido com codificação alternativa")
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if s.hasHeader && len(lines) > 0 {
		lines = lines[1:]
	}

	return lines, nil
}

func decode(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}

	var lastErr error
	for _, enc := range fallbackEncodings {
		decoded, err := enc.decoder.Bytes(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return string(decoded), enc.name, nil
	}

	return "", "", lastErr
}

// WriteText grava o conteúdo em UTF-8, criando o diretório de destino se
// necessário.
func (s *FileStorage) WriteText(path string, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "erro ao criar o diretório %s", dir)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "erro ao gravar o arquivo %s", path)
	}

	return nil
}
