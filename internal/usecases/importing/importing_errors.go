package importing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/dsp-analytics-api/pkg/apiErrors"
)

// Erros específicos para o contexto de importação
var (
	// Erros de arquivo: abortam a execução inteira
	ErrMalformedInput     = errors.New("malformed input file")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrMissingLabelColumn = errors.New("missing DSP column")
	ErrNoDateColumns      = errors.New("no date columns")

	// Erros de célula: contados como falha, a execução continua
	ErrDateParse          = errors.New("invalid date token")
	ErrInvalidStreamCount = errors.New("invalid stream count")
	ErrMissingPlatform    = errors.New("missing DSP label")

	// Erros de banco de dados: abortam a execução, nada é gravado
	ErrStoreAccess = errors.New("store access error")

	ErrInvalidRequest = errors.New("invalid import request")
)

// ImportError é um erro com contexto adicional para importações
type ImportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	File    string // Arquivo envolvido
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ImportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError cria um novo ImportError
func NewImportError(err error, file string, details string) *ImportError {
	return &ImportError{
		Err:     err,
		Code:    codeFor(err),
		File:    file,
		Details: details,
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInput), errors.Is(err, ErrUnsupportedFormat):
		return apiErrors.ErrMalformedInput
	case errors.Is(err, ErrInvalidRequest):
		return apiErrors.ErrInvalidRequest
	case errors.Is(err, ErrStoreAccess):
		return apiErrors.ErrDatabaseOperation
	default:
		return apiErrors.ErrInternalServer
	}
}

// DateParseError descreve um token de data que não pôde ser convertido
type DateParseError struct {
	Token  string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrDateParse.Error(), e.Token, e.Reason)
}

func (e *DateParseError) Unwrap() error {
	return ErrDateParse
}
