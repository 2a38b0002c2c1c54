package summarizing

import "errors"

// Erros específicos para o contexto de resumo de analytics
var (
	ErrArtistNameRequired = errors.New("artist name is required")
	ErrArtistNotFound     = errors.New("artist not found")
)
