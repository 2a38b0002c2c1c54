package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// cabe na coluna artists.id (VARCHAR(21))
	artistIDLength = 12
)

// NewArtistID gera o identificador público de um artista
func NewArtistID() (string, error) {
	return gonanoid.Generate(idAlphabet, artistIDLength)
}
