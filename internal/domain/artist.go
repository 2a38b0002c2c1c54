// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// DefaultArtistName é o artista usado quando nenhum nome é informado na importação
const DefaultArtistName = "AllMark"

// Artist representa um artista cadastrado. É criado sob demanda na primeira
// importação de um nome ainda desconhecido e nunca é removido pelo pipeline.
type Artist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   *string   `json:"country,omitempty"`
	Genre     *string   `json:"genre,omitempty"`
	Biography *string   `json:"biography,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArtistOverview resume a quantidade de registros de analytics por artista
type ArtistOverview struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RecordsCount int64  `json:"records_count"`
}
