package domain

import "time"

// DefaultTerritory é o território gravado quando o arquivo não informa nenhum
const DefaultTerritory = "Global"

// AnalyticsRecord representa os streams de um artista em uma DSP em um dia.
// A chave natural é (ArtistID, DSP, Date).
type AnalyticsRecord struct {
	ID        int64     `json:"id"`
	ArtistID  string    `json:"artist_id"`
	DSP       string    `json:"dsp"`
	Date      time.Time `json:"date"`
	Streams   int64     `json:"streams"`
	Revenue   float64   `json:"revenue"`
	Territory string    `json:"territory"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DSPStats agrega os registros de uma DSP em todo o banco
type DSPStats struct {
	DSP          string `json:"dsp"`
	RecordsCount int64  `json:"records_count"`
	TotalStreams int64  `json:"total_streams"`
}

// RevenueOnUpdate define o que acontece com a receita quando um registro
// existente recebe uma nova contagem de streams
type RevenueOnUpdate string

const (
	// RevenueKeep mantém a receita calculada na inserção (comportamento histórico)
	RevenueKeep RevenueOnUpdate = "keep"
	// RevenueRecompute recalcula a receita a partir da nova contagem
	RevenueRecompute RevenueOnUpdate = "recompute"
)
