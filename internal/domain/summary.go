package domain

// DSPSummary são os totais de uma DSP para um artista
type DSPSummary struct {
	DSP     string  `json:"dsp"`
	Streams int64   `json:"streams"`
	Revenue float64 `json:"revenue"`
	Days    int     `json:"days"`
}

// DateRange é o intervalo de datas persistido, no formato AAAA-MM-DD
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// AnalyticsSummary é a projeção de leitura dos registros de um artista
type AnalyticsSummary struct {
	Artist       string       `json:"artist"`
	TotalStreams int64        `json:"total_streams"`
	TotalRevenue float64      `json:"total_revenue"`
	TotalRecords int          `json:"total_records"`
	DSPs         []DSPSummary `json:"dsps"`
	DateRange    DateRange    `json:"date_range"`
}

// AnalyticsOverview é a visão geral do banco: artistas, DSPs e importações
type AnalyticsOverview struct {
	Artists      []*ArtistOverview `json:"artists"`
	TotalRecords int64             `json:"total_records"`
	DSPs         []*DSPStats       `json:"dsps"`
	Imports      []*ImportAudit    `json:"imports"`
}
