package domain

// ResultStatus é o status devolvido ao chamador de uma importação
type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusError   ResultStatus = "error"
)

// ImportResult é a resposta de uma execução de importação de analytics.
// Em caso de erro apenas Status, File, ImportID e Message são preenchidos.
type ImportResult struct {
	ImportID      int64        `json:"import_id,omitempty"`
	Status        ResultStatus `json:"status"`
	File          string       `json:"file,omitempty"`
	Artist        string       `json:"artist,omitempty"`
	RowsProcessed int          `json:"rows_processed"`
	RowsSuccess   int          `json:"rows_success"`
	RowsError     int          `json:"rows_error"`
	RowsSkipped   int          `json:"rows_skipped"`
	DSPs          []string     `json:"dsps,omitempty"`
	DateRange     string       `json:"date_range,omitempty"`
	TotalStreams  float64      `json:"total_streams"`
	Message       string       `json:"message,omitempty"`
}
