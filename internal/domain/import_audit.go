package domain

import "time"

// ImportStatus é o estado de uma execução de importação
type ImportStatus string

const (
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusError      ImportStatus = "error"
)

const (
	// ImportTypeAnalytics identifica importações de streams por DSP
	ImportTypeAnalytics = "analytics"
	// DefaultDistributor é o rótulo gravado quando a distribuidora não é informada
	DefaultDistributor = "general"
)

// ImportAudit representa uma linha do histórico de importações (csv_imports)
type ImportAudit struct {
	ID            int64        `json:"id"`
	Filename      string       `json:"filename"`
	Distributor   string       `json:"distributor"`
	ImportType    string       `json:"import_type"`
	RowsProcessed int          `json:"rows_processed"`
	RowsSuccess   int          `json:"rows_success"`
	RowsError     int          `json:"rows_error"`
	Status        ImportStatus `json:"status"`
	ErrorMessage  *string      `json:"error_message,omitempty"`
	ImportedBy    *string      `json:"imported_by,omitempty"`
	ImportedAt    time.Time    `json:"imported_at"`
	FinishedAt    *time.Time   `json:"finished_at,omitempty"`
}
