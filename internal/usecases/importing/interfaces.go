package importing

import (
	"context"

	"github.com/vfg2006/dsp-analytics-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/importer.go -package=mocks

// Importer define a interface do pipeline de importação usada pela API, pela CLI e pelo agendador
type Importer interface {
	// Process importa um arquivo de streams por DSP e registra a execução no histórico
	Process(ctx context.Context, req Request) (*domain.ImportResult, error)
}

var _ Importer = (*Service)(nil)
