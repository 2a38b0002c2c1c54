package importing_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/migration"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/summarizing"
)

type pipeline struct {
	conn       *database.Connection
	importer   *importing.Service
	summarizer summarizing.Summarizer
	analytics  repository.AnalyticsRepository
	audits     repository.ImportAuditRepository
}

// cancelAfterCreate cancela o contexto do chamador assim que o histórico é criado
type cancelAfterCreate struct {
	repository.ImportAuditRepository
	cancel context.CancelFunc
}

func (c cancelAfterCreate) Create(ctx context.Context, audit *domain.ImportAudit) (int64, error) {
	id, err := c.ImportAuditRepository.Create(ctx, audit)
	c.cancel()
	return id, err
}

func newPipeline(t *testing.T, onUpdate domain.RevenueOnUpdate) *pipeline {
	t.Helper()
	ctx := context.Background()

	conn, err := database.NewConnection(ctx, config.Database{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "analytics.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migration.Run(ctx, conn))

	return newPipelineWithAudits(t, conn, onUpdate, repository.NewImportAuditRepository(conn))
}

func newPipelineWithAudits(t *testing.T, conn *database.Connection, onUpdate domain.RevenueOnUpdate, audits repository.ImportAuditRepository) *pipeline {
	t.Helper()

	artists := repository.NewArtistRepository(conn)
	analytics := repository.NewAnalyticsRepository(conn)

	importer := importing.NewService(
		importing.Options{DefaultYear: 2025, RevenueOnUpdate: onUpdate},
		conn,
		artists,
		analytics,
		audits,
		importing.NewDateDecoder(importing.PortugueseMonths(), importing.MonthFallback, time.September),
		importing.NewRevenueEstimator(importing.DefaultRateTable()),
	)

	return &pipeline{
		conn:       conn,
		importer:   importer,
		summarizer: summarizing.NewService(artists, analytics, audits),
		analytics:  analytics,
		audits:     audits,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipeline_ImportAndSummarize(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, domain.RevenueKeep)

	path := writeFile(t, "setembro.csv", "DSP,8 set,9 set\nSpotify,1000,\nApple Music,250,nan\n")

	result, err := p.importer.Process(ctx, importing.Request{FilePath: path, ArtistName: "AllMark", ImportedBy: "cli"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultStatusSuccess, result.Status)
	assert.Equal(t, 4, result.RowsProcessed)
	assert.Equal(t, 2, result.RowsSuccess)
	assert.Equal(t, 0, result.RowsError)
	assert.Equal(t, 2, result.RowsSkipped)
	assert.Equal(t, 1250.0, result.TotalStreams)

	summary, err := p.summarizer.Summarize(ctx, "AllMark")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), summary.TotalStreams)
	assert.Equal(t, 4.75, summary.TotalRevenue)
	require.Len(t, summary.DSPs, 2)
	assert.Equal(t, domain.DSPSummary{DSP: "Spotify", Streams: 1000, Revenue: 3.00, Days: 1}, summary.DSPs[0])
	assert.Equal(t, domain.DSPSummary{DSP: "Apple Music", Streams: 250, Revenue: 1.75, Days: 1}, summary.DSPs[1])
	require.NotNil(t, summary.DateRange.Start)
	assert.Equal(t, "2025-09-08", *summary.DateRange.Start)

	audits, err := p.audits.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, domain.ImportStatusCompleted, audits[0].Status)
	assert.Equal(t, 2, audits[0].RowsSuccess)
}

func TestPipeline_ReimportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, domain.RevenueKeep)

	path := writeFile(t, "setembro.csv", "DSP,8 set\nSpotify,1000\n")
	for i := 0; i < 2; i++ {
		_, err := p.importer.Process(ctx, importing.Request{FilePath: path})
		require.NoError(t, err)
	}

	count, err := p.analytics.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	audits, err := p.audits.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, audits, 2)
}

func TestPipeline_ReimportUpdatesStreams(t *testing.T) {
	tests := []struct {
		name        string
		onUpdate    domain.RevenueOnUpdate
		wantRevenue float64
	}{
		{name: "Mantém a receita original", onUpdate: domain.RevenueKeep, wantRevenue: 3.00},
		{name: "Recalcula a receita", onUpdate: domain.RevenueRecompute, wantRevenue: 4.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p := newPipeline(t, tt.onUpdate)

			_, err := p.importer.Process(ctx, importing.Request{FilePath: writeFile(t, "a.csv", "DSP,8 set\nSpotify,1000\n")})
			require.NoError(t, err)
			_, err = p.importer.Process(ctx, importing.Request{FilePath: writeFile(t, "b.csv", "DSP,8 set\nSpotify,1500\n")})
			require.NoError(t, err)

			summary, err := p.summarizer.Summarize(ctx, domain.DefaultArtistName)
			require.NoError(t, err)
			require.Len(t, summary.DSPs, 1)
			assert.Equal(t, int64(1500), summary.DSPs[0].Streams)
			assert.Equal(t, tt.wantRevenue, summary.TotalRevenue)
			assert.Equal(t, 1, summary.TotalRecords)
		})
	}
}

func TestPipeline_MalformedFileIsAudited(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, domain.RevenueKeep)

	result, err := p.importer.Process(ctx, importing.Request{FilePath: writeFile(t, "quebrado.csv", "Plataforma,Total\nSpotify,10\n")})
	require.Error(t, err)
	assert.ErrorIs(t, err, importing.ErrMalformedInput)
	assert.Equal(t, domain.ResultStatusError, result.Status)

	count, err := p.analytics.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	audits, err := p.audits.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, domain.ImportStatusError, audits[0].Status)
	assert.NotNil(t, audits[0].ErrorMessage)
}

func TestPipeline_CancelledRunStillFinishesAudit(t *testing.T) {
	p := newPipeline(t, domain.RevenueKeep)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelling := newPipelineWithAudits(t, p.conn, domain.RevenueKeep, cancelAfterCreate{
		ImportAuditRepository: p.audits,
		cancel:                cancel,
	})

	result, err := cancelling.importer.Process(ctx, importing.Request{FilePath: writeFile(t, "setembro.csv", "DSP,8 set\nSpotify,1000\n")})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.ResultStatusError, result.Status)

	audits, err := p.audits.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.Equal(t, domain.ImportStatusError, audits[0].Status)
	assert.NotNil(t, audits[0].FinishedAt)
}

func TestPipeline_OverflowingCellIsRejected(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, domain.RevenueKeep)

	result, err := p.importer.Process(ctx, importing.Request{FilePath: writeFile(t, "setembro.csv", "DSP,8 set,9 set\nSpotify,1e30,10\n")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsSuccess)
	assert.Equal(t, 1, result.RowsError)

	summary, err := p.summarizer.Summarize(ctx, domain.DefaultArtistName)
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalStreams)
	assert.GreaterOrEqual(t, summary.TotalRevenue, 0.0)
}
