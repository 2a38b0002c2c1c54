package summarizing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func day(d int) time.Time {
	return time.Date(2025, time.September, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArtistRepo := mocks.NewMockArtistRepository(ctrl)
	mockAnalyticsRepo := mocks.NewMockAnalyticsRepository(ctrl)
	mockAuditRepo := mocks.NewMockImportAuditRepository(ctrl)

	service := NewService(mockArtistRepo, mockAnalyticsRepo, mockAuditRepo)
	artist := &domain.Artist{ID: "art001", Name: "AllMark"}

	tests := []struct {
		name       string
		artistName string
		setup      func()
		validate   func(t *testing.T, summary *domain.AnalyticsSummary, err error)
	}{
		{
			name:       "Agrega streams, receita e dias por DSP",
			artistName: "AllMark",
			setup: func() {
				mockArtistRepo.EXPECT().GetByName(gomock.Any(), "AllMark").Return(artist, nil)
				mockAnalyticsRepo.EXPECT().
					ListByArtist(gomock.Any(), "art001").
					Return([]*domain.AnalyticsRecord{
						{DSP: "Spotify", Date: day(8), Streams: 1000, Revenue: 3.00},
						{DSP: "Apple Music", Date: day(8), Streams: 300, Revenue: 2.10},
						{DSP: "Spotify", Date: day(9), Streams: 1200, Revenue: 3.60},
						{DSP: "Deezer", Date: day(10), Streams: 101, Revenue: 0.61},
						{DSP: "Deezer", Date: day(7), Streams: 99, Revenue: 0.59},
					}, nil)
			},
			validate: func(t *testing.T, summary *domain.AnalyticsSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, "AllMark", summary.Artist)
				assert.Equal(t, int64(2700), summary.TotalStreams)
				assert.Equal(t, 9.90, summary.TotalRevenue)
				assert.Equal(t, 5, summary.TotalRecords)

				require.Len(t, summary.DSPs, 3)
				assert.Equal(t, domain.DSPSummary{DSP: "Spotify", Streams: 2200, Revenue: 6.60, Days: 2}, summary.DSPs[0])
				assert.Equal(t, domain.DSPSummary{DSP: "Apple Music", Streams: 300, Revenue: 2.10, Days: 1}, summary.DSPs[1])
				assert.Equal(t, domain.DSPSummary{DSP: "Deezer", Streams: 200, Revenue: 1.20, Days: 2}, summary.DSPs[2])

				require.NotNil(t, summary.DateRange.Start)
				require.NotNil(t, summary.DateRange.End)
				assert.Equal(t, "2025-09-07", *summary.DateRange.Start)
				assert.Equal(t, "2025-09-10", *summary.DateRange.End)

				var sum int64
				for _, dsp := range summary.DSPs {
					sum += dsp.Streams
				}
				assert.Equal(t, summary.TotalStreams, sum)
			},
		},
		{
			name:       "Artista sem registros devolve totais zerados",
			artistName: " AllMark ",
			setup: func() {
				mockArtistRepo.EXPECT().GetByName(gomock.Any(), "AllMark").Return(artist, nil)
				mockAnalyticsRepo.EXPECT().ListByArtist(gomock.Any(), "art001").Return([]*domain.AnalyticsRecord{}, nil)
			},
			validate: func(t *testing.T, summary *domain.AnalyticsSummary, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(0), summary.TotalStreams)
				assert.Equal(t, 0.0, summary.TotalRevenue)
				assert.Equal(t, 0, summary.TotalRecords)
				assert.Empty(t, summary.DSPs)
				assert.NotNil(t, summary.DSPs)
				assert.Nil(t, summary.DateRange.Start)
				assert.Nil(t, summary.DateRange.End)
			},
		},
		{
			name:       "Artista desconhecido",
			artistName: "Ninguém",
			setup: func() {
				mockArtistRepo.EXPECT().GetByName(gomock.Any(), "Ninguém").Return(nil, nil)
			},
			validate: func(t *testing.T, summary *domain.AnalyticsSummary, err error) {
				assert.Nil(t, summary)
				assert.ErrorIs(t, err, ErrArtistNotFound)
			},
		},
		{
			name:       "Nome vazio",
			artistName: "   ",
			setup:      func() {},
			validate: func(t *testing.T, summary *domain.AnalyticsSummary, err error) {
				assert.ErrorIs(t, err, ErrArtistNameRequired)
			},
		},
		{
			name:       "Erro de banco ao listar registros",
			artistName: "AllMark",
			setup: func() {
				mockArtistRepo.EXPECT().GetByName(gomock.Any(), "AllMark").Return(artist, nil)
				mockAnalyticsRepo.EXPECT().ListByArtist(gomock.Any(), "art001").Return(nil, errors.New("database is locked"))
			},
			validate: func(t *testing.T, summary *domain.AnalyticsSummary, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrArtistNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			summary, err := service.Summarize(context.Background(), tt.artistName)
			tt.validate(t, summary, err)
		})
	}
}

func TestService_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArtistRepo := mocks.NewMockArtistRepository(ctrl)
	mockAnalyticsRepo := mocks.NewMockAnalyticsRepository(ctrl)
	mockAuditRepo := mocks.NewMockImportAuditRepository(ctrl)

	service := NewService(mockArtistRepo, mockAnalyticsRepo, mockAuditRepo)

	mockArtistRepo.EXPECT().
		ListWithRecordsCount(gomock.Any()).
		Return([]*domain.ArtistOverview{{ID: "art001", Name: "AllMark", RecordsCount: 3}}, nil)
	mockAnalyticsRepo.EXPECT().CountAll(gomock.Any()).Return(int64(3), nil)
	mockAnalyticsRepo.EXPECT().
		StatsByDSP(gomock.Any()).
		Return([]*domain.DSPStats{{DSP: "Spotify", RecordsCount: 3, TotalStreams: 3000}}, nil)
	mockAuditRepo.EXPECT().
		List(gomock.Any(), uint64(DefaultImportsLimit)).
		Return([]*domain.ImportAudit{{ID: 1, Filename: "setembro.csv", Status: domain.ImportStatusCompleted}}, nil)

	overview, err := service.Overview(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, overview.Artists, 1)
	assert.Equal(t, int64(3), overview.TotalRecords)
	assert.Len(t, overview.DSPs, 1)
	assert.Len(t, overview.Imports, 1)
}

func TestService_OverviewError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockArtistRepo := mocks.NewMockArtistRepository(ctrl)
	service := NewService(mockArtistRepo, mocks.NewMockAnalyticsRepository(ctrl), mocks.NewMockImportAuditRepository(ctrl))

	mockArtistRepo.EXPECT().ListWithRecordsCount(gomock.Any()).Return(nil, errors.New("connection refused"))

	overview, err := service.Overview(context.Background(), 5)
	assert.Nil(t, overview)
	assert.Error(t, err)
}
