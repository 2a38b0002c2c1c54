package importing

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"github.com/vfg2006/dsp-analytics-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

// fakeTransactor executa a função sem abrir transação real
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	f.calls++
	return fn(nil)
}

type serviceMocks struct {
	artists    *mocks.MockArtistRepository
	analytics  *mocks.MockAnalyticsRepository
	audits     *mocks.MockImportAuditRepository
	transactor *fakeTransactor
}

func newTestService(t *testing.T, ctrl *gomock.Controller, options Options) (*Service, serviceMocks) {
	t.Helper()

	m := serviceMocks{
		artists:    mocks.NewMockArtistRepository(ctrl),
		analytics:  mocks.NewMockAnalyticsRepository(ctrl),
		audits:     mocks.NewMockImportAuditRepository(ctrl),
		transactor: &fakeTransactor{},
	}

	service := NewService(
		options,
		m.transactor,
		m.artists,
		m.analytics,
		m.audits,
		NewDateDecoder(PortugueseMonths(), MonthFallback, time.September),
		NewRevenueEstimator(DefaultRateTable()),
	)

	return service, m
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streams.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func expectAuditCreate(m serviceMocks, id int64) {
	m.audits.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) (int64, error) {
			audit.ID = id
			return id, nil
		})
}

func expectArtist(m serviceMocks, name string) {
	m.artists.EXPECT().
		GetOrCreate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, artist *domain.Artist) (*domain.Artist, error) {
			return &domain.Artist{ID: "art001", Name: artist.Name}, nil
		})
}

func TestService_Process(t *testing.T) {
	defaultOptions := Options{
		DefaultYear:     2025,
		DefaultArtist:   "AllMark",
		RevenueOnUpdate: domain.RevenueKeep,
	}

	tests := []struct {
		name     string
		options  Options
		content  string
		request  func(path string) Request
		setup    func(m serviceMocks)
		validate func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks)
	}{
		{
			name:    "Células vazias, NaN e zero são ignoradas, valores inválidos contam como falha",
			options: defaultOptions,
			content: "DSP,8 set,9 set,10 set\nSpotify,1000,,0\nApple Music,nan,250,abc\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 7)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)

				m.analytics.EXPECT().
					Upsert(gomock.Any(), &domain.AnalyticsRecord{
						ArtistID:  "art001",
						DSP:       "Spotify",
						Date:      time.Date(2025, time.September, 8, 0, 0, 0, 0, time.UTC),
						Streams:   1000,
						Revenue:   3.00,
						Territory: domain.DefaultTerritory,
					}, domain.RevenueKeep).
					Return(nil)

				m.analytics.EXPECT().
					Upsert(gomock.Any(), &domain.AnalyticsRecord{
						ArtistID:  "art001",
						DSP:       "Apple Music",
						Date:      time.Date(2025, time.September, 9, 0, 0, 0, 0, time.UTC),
						Streams:   250,
						Revenue:   1.75,
						Territory: domain.DefaultTerritory,
					}, domain.RevenueKeep).
					Return(nil)

				m.audits.EXPECT().
					Finish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) error {
						assert.Equal(t, int64(7), audit.ID)
						assert.Equal(t, domain.ImportStatusCompleted, audit.Status)
						assert.Equal(t, 6, audit.RowsProcessed)
						assert.Equal(t, 2, audit.RowsSuccess)
						assert.Equal(t, 1, audit.RowsError)
						assert.Nil(t, audit.ErrorMessage)
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, domain.ResultStatusSuccess, result.Status)
				assert.Equal(t, int64(7), result.ImportID)
				assert.Equal(t, "streams.csv", result.File)
				assert.Equal(t, 6, result.RowsProcessed)
				assert.Equal(t, 2, result.RowsSuccess)
				assert.Equal(t, 1, result.RowsError)
				assert.Equal(t, 3, result.RowsSkipped)
				assert.Equal(t, result.RowsProcessed, result.RowsSuccess+result.RowsError+result.RowsSkipped)
				assert.Equal(t, []string{"Spotify", "Apple Music"}, result.DSPs)
				assert.Equal(t, "8 set - 10 set", result.DateRange)
				assert.Equal(t, 1250.0, result.TotalStreams)
				assert.Equal(t, 1, m.transactor.calls)
			},
		},
		{
			name:    "Token de data inválido conta como falha e a execução continua",
			options: defaultOptions,
			content: "DSP,8 set,xx set\nSpotify,10,20\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 1)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().Upsert(gomock.Any(), gomock.Any(), domain.RevenueKeep).Return(nil).Times(1)
				m.audits.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.RowsSuccess)
				assert.Equal(t, 1, result.RowsError)
				assert.Equal(t, 0, result.RowsSkipped)
			},
		},
		{
			name:    "Linha sem DSP conta como falha em cada célula preenchida",
			options: defaultOptions,
			content: "DSP,8 set,9 set\n,10,\nDeezer,5,5\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 1)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
				m.audits.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, 4, result.RowsProcessed)
				assert.Equal(t, 2, result.RowsSuccess)
				assert.Equal(t, 1, result.RowsError)
				assert.Equal(t, 1, result.RowsSkipped)
				assert.Equal(t, []string{"Deezer"}, result.DSPs)
			},
		},
		{
			name: "Política recompute é repassada ao upsert",
			options: Options{
				DefaultYear:     2025,
				DefaultArtist:   "AllMark",
				RevenueOnUpdate: domain.RevenueRecompute,
			},
			content: "DSP,8 set\nSpotify,1500\n",
			request: func(path string) Request {
				return Request{FilePath: path}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 1)
				m.artists.EXPECT().
					GetOrCreate(gomock.Any(), &domain.Artist{Name: "AllMark"}).
					Return(&domain.Artist{ID: "art001", Name: "AllMark"}, nil)
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().
					Upsert(gomock.Any(), gomock.Any(), domain.RevenueRecompute).
					DoAndReturn(func(_ context.Context, record *domain.AnalyticsRecord, _ domain.RevenueOnUpdate) error {
						assert.Equal(t, 2025, record.Date.Year())
						assert.Equal(t, 4.5, record.Revenue)
						return nil
					})
				m.audits.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, "AllMark", result.Artist)
			},
		},
		{
			name:    "Arquivo malformado marca a importação como erro",
			options: defaultOptions,
			content: "Plataforma,8 set\nSpotify,10\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 3)
				m.audits.EXPECT().
					Finish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) error {
						assert.Equal(t, domain.ImportStatusError, audit.Status)
						require.NotNil(t, audit.ErrorMessage)
						assert.Contains(t, *audit.ErrorMessage, "missing DSP column")
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedInput)

				var importErr *ImportError
				require.ErrorAs(t, err, &importErr)
				assert.Equal(t, apiErrors.ErrMalformedInput, importErr.Code)

				assert.Equal(t, domain.ResultStatusError, result.Status)
				assert.Equal(t, int64(3), result.ImportID)
				assert.NotEmpty(t, result.Message)
				assert.Equal(t, 0, m.transactor.calls)
			},
		},
		{
			name:    "Erro de banco no upsert aborta a execução",
			options: defaultOptions,
			content: "DSP,8 set,9 set\nSpotify,10,20\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 4)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().
					Upsert(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database is locked"))
				m.audits.EXPECT().
					Finish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) error {
						assert.Equal(t, domain.ImportStatusError, audit.Status)
						assert.Equal(t, 0, audit.RowsSuccess)
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrStoreAccess)
				assert.Equal(t, domain.ResultStatusError, result.Status)
				assert.Equal(t, 0, result.RowsSuccess)
			},
		},
		{
			name:    "Falha ao registrar o início da importação",
			options: defaultOptions,
			content: "DSP,8 set\nSpotify,10\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				m.audits.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				assert.ErrorIs(t, err, ErrStoreAccess)
				assert.Equal(t, domain.ResultStatusError, result.Status)
			},
		},
		{
			name:    "Falha ao finalizar o histórico não desfaz a importação",
			options: defaultOptions,
			content: "DSP,8 set\nSpotify,10\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 1)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.audits.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, domain.ResultStatusSuccess, result.Status)
				assert.Equal(t, 1, result.RowsSuccess)
			},
		},
		{
			name:    "Requisição inválida é registrada como erro sem ler o arquivo",
			options: defaultOptions,
			content: "DSP,8 set\nSpotify,10\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 1800}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 9)
				m.audits.EXPECT().
					Finish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) error {
						assert.Equal(t, int64(9), audit.ID)
						assert.Equal(t, domain.ImportStatusError, audit.Status)
						require.NotNil(t, audit.ErrorMessage)
						assert.Contains(t, *audit.ErrorMessage, "invalid import request")
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				assert.ErrorIs(t, err, ErrInvalidRequest)

				var importErr *ImportError
				require.ErrorAs(t, err, &importErr)
				assert.Equal(t, apiErrors.ErrInvalidRequest, importErr.Code)
				assert.Equal(t, domain.ResultStatusError, result.Status)
				assert.Equal(t, int64(9), result.ImportID)
				assert.Equal(t, 0, m.transactor.calls)
			},
		},
		{
			name:    "Contagem acima do limite de int64 conta como falha",
			options: defaultOptions,
			content: "DSP,8 set,9 set\nSpotify,1e30,10\n",
			request: func(path string) Request {
				return Request{FilePath: path, ArtistName: "AllMark", Year: 2025}
			},
			setup: func(m serviceMocks) {
				expectAuditCreate(m, 1)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().
					Upsert(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *domain.AnalyticsRecord, _ domain.RevenueOnUpdate) error {
						assert.Equal(t, int64(10), record.Streams)
						assert.GreaterOrEqual(t, record.Revenue, 0.0)
						return nil
					})
				m.audits.EXPECT().
					Finish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) error {
						assert.Equal(t, 1, audit.RowsSuccess)
						assert.Equal(t, 1, audit.RowsError)
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, 1, result.RowsSuccess)
				assert.Equal(t, 1, result.RowsError)
			},
		},
		{
			name:    "Nome original do arquivo vai para o histórico e para o resultado",
			options: defaultOptions,
			content: "DSP,8 set\nSpotify,10\n",
			request: func(path string) Request {
				return Request{FilePath: path, SourceName: "setembro.csv", ImportedBy: "api"}
			},
			setup: func(m serviceMocks) {
				m.audits.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) (int64, error) {
						assert.Equal(t, "setembro.csv", audit.Filename)
						require.NotNil(t, audit.ImportedBy)
						assert.Equal(t, "api", *audit.ImportedBy)
						audit.ID = 5
						return 5, nil
					})
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.audits.EXPECT().Finish(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *domain.ImportResult, err error, m serviceMocks) {
				require.NoError(t, err)
				assert.Equal(t, "setembro.csv", result.File)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(t, ctrl, tt.options)
			tt.setup(m)

			path := writeCSV(t, tt.content)
			result, err := service.Process(context.Background(), tt.request(path))

			require.NotNil(t, result)
			tt.validate(t, result, err, m)
		})
	}
}

func TestParseStreams(t *testing.T) {
	tests := []struct {
		raw         string
		wantStreams int64
		wantPresent bool
		wantErr     bool
	}{
		{raw: "1000", wantStreams: 1000, wantPresent: true},
		{raw: " 42 ", wantStreams: 42, wantPresent: true},
		{raw: "1500.0", wantStreams: 1500, wantPresent: true},
		{raw: "12.9", wantStreams: 12, wantPresent: true},
		{raw: "", wantPresent: false},
		{raw: "nan", wantPresent: false},
		{raw: "NaN", wantPresent: false},
		{raw: "0", wantPresent: false},
		{raw: "0.0", wantPresent: false},
		{raw: "-5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1,000", wantErr: true},
		{raw: "9e18", wantStreams: 9000000000000000000, wantPresent: true},
		{raw: "9223372036854775807", wantErr: true},
		{raw: "1e30", wantErr: true},
		{raw: "1e400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			streams, present, err := parseStreams(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStreamCount)
				assert.True(t, IsCellError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, present)
			assert.Equal(t, tt.wantStreams, streams)
		})
	}
}

func TestService_ProcessFinishesAuditAfterCancel(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		setup      func(m serviceMocks, cancel context.CancelFunc)
		wantStatus domain.ImportStatus
	}{
		{
			name:    "Cancelamento durante a execução encerra o histórico como erro",
			content: "DSP,8 set\nSpotify,10\n",
			setup: func(m serviceMocks, cancel context.CancelFunc) {
				m.audits.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, audit *domain.ImportAudit) (int64, error) {
						audit.ID = 1
						cancel()
						return 1, nil
					})
				m.artists.EXPECT().
					GetOrCreate(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, _ *domain.Artist) (*domain.Artist, error) {
						return nil, ctx.Err()
					})
			},
			wantStatus: domain.ImportStatusError,
		},
		{
			name:    "Cancelamento após o commit encerra o histórico como concluído",
			content: "DSP,8 set\nSpotify,10\n",
			setup: func(m serviceMocks, cancel context.CancelFunc) {
				expectAuditCreate(m, 1)
				expectArtist(m, "AllMark")
				m.analytics.EXPECT().WithTx(gomock.Any()).Return(m.analytics)
				m.analytics.EXPECT().
					Upsert(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(context.Context, *domain.AnalyticsRecord, domain.RevenueOnUpdate) error {
						cancel()
						return nil
					})
			},
			wantStatus: domain.ImportStatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, m := newTestService(t, ctrl, Options{DefaultYear: 2025})
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			tt.setup(m, cancel)
			m.audits.EXPECT().
				Finish(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, audit *domain.ImportAudit) error {
					require.NoError(t, ctx.Err())
					assert.Equal(t, tt.wantStatus, audit.Status)
					return nil
				})

			result, _ := service.Process(ctx, Request{FilePath: writeCSV(t, tt.content)})
			require.NotNil(t, result)
		})
	}
}
