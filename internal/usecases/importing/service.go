package importing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"github.com/vfg2006/dsp-analytics-api/pkg/metrics"
)

// Request descreve uma execução de importação
type Request struct {
	FilePath    string `validate:"required"`
	// SourceName é o nome original do arquivo, quando FilePath aponta para uma cópia
	SourceName  string `validate:"max=255"`
	ArtistName  string `validate:"required,max=200"`
	Year        int    `validate:"gte=1900,lte=9999"`
	Distributor string `validate:"max=50"`
	ImportedBy  string `validate:"max=100"`
}

// Options são os parâmetros do pipeline vindos da configuração
type Options struct {
	DefaultYear     int
	DefaultArtist   string
	Distributor     string
	Territory       string
	RevenueOnUpdate domain.RevenueOnUpdate
}

type cellOutcome int

const (
	cellSkipped cellOutcome = iota
	cellSucceeded
	cellFailed
)

// runCounters acumula os resultados das células de uma execução
type runCounters struct {
	succeeded int
	failed    int
	skipped   int
	rawSum    float64
}

// Service implementa o pipeline de importação de analytics por DSP
type Service struct {
	options       Options
	transactor    database.Transactor
	artistRepo    repository.ArtistRepository
	analyticsRepo repository.AnalyticsRepository
	auditRepo     repository.ImportAuditRepository
	decoder       *DateDecoder
	estimator     *RevenueEstimator
	validate      *validator.Validate
	// runMutex serializa as execuções deste processo
	runMutex sync.Mutex
}

// NewService cria uma nova instância do serviço de importação
func NewService(
	options Options,
	transactor database.Transactor,
	artistRepo repository.ArtistRepository,
	analyticsRepo repository.AnalyticsRepository,
	auditRepo repository.ImportAuditRepository,
	decoder *DateDecoder,
	estimator *RevenueEstimator,
) *Service {
	if options.RevenueOnUpdate == "" {
		options.RevenueOnUpdate = domain.RevenueKeep
	}
	if options.Territory == "" {
		options.Territory = domain.DefaultTerritory
	}
	if options.Distributor == "" {
		options.Distributor = domain.DefaultDistributor
	}
	if options.DefaultArtist == "" {
		options.DefaultArtist = domain.DefaultArtistName
	}

	return &Service{
		options:       options,
		transactor:    transactor,
		artistRepo:    artistRepo,
		analyticsRepo: analyticsRepo,
		auditRepo:     auditRepo,
		decoder:       decoder,
		estimator:     estimator,
		validate:      validator.New(),
	}
}

// OptionsFromConfig converte a configuração da aplicação em Options
func OptionsFromConfig(cfg config.Import) Options {
	return Options{
		DefaultYear:     cfg.DefaultYear,
		DefaultArtist:   cfg.DefaultArtist,
		Distributor:     cfg.Distributor,
		Territory:       cfg.Territory,
		RevenueOnUpdate: domain.RevenueOnUpdate(cfg.RevenueOnUpdate),
	}
}

// DecoderFromConfig monta o decodificador de datas com a tabela pt-BR
func DecoderFromConfig(cfg config.Import) *DateDecoder {
	return NewDateDecoder(PortugueseMonths(), UnknownMonthPolicy(cfg.UnknownMonth), time.Month(cfg.FallbackMonth))
}

// EstimatorFromConfig monta o estimador com a tabela padrão e o arquivo opcional
func EstimatorFromConfig(cfg config.Import) (*RevenueEstimator, error) {
	table := DefaultRateTable()
	table.Default = cfg.DefaultRate

	if cfg.RatesFile != "" {
		loaded, err := LoadRateTable(cfg.RatesFile, table)
		if err != nil {
			return nil, err
		}
		table = loaded
		logrus.WithField("rates_file", cfg.RatesFile).Infof("Tabela de tarifas carregada com %d DSPs", len(table.Rates))
	}

	return NewRevenueEstimator(table), nil
}

// Process importa um arquivo de streams por DSP para o artista informado.
// Sempre devolve um resultado com status definido; em caso de falha do
// arquivo ou do banco o erro também é devolvido como *ImportError.
func (s *Service) Process(ctx context.Context, req Request) (*domain.ImportResult, error) {
	req = s.withDefaults(req)
	file := req.SourceName
	if file == "" {
		file = filepath.Base(req.FilePath)
	}

	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	startTime := time.Now()
	defer func() {
		metrics.ImportDuration.Observe(time.Since(startTime).Seconds())
	}()

	logger := logrus.WithFields(logrus.Fields{
		"file":   file,
		"artist": req.ArtistName,
		"year":   req.Year,
	})
	logger.Info("Processando arquivo de analytics")

	// o registro é criado antes da validação, com os campos limitados ao tamanho das colunas
	audit := &domain.ImportAudit{
		Filename:    clip(file, 255),
		Distributor: clip(req.Distributor, 50),
		ImportType:  domain.ImportTypeAnalytics,
		Status:      domain.ImportStatusProcessing,
	}
	if req.ImportedBy != "" {
		importedBy := clip(req.ImportedBy, 100)
		audit.ImportedBy = &importedBy
	}

	if _, err := s.auditRepo.Create(ctx, audit); err != nil {
		logger.WithError(err).Error("Erro ao registrar início da importação")
		metrics.ImportsTotal.WithLabelValues(string(domain.ImportStatusError)).Inc()
		importErr := NewImportError(fmt.Errorf("%w: %w", ErrStoreAccess, err), file, "")
		return errorResult(0, file, importErr), importErr
	}

	if err := s.validate.Struct(req); err != nil {
		return s.fail(ctx, audit, NewImportError(ErrInvalidRequest, file, err.Error()))
	}

	table, err := ReadTable(req.FilePath)
	if err != nil {
		return s.fail(ctx, audit, NewImportError(err, file, ""))
	}

	logger.WithFields(logrus.Fields{
		"rows":         len(table.Rows),
		"date_columns": len(table.DateColumns),
	}).Infof("Arquivo carregado, colunas de data: %v", table.DateColumns)

	artist, err := s.artistRepo.GetOrCreate(ctx, &domain.Artist{Name: req.ArtistName})
	if err != nil {
		return s.fail(ctx, audit, NewImportError(fmt.Errorf("%w: %w", ErrStoreAccess, err), file, "erro ao obter artista"))
	}

	var counters runCounters
	err = s.transactor.RunInTransaction(ctx, func(tx *sql.Tx) error {
		// a transação pode ser repetida pelo driver, os contadores recomeçam do zero
		counters = runCounters{}
		records := s.analyticsRepo.WithTx(tx)
		return s.upsertTable(ctx, records, artist, table, req.Year, &counters)
	})
	if err != nil {
		return s.fail(ctx, audit, NewImportError(fmt.Errorf("%w: %w", ErrStoreAccess, err), file, ""))
	}

	audit.Status = domain.ImportStatusCompleted
	audit.RowsProcessed = table.TotalCells()
	audit.RowsSuccess = counters.succeeded
	audit.RowsError = counters.failed
	if err := s.auditRepo.Finish(context.WithoutCancel(ctx), audit); err != nil {
		// os registros já foram gravados, apenas o histórico fica desatualizado
		logger.WithError(err).Error("Erro ao finalizar registro de importação")
	}

	metrics.ImportsTotal.WithLabelValues(string(domain.ImportStatusCompleted)).Inc()
	metrics.ImportCellsTotal.WithLabelValues(metrics.CellSucceeded).Add(float64(counters.succeeded))
	metrics.ImportCellsTotal.WithLabelValues(metrics.CellFailed).Add(float64(counters.failed))
	metrics.ImportCellsTotal.WithLabelValues(metrics.CellSkipped).Add(float64(counters.skipped))

	result := &domain.ImportResult{
		ImportID:      audit.ID,
		Status:        domain.ResultStatusSuccess,
		File:          file,
		Artist:        req.ArtistName,
		RowsProcessed: table.TotalCells(),
		RowsSuccess:   counters.succeeded,
		RowsError:     counters.failed,
		RowsSkipped:   counters.skipped,
		DSPs:          table.DSPs(),
		DateRange:     table.DateRange(),
		TotalStreams:  counters.rawSum,
	}

	logger.WithFields(logrus.Fields{
		"rows_processed": result.RowsProcessed,
		"rows_success":   result.RowsSuccess,
		"rows_error":     result.RowsError,
		"rows_skipped":   result.RowsSkipped,
		"duration":       time.Since(startTime).String(),
	}).Info("Processamento concluído")

	return result, nil
}

func (s *Service) withDefaults(req Request) Request {
	req.ArtistName = strings.TrimSpace(req.ArtistName)
	if req.ArtistName == "" {
		req.ArtistName = s.options.DefaultArtist
	}
	if req.Year == 0 {
		req.Year = s.options.DefaultYear
	}
	if req.Distributor == "" {
		req.Distributor = s.options.Distributor
	}
	return req
}

// upsertTable percorre todas as células do arquivo. Falhas de célula são
// contadas e registradas em log; apenas erros de banco interrompem o laço.
func (s *Service) upsertTable(
	ctx context.Context,
	records repository.AnalyticsRepository,
	artist *domain.Artist,
	table *Table,
	year int,
	counters *runCounters,
) error {
	for _, row := range table.Rows {
		for i, token := range table.DateColumns {
			raw := row.Values[i]
			if value, ok := parseNumber(raw); ok {
				counters.rawSum += value
			}

			outcome, err := s.upsertCell(ctx, records, artist, row.DSP, token, raw, year)
			if err != nil {
				return err
			}

			switch outcome {
			case cellSucceeded:
				counters.succeeded++
			case cellFailed:
				counters.failed++
			default:
				counters.skipped++
			}
		}
	}
	return nil
}

func (s *Service) upsertCell(
	ctx context.Context,
	records repository.AnalyticsRepository,
	artist *domain.Artist,
	dsp string,
	token string,
	raw string,
	year int,
) (cellOutcome, error) {
	logger := logrus.WithFields(logrus.Fields{
		"dsp":        dsp,
		"date_token": token,
	})

	streams, present, err := parseStreams(raw)
	if err != nil {
		logger.WithError(err).Errorf("Erro ao processar %s - %s", dsp, token)
		return cellFailed, nil
	}
	if !present {
		return cellSkipped, nil
	}

	if dsp == "" {
		logger.WithError(ErrMissingPlatform).Errorf("Erro ao processar coluna %s", token)
		return cellFailed, nil
	}

	date, err := s.decoder.Decode(token, year)
	if err != nil {
		logger.WithError(err).Errorf("Erro ao processar %s - %s", dsp, token)
		return cellFailed, nil
	}

	record := &domain.AnalyticsRecord{
		ArtistID:  artist.ID,
		DSP:       dsp,
		Date:      date,
		Streams:   streams,
		Revenue:   s.estimator.Estimate(dsp, streams),
		Territory: s.options.Territory,
	}

	if err := records.Upsert(ctx, record, s.options.RevenueOnUpdate); err != nil {
		return cellFailed, err
	}

	logger.Debugf("Gravado: %s - %s - %d streams", dsp, date.Format(time.DateOnly), streams)
	return cellSucceeded, nil
}

// fail marca a importação como erro e monta o resultado devolvido ao chamador
func (s *Service) fail(ctx context.Context, audit *domain.ImportAudit, importErr *ImportError) (*domain.ImportResult, error) {
	logrus.WithError(importErr).WithField("file", audit.Filename).Error("Erro no processamento")

	message := importErr.Error()
	audit.Status = domain.ImportStatusError
	audit.ErrorMessage = &message

	// o histórico é encerrado mesmo que o chamador tenha cancelado o contexto
	if err := s.auditRepo.Finish(context.WithoutCancel(ctx), audit); err != nil {
		logrus.WithError(err).Error("Erro ao registrar falha da importação")
	}

	metrics.ImportsTotal.WithLabelValues(string(domain.ImportStatusError)).Inc()

	return errorResult(audit.ID, audit.Filename, importErr), importErr
}

func errorResult(importID int64, file string, err error) *domain.ImportResult {
	return &domain.ImportResult{
		ImportID: importID,
		Status:   domain.ResultStatusError,
		File:     file,
		Message:  err.Error(),
	}
}

func clip(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

// parseNumber interpreta o valor bruto da célula; vazio e NaN não são números
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// parseStreams devolve a contagem de streams da célula. present é falso para
// células vazias, NaN ou zero, que não contam como sucesso nem como falha.
func parseStreams(raw string) (streams int64, present bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return 0, false, nil
	}

	value, ok := parseNumber(trimmed)
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidStreamCount, raw)
	}
	if value == 0 {
		return 0, false, nil
	}
	if value < 0 {
		return 0, false, fmt.Errorf("%w: valor negativo %q", ErrInvalidStreamCount, raw)
	}
	// float64(math.MaxInt64) arredonda para 2^63, que já não cabe em int64
	if value >= math.MaxInt64 {
		return 0, false, fmt.Errorf("%w: valor fora do intervalo %q", ErrInvalidStreamCount, raw)
	}

	return int64(value), true, nil
}

// IsCellError indica se o erro é contado por célula e não aborta a execução
func IsCellError(err error) bool {
	return errors.Is(err, ErrDateParse) || errors.Is(err, ErrInvalidStreamCount) || errors.Is(err, ErrMissingPlatform)
}
