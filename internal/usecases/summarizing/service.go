package summarizing

//go:generate mockgen -source=service.go -destination=mocks/summarizer.go -package=mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"github.com/vfg2006/dsp-analytics-api/pkg/utils"
)

// DefaultImportsLimit é a quantidade de importações exibidas na visão geral
const DefaultImportsLimit = 10

// Summarizer define a interface de leitura dos analytics persistidos
type Summarizer interface {
	// Summarize agrega todos os registros do artista por DSP
	Summarize(ctx context.Context, artistName string) (*domain.AnalyticsSummary, error)
	// Overview devolve artistas, estatísticas por DSP e as últimas importações
	Overview(ctx context.Context, importsLimit uint64) (*domain.AnalyticsOverview, error)
}

type Service struct {
	artistRepo    repository.ArtistRepository
	analyticsRepo repository.AnalyticsRepository
	auditRepo     repository.ImportAuditRepository
}

// NewService cria uma nova instância do serviço de resumo
func NewService(
	artistRepo repository.ArtistRepository,
	analyticsRepo repository.AnalyticsRepository,
	auditRepo repository.ImportAuditRepository,
) Summarizer {
	return &Service{
		artistRepo:    artistRepo,
		analyticsRepo: analyticsRepo,
		auditRepo:     auditRepo,
	}
}

// Summarize recalcula os totais a partir do banco em toda chamada
func (s *Service) Summarize(ctx context.Context, artistName string) (*domain.AnalyticsSummary, error) {
	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return nil, ErrArtistNameRequired
	}

	artist, err := s.artistRepo.GetByName(ctx, artistName)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar artista: %w", err)
	}
	if artist == nil {
		return nil, fmt.Errorf("%w: %s", ErrArtistNotFound, artistName)
	}

	records, err := s.analyticsRepo.ListByArtist(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar analytics do artista: %w", err)
	}

	summary := &domain.AnalyticsSummary{
		Artist:       artist.Name,
		TotalRecords: len(records),
		DSPs:         make([]domain.DSPSummary, 0),
	}
	if len(records) == 0 {
		return summary, nil
	}

	byDSP := make(map[string]*domain.DSPSummary)
	var totalRevenue float64
	first, last := records[0].Date, records[0].Date

	for _, record := range records {
		item, ok := byDSP[record.DSP]
		if !ok {
			item = &domain.DSPSummary{DSP: record.DSP}
			byDSP[record.DSP] = item
		}
		// a chave natural garante um registro por dia e DSP
		item.Streams += record.Streams
		item.Revenue += record.Revenue
		item.Days++

		summary.TotalStreams += record.Streams
		totalRevenue += record.Revenue

		if record.Date.Before(first) {
			first = record.Date
		}
		if record.Date.After(last) {
			last = record.Date
		}
	}

	// a receita por DSP também sai em centavos; o total é somado antes do arredondamento
	for _, item := range byDSP {
		item.Revenue = utils.RoundRevenue(item.Revenue)
		summary.DSPs = append(summary.DSPs, *item)
	}
	sort.Slice(summary.DSPs, func(i, j int) bool {
		if summary.DSPs[i].Streams != summary.DSPs[j].Streams {
			return summary.DSPs[i].Streams > summary.DSPs[j].Streams
		}
		return summary.DSPs[i].DSP < summary.DSPs[j].DSP
	})

	summary.TotalRevenue = utils.RoundRevenue(totalRevenue)

	start := first.Format(time.DateOnly)
	end := last.Format(time.DateOnly)
	summary.DateRange = domain.DateRange{Start: &start, End: &end}

	logrus.WithFields(logrus.Fields{
		"artist":  artist.Name,
		"records": summary.TotalRecords,
		"dsps":    len(summary.DSPs),
	}).Debug("Resumo de analytics calculado")

	return summary, nil
}

func (s *Service) Overview(ctx context.Context, importsLimit uint64) (*domain.AnalyticsOverview, error) {
	if importsLimit == 0 {
		importsLimit = DefaultImportsLimit
	}

	artists, err := s.artistRepo.ListWithRecordsCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar artistas: %w", err)
	}

	total, err := s.analyticsRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar analytics: %w", err)
	}

	stats, err := s.analyticsRepo.StatsByDSP(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar analytics por DSP: %w", err)
	}

	imports, err := s.auditRepo.List(ctx, importsLimit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar importações: %w", err)
	}

	return &domain.AnalyticsOverview{
		Artists:      artists,
		TotalRecords: total,
		DSPs:         stats,
		Imports:      imports,
	}, nil
}
