package repository

//go:generate mockgen -source=analytics.go -destination=mocks/analytics.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
)

const (
	analyticsTable = "analytics an"
)

type AnalyticsRepository interface {
	// WithTx devolve uma cópia do repositório que executa as queries na transação
	WithTx(q database.Queryer) AnalyticsRepository
	Upsert(ctx context.Context, record *domain.AnalyticsRecord, onUpdate domain.RevenueOnUpdate) error
	ListByArtist(ctx context.Context, artistID string) ([]*domain.AnalyticsRecord, error)
	CountAll(ctx context.Context) (int64, error)
	StatsByDSP(ctx context.Context) ([]*domain.DSPStats, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type analyticsRepository struct {
	conn *database.Connection
	q    database.Queryer
}

func NewAnalyticsRepository(conn *database.Connection) AnalyticsRepository {
	return &analyticsRepository{
		conn: conn,
		q:    conn,
	}
}

func (r *analyticsRepository) WithTx(q database.Queryer) AnalyticsRepository {
	return &analyticsRepository{
		conn: r.conn,
		q:    q,
	}
}

// Upsert grava o registro em uma única operação resolvida pela chave natural
// (artist_id, dsp, date). Quando a chave já existe apenas streams é
// sobrescrito, a não ser que onUpdate peça o recálculo da receita.
func (r *analyticsRepository) Upsert(ctx context.Context, record *domain.AnalyticsRecord, onUpdate domain.RevenueOnUpdate) error {
	territory := record.Territory
	if territory == "" {
		territory = domain.DefaultTerritory
	}

	set := "streams = EXCLUDED.streams"
	if onUpdate == domain.RevenueRecompute {
		set += ", revenue = EXCLUDED.revenue"
	}

	query, args, err := r.conn.Builder().
		Insert("analytics").
		Columns("artist_id", "dsp", "date", "streams", "revenue", "territory").
		Values(
			record.ArtistID,
			record.DSP,
			record.Date.Format(time.DateOnly),
			record.Streams,
			record.Revenue,
			territory,
		).
		Suffix(`
			ON CONFLICT (artist_id, dsp, date) DO UPDATE SET
				` + set + `,
				updated_at = CURRENT_TIMESTAMP
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *analyticsRepository) ListByArtist(ctx context.Context, artistID string) ([]*domain.AnalyticsRecord, error) {
	query, args, err := r.conn.Builder().
		Select("an.id, an.artist_id, an.dsp, an.date, an.streams, an.revenue, an.territory, an.created_at, an.updated_at").
		From(analyticsTable).
		Where(squirrel.Eq{"an.artist_id": artistID}).
		OrderBy("an.date ASC", "an.dsp ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.AnalyticsRecord, 0)
	for rows.Next() {
		record := &domain.AnalyticsRecord{}
		var date, createdAt, updatedAt dbTime

		if err := rows.Scan(
			&record.ID,
			&record.ArtistID,
			&record.DSP,
			&date,
			&record.Streams,
			&record.Revenue,
			&record.Territory,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear analytics: %w", err)
		}

		record.Date = dateOnly(date.Time)
		record.CreatedAt = createdAt.Time
		record.UpdatedAt = updatedAt.Time
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *analyticsRepository) CountAll(ctx context.Context) (int64, error) {
	query, args, err := r.conn.Builder().
		Select("COUNT(*)").
		From(analyticsTable).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar analytics: %w", err)
	}

	return count, nil
}

func (r *analyticsRepository) StatsByDSP(ctx context.Context) ([]*domain.DSPStats, error) {
	query, args, err := r.conn.Builder().
		Select("an.dsp, COUNT(an.id), COALESCE(SUM(an.streams), 0)").
		From(analyticsTable).
		GroupBy("an.dsp").
		OrderBy("an.dsp ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	stats := make([]*domain.DSPStats, 0)
	for rows.Next() {
		s := &domain.DSPStats{}
		if err := rows.Scan(&s.DSP, &s.RecordsCount, &s.TotalStreams); err != nil {
			return nil, fmt.Errorf("erro ao escanear estatísticas por DSP: %w", err)
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return stats, nil
}

func (r *analyticsRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := r.conn.Builder().Delete("analytics").ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
