package repository

//go:generate mockgen -source=artist.go -destination=mocks/artist.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
	"github.com/vfg2006/dsp-analytics-api/pkg/utils"
)

const (
	artistsTable = "artists ar"
)

type ArtistRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Artist, error)
	GetOrCreate(ctx context.Context, artist *domain.Artist) (*domain.Artist, error)
	ListWithRecordsCount(ctx context.Context) ([]*domain.ArtistOverview, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type artistRepository struct {
	conn *database.Connection
}

func NewArtistRepository(conn *database.Connection) ArtistRepository {
	return &artistRepository{
		conn: conn,
	}
}

func (r *artistRepository) GetByName(ctx context.Context, name string) (*domain.Artist, error) {
	query, args, err := r.conn.Builder().
		Select("ar.id, ar.name, ar.country, ar.genre, ar.biography, ar.created_at, ar.updated_at").
		From(artistsTable).
		Where(squirrel.Eq{"ar.name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	artist := &domain.Artist{}
	var createdAt, updatedAt dbTime

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&artist.ID,
		&artist.Name,
		&artist.Country,
		&artist.Genre,
		&artist.Biography,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear artista: %w", err)
	}

	artist.CreatedAt = createdAt.Time
	artist.UpdatedAt = updatedAt.Time

	return artist, nil
}

// GetOrCreate cadastra o artista caso o nome ainda não exista e devolve o
// registro persistido. Se outro processo cadastrar o mesmo nome ao mesmo tempo
// o conflito na coluna name é ignorado e o registro existente é lido.
func (r *artistRepository) GetOrCreate(ctx context.Context, artist *domain.Artist) (*domain.Artist, error) {
	existing, err := r.GetByName(ctx, artist.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	id, err := utils.NewArtistID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar ID do artista: %w", err)
	}

	query, args, err := r.conn.Builder().
		Insert("artists").
		Columns("id", "name", "country", "genre", "biography").
		Values(id, artist.Name, artist.Country, artist.Genre, artist.Biography).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao cadastrar artista: %w", err)
	}

	created, err := r.GetByName(ctx, artist.Name)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("artista %s não encontrado após cadastro", artist.Name)
	}

	return created, nil
}

func (r *artistRepository) ListWithRecordsCount(ctx context.Context) ([]*domain.ArtistOverview, error) {
	query, args, err := r.conn.Builder().
		Select("ar.id, ar.name, COUNT(an.id)").
		From(artistsTable).
		LeftJoin("analytics an ON an.artist_id = ar.id").
		GroupBy("ar.id", "ar.name").
		OrderBy("ar.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	artists := make([]*domain.ArtistOverview, 0)
	for rows.Next() {
		artist := &domain.ArtistOverview{}
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.RecordsCount); err != nil {
			return nil, fmt.Errorf("erro ao escanear artista: %w", err)
		}
		artists = append(artists, artist)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return artists, nil
}

func (r *artistRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := r.conn.Builder().Delete("artists").ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return result.RowsAffected()
}
