package migration

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/internal/domain"
)

type artistCreator interface {
	GetOrCreate(ctx context.Context, artist *domain.Artist) (*domain.Artist, error)
}

func stringPtr(s string) *string { return &s }

// DefaultArtist é o artista cadastrado na carga inicial
func DefaultArtist() *domain.Artist {
	return &domain.Artist{
		Name:      domain.DefaultArtistName,
		Country:   stringPtr("Brasil"),
		Genre:     stringPtr("Pop/Rock"),
		Biography: stringPtr("Artista brasileiro de música pop/rock"),
	}
}

// Seed garante que o artista padrão exista
func Seed(ctx context.Context, artists artistCreator) (*domain.Artist, error) {
	artist, err := artists.GetOrCreate(ctx, DefaultArtist())
	if err != nil {
		return nil, fmt.Errorf("erro ao cadastrar artista padrão: %w", err)
	}

	logrus.WithField("artist_id", artist.ID).Infof("Artista %s disponível", artist.Name)
	return artist, nil
}
