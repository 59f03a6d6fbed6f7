package service

import (
	"context"
	"errors"
	"strings"

	"tailspin/internal/cache"
	dom "tailspin/internal/domain"
	"tailspin/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrCategoryNotFound  = errors.New("category not found")
)

// GameService handles catalog games. Creating or moving a game checks that
// the referenced publisher and category exist.
type GameService struct {
	repo       repo.GameRepo
	publishers repo.PublisherRepo
	categories repo.CategoryRepo
	cache      *cache.CatalogCache
	sf         singleflight.Group
}

// NewGameService creates a GameService. If c is nil, caching is disabled.
func NewGameService(r repo.GameRepo, p repo.PublisherRepo, ct repo.CategoryRepo, c *cache.CatalogCache) *GameService {
	return &GameService{repo: r, publishers: p, categories: ct, cache: c}
}

func (s *GameService) validate(ctx context.Context, g dom.Game) error {
	if err := validateMinLength("Game title", g.Title, 2); err != nil {
		return err
	}
	if err := validateMinLength("Description", g.Description, 10); err != nil {
		return err
	}
	ok, err := s.publishers.Exists(ctx, g.PublisherID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPublisherNotFound
	}
	ok, err = s.categories.Exists(ctx, g.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *GameService) Create(ctx context.Context, g dom.Game) (dom.Game, error) {
	g.Title = strings.TrimSpace(g.Title)
	g.Description = strings.TrimSpace(g.Description)
	if err := s.validate(ctx, g); err != nil {
		return dom.Game{}, err
	}
	out, err := s.repo.Create(ctx, g)
	if err != nil {
		return dom.Game{}, err
	}
	s.invalidateCache(ctx)
	return out, nil
}

func (s *GameService) List(ctx context.Context) ([]dom.Game, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("games:list", func() (interface{}, error) {
			if list, err := s.cache.GetGames(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetGames(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Game), nil
	}
	return s.repo.List(ctx)
}

func (s *GameService) GetByID(ctx context.Context, id int64) (dom.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Game{}, ErrNotFound
		}
		return dom.Game{}, err
	}
	return g, nil
}

// Update applies the non-nil fields on top of the stored game.
func (s *GameService) Update(ctx context.Context, id int64, title, desc *string, starRating *float64, publisherID, categoryID *int64) (dom.Game, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Game{}, ErrNotFound
		}
		return dom.Game{}, err
	}
	patch := existing
	if title != nil {
		patch.Title = strings.TrimSpace(*title)
	}
	if desc != nil {
		patch.Description = strings.TrimSpace(*desc)
	}
	if starRating != nil {
		patch.StarRating = starRating
	}
	if publisherID != nil {
		patch.PublisherID = *publisherID
	}
	if categoryID != nil {
		patch.CategoryID = *categoryID
	}
	if err := s.validate(ctx, patch); err != nil {
		return dom.Game{}, err
	}
	g, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Game{}, ErrNotFound
		}
		return dom.Game{}, err
	}
	s.invalidateCache(ctx)
	return g, nil
}

func (s *GameService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *GameService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
