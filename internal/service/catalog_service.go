package service

import (
	"context"
	"errors"
	"strings"

	"tailspin/internal/cache"
	dom "tailspin/internal/domain"
	"tailspin/internal/repo"
	"tailspin/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNameTaken = errors.New("name already in use")
	ErrHasGames  = errors.New("still referenced by games")
)

// PublisherService handles catalog publishers.
type PublisherService struct {
	repo  repo.PublisherRepo
	cache *cache.CatalogCache
	sf    singleflight.Group
}

// NewPublisherService creates a PublisherService. If c is nil, caching is disabled.
func NewPublisherService(r repo.PublisherRepo, c *cache.CatalogCache) *PublisherService {
	return &PublisherService{repo: r, cache: c}
}

func validateCatalogEntry(field, name, description string) error {
	if err := validateMinLength(field, name, 2); err != nil {
		return err
	}
	// Description is optional but must be meaningful when present.
	if description != "" {
		if err := validateMinLength("Description", description, 10); err != nil {
			return err
		}
	}
	return nil
}

func (s *PublisherService) Create(ctx context.Context, name, description string) (dom.Publisher, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateCatalogEntry("Publisher name", name, description); err != nil {
		return dom.Publisher{}, err
	}
	p, err := s.repo.Create(ctx, name, description)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Publisher{}, ErrNameTaken
		}
		return dom.Publisher{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *PublisherService) List(ctx context.Context) ([]dom.Publisher, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("publishers:list", func() (interface{}, error) {
			if list, err := s.cache.GetPublishers(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetPublishers(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Publisher), nil
	}
	return s.repo.List(ctx)
}

func (s *PublisherService) GetByID(ctx context.Context, id int64) (dom.Publisher, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Publisher{}, ErrNotFound
		}
		return dom.Publisher{}, err
	}
	return p, nil
}

func (s *PublisherService) Update(ctx context.Context, id int64, name, description *string) (dom.Publisher, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Publisher{}, err
	}
	newName, newDesc := existing.Name, existing.Description
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	if description != nil {
		newDesc = strings.TrimSpace(*description)
	}
	if err := validateCatalogEntry("Publisher name", newName, newDesc); err != nil {
		return dom.Publisher{}, err
	}
	p, err := s.repo.Update(ctx, id, newName, newDesc)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Publisher{}, ErrNameTaken
		}
		return dom.Publisher{}, err
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *PublisherService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return ErrHasGames
		}
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *PublisherService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidatePublishers(ctx)
	}
}

// CategoryService handles catalog categories.
type CategoryService struct {
	repo  repo.CategoryRepo
	cache *cache.CatalogCache
	sf    singleflight.Group
}

// NewCategoryService creates a CategoryService. If c is nil, caching is disabled.
func NewCategoryService(r repo.CategoryRepo, c *cache.CatalogCache) *CategoryService {
	return &CategoryService{repo: r, cache: c}
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (dom.Category, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if err := validateCatalogEntry("Category name", name, description); err != nil {
		return dom.Category{}, err
	}
	ct, err := s.repo.Create(ctx, name, description)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrNameTaken
		}
		return dom.Category{}, err
	}
	s.invalidate(ctx)
	return ct, nil
}

func (s *CategoryService) List(ctx context.Context) ([]dom.Category, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("categories:list", func() (interface{}, error) {
			if list, err := s.cache.GetCategories(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetCategories(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Category), nil
	}
	return s.repo.List(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Category{}, ErrNotFound
		}
		return dom.Category{}, err
	}
	return ct, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name, description *string) (dom.Category, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return dom.Category{}, err
	}
	newName, newDesc := existing.Name, existing.Description
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	if description != nil {
		newDesc = strings.TrimSpace(*description)
	}
	if err := validateCatalogEntry("Category name", newName, newDesc); err != nil {
		return dom.Category{}, err
	}
	ct, err := s.repo.Update(ctx, id, newName, newDesc)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrNameTaken
		}
		return dom.Category{}, err
	}
	s.invalidate(ctx)
	return ct, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return ErrHasGames
		}
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateCategories(ctx)
	}
}
