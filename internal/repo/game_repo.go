package repo

import (
	"context"

	dom "tailspin/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GameRepo provides game persistence. Reads join publisher and category
// names so responses need no follow-up queries.
type GameRepo interface {
	Create(ctx context.Context, g dom.Game) (dom.Game, error)
	GetByID(ctx context.Context, id int64) (dom.Game, error)
	List(ctx context.Context) ([]dom.Game, error)
	Update(ctx context.Context, id int64, patch dom.Game) (dom.Game, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PGGameRepo implements GameRepo with Postgres.
type PGGameRepo struct {
	db *pgxpool.Pool
}

// NewPGGameRepo returns a new PGGameRepo.
func NewPGGameRepo(db *pgxpool.Pool) *PGGameRepo {
	return &PGGameRepo{db: db}
}

const gameColumns = `
	g.id, g.title, g.description, g.star_rating, g.publisher_id, g.category_id,
	p.name, c.name`

const gameJoins = `
	FROM games g
	LEFT JOIN publishers p ON g.publisher_id = p.id
	LEFT JOIN categories c ON g.category_id = c.id`

func scanGame(row interface{ Scan(...any) error }) (dom.Game, error) {
	var g dom.Game
	err := row.Scan(
		&g.ID, &g.Title, &g.Description, &g.StarRating, &g.PublisherID, &g.CategoryID,
		&g.PublisherName, &g.CategoryName,
	)
	return g, err
}

// Create inserts a new game and returns it with joined names.
func (r *PGGameRepo) Create(ctx context.Context, g dom.Game) (dom.Game, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO games (title, description, star_rating, publisher_id, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		g.Title, g.Description, g.StarRating, g.PublisherID, g.CategoryID,
	).Scan(&id)
	if err != nil {
		return dom.Game{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns the game by ID with joined names.
func (r *PGGameRepo) GetByID(ctx context.Context, id int64) (dom.Game, error) {
	query := `SELECT` + gameColumns + gameJoins + ` WHERE g.id = $1`
	return scanGame(r.db.QueryRow(ctx, query, id))
}

// List returns all games ordered by ID.
func (r *PGGameRepo) List(ctx context.Context) ([]dom.Game, error) {
	query := `SELECT` + gameColumns + gameJoins + ` ORDER BY g.id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// Update overwrites the mutable columns and returns the fresh row.
func (r *PGGameRepo) Update(ctx context.Context, id int64, patch dom.Game) (dom.Game, error) {
	_, err := r.db.Exec(ctx, `
		UPDATE games
		SET title = $2, description = $3, star_rating = $4, publisher_id = $5, category_id = $6
		WHERE id = $1`,
		id, patch.Title, patch.Description, patch.StarRating, patch.PublisherID, patch.CategoryID,
	)
	if err != nil {
		return dom.Game{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the game. Returns false if no row matched.
func (r *PGGameRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
