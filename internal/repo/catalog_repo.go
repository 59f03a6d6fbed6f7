package repo

import (
	"context"

	dom "tailspin/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PublisherRepo provides publisher persistence.
type PublisherRepo interface {
	Create(ctx context.Context, name, description string) (dom.Publisher, error)
	GetByID(ctx context.Context, id int64) (dom.Publisher, error)
	List(ctx context.Context) ([]dom.Publisher, error)
	Update(ctx context.Context, id int64, name, description string) (dom.Publisher, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CategoryRepo provides category persistence.
type CategoryRepo interface {
	Create(ctx context.Context, name, description string) (dom.Category, error)
	GetByID(ctx context.Context, id int64) (dom.Category, error)
	List(ctx context.Context) ([]dom.Category, error)
	Update(ctx context.Context, id int64, name, description string) (dom.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PGPublisherRepo implements PublisherRepo with Postgres.
type PGPublisherRepo struct {
	db *pgxpool.Pool
}

// NewPGPublisherRepo returns a new PGPublisherRepo.
func NewPGPublisherRepo(db *pgxpool.Pool) *PGPublisherRepo {
	return &PGPublisherRepo{db: db}
}

func (r *PGPublisherRepo) Create(ctx context.Context, name, description string) (dom.Publisher, error) {
	var p dom.Publisher
	err := r.db.QueryRow(ctx, `
		INSERT INTO publishers (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description`,
		name, description,
	).Scan(&p.ID, &p.Name, &p.Description)
	return p, err
}

func (r *PGPublisherRepo) GetByID(ctx context.Context, id int64) (dom.Publisher, error) {
	var p dom.Publisher
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.description, COUNT(g.id)
		FROM publishers p LEFT JOIN games g ON g.publisher_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.GameCount)
	return p, err
}

func (r *PGPublisherRepo) List(ctx context.Context) ([]dom.Publisher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.description, COUNT(g.id)
		FROM publishers p LEFT JOIN games g ON g.publisher_id = p.id
		GROUP BY p.id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Publisher
	for rows.Next() {
		var p dom.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.GameCount); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PGPublisherRepo) Update(ctx context.Context, id int64, name, description string) (dom.Publisher, error) {
	_, err := r.db.Exec(ctx,
		`UPDATE publishers SET name = $2, description = $3 WHERE id = $1`,
		id, name, description,
	)
	if err != nil {
		return dom.Publisher{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGPublisherRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGPublisherRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM publishers WHERE id = $1`, id).Scan(&n)
	return n > 0, err
}

// PGCategoryRepo implements CategoryRepo with Postgres.
type PGCategoryRepo struct {
	db *pgxpool.Pool
}

// NewPGCategoryRepo returns a new PGCategoryRepo.
func NewPGCategoryRepo(db *pgxpool.Pool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func (r *PGCategoryRepo) Create(ctx context.Context, name, description string) (dom.Category, error) {
	var ct dom.Category
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description`,
		name, description,
	).Scan(&ct.ID, &ct.Name, &ct.Description)
	return ct, err
}

func (r *PGCategoryRepo) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	var ct dom.Category
	err := r.db.QueryRow(ctx, `
		SELECT c.id, c.name, c.description, COUNT(g.id)
		FROM categories c LEFT JOIN games g ON g.category_id = c.id
		WHERE c.id = $1
		GROUP BY c.id`,
		id,
	).Scan(&ct.ID, &ct.Name, &ct.Description, &ct.GameCount)
	return ct, err
}

func (r *PGCategoryRepo) List(ctx context.Context) ([]dom.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.description, COUNT(g.id)
		FROM categories c LEFT JOIN games g ON g.category_id = c.id
		GROUP BY c.id
		ORDER BY c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		var ct dom.Category
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Description, &ct.GameCount); err != nil {
			return nil, err
		}
		list = append(list, ct)
	}
	return list, rows.Err()
}

func (r *PGCategoryRepo) Update(ctx context.Context, id int64, name, description string) (dom.Category, error) {
	_, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $2, description = $3 WHERE id = $1`,
		id, name, description,
	)
	if err != nil {
		return dom.Category{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGCategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id = $1`, id).Scan(&n)
	return n > 0, err
}
