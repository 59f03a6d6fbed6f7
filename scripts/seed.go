// One-off: go run scripts/seed.go
// Seeds an admin account and a small sample catalog. Reads PG_DSN from env.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type seedGame struct {
	title, description  string
	rating              float64
	publisher, category string
}

var publishers = map[string]string{
	"Tailspin Toys": "Independent studio focused on tabletop adaptations.",
	"Contoso Games": "Veteran publisher of strategy and party games.",
	"Fabrikam Play": "Small-batch publisher of experimental prototypes.",
}

var categories = map[string]string{
	"Strategy": "Games of long-term planning and resource management.",
	"Party":    "Light games for large groups and short sessions.",
	"Puzzle":   "Single-player or cooperative logic challenges.",
}

var games = []seedGame{
	{"Skyward Gambit", "Bid for airship routes across a hex map of trade winds.", 4.5, "Tailspin Toys", "Strategy"},
	{"Cargo Chaos", "Stack mismatched freight before the timer runs out.", 3.8, "Contoso Games", "Party"},
	{"Cipher Garden", "Grow a hedge maze by solving interlocking ciphers.", 4.2, "Fabrikam Play", "Puzzle"},
}

func main() {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "PG_DSN is required")
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		panic(err)
	}
	defer conn.Close(ctx)

	password := "changeme123"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		panic(err)
	}
	_, err = conn.Exec(ctx, `
		INSERT INTO users (email, password_hash) VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING`,
		"admin@tailspintoys.com", string(hash))
	if err != nil {
		panic(err)
	}

	for name, desc := range publishers {
		if _, err := conn.Exec(ctx, `
			INSERT INTO publishers (name, description) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`, name, desc); err != nil {
			panic(err)
		}
	}
	for name, desc := range categories {
		if _, err := conn.Exec(ctx, `
			INSERT INTO categories (name, description) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`, name, desc); err != nil {
			panic(err)
		}
	}
	for _, g := range games {
		if _, err := conn.Exec(ctx, `
			INSERT INTO games (title, description, star_rating, publisher_id, category_id)
			SELECT $1, $2, $3, p.id, c.id
			FROM publishers p, categories c
			WHERE p.name = $4 AND c.name = $5
			AND NOT EXISTS (SELECT 1 FROM games WHERE title = $1)`,
			g.title, g.description, g.rating, g.publisher, g.category); err != nil {
			panic(err)
		}
	}

	fmt.Println("seed complete")
}
