package domain

// Catalog entities. No timestamps: the catalog tables are append-light
// reference data and the legacy API never exposed them.

// Game is a crowdfunding catalog entry. PublisherName and CategoryName are
// filled by the repo from joins so read paths need no extra queries.
type Game struct {
	ID          int64
	Title       string
	Description string
	StarRating  *float64
	PublisherID int64
	CategoryID  int64

	PublisherName string
	CategoryName  string
}

// Publisher is a game publisher seeking funding. GameCount is derived.
type Publisher struct {
	ID          int64
	Name        string
	Description string
	GameCount   int64
}

// Category classifies games. GameCount is derived.
type Category struct {
	ID          int64
	Name        string
	Description string
	GameCount   int64
}
