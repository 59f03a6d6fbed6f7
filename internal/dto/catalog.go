package dto

import dom "tailspin/internal/domain"

// Catalog DTOs. The /api surface predates the envelope and returns these
// bare, with the original mix of snake_case requests and camelCase starRating.

type CreateGameRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PublisherID int64    `json:"publisher_id"`
	CategoryID  int64    `json:"category_id"`
	StarRating  *float64 `json:"star_rating"`
}

// UpdateGameRequest is a partial update: nil means leave unchanged.
type UpdateGameRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	PublisherID *int64   `json:"publisher_id"`
	CategoryID  *int64   `json:"category_id"`
	StarRating  *float64 `json:"star_rating"`
}

// RefResponse is the nested {id, name} shape for publisher and category.
type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GameResponse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Publisher   *RefResponse `json:"publisher"`
	Category    *RefResponse `json:"category"`
	StarRating  *float64     `json:"starRating"`
}

type CreatePublisherRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdatePublisherRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type PublisherResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GameCount   int64  `json:"game_count"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GameCount   int64  `json:"game_count"`
}

func GameToResponse(g dom.Game) GameResponse {
	resp := GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		StarRating:  g.StarRating,
	}
	if g.PublisherID != 0 {
		resp.Publisher = &RefResponse{ID: g.PublisherID, Name: g.PublisherName}
	}
	if g.CategoryID != 0 {
		resp.Category = &RefResponse{ID: g.CategoryID, Name: g.CategoryName}
	}
	return resp
}

func GamesToResponses(list []dom.Game) []GameResponse {
	out := make([]GameResponse, 0, len(list))
	for _, g := range list {
		out = append(out, GameToResponse(g))
	}
	return out
}

func PublisherToResponse(p dom.Publisher) PublisherResponse {
	return PublisherResponse{ID: p.ID, Name: p.Name, Description: p.Description, GameCount: p.GameCount}
}

func PublishersToResponses(list []dom.Publisher) []PublisherResponse {
	out := make([]PublisherResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PublisherToResponse(p))
	}
	return out
}

func CategoryToResponse(ct dom.Category) CategoryResponse {
	return CategoryResponse{ID: ct.ID, Name: ct.Name, Description: ct.Description, GameCount: ct.GameCount}
}

func CategoriesToResponses(list []dom.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, ct := range list {
		out = append(out, CategoryToResponse(ct))
	}
	return out
}
