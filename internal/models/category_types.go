package models

import "time"

// Category is the model for the 'categories' table: a named tag
// attached to drawers (many-to-many) and used to scope search.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// --- API Input Structs ---

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}

type UpdateCategoryInput struct {
	Name *string `json:"name" binding:"required"`
}

// SearchResult is the payload of GET /search: parts and categories
// matching the query, already truncated to the requested limit.
type SearchResult struct {
	Query      string     `json:"query"`
	Parts      []Part     `json:"parts"`
	Categories []Category `json:"categories"`
}
