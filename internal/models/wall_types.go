package models

import "time"

// Wall is the model for the 'walls' table. A wall is the top-level
// container: cases are mounted onto it at x/y positions.
type Wall struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// --- API Input Structs ---

type CreateWallInput struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateWallInput uses pointers so omitted fields are left untouched.
type UpdateWallInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
