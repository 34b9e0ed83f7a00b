package models

import "time"

// Drawer is the model for the 'drawers' table. A drawer sits at a
// row/col slot inside exactly one case and references a drawer size.
// CategoryIDs is a virtual field filled from the drawer_categories
// association table.
type Drawer struct {
	ID        int64     `json:"id" db:"id"`
	CaseID    int64     `json:"caseId" db:"case_id"`
	SizeID    int64     `json:"sizeId" db:"size_id"`
	Row       int       `json:"row" db:"row"`
	Col       int       `json:"col" db:"col"`
	Label     *string   `json:"label,omitempty" db:"label"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	CategoryIDs []int64 `json:"categoryIds" db:"-"`
}

// --- API Input Structs ---

type CreateDrawerInput struct {
	CaseID int64   `json:"caseId" binding:"required"`
	SizeID int64   `json:"sizeId" binding:"required"`
	Row    int     `json:"row" binding:"gte=0"`
	Col    int     `json:"col" binding:"gte=0"`
	Label  *string `json:"label"`
}

type UpdateDrawerInput struct {
	SizeID *int64  `json:"sizeId"`
	Label  *string `json:"label"`
}

// MoveDrawerInput reassigns the owning case and/or the slot position.
// All fields optional; a move with no fields is a no-op.
type MoveDrawerInput struct {
	CaseID *int64 `json:"caseId"`
	Row    *int   `json:"row" binding:"omitempty,gte=0"`
	Col    *int   `json:"col" binding:"omitempty,gte=0"`
}

type AddDrawerCategoryInput struct {
	CategoryID int64 `json:"categoryId" binding:"required"`
}
