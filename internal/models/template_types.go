package models

import "time"

// TemplateSlot is one drawer position inside a layout template. Slots
// are stored as a JSON array in the 'slots' column of layout_templates.
type TemplateSlot struct {
	Row    int   `json:"row" binding:"gte=0"`
	Col    int   `json:"col" binding:"gte=0"`
	SizeID int64 `json:"sizeId" binding:"required"`
}

// LayoutTemplate is the model for the 'layout_templates' table. A
// template is independent of any case until applied.
type LayoutTemplate struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description *string        `json:"description,omitempty" db:"description"`
	Slots       []TemplateSlot `json:"slots" db:"slots"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// DrawerSize is the model for the 'drawer_sizes' table: a named
// physical size class referenced by drawers and template slots.
type DrawerSize struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	WidthMM   int       `json:"widthMm" db:"width_mm"`
	HeightMM  int       `json:"heightMm" db:"height_mm"`
	DepthMM   int       `json:"depthMm" db:"depth_mm"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// --- API Input Structs ---

type CreateTemplateInput struct {
	Name        string         `json:"name" binding:"required"`
	Description *string        `json:"description"`
	Slots       []TemplateSlot `json:"slots" binding:"required,min=1,dive"`
}

type UpdateTemplateInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Slots       *[]TemplateSlot `json:"slots" binding:"omitempty,min=1,dive"`
}

type CreateDrawerSizeInput struct {
	Name     string `json:"name" binding:"required"`
	WidthMM  int    `json:"widthMm" binding:"gte=0"`
	HeightMM int    `json:"heightMm" binding:"gte=0"`
	DepthMM  int    `json:"depthMm" binding:"gte=0"`
}

type UpdateDrawerSizeInput struct {
	Name     *string `json:"name"`
	WidthMM  *int    `json:"widthMm" binding:"omitempty,gte=0"`
	HeightMM *int    `json:"heightMm" binding:"omitempty,gte=0"`
	DepthMM  *int    `json:"depthMm" binding:"omitempty,gte=0"`
}
