package models

import "time"

// Case is the model for the 'cases' table. A case hangs on exactly one
// wall and holds a grid of drawers. TemplateID records the layout
// template last applied to it, if any.
type Case struct {
	ID         int64     `json:"id" db:"id"`
	WallID     int64     `json:"wallId" db:"wall_id"`
	Name       string    `json:"name" db:"name"`
	PosX       float64   `json:"posX" db:"pos_x"`
	PosY       float64   `json:"posY" db:"pos_y"`
	Width      float64   `json:"width" db:"width"`
	Height     float64   `json:"height" db:"height"`
	TemplateID *int64    `json:"templateId,omitempty" db:"template_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// --- API Input Structs ---

type CreateCaseInput struct {
	WallID int64   `json:"wallId" binding:"required"`
	Name   string  `json:"name" binding:"required"`
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	Width  float64 `json:"width" binding:"gte=0"`
	Height float64 `json:"height" binding:"gte=0"`
}

type UpdateCaseInput struct {
	WallID *int64   `json:"wallId"`
	Name   *string  `json:"name"`
	Width  *float64 `json:"width" binding:"omitempty,gte=0"`
	Height *float64 `json:"height" binding:"omitempty,gte=0"`
}

// UpdateCasePositionInput only touches the x/y coordinates; the drag
// handler in the client fires this on every drop.
type UpdateCasePositionInput struct {
	PosX *float64 `json:"posX" binding:"required"`
	PosY *float64 `json:"posY" binding:"required"`
}

type ApplyTemplateInput struct {
	TemplateID int64 `json:"templateId" binding:"required"`
}
