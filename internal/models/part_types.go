package models

import "time"

// Link types for the part_links table.
const (
	LinkTypePart = "part"
	LinkTypeURL  = "url"
)

// Part is the model for the 'parts' table. DrawerID is nullable: a
// part with no drawer is "unassigned" (e.g. mid-move or just bought).
type Part struct {
	ID          int64     `json:"id" db:"id"`
	DrawerID    *int64    `json:"drawerId,omitempty" db:"drawer_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Quantity    int       `json:"quantity" db:"quantity"`
	MinQuantity int       `json:"minQuantity" db:"min_quantity"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Links []PartLink `json:"links,omitempty" db:"-"`
}

// PartLink is the model for the 'part_links' table: a directed relation
// from a part to another part or to an external URL.
type PartLink struct {
	ID           int64     `json:"id" db:"id"`
	PartID       int64     `json:"partId" db:"part_id"`
	LinkType     string    `json:"linkType" db:"link_type"`
	TargetPartID *int64    `json:"targetPartId,omitempty" db:"target_part_id"`
	URL          *string   `json:"url,omitempty" db:"url"`
	Title        *string   `json:"title,omitempty" db:"title"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// --- API Input Structs ---

type CreatePartInput struct {
	DrawerID    *int64  `json:"drawerId"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	MinQuantity int     `json:"minQuantity" binding:"gte=0"`
}

type UpdatePartInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity" binding:"omitempty,gte=0"`
	MinQuantity *int    `json:"minQuantity" binding:"omitempty,gte=0"`
}

// MovePartInput reassigns the owning drawer. A null drawerId moves the
// part to the unassigned pool.
type MovePartInput struct {
	DrawerID *int64 `json:"drawerId"`
}

type CreatePartLinkInput struct {
	LinkType     string  `json:"linkType" binding:"required,oneof=part url"`
	TargetPartID *int64  `json:"targetPartId"`
	URL          *string `json:"url"`
	Title        *string `json:"title"`
}

type UpdatePartLinkInput struct {
	TargetPartID *int64  `json:"targetPartId"`
	URL          *string `json:"url"`
	Title        *string `json:"title"`
}
