package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/partwall/partwall-golang/internal/models"
)

const (
	searchDefaultLimit = 50
	searchMaxLimit     = 200
)

// searchLimit parses ?limit= and clamps it to [1, searchMaxLimit].
func searchLimit(c *gin.Context) int {
	limit := searchDefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}
	return limit
}

// Search is the handler for GET /search?q=&category=&limit=
// Matching is a case-insensitive substring match on part name and
// description plus category name. A blank query returns an empty
// result set. A category filter scopes parts to drawers tagged with it
// and suppresses category matches.
func (h *Handlers) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	categoryID := c.Query("category")
	limit := searchLimit(c)

	result := models.SearchResult{
		Query:      q,
		Parts:      []models.Part{},
		Categories: []models.Category{},
	}
	if q == "" {
		respond(c, http.StatusOK, result)
		return
	}

	term := "%" + q + "%"

	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT DISTINCT p.id, p.drawer_id, p.name, p.description, p.quantity, p.min_quantity, p.created_at, p.updated_at FROM parts p")
	if categoryID != "" {
		queryBuilder.WriteString(" JOIN drawer_categories dc ON p.drawer_id = dc.drawer_id")
	}
	queryBuilder.WriteString(" WHERE (p.name LIKE ? OR p.description LIKE ?)")
	args = append(args, term, term)
	if categoryID != "" {
		queryBuilder.WriteString(" AND dc.category_id = ?")
		args = append(args, categoryID)
	}
	queryBuilder.WriteString(" ORDER BY p.name ASC LIMIT ?")
	args = append(args, limit)

	rows, err := h.DB.Query(queryBuilder.String(), args...)
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			fail(c, err)
			return
		}
		result.Parts = append(result.Parts, *p)
	}

	if categoryID == "" {
		catRows, err := h.DB.Query(
			"SELECT "+categoryColumns+" FROM categories WHERE name LIKE ? ORDER BY name ASC LIMIT ?",
			term, limit,
		)
		if err != nil {
			fail(c, err)
			return
		}
		defer catRows.Close()

		for catRows.Next() {
			var cat models.Category
			if err := catRows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
				fail(c, err)
				return
			}
			result.Categories = append(result.Categories, cat)
		}
	}

	respond(c, http.StatusOK, result)
}
