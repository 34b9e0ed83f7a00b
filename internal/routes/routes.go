package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partwall/partwall-golang/internal/handlers"
	"github.com/partwall/partwall-golang/internal/middleware"
)

// SetupRouter wires every URL to its handler. The routing layer owns
// no business logic; errors surface through the translation middleware.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler(h.Logger))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "pong!"}})
		})

		// --- Walls ---
		v1.GET("/walls", h.GetWalls)
		v1.POST("/walls", h.CreateWall)
		v1.GET("/walls/:id", h.GetWall)
		v1.PUT("/walls/:id", h.UpdateWall)
		v1.DELETE("/walls/:id", h.DeleteWall)

		// --- Cases ---
		v1.GET("/cases", h.GetCases)
		v1.POST("/cases", h.CreateCase)
		v1.GET("/cases/:id", h.GetCase)
		v1.PUT("/cases/:id", h.UpdateCase)
		v1.DELETE("/cases/:id", h.DeleteCase)
		v1.PUT("/cases/:id/position", h.UpdateCasePosition)
		v1.POST("/cases/:id/apply-template", h.ApplyTemplate)

		// --- Layout Templates ---
		v1.GET("/layout-templates", h.GetTemplates)
		v1.POST("/layout-templates", h.CreateTemplate)
		v1.GET("/layout-templates/:id", h.GetTemplate)
		v1.PUT("/layout-templates/:id", h.UpdateTemplate)
		v1.DELETE("/layout-templates/:id", h.DeleteTemplate)

		// --- Drawer Sizes ---
		v1.GET("/drawer-sizes", h.GetDrawerSizes)
		v1.POST("/drawer-sizes", h.CreateDrawerSize)
		v1.GET("/drawer-sizes/:id", h.GetDrawerSize)
		v1.PUT("/drawer-sizes/:id", h.UpdateDrawerSize)
		v1.DELETE("/drawer-sizes/:id", h.DeleteDrawerSize)

		// --- Drawers ---
		v1.GET("/drawers", h.GetDrawers)
		v1.POST("/drawers", h.CreateDrawer)
		v1.GET("/drawers/:id", h.GetDrawer)
		v1.PUT("/drawers/:id", h.UpdateDrawer)
		v1.DELETE("/drawers/:id", h.DeleteDrawer)
		v1.PUT("/drawers/:id/move", h.MoveDrawer)
		v1.POST("/drawers/:id/categories", h.AddDrawerCategory)
		v1.DELETE("/drawers/:id/categories/:categoryId", h.RemoveDrawerCategory)

		// --- Parts ---
		v1.GET("/parts", h.GetParts)
		v1.POST("/parts", h.CreatePart)
		v1.GET("/parts/:id", h.GetPart)
		v1.PUT("/parts/:id", h.UpdatePart)
		v1.DELETE("/parts/:id", h.DeletePart)
		v1.PUT("/parts/:id/move", h.MovePart)
		v1.POST("/parts/:id/links", h.CreatePartLink)
		v1.PUT("/links/:id", h.UpdatePartLink)
		v1.DELETE("/links/:id", h.DeletePartLink)

		// --- Categories ---
		v1.GET("/categories", h.GetCategories)
		v1.POST("/categories", h.CreateCategory)
		v1.GET("/categories/:id", h.GetCategory)
		v1.PUT("/categories/:id", h.UpdateCategory)
		v1.DELETE("/categories/:id", h.DeleteCategory)
		v1.GET("/categories/:id/drawers", h.GetCategoryDrawers)

		// --- Search ---
		v1.GET("/search", h.Search)

		// --- Live Updates ---
		v1.GET("/events", h.StreamEvents)
	}

	return router
}
