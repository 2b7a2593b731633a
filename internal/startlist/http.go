package startlist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
	"github.com/inazy-arch/tf-fast-app/internal/entries"
	"github.com/inazy-arch/tf-fast-app/internal/members"
)

func RegisterRoutes(r *gin.Engine, repo *Repo, ent *entries.Repo, mems *members.Repo, protect, compOnly gin.HandlerFunc) {
	api := r.Group("/api")

	// Timetable view, grouped by session for the competition page.
	api.GET("/competitions/:id/startlist", func(c *gin.Context) {
		rows, err := repo.ListByComp(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	})

	api.GET("/competitions/:id/startlist/me", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		rows, err := repo.ForName(c.Param("id"), id.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}))

	// Uploading replaces the competition's start list wholesale.
	api.PUT("/competitions/:id/startlist", auth.Guarded(compOnly, func(c *gin.Context) {
		var rows []Row
		if err := c.BindJSON(&rows); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if err := repo.Replace(c.Param("id"), rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": len(rows)})
	}))

	api.POST("/competitions/:id/startlist/seed", auth.Guarded(compOnly, func(c *gin.Context) {
		var req struct {
			Affiliation string `json:"affiliation"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		rows, err := SeedFromEntries(ent, mems, c.Param("id"), req.Affiliation)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := repo.Replace(c.Param("id"), rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}))
}
