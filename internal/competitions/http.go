package competitions

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
)

func RegisterRoutes(r *gin.Engine, repo *Repo, adminOnly gin.HandlerFunc) {
	api := r.Group("/api")

	// ?filter=open    competitions accepting entries today
	// ?filter=active  open or closed (entry list still shown)
	// ?filter=upcoming  today or later, or not yet finished
	api.GET("/competitions", func(c *gin.Context) {
		list, err := repo.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		today := time.Now().Format("2006-01-02")
		filter := c.Query("filter")
		out := make([]Competition, 0, len(list))
		for _, comp := range list {
			switch filter {
			case "open":
				if comp.Status == StatusOpen && comp.Date >= today {
					out = append(out, comp)
				}
			case "active":
				if comp.Status == StatusOpen || comp.Status == StatusClosed {
					out = append(out, comp)
				}
			case "upcoming":
				if comp.Date >= today || comp.Status != StatusFinished {
					out = append(out, comp)
				}
			default:
				out = append(out, comp)
			}
		}
		c.JSON(http.StatusOK, out)
	})

	api.GET("/competitions/:id", func(c *gin.Context) {
		comp, err := repo.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, comp)
	})

	api.POST("/competitions", auth.Guarded(adminOnly, func(c *gin.Context) {
		var req struct {
			Name       string   `json:"name"`
			Date       string   `json:"date"`
			Location   string   `json:"location"`
			Deadline   string   `json:"deadline"`
			Status     string   `json:"status"`
			Events     []string `json:"events"`
			ValidStart string   `json:"valid_start"`
			ValidEnd   string   `json:"valid_end"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if req.Name == "" || req.Date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and date are required"})
			return
		}
		if req.Status != "" && !knownStatuses[req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		comp := Competition{
			Name:       req.Name,
			Date:       req.Date,
			Location:   req.Location,
			Deadline:   req.Deadline,
			Status:     req.Status,
			Events:     datatypes.NewJSONSlice(req.Events),
			ValidStart: req.ValidStart,
			ValidEnd:   req.ValidEnd,
		}
		if err := repo.Create(&comp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, comp)
	}))

	api.PATCH("/competitions/:id/status", auth.Guarded(adminOnly, func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if !knownStatuses[req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		if err := repo.UpdateStatus(c.Param("id"), req.Status); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}))
}
