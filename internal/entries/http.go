package entries

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/members"
	"github.com/inazy-arch/tf-fast-app/internal/results"
)

func RegisterRoutes(r *gin.Engine, repo *Repo, comps *competitions.Repo, mems *members.Repo, res *results.Repo, protect, compOnly gin.HandlerFunc) {
	api := r.Group("/api")

	// Submitting twice replaces the earlier entry.
	api.POST("/competitions/:id/entries", auth.Guarded(protect, func(c *gin.Context) {
		comp, err := comps.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if comp.Status != competitions.StatusOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "エントリー受付期間外です"})
			return
		}

		var req struct {
			Events  []string          `json:"events"`
			Times   map[string]string `json:"times"`
			Comment string            `json:"comment"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if len(req.Events) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "種目を選択してください"})
			return
		}
		if req.Times == nil {
			req.Times = map[string]string{}
		}

		id, _ := auth.From(c)
		e := Entry{
			CompID:   comp.ID,
			MemberID: id.MemberID,
			Events:   datatypes.NewJSONSlice(req.Events),
			Times:    datatypes.NewJSONType(req.Times),
			Comment:  req.Comment,
		}
		if err := repo.Save(&e); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, e)
	}))

	api.GET("/competitions/:id/entries/me", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		e, err := repo.Find(c.Param("id"), id.MemberID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, e)
	}))

	api.GET("/competitions/:id/entries", auth.Guarded(compOnly, func(c *gin.Context) {
		comp, err := comps.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		rows, err := BuildSheet(repo, res, mems, comp)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}))

	api.GET("/competitions/:id/entries.csv", auth.Guarded(compOnly, func(c *gin.Context) {
		comp, err := comps.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		rows, err := BuildSheet(repo, res, mems, comp)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		data, err := SheetCSV(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=entries_%s.csv", comp.ID))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}))

	api.GET("/me/entries", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		list, err := repo.ListByMember(id.MemberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}))

	api.GET("/me/pending-reports", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		pending, err := Pending(repo, res, comps, id.MemberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, pending)
	}))
}
