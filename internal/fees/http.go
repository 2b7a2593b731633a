package fees

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
)

func RegisterRoutes(r *gin.Engine, repo *Repo, protect, adminOnly gin.HandlerFunc) {
	api := r.Group("/api")

	api.GET("/fees", auth.Guarded(adminOnly, func(c *gin.Context) {
		list, err := repo.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		type feeView struct {
			Fee
			Progress Progress `json:"progress"`
		}
		out := make([]feeView, 0, len(list))
		for _, f := range list {
			out = append(out, feeView{Fee: f, Progress: f.Progress()})
		}
		c.JSON(http.StatusOK, out)
	}))

	api.POST("/fees", auth.Guarded(adminOnly, func(c *gin.Context) {
		var req struct {
			Title    string   `json:"title"`
			Amount   int      `json:"amount"`
			Deadline string   `json:"deadline"`
			Target   string   `json:"target"`
			Selected []string `json:"selected"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if req.Title == "" || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and a positive amount are required"})
			return
		}
		if req.Target == "" {
			req.Target = TargetActive
		}

		f := Fee{Title: req.Title, Amount: req.Amount, Deadline: req.Deadline}
		if err := repo.Create(&f, req.Target, req.Selected); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, f)
	}))

	api.GET("/fees/:id", auth.Guarded(adminOnly, func(c *gin.Context) {
		f, err := repo.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fee": f, "progress": f.Progress()})
	}))

	api.PATCH("/fees/:id/statuses", auth.Guarded(adminOnly, func(c *gin.Context) {
		var changes map[string]string
		if err := c.BindJSON(&changes); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		f, err := repo.UpdateStatuses(c.Param("id"), changes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fee": f, "progress": f.Progress()})
	}))

	api.GET("/me/fees", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		list, unpaid, err := repo.ForMember(id.MemberID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fees": list, "unpaid_total": unpaid})
	}))
}
