package posts

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
)

func RegisterRoutes(r *gin.Engine, repo *Repo, protect, prOnly gin.HandlerFunc) {
	api := r.Group("/api")

	api.GET("/news", func(c *gin.Context) {
		list, err := repo.ListNews()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.POST("/news", auth.Guarded(prOnly, func(c *gin.Context) {
		var req struct {
			Date    string `json:"date"`
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if req.Title == "" || req.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
			return
		}
		if req.Date == "" {
			req.Date = time.Now().Format("2006-01-02")
		}
		n := News{Date: req.Date, Title: req.Title, Content: req.Content}
		if err := repo.CreateNews(&n); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, n)
	}))

	api.GET("/blogs", func(c *gin.Context) {
		list, err := repo.ListBlogs()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.POST("/blogs", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
			Image   string `json:"image"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		if req.Title == "" || req.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
			return
		}
		b := Blog{
			CreatedAt:  time.Now().Format("2006-01-02 15:04"),
			Title:      req.Title,
			Content:    req.Content,
			AuthorName: id.Name,
			AuthorID:   id.MemberID,
			Image:      req.Image,
		}
		if err := repo.CreateBlog(&b); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, b)
	}))
}
