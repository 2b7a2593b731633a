package results

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
	"github.com/inazy-arch/tf-fast-app/internal/posts"
	"github.com/inazy-arch/tf-fast-app/internal/tabular"
)

func RegisterRoutes(r *gin.Engine, repo *Repo, news *posts.Repo, compOnly, prOnly gin.HandlerFunc) {
	api := r.Group("/api")

	// Results for one competition, grouped by event for the results page.
	api.GET("/competitions/:id/results", func(c *gin.Context) {
		views, err := repo.ListViews(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		grouped := map[string][]View{}
		for _, v := range views {
			grouped[v.Event] = append(grouped[v.Event], v)
		}
		c.JSON(http.StatusOK, gin.H{"results": views, "by_event": grouped})
	})

	api.GET("/results/ranking", func(c *gin.Context) {
		event := c.Query("event")
		if event == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event is required"})
			return
		}
		top := 10
		if s := c.Query("top"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				top = n
			}
		}
		rows, err := repo.Ranking(event, top)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	})

	api.GET("/members/:id/results", func(c *gin.Context) {
		views, err := repo.ListViews("")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := []View{}
		for _, v := range views {
			if v.MemberID == c.Param("id") {
				out = append(out, v)
			}
		}
		c.JSON(http.StatusOK, out)
	})

	api.GET("/members/:id/bests", func(c *gin.Context) {
		bests, err := repo.MemberBests(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, bests)
	})

	api.POST("/results", auth.Guarded(compOnly, func(c *gin.Context) {
		var req []Result
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		saved, err := repo.SaveBatch(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "saved": saved})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"saved": saved, "skipped": len(req) - saved})
	}))

	api.POST("/results/import", auth.Guarded(compOnly, func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		var mapping ImportMapping
		if err := c.ShouldBind(&mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		table, err := tabular.ParseUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sum, err := Import(repo, table, mapping)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sum)
	}))

	// Report text for the PR desk. publish=1 also posts it to the news
	// feed under the reporting member's name.
	api.POST("/competitions/:id/report", auth.Guarded(prOnly, func(c *gin.Context) {
		id, _ := auth.From(c)
		var req struct {
			Publish bool `json:"publish"`
			// Mail adds the greeting header used when the text is pasted
			// into the mailing list.
			Mail bool `json:"mail"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}

		sender := ""
		if req.Mail {
			sender = id.Name
		}
		text, err := repo.BuildReport(c.Param("id"), sender)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp := gin.H{"text": text}
		if req.Publish {
			comp, err := repo.comps.Get(c.Param("id"))
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			n := posts.News{
				Date:    time.Now().Format("2006-01-02"),
				Title:   ReportTitle(comp.Name),
				Content: text,
			}
			if err := news.CreateNews(&n); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			resp["news"] = n
		}
		c.JSON(http.StatusOK, resp)
	}))
}
