package members

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
	"github.com/inazy-arch/tf-fast-app/internal/tabular"
)

type memberView struct {
	Member
	Grade string `json:"grade"`
}

func toView(m Member) memberView {
	return memberView{Member: m, Grade: Grade(m.GradYear, m.UnivCat)}
}

// Display groupings for the roster page. Keys are the block values stored
// on member rows over the years.
var blockGroups = []struct {
	Title string
	Keys  []string
}{
	{"短距離・跳躍・投擲ブロック", []string{"短距離", "短距離・跳躍投擲", "短距離・跳躍・投擲"}},
	{"中長距離ブロック 中距離パート", []string{"中距離"}},
	{"中長距離ブロック 長距離パート", []string{"長距離"}},
	{"マネージャー", []string{"マネージャー"}},
}

func RegisterRoutes(r *gin.Engine, repo *Repo, protect, adminOnly gin.HandlerFunc) {
	api := r.Group("/api")

	api.GET("/members", func(c *gin.Context) {
		list, err := repo.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]memberView, 0, len(list))
		for _, m := range list {
			out = append(out, toView(m))
		}
		c.JSON(http.StatusOK, out)
	})

	// Roster page data: active members grouped by block, alumni separate.
	api.GET("/members/roster", func(c *gin.Context) {
		list, err := repo.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		groups := make(map[string][]memberView)
		var alumni []memberView
		for _, m := range list {
			if m.Status != StatusActive && m.Status != "" {
				alumni = append(alumni, toView(m))
				continue
			}
			title := "その他/未設定"
			for _, g := range blockGroups {
				for _, k := range g.Keys {
					if m.Block == k {
						title = g.Title
					}
				}
			}
			groups[title] = append(groups[title], toView(m))
		}
		c.JSON(http.StatusOK, gin.H{"blocks": groups, "alumni": alumni})
	})

	api.GET("/members/:id", func(c *gin.Context) {
		m, err := repo.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, toView(*m))
	})

	api.POST("/members", auth.Guarded(adminOnly, func(c *gin.Context) {
		var req struct {
			ID          string   `json:"id"`
			Name        string   `json:"name"`
			Password    string   `json:"password"`
			Block       string   `json:"block"`
			Affiliation string   `json:"affiliation"`
			UnivCat     string   `json:"univ_cat"`
			GradYear    int      `json:"grad_year"`
			RoleTitle   string   `json:"role_title"`
			Events      []string `json:"events"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}
		req.Name = CleanName(req.Name)
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		if req.ID == "" {
			id, err := repo.NewID(nil)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			req.ID = id
		} else if exists, err := repo.Exists(req.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		} else if exists {
			c.JSON(http.StatusConflict, gin.H{"error": "id already in use"})
			return
		}

		password := req.Password
		generated := password == ""
		if generated {
			p, err := NewPassword()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			password = p
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
			return
		}

		m := Member{
			ID:           req.ID,
			Name:         req.Name,
			PasswordHash: string(hash),
			Role:         GuessRole(req.RoleTitle),
			RoleTitle:    req.RoleTitle,
			Status:       StatusActive,
			Block:        req.Block,
			Affiliation:  req.Affiliation,
			UnivCat:      req.UnivCat,
			GradYear:     req.GradYear,
			Events:       datatypes.NewJSONSlice(req.Events),
		}
		if err := repo.Save(&m); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp := gin.H{"member": toView(m)}
		if generated {
			resp["password"] = password
		}
		c.JSON(http.StatusCreated, resp)
	}))

	api.PATCH("/members/:id", auth.Guarded(protect, func(c *gin.Context) {
		id, _ := auth.From(c)
		target := c.Param("id")
		isAdmin := id.Role == "admin" || id.Role == "super"
		if id.MemberID != target && !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		m, err := repo.Get(target)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		var req struct {
			Name        *string            `json:"name"`
			NameKana    *string            `json:"name_kana"`
			UnivCat     *string            `json:"univ_cat"`
			Affiliation *string            `json:"affiliation"`
			GradYear    *int               `json:"grad_year"`
			Block       *string            `json:"block"`
			Events      *[]string          `json:"events"`
			PBs         *map[string]string `json:"pbs"`
			RoleTitle   *string            `json:"role_title"`
			Status      *string            `json:"status"`
			Bio         *string            `json:"bio"`
			Image       *string            `json:"image"`
			Password    *string            `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad json"})
			return
		}

		// Role follows from the role title, so changing the title (or the
		// roster status) is an admin action even on one's own row.
		if (req.RoleTitle != nil || req.Status != nil) && !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if req.Name != nil && CleanName(*req.Name) != "" {
			m.Name = CleanName(*req.Name)
		}
		if req.NameKana != nil {
			m.NameKana = *req.NameKana
		}
		if req.UnivCat != nil {
			m.UnivCat = *req.UnivCat
		}
		if req.Affiliation != nil {
			m.Affiliation = *req.Affiliation
		}
		if req.GradYear != nil {
			m.GradYear = *req.GradYear
		}
		if req.Block != nil {
			m.Block = *req.Block
		}
		if req.Events != nil {
			m.Events = datatypes.NewJSONSlice(*req.Events)
		}
		if req.PBs != nil {
			m.PBs = datatypes.NewJSONType(*req.PBs)
		}
		if req.RoleTitle != nil {
			m.RoleTitle = *req.RoleTitle
			m.Role = GuessRole(*req.RoleTitle)
		}
		if req.Status != nil {
			m.Status = *req.Status
		}
		if req.Bio != nil {
			m.Bio = *req.Bio
		}
		if req.Image != nil {
			m.Image = *req.Image
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
				return
			}
			m.PasswordHash = string(hash)
		}

		if err := repo.Save(m); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toView(*m))
	}))

	api.POST("/members/import", auth.Guarded(adminOnly, func(c *gin.Context) {
		if err := c.Request.ParseMultipartForm(12 << 20); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart too large"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		var mapping RosterMapping
		if err := c.ShouldBind(&mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		overwrite := c.PostForm("overwrite") == "1" || c.PostForm("overwrite") == "true"

		table, err := tabular.ParseUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sum, err := ImportRoster(repo, table, mapping, overwrite)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sum)
	}))
}
