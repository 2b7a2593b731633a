package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const CookieName = "session_token"

const identityKey = "auth.identity"

// Options carries the cookie/session knobs from config.
type Options struct {
	SessionTTL   time.Duration
	SecureCookie bool
}

func RegisterRoutes(r *gin.Engine, repo *Repository, opts Options) {
	api := r.Group("/api/auth")

	api.POST("/login", func(c *gin.Context) {
		var req struct {
			ID       string `json:"id"`
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		req.ID = strings.TrimSpace(req.ID)
		if req.ID == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing id or password"})
			return
		}

		id, err := repo.Login(req.ID, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		s, err := repo.CreateSession(id.MemberID, opts.SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session failed"})
			return
		}
		maxAge := int(time.Until(s.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, s.Token, maxAge, "/", "", opts.SecureCookie, true)
		c.JSON(http.StatusOK, id)
	})

	api.POST("/logout", func(c *gin.Context) {
		tok, err := c.Cookie(CookieName)
		if err == nil && tok != "" {
			_ = repo.DeleteSession(tok)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", opts.SecureCookie, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api.GET("/me", func(c *gin.Context) {
		id, ok := resolve(c, repo)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusOK, id)
	})
}

func resolve(c *gin.Context, repo *Repository) (Identity, bool) {
	if v, ok := c.Get(identityKey); ok {
		return v.(Identity), true
	}
	tok, err := c.Cookie(CookieName)
	if err != nil || tok == "" {
		return Identity{}, false
	}
	id, err := repo.IdentityBySession(tok)
	if err != nil {
		return Identity{}, false
	}
	c.Set(identityKey, id)
	return id, true
}

// From returns the identity a Require* middleware stored on the context.
func From(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	return v.(Identity), true
}

// RequireMember aborts with 401 unless the request carries a live session.
func RequireMember(repo *Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolve(c, repo); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// Guarded wraps a handler with the given middleware so packages can keep
// their read routes public and protect only the mutating ones.
func Guarded(guard gin.HandlerFunc, h gin.HandlerFunc) gin.HandlerFunc {
	if guard == nil {
		return h
	}
	return func(c *gin.Context) {
		guard(c)
		if c.IsAborted() {
			return
		}
		h(c)
	}
}

// RequireRole aborts with 401/403 unless the session member holds one of
// the given roles.
func RequireRole(repo *Repository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, repo)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, role := range roles {
			if id.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
