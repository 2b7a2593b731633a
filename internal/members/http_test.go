package members

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
)

type patchFixture struct {
	router *gin.Engine
	repo   *Repo
	auth   *auth.Repository
}

func setupRoutes(t *testing.T) patchFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Member{}, &auth.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewRepo(db)
	for _, m := range []Member{
		{ID: "uec001", Name: "平部 員太", Role: "player", Status: StatusActive},
		{ID: "uec002", Name: "主将 統子", Role: "super", RoleTitle: "主将", Status: StatusActive},
		{ID: "uec003", Name: "管理 者人", Role: "admin", RoleTitle: "主務", Status: StatusActive},
	} {
		m := m
		if err := repo.Save(&m); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	authRepo := auth.NewRepository(db)
	r := gin.New()
	RegisterRoutes(r, repo, auth.RequireMember(authRepo), auth.RequireRole(authRepo, "admin", "super"))
	return patchFixture{router: r, repo: repo, auth: authRepo}
}

func (f patchFixture) patch(t *testing.T, asMember, target, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/members/"+target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if asMember != "" {
		s, err := f.auth.CreateSession(asMember, time.Hour)
		if err != nil {
			t.Fatalf("session: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: s.Token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w.Code
}

func (f patchFixture) member(t *testing.T, id string) *Member {
	t.Helper()
	m, err := f.repo.Get(id)
	if err != nil {
		t.Fatalf("get %s: %v", id, err)
	}
	return m
}

func TestPatchMemberCannotSelfPromoteViaRoleTitle(t *testing.T) {
	f := setupRoutes(t)

	code := f.patch(t, "uec001", "uec001", `{"role_title":"管理者"}`)
	assertEq(t, code, http.StatusForbidden)

	m := f.member(t, "uec001")
	assertEq(t, m.Role, "player")
	assertEq(t, m.RoleTitle, "")

	// Status is admin-managed for the same reason.
	code = f.patch(t, "uec001", "uec001", `{"status":"OB"}`)
	assertEq(t, code, http.StatusForbidden)
	assertEq(t, f.member(t, "uec001").Status, StatusActive)
}

func TestPatchMemberSelfEditKeepsRole(t *testing.T) {
	f := setupRoutes(t)

	code := f.patch(t, "uec001", "uec001", `{"bio":"800m専門です","pbs":{"800m":"2:05.1"}}`)
	assertEq(t, code, http.StatusOK)

	m := f.member(t, "uec001")
	assertEq(t, m.Bio, "800m専門です")
	assertEq(t, m.Role, "player")
}

func TestPatchMemberPermissionMatrix(t *testing.T) {
	f := setupRoutes(t)

	// A player cannot touch someone else's row.
	code := f.patch(t, "uec001", "uec002", `{"bio":"x"}`)
	assertEq(t, code, http.StatusForbidden)

	// Super and admin edit any row, including the role title.
	code = f.patch(t, "uec002", "uec001", `{"block":"中距離"}`)
	assertEq(t, code, http.StatusOK)
	assertEq(t, f.member(t, "uec001").Block, "中距離")

	code = f.patch(t, "uec003", "uec001", `{"role_title":"広報"}`)
	assertEq(t, code, http.StatusOK)
	promoted := f.member(t, "uec001")
	assertEq(t, promoted.RoleTitle, "広報")
	assertEq(t, promoted.Role, "pr")

	// No session at all.
	code = f.patch(t, "", "uec001", `{"bio":"x"}`)
	assertEq(t, code, http.StatusUnauthorized)
}
