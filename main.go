package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/inazy-arch/tf-fast-app/internal/auth"
	"github.com/inazy-arch/tf-fast-app/internal/competitions"
	"github.com/inazy-arch/tf-fast-app/internal/config"
	"github.com/inazy-arch/tf-fast-app/internal/db"
	"github.com/inazy-arch/tf-fast-app/internal/entries"
	"github.com/inazy-arch/tf-fast-app/internal/fees"
	"github.com/inazy-arch/tf-fast-app/internal/members"
	"github.com/inazy-arch/tf-fast-app/internal/posts"
	"github.com/inazy-arch/tf-fast-app/internal/results"
	"github.com/inazy-arch/tf-fast-app/internal/startlist"
)

func main() {
	cfg := config.Load()

	d := db.Open(cfg.DBPath)
	db.AutoMigrate(d,
		&members.Member{},
		&auth.Session{},
		&competitions.Competition{},
		&entries.Entry{},
		&results.Result{},
		&startlist.Row{},
		&fees.Fee{},
		&posts.News{},
		&posts.Blog{},
	)

	memberRepo := members.NewRepo(d)
	bootstrapAdmin(memberRepo, cfg)

	authRepo := auth.NewRepository(d)
	compRepo := competitions.NewRepo(d)
	entryRepo := entries.NewRepo(d)
	resultRepo := results.NewRepo(d, compRepo, memberRepo)
	startRepo := startlist.NewRepo(d)
	feeRepo := fees.NewRepo(d, memberRepo)
	postRepo := posts.NewRepo(d)

	protect := auth.RequireMember(authRepo)
	adminOnly := auth.RequireRole(authRepo, "admin", "super")
	compOnly := auth.RequireRole(authRepo, "comp", "admin", "super")
	prOnly := auth.RequireRole(authRepo, "pr", "admin", "super")

	r := gin.Default()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatalf("trusted proxies: %v", err)
	}

	auth.RegisterRoutes(r, authRepo, auth.Options{
		SessionTTL:   cfg.SessionTTL,
		SecureCookie: cfg.CookieSecure,
	})
	members.RegisterRoutes(r, memberRepo, protect, adminOnly)
	competitions.RegisterRoutes(r, compRepo, adminOnly)
	entries.RegisterRoutes(r, entryRepo, compRepo, memberRepo, resultRepo, protect, compOnly)
	results.RegisterRoutes(r, resultRepo, postRepo, compOnly, prOnly)
	startlist.RegisterRoutes(r, startRepo, entryRepo, memberRepo, protect, compOnly)
	fees.RegisterRoutes(r, feeRepo, protect, adminOnly)
	posts.RegisterRoutes(r, postRepo, protect, prOnly)

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// bootstrapAdmin creates the first admin account from the environment
// when the roster has none yet. Nothing happens once an admin exists.
func bootstrapAdmin(repo *members.Repo, cfg config.Config) {
	if cfg.BootstrapAdminID == "" || cfg.BootstrapAdminPassword == "" {
		return
	}
	has, err := repo.HasAdmin()
	if err != nil {
		log.Fatalf("admin check: %v", err)
	}
	if has {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	m := members.Member{
		ID:           cfg.BootstrapAdminID,
		Name:         "管理者",
		PasswordHash: string(hash),
		Role:         "admin",
		RoleTitle:    "管理者",
		Status:       members.StatusActive,
	}
	if err := repo.Save(&m); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	log.Printf("created bootstrap admin %s", m.ID)
}
