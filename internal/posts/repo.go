package posts

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListNews() ([]News, error) {
	var out []News
	err := r.db.Order("date DESC, id").Find(&out).Error
	return out, err
}

func (r *Repo) CreateNews(n *News) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return r.db.Create(n).Error
}

func (r *Repo) ListBlogs() ([]Blog, error) {
	var out []Blog
	err := r.db.Order("created_at DESC, id").Find(&out).Error
	return out, err
}

func (r *Repo) CreateBlog(b *Blog) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.Create(b).Error
}
