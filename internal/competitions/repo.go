package competitions

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List() ([]Competition, error) {
	var out []Competition
	err := r.db.Order("date DESC, id").Find(&out).Error
	return out, err
}

func (r *Repo) Get(id string) (*Competition, error) {
	var c Competition
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(c *Competition) error {
	if c.ID == "" {
		c.ID = uuid.NewString()[:8]
	}
	if c.Status == "" {
		c.Status = StatusOpen
	}
	return r.db.Create(c).Error
}

func (r *Repo) UpdateStatus(id, status string) error {
	res := r.db.Model(&Competition{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IDMap loads all competitions keyed by id, for read-time joins.
func (r *Repo) IDMap() (map[string]Competition, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	m := make(map[string]Competition, len(list))
	for _, c := range list {
		m[c.ID] = c
	}
	return m, nil
}
