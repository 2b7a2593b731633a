package members

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List() ([]Member, error) {
	var out []Member
	err := r.db.Order("id").Find(&out).Error
	return out, err
}

func (r *Repo) Get(id string) (*Member, error) {
	var m Member
	if err := r.db.First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the whole row, inserting when the id is new.
func (r *Repo) Save(m *Member) error { return r.db.Save(m).Error }

func (r *Repo) Exists(id string) (bool, error) {
	var n int64
	err := r.db.Model(&Member{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *Repo) HasAdmin() (bool, error) {
	var n int64
	err := r.db.Model(&Member{}).Where("role = ?", "admin").Count(&n).Error
	return n > 0, err
}

// NameIndex maps normalized names to member ids, for matching imported rows
// against the existing roster.
func (r *Repo) NameIndex() (map[string]string, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(list))
	for _, m := range list {
		idx[CleanName(m.Name)] = m.ID
	}
	return idx, nil
}

// NewID generates an unused roster id of the form uec000..uec999. taken is
// consulted first so a batch can reserve ids before anything is written.
func (r *Repo) NewID(taken map[string]bool) (string, error) {
	for i := 0; i < 5000; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000))
		if err != nil {
			return "", err
		}
		id := fmt.Sprintf("uec%03d", n.Int64())
		if taken[id] {
			continue
		}
		exists, err := r.Exists(id)
		if err != nil {
			return "", err
		}
		if !exists {
			if taken != nil {
				taken[id] = true
			}
			return id, nil
		}
	}
	return "", errors.New("id space exhausted")
}

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewPassword returns a random 8-character initial password. It is handed
// to the importing admin once and only the bcrypt hash is stored.
func NewPassword() (string, error) {
	out := make([]byte, 8)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			return "", err
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out), nil
}
