package entries

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Save upserts the member's entry for a competition. An existing
// (comp_id, member_id) row keeps its id and creation time; only the
// submitted fields change.
func (r *Repo) Save(e *Entry) error {
	var prev Entry
	err := r.db.First(&prev, "comp_id = ? AND member_id = ?", e.CompID, e.MemberID).Error
	switch {
	case err == nil:
		e.ID = prev.ID
		e.CreatedAt = prev.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		e.ID = uuid.NewString()
	default:
		return err
	}
	return r.db.Save(e).Error
}

func (r *Repo) ListByComp(compID string) ([]Entry, error) {
	var out []Entry
	err := r.db.Where("comp_id = ?", compID).Order("created_at").Find(&out).Error
	return out, err
}

func (r *Repo) ListByMember(memberID string) ([]Entry, error) {
	var out []Entry
	err := r.db.Where("member_id = ?", memberID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *Repo) Find(compID, memberID string) (*Entry, error) {
	var e Entry
	if err := r.db.First(&e, "comp_id = ? AND member_id = ?", compID, memberID).Error; err != nil {
		return nil, err
	}
	return &e, nil
}
