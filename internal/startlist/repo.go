package startlist

import (
	"gorm.io/gorm"

	"github.com/inazy-arch/tf-fast-app/internal/members"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Replace swaps out a competition's start list in one transaction. Rows
// of other competitions are untouched.
func (r *Repo) Replace(compID string, rows []Row) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comp_id = ?", compID).Delete(&Row{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].CompID = compID
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) ListByComp(compID string) ([]Row, error) {
	var out []Row
	err := r.db.Where("comp_id = ?", compID).
		Order("session_time, event, heat, lane").Find(&out).Error
	return out, err
}

// ForName filters a competition's rows to one athlete. Start lists come
// from organizers, so the match is by normalized name, not member id.
func (r *Repo) ForName(compID, name string) ([]Row, error) {
	rows, err := r.ListByComp(compID)
	if err != nil {
		return nil, err
	}
	want := members.CleanName(name)
	out := []Row{}
	for _, row := range rows {
		if members.CleanName(row.Name) == want {
			out = append(out, row)
		}
	}
	return out, nil
}
