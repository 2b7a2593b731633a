package members

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/inazy-arch/tf-fast-app/internal/tabular"
)

// RosterMapping names the uploaded file's column headers for each member
// field. Empty means "not in this file". Name is the identity column and is
// required.
type RosterMapping struct {
	Name        string `form:"col_name"`
	Kana        string `form:"col_kana"`
	ID          string `form:"col_id"`
	Password    string `form:"col_password"`
	Affiliation string `form:"col_affiliation"`
	UnivCat     string `form:"col_univ_cat"`
	GradYear    string `form:"col_grad_year"`
	Block       string `form:"col_block"`
	RoleTitle   string `form:"col_role"`
	Status      string `form:"col_status"`
	Events      string `form:"col_events"`
}

type RosterSummary struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
	// Generated initial passwords per new member id. Shown once to the
	// importing admin; only hashes are stored.
	Passwords map[string]string `json:"passwords,omitempty"`
}

// ImportRoster matches rows against the roster by normalized name. Known
// names are updated in place when overwrite is set, skipped otherwise. New
// names become members with generated ids and passwords unless the file
// supplies them.
func ImportRoster(repo *Repo, t *tabular.Table, m RosterMapping, overwrite bool) (RosterSummary, error) {
	sum := RosterSummary{Passwords: map[string]string{}}
	if m.Name == "" || !t.HasColumn(m.Name) {
		return sum, fmt.Errorf("name column %q not found", m.Name)
	}

	nameIdx, err := repo.NameIndex()
	if err != nil {
		return sum, err
	}
	taken := map[string]bool{}
	for _, id := range nameIdx {
		taken[id] = true
	}

	for i, row := range t.Rows {
		name := CleanName(t.Cell(row, m.Name))
		if name == "" {
			continue
		}

		if id, known := nameIdx[name]; known {
			if !overwrite {
				sum.Skipped++
				continue
			}
			mem, err := repo.Get(id)
			if err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
			applyRow(mem, t, row, m)
			if err := repo.Save(mem); err != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
			sum.Updated++
			continue
		}

		id := t.Cell(row, m.ID)
		if id != "" {
			if taken[id] {
				sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: id %s already in use", i+2, id))
				continue
			}
			if exists, err := repo.Exists(id); err != nil {
				return sum, err
			} else if exists {
				sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: id %s already in use", i+2, id))
				continue
			}
			taken[id] = true
		} else {
			if id, err = repo.NewID(taken); err != nil {
				return sum, err
			}
		}

		password := t.Cell(row, m.Password)
		generated := password == ""
		if generated {
			if password, err = NewPassword(); err != nil {
				return sum, err
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return sum, err
		}

		mem := &Member{
			ID:           id,
			Name:         name,
			PasswordHash: string(hash),
			Role:         "player",
			Status:       StatusActive,
		}
		applyRow(mem, t, row, m)
		if err := repo.Save(mem); err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		nameIdx[name] = id
		sum.Added++
		if generated {
			sum.Passwords[id] = password
		}
	}
	return sum, nil
}

// applyRow copies mapped, non-empty cells onto the member. Empty cells keep
// whatever the member already has.
func applyRow(mem *Member, t *tabular.Table, row []string, m RosterMapping) {
	set := func(col string, dst *string) {
		if col == "" {
			return
		}
		if v := t.Cell(row, col); v != "" {
			*dst = v
		}
	}
	set(m.Kana, &mem.NameKana)
	set(m.Affiliation, &mem.Affiliation)
	set(m.UnivCat, &mem.UnivCat)
	set(m.Block, &mem.Block)
	set(m.Status, &mem.Status)

	if m.GradYear != "" {
		if v := tabular.IntString(t.Cell(row, m.GradYear)); v != "" {
			if y, err := strconv.Atoi(v); err == nil {
				mem.GradYear = y
			}
		}
	}
	if m.RoleTitle != "" {
		if v := t.Cell(row, m.RoleTitle); v != "" {
			mem.RoleTitle = v
			mem.Role = GuessRole(v)
		}
	}
	if m.Events != "" {
		if v := t.Cell(row, m.Events); v != "" {
			mem.Events = datatypes.NewJSONSlice(splitEvents(v))
		}
	}
}

func splitEvents(s string) []string {
	var out []string
	for _, e := range strings.Split(strings.ReplaceAll(s, "、", ","), ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
