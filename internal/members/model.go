package members

import (
	"strings"

	"gorm.io/datatypes"
)

// Member is a roster row. Events holds the specialty events; PBs maps an
// event name to the member's pre-enrollment best (club results are computed
// from the results table, never stored here).
type Member struct {
	ID           string                                `gorm:"primaryKey" json:"id"`
	Name         string                                `json:"name"`
	NameKana     string                                `json:"name_kana"`
	PasswordHash string                                `json:"-"`
	Role         string                                `json:"role"` // player, super, comp, pr, admin
	RoleTitle    string                                `json:"role_title"`
	Status       string                                `json:"status"` // 現役, OB, OG, 休部
	Block        string                                `json:"block"`
	Affiliation  string                                `json:"affiliation"`
	UnivCat      string                                `json:"univ_cat"` // 学部, 修士, 博士
	GradYear     int                                   `json:"grad_year"`
	Events       datatypes.JSONSlice[string]           `json:"events"`
	PBs          datatypes.JSONType[map[string]string] `json:"pbs"`
	Bio          string                                `json:"bio"`
	Image        string                                `json:"image"` // inline data URL
}

const (
	StatusActive = "現役"
)

// CleanName normalizes a name for identity matching: trims and collapses
// full-width spaces so "山田　太郎" and " 山田 太郎 " are the same person.
func CleanName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "　", " "))
}

// GuessRole maps a free-text role title to a portal role.
func GuessRole(title string) string {
	if title == "" || title == "なし" {
		return "player"
	}
	switch {
	case strings.Contains(title, "主将"): // 副主将 matches too
		return "super"
	case strings.Contains(title, "競技会"):
		return "comp"
	case strings.Contains(title, "広報"):
		return "pr"
	case strings.Contains(title, "管理者"), strings.Contains(title, "システム"), strings.Contains(title, "主務"):
		return "admin"
	}
	return "player"
}
