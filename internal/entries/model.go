package entries

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one member's submission for one competition. A member has at
// most one entry per competition; re-submitting replaces the earlier one.
type Entry struct {
	ID       string                      `gorm:"primaryKey" json:"id"`
	CompID   string                      `gorm:"index" json:"comp_id"`
	MemberID string                      `gorm:"index" json:"member_id"`
	Events   datatypes.JSONSlice[string] `json:"events"`
	// Times holds the declared (self-reported) mark per entered event.
	Times     datatypes.JSONType[map[string]string] `json:"times"`
	Comment   string                                `json:"comment"`
	CreatedAt time.Time                             `json:"created_at"`
	UpdatedAt time.Time                             `json:"updated_at"`
}
