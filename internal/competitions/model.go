package competitions

import "gorm.io/datatypes"

// Competition statuses. Transitions happen only through an explicit status
// update by an admin; a passed deadline never flips a competition on its
// own.
const (
	StatusPreparing = "準備中"
	StatusOpen      = "募集中"
	StatusClosed    = "締切"
	StatusFinished  = "終了"
)

var knownStatuses = map[string]bool{
	StatusPreparing: true,
	StatusOpen:      true,
	StatusClosed:    true,
	StatusFinished:  true,
}

// Competition dates and deadlines are zero-padded ISO strings ("2006-01-02")
// and are compared lexicographically, including the qualifying window
// [ValidStart, ValidEnd].
type Competition struct {
	ID         string                      `gorm:"primaryKey" json:"id"`
	Name       string                      `json:"name"`
	Date       string                      `json:"date"`
	Location   string                      `json:"location"`
	Deadline   string                      `json:"deadline"`
	Status     string                      `json:"status"`
	Events     datatypes.JSONSlice[string] `json:"events"`
	ValidStart string                      `json:"valid_start"`
	ValidEnd   string                      `json:"valid_end"`
}
