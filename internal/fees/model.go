package fees

import "gorm.io/datatypes"

// Per-member payment states.
const (
	StatusUnpaid = "未納"
	StatusPaid   = "済"
)

// Fee is one collection event (annual dues, meet entry fees, camp
// costs). Statuses maps member id to payment state for every member the
// fee was levied on.
type Fee struct {
	ID       string                                `gorm:"primaryKey" json:"id"`
	Title    string                                `json:"title"`
	Amount   int                                   `json:"amount"`
	Deadline string                                `json:"deadline"`
	Statuses datatypes.JSONType[map[string]string] `json:"statuses"`
}
