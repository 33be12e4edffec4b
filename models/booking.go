package models

// Booking is a confirmed reservation supplied by the booking collaborator.
// The calendar engine treats bookings as read-only occupancy: it folds them
// into per-date views but never creates, edits, or removes them.
type Booking struct {
	ID               string `bson:"id" json:"id"`
	Date             string `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start            string `bson:"start" json:"start"` // "HH:MM"
	End              string `bson:"end" json:"end"`     // "HH:MM"; "24:00" = full day
	CounterpartyName string `bson:"counterpartyName" json:"counterpartyName"`
	ServiceType      string `bson:"serviceType" json:"serviceType"`
}

// IsFullDay reports whether the booking occupies the entire date.
func (b Booking) IsFullDay() bool {
	return b.Start == StartOfDay && b.End == EndOfDay
}
