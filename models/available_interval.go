package models

// AvailableInterval represents a continuous time block available for booking.
type AvailableInterval struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"; "24:00" = end of day
	Label string `json:"label"` // e.g., "09:00 - 13:00"
}
