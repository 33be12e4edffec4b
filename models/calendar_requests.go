package models

// AvailabilityChangeRequest is the payload for one batch availability edit:
// one decision applied across every selected date.
type AvailabilityChangeRequest struct {
	Dates       []string `json:"dates" binding:"required,min=1"`
	IsAvailable bool     `json:"isAvailable"`
	IsAllDay    bool     `json:"isAllDay"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
	Services    []string `json:"services"`
}

// Decision converts the request into the engine's decision value.
func (r AvailabilityChangeRequest) Decision() AvailabilityDecision {
	return AvailabilityDecision{
		IsAvailable: r.IsAvailable,
		IsAllDay:    r.IsAllDay,
		Start:       r.Start,
		End:         r.End,
		Services:    r.Services,
	}
}

// WeeklyDefaultsRequest is the payload for replacing the professional's
// weekly default rule set.
type WeeklyDefaultsRequest struct {
	Rules []WeeklyDefaultRule `json:"rules" binding:"required"`
}
