package activities

// Activity is an extracurricular activity with its current enrollment.
// MaxParticipants is informational: enrollment is not capped at signup time.
type Activity struct {
	ID              string
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}
