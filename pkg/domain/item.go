package domain

// Entry represents a single article of a feed
type Entry struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Summary   string    `json:"summary"`
	Published Published `json:"published"`
}
