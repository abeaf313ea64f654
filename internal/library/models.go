package library

import "time"

// Status tracks a disc's progress through the rip-then-encode pipeline.
type Status string

const (
	StatusRipped  Status = "ripped"
	StatusEncoded Status = "encoded"
	StatusFailed  Status = "failed"
)

// Disc is one library row: a physical disc that has been ripped at least
// once.
type Disc struct {
	ID         int64
	DiscID     string
	Status     Status
	TrackCount int
	TOCPath    string
	CuePath    string
	WAVPath    string
	FlacPath   string
	ErrorText  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Stats summarizes the library by status.
type Stats struct {
	Total   int
	Ripped  int
	Encoded int
	Failed  int
}
