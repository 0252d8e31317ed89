package domain

import "time"

// Session is a recorded time interval tracked against a project. A session
// with no end time is open (in progress); supplying both times closes it.
// CreatedAt is assigned by storage at insert and is the canonical ordering
// key for listings.
type Session struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"project_id"`
	StartTime Timestamp  `json:"start_time"`
	EndTime   *Timestamp `json:"end_time"`
	CreatedAt time.Time  `json:"created_at"`
}

// Open reports whether the session is still in progress.
func (s *Session) Open() bool {
	return s.EndTime == nil
}
