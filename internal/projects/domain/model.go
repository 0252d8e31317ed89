package domain

// Project is a named category sessions are tracked against. Projects come
// from a fixed seed list at environment bootstrap and are never created,
// renamed, or deleted through the API.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SeedNames is the fixed project list inserted at environment bootstrap.
var SeedNames = []string{"Work", "Personal", "Learning", "Exercise", "Hobbies"}
