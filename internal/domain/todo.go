package domain

import (
	"strings"
	"time"
)

// Todo is a single list entry as last reported by the record store.
// ID is assigned by the store and never changes after creation.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeTitle trims surrounding whitespace from a todo title.
// An empty result means the title is blank and must not be stored.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
