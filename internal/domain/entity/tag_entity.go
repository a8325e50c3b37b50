package entity

import "time"

// Tag labels projects; names are unique case-insensitively.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
