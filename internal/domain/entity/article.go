package entity

import (
	"time"

	"github.com/google/uuid"
)

// Article is a single piece of content managed by the system.
type Article struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the article.
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time // Set once at creation; listing is ordered by it, newest first.
	UpdatedAt time.Time
}
