package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review becomes possible once a swap completes. This core only receives
// reviews over the channel; writing them is a collaborator concern.
type Review struct {
	ID        uuid.UUID
	SwapID    uuid.UUID
	AuthorID  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
