package feedback

import (
	"context"
	"errors"

	"github.com/alexanderramin/renovo/internal/domain"
)

// ErrStoreCorrupt marks persisted feedback state that cannot be decoded.
var ErrStoreCorrupt = errors.New("feedback store corrupt")

// Backend loads and saves the whole feedback state.
type Backend interface {
	// Load returns the persisted state, an empty state when nothing was
	// persisted yet, or an error wrapping ErrStoreCorrupt.
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st *State) error
}

// Journal is implemented by backends that can persist single events more
// cheaply than a full Save.
type Journal interface {
	AppendOutcome(ctx context.Context, rec domain.FeedbackRecord, keep int) error
	PutMultiplier(ctx context.Context, m domain.ProductivityMultiplier) error
}
