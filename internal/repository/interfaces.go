package repository

import (
	"context"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/domain/user"
)

// UserRepository manages user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// ApplicationRepository manages application reads and descriptive-field
// updates. Anything that changes column membership or ordering goes through
// BoardStore instead.
type ApplicationRepository interface {
	Get(ctx context.Context, ownerID, id string) (*application.Application, error)
	// ListByOwner returns every application of one user ordered by
	// (status, position), i.e. the full board in display order.
	ListByOwner(ctx context.Context, ownerID string) ([]application.Application, error)
	// UpdateFields patches descriptive fields only; id, owner, status and
	// position are not writable through this path.
	UpdateFields(ctx context.Context, ownerID, id string, patch application.FieldPatch) (*application.Application, error)
}

// BoardTx is the set of operations available inside one board transaction.
// All of them are scoped to a single owner; position arithmetic on ranges is
// applied as bulk updates by the store.
type BoardTx interface {
	Get(ctx context.Context, ownerID, id string) (*application.Application, error)
	// CountPartition returns the number of applications in one
	// (owner, status) column.
	CountPartition(ctx context.Context, ownerID string, status application.Status) (int, error)
	// ShiftRange adds delta to the position of every application in the
	// (ownerID, status) column with from <= position, bounded above by
	// position <= *to when to is non-nil.
	ShiftRange(ctx context.Context, ownerID string, status application.Status, from int, to *int, delta int) error
	// Place sets the column and position of a single application.
	Place(ctx context.Context, ownerID, id string, status application.Status, position int) error
	Insert(ctx context.Context, app *application.Application) error
	Delete(ctx context.Context, ownerID, id string) error
}

// BoardStore runs board mutations inside a single atomic transaction. If fn
// returns an error the transaction is rolled back and no write is visible.
type BoardStore interface {
	InTx(ctx context.Context, fn func(tx BoardTx) error) error
}
