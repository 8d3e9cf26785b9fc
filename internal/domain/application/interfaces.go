package application

import "context"

// Repository provides reads and descriptive-field updates for applications.
type Repository interface {
	Get(ctx context.Context, ownerID, id string) (*Application, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Application, error)
	UpdateFields(ctx context.Context, ownerID, id string, patch FieldPatch) (*Application, error)
}

// Board places applications on the board; it owns status and position.
type Board interface {
	Insert(ctx context.Context, ownerID string, app *Application) error
	Remove(ctx context.Context, ownerID, id string) error
}
