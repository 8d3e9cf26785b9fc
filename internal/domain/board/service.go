package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/repository"
)

// Service maintains the ordering invariant of the board: within every
// (owner, status) column, positions are exactly {0..n-1} in display order.
// Every mutation that changes column membership (insert, move, delete) goes
// through it, each as one atomic store transaction.
//
// The service is stateless and reentrant; isolation between concurrent
// calls is delegated to BoardStore.InTx.
type Service struct {
	store  repository.BoardStore
	logger *slog.Logger
}

// NewService creates a new board service.
func NewService(store repository.BoardStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// RepositionRequest describes a drag-and-drop move: the application ends up
// at NewIndex within the NewStatus column.
type RepositionRequest struct {
	ApplicationID string
	NewStatus     application.Status
	NewIndex      int
}

// Insert appends the application at the end of its column. The count and the
// insert happen in the same transaction, so two concurrent creations cannot
// compute the same position.
func (s *Service) Insert(ctx context.Context, ownerID string, app *application.Application) error {
	if !app.Status.Valid() {
		return application.ErrUnknownStatus
	}
	return s.store.InTx(ctx, func(tx repository.BoardTx) error {
		count, err := tx.CountPartition(ctx, ownerID, app.Status)
		if err != nil {
			return fmt.Errorf("counting column: %w", err)
		}
		app.Position = count
		if err := tx.Insert(ctx, app); err != nil {
			return fmt.Errorf("inserting application: %w", err)
		}
		return nil
	})
}

// Reposition moves an application within its column or across columns and
// returns it with its new placement. Moving a record to the slot it already
// occupies is a no-op that still commits.
func (s *Service) Reposition(ctx context.Context, ownerID string, req RepositionRequest) (*application.Application, error) {
	if req.ApplicationID == "" {
		return nil, application.ErrInvalidInput
	}
	if !req.NewStatus.Valid() {
		return nil, application.ErrUnknownStatus
	}
	if req.NewIndex < 0 {
		return nil, ErrIndexOutOfRange
	}

	var moved *application.Application
	err := s.store.InTx(ctx, func(tx repository.BoardTx) error {
		app, err := tx.Get(ctx, ownerID, req.ApplicationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return application.ErrNotFound
			}
			return fmt.Errorf("loading application: %w", err)
		}

		oldStatus, oldIndex := app.Status, app.Position
		if oldStatus == req.NewStatus && oldIndex == req.NewIndex {
			moved = app
			return nil
		}

		destCount, err := tx.CountPartition(ctx, ownerID, req.NewStatus)
		if err != nil {
			return fmt.Errorf("counting destination column: %w", err)
		}
		// Within a column the moving record doesn't occupy a new slot, so
		// the highest reachable index is count-1; across columns it may
		// land one past the end.
		limit := destCount
		if oldStatus == req.NewStatus {
			limit = destCount - 1
		}
		if req.NewIndex > limit {
			return ErrIndexOutOfRange
		}

		if oldStatus == req.NewStatus {
			if req.NewIndex > oldIndex {
				// Moving toward the end: (oldIndex, newIndex] shift up to
				// fill the vacated slot.
				to := req.NewIndex
				err = tx.ShiftRange(ctx, ownerID, oldStatus, oldIndex+1, &to, -1)
			} else {
				// Moving toward the front: [newIndex, oldIndex) shift down
				// to make room.
				to := oldIndex - 1
				err = tx.ShiftRange(ctx, ownerID, oldStatus, req.NewIndex, &to, +1)
			}
			if err != nil {
				return fmt.Errorf("shifting column: %w", err)
			}
		} else {
			// Close the gap left in the source column.
			if err := tx.ShiftRange(ctx, ownerID, oldStatus, oldIndex+1, nil, -1); err != nil {
				return fmt.Errorf("closing source gap: %w", err)
			}
			// Open a slot in the destination column.
			if err := tx.ShiftRange(ctx, ownerID, req.NewStatus, req.NewIndex, nil, +1); err != nil {
				return fmt.Errorf("opening destination slot: %w", err)
			}
		}

		if err := tx.Place(ctx, ownerID, req.ApplicationID, req.NewStatus, req.NewIndex); err != nil {
			return fmt.Errorf("placing application: %w", err)
		}

		app.Status = req.NewStatus
		app.Position = req.NewIndex
		moved = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("application repositioned",
		"application", req.ApplicationID,
		"status", req.NewStatus,
		"index", req.NewIndex,
	)
	return moved, nil
}

// Remove deletes an application and compacts its column so the positions
// left behind stay dense.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return application.ErrInvalidInput
	}
	return s.store.InTx(ctx, func(tx repository.BoardTx) error {
		app, err := tx.Get(ctx, ownerID, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return application.ErrNotFound
			}
			return fmt.Errorf("loading application: %w", err)
		}
		if err := tx.Delete(ctx, ownerID, id); err != nil {
			return fmt.Errorf("deleting application: %w", err)
		}
		if err := tx.ShiftRange(ctx, ownerID, app.Status, app.Position+1, nil, -1); err != nil {
			return fmt.Errorf("compacting column: %w", err)
		}
		return nil
	})
}
