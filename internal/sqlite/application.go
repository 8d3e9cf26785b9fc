package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mlevin/applytrack/internal/domain/application"
	"github.com/mlevin/applytrack/internal/repository"
)

const applicationColumns = `
	id, user_id, company_name, job_title, status, position,
	date_applied, job_posting_url, salary_notes, private_notes,
	contact_name, contact_email, reminder_date, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	err := row.Scan(
		&app.ID,
		&app.OwnerID,
		&app.CompanyName,
		&app.JobTitle,
		&app.Status,
		&app.Position,
		&app.DateApplied,
		&app.JobPostingURL,
		&app.SalaryNotes,
		&app.PrivateNotes,
		&app.ContactName,
		&app.ContactEmail,
		&app.ReminderDate,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ApplicationRepository implements repository.ApplicationRepository for SQLite
type ApplicationRepository struct {
	db *DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Get retrieves an application by ID, scoped to its owner
func (r *ApplicationRepository) Get(ctx context.Context, ownerID, id string) (*application.Application, error) {
	return getApplication(ctx, r.db, ownerID, id)
}

// ListByOwner returns the user's applications ordered by (status, position)
func (r *ApplicationRepository) ListByOwner(ctx context.Context, ownerID string) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = ?
		ORDER BY status ASC, position ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, nil
}

// UpdateFields patches descriptive fields of one application. Status and
// position are never touched here.
func (r *ApplicationRepository) UpdateFields(ctx context.Context, ownerID, id string, patch application.FieldPatch) (*application.Application, error) {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}

	if patch.CompanyName != nil {
		sets = append(sets, "company_name = ?")
		args = append(args, *patch.CompanyName)
	}
	if patch.JobTitle != nil {
		sets = append(sets, "job_title = ?")
		args = append(args, *patch.JobTitle)
	}
	if patch.DateApplied != nil {
		sets = append(sets, "date_applied = ?")
		args = append(args, *patch.DateApplied)
	}
	if patch.JobPostingURL != nil {
		sets = append(sets, "job_posting_url = ?")
		args = append(args, *patch.JobPostingURL)
	}
	if patch.SalaryNotes != nil {
		sets = append(sets, "salary_notes = ?")
		args = append(args, *patch.SalaryNotes)
	}
	if patch.PrivateNotes != nil {
		sets = append(sets, "private_notes = ?")
		args = append(args, *patch.PrivateNotes)
	}
	if patch.ContactName != nil {
		sets = append(sets, "contact_name = ?")
		args = append(args, *patch.ContactName)
	}
	if patch.ContactEmail != nil {
		sets = append(sets, "contact_email = ?")
		args = append(args, *patch.ContactEmail)
	}
	if patch.ReminderDate != nil {
		sets = append(sets, "reminder_date = ?")
		args = append(args, *patch.ReminderDate)
	}

	query := fmt.Sprintf(
		`UPDATE applications SET %s WHERE id = ? AND user_id = ?`,
		strings.Join(sets, ", "),
	)
	args = append(args, id, ownerID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	return getApplication(ctx, r.db, ownerID, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getApplication(ctx context.Context, q querier, ownerID, id string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = ? AND user_id = ?`

	app, err := scanApplication(q.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// BoardStore implements repository.BoardStore for SQLite. SQLite write
// transactions are serialized by a single database lock, which gives the
// board's read-then-sweep sequence the isolation it requires.
type BoardStore struct {
	db *DB
}

// NewBoardStore creates a new BoardStore
func NewBoardStore(db *DB) *BoardStore {
	return &BoardStore{db: db}
}

// InTx runs fn inside one transaction with all-or-nothing commit
func (s *BoardStore) InTx(ctx context.Context, fn func(tx repository.BoardTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if isBusy(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&boardTx{tx: tx}); err != nil {
		if isBusy(err) {
			return repository.ErrConflict
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isBusy(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

type boardTx struct {
	tx *sql.Tx
}

func (t *boardTx) Get(ctx context.Context, ownerID, id string) (*application.Application, error) {
	return getApplication(ctx, t.tx, ownerID, id)
}

func (t *boardTx) CountPartition(ctx context.Context, ownerID string, status application.Status) (int, error) {
	var count int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = ? AND status = ?`,
		ownerID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count column: %w", err)
	}
	return count, nil
}

func (t *boardTx) ShiftRange(ctx context.Context, ownerID string, status application.Status, from int, to *int, delta int) error {
	query := `
		UPDATE applications
		SET position = position + ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND status = ? AND position >= ?
	`
	args := []any{delta, ownerID, status, from}

	if to != nil {
		query += ` AND position <= ?`
		args = append(args, *to)
	}

	if _, err := t.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to shift positions: %w", err)
	}
	return nil
}

func (t *boardTx) Place(ctx context.Context, ownerID, id string, status application.Status, position int) error {
	result, err := t.tx.ExecContext(ctx, `
		UPDATE applications
		SET status = ?, position = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		status, position, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to place application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (t *boardTx) Insert(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := t.tx.ExecContext(ctx, query,
		app.ID,
		app.OwnerID,
		app.CompanyName,
		app.JobTitle,
		app.Status,
		app.Position,
		app.DateApplied,
		app.JobPostingURL,
		app.SalaryNotes,
		app.PrivateNotes,
		app.ContactName,
		app.ContactEmail,
		app.ReminderDate,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("unknown owner %s: %w", app.OwnerID, repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (t *boardTx) Delete(ctx context.Context, ownerID, id string) error {
	result, err := t.tx.ExecContext(ctx,
		`DELETE FROM applications WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
