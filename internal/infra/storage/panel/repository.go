package panel

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/dbmetrics"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/psqlbuilder"
)

// Repository repository for interview panels and their rosters
type Repository struct {
	db DBExecutor
}

// NewRepository creates a panel repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new panel
func (r *Repository) Create(ctx context.Context, p *domain.Panel) (*domain.Panel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("panels").
		Columns("name", "description", "capacity").
		Values(p.Name, p.Description, p.Capacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID fetches a panel by id.
// Inside a transaction the row is locked with FOR UPDATE so cascading
// operations see a stable panel.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Panel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "description", "capacity", "created_at", "updated_at").
		From("panels").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Panel
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Description, &p.Capacity, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPanelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan panel: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// List returns every panel
func (r *Repository) List(ctx context.Context) ([]*domain.Panel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "description", "capacity", "created_at", "updated_at").
		From("panels").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	panels := make([]*domain.Panel, 0)
	for rows.Next() {
		var p domain.Panel
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Capacity, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time
		panels = append(panels, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return panels, nil
}

// Delete removes a panel. Owned slots and roster rows go with it via
// ON DELETE CASCADE; releasing bound students is the caller's duty and
// must happen in the same transaction.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("panels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPanelNotFound
	}

	return nil
}

// AddStudents adds student ids to the roster with set-union semantics:
// ids already present are skipped via ON CONFLICT DO NOTHING.
func (r *Repository) AddStudents(ctx context.Context, panelID int64, studentIDs []int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("panel_students").
		Columns("panel_id", "student_id")
	for _, studentID := range studentIDs {
		insertBuilder = insertBuilder.Values(panelID, studentID)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (panel_id, student_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddStudents - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddStudents - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveStudent removes one student from the roster (set difference)
func (r *Repository) RemoveStudent(ctx context.Context, panelID, studentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("panel_students").
		Where(squirrel.Eq{"panel_id": panelID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveStudent - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveStudent - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RemoveStudent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStudentNotOnRoster
	}

	return nil
}

// GetRoster returns the student ids registered to the panel
func (r *Repository) GetRoster(ctx context.Context, panelID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("student_id").
		From("panel_students").
		Where(squirrel.Eq{"panel_id": panelID}).
		OrderBy("student_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoster - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoster - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetRoster - scan student_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRoster - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// RosterContains reports whether the student is registered to the panel
func (r *Repository) RosterContains(ctx context.Context, panelID, studentID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("panel_students").
		Where(squirrel.Eq{"panel_id": panelID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: RosterContains - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: RosterContains - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}
