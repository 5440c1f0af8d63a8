package student

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/dbmetrics"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/psqlbuilder"
)

// Repository repository for the student fields owned by the scheduling
// engine: eligibility status and the (panel, slot) binding.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a student repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a student by id.
// Inside a transaction the row is locked with FOR UPDATE so a booking
// decision is made against a stable record.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "name", "email", "status", "registration_open", "booked_panel_id", "booked_slot_id",
	).
		From("students").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Student
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.Name, &s.Email, &s.Status, &s.RegistrationOpen, &s.BookedPanelID, &s.BookedSlotID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan student: %v", ErrScanRow, err)
	}

	return &s, nil
}

// ListIDs returns every known student id ("select all" roster seeding)
func (r *Repository) ListIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("students").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows, "ListIDs")
}

// FilterExisting returns the subset of the given ids that resolve to a
// known student, so roster writes can reject dangling references before
// they hit the foreign key.
func (r *Repository) FilterExisting(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("students").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FilterExisting - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FilterExisting - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows, "FilterExisting")
}

// GetIDsByEmails matches emails case-insensitively against known students
// and returns the ids found. Unknown emails are silently skipped.
func (r *Repository) GetIDsByEmails(ctx context.Context, emails []string) ([]int64, error) {
	if len(emails) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	lowered := make([]string, 0, len(emails))
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			lowered = append(lowered, email)
		}
	}

	query, args, err := psqlbuilder.Select("id").
		From("students").
		Where(squirrel.Eq{"LOWER(email)": lowered}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetIDsByEmails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIDsByEmails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanIDs(rows, "GetIDsByEmails")
}

// GetEmailsByIDs returns the email addresses for the given student ids,
// used to build notification recipient lists.
func (r *Repository) GetEmailsByIDs(ctx context.Context, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("email").
		From("students").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmailsByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmailsByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%w: GetEmailsByIDs - scan email: %v", ErrScanRow, err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetEmailsByIDs - rows error: %v", ErrScanRow, err)
	}

	return emails, nil
}

// scanIDs drains a single-column id result set.
func scanIDs(rows *sql.Rows, method string) ([]int64, error) {
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s - scan id: %v", ErrScanRow, method, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return ids, nil
}

// Bind records the (panel, slot) booking with compare-and-set semantics:
// the update only applies while the student is still free, so one student
// racing to register twice cannot end up double-bound.
func (r *Repository) Bind(ctx context.Context, studentID, panelID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("status", false).
		Set("booked_panel_id", panelID).
		Set("booked_slot_id", slotID).
		Where(squirrel.Eq{"id": studentID, "status": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Bind - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Bind - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Bind - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyBound
	}

	return nil
}

// Release clears the binding and restores status, leaving the slot itself
// untouched. This is the single reset primitive used by completion, slot
// deletion, panel deletion and roster removal. No-op for an unbound or
// unknown student.
func (r *Repository) Release(ctx context.Context, studentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("status", true).
		Set("booked_panel_id", nil).
		Set("booked_slot_id", nil).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ReleaseBySlot releases whoever is bound to the given slot.
// Returns the number of students released (0 or 1 in a consistent store).
func (r *Repository) ReleaseBySlot(ctx context.Context, slotID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("status", true).
		Set("booked_panel_id", nil).
		Set("booked_slot_id", nil).
		Where(squirrel.Eq{"booked_slot_id": slotID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseBySlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseBySlot - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseBySlot - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}

// ReleaseByPanel releases every student bound to any slot of the panel,
// used by the panel-delete cascade.
func (r *Repository) ReleaseByPanel(ctx context.Context, panelID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("students").
		Set("status", true).
		Set("booked_panel_id", nil).
		Set("booked_slot_id", nil).
		Where(squirrel.Eq{"booked_panel_id": panelID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByPanel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByPanel - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByPanel - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}

// GetBoundByPanel returns the students currently booked into any slot of
// the panel, keyed later by their BookedSlotID for per-slot annotation.
func (r *Repository) GetBoundByPanel(ctx context.Context, panelID int64) ([]*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "email", "status", "registration_open", "booked_panel_id", "booked_slot_id",
	).
		From("students").
		Where(squirrel.Eq{"booked_panel_id": panelID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBoundByPanel - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBoundByPanel - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		var s domain.Student
		err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Status, &s.RegistrationOpen, &s.BookedPanelID, &s.BookedSlotID)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBoundByPanel - scan row: %v", ErrScanRow, err)
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBoundByPanel - rows error: %v", ErrScanRow, err)
	}

	return students, nil
}

// GetActiveBindings returns the global student↔slot join for every active
// booking, used by the administrative oversight view.
func (r *Repository) GetActiveBindings(ctx context.Context) ([]*domain.SlotBinding, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"st.id", "st.name", "st.email",
		"p.id", "p.name",
		"s.id", "s.panel_id", "s.slot_date", "s.start_time", "s.end_time", "s.is_booked",
	).
		From("students st").
		Join("panels p ON p.id = st.booked_panel_id").
		Join("slots s ON s.id = st.booked_slot_id").
		Where(squirrel.Eq{"st.status": false}).
		OrderBy("s.slot_date ASC", "s.start_time ASC", "st.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBindings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBindings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bindings := make([]*domain.SlotBinding, 0)
	for rows.Next() {
		var b domain.SlotBinding
		err := rows.Scan(
			&b.StudentID, &b.StudentName, &b.StudentEmail,
			&b.PanelID, &b.PanelName,
			&b.Slot.ID, &b.Slot.PanelID, &b.Slot.Date, &b.Slot.StartTime, &b.Slot.EndTime, &b.Slot.IsBooked,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveBindings - scan row: %v", ErrScanRow, err)
		}
		bindings = append(bindings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveBindings - rows error: %v", ErrScanRow, err)
	}

	return bindings, nil
}
