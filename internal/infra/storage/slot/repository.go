package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Ash469/ccd-training-skilling-sub000/internal/domain"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/dbmetrics"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/psqlbuilder"
)

const slotColumns = "id, panel_id, slot_date, start_time, end_time, is_booked, created_at"

// Repository repository for panel slots
type Repository struct {
	db DBExecutor
}

// NewRepository creates a slot repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a single slot, unbooked by default
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("panel_id", "slot_date", "start_time", "end_time").
		Values(s.PanelID, s.Date, s.StartTime, s.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.IsBooked = false
	s.CreatedAt = createdAt.Time

	return s, nil
}

// CreateBatch inserts normalized slots for a panel in one statement.
// No overlap checking happens here: bulk import is append-only.
func (r *Repository) CreateBatch(ctx context.Context, panelID int64, slots []domain.NormalizedSlot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("slots").
		Columns("panel_id", "slot_date", "start_time", "end_time")
	for _, s := range slots {
		insertBuilder = insertBuilder.Values(panelID, s.Date, s.StartTime, s.EndTime)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING " + slotColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByID fetches a slot scoped to its owning panel.
// Inside a transaction the row is locked with FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, panelID, slotID int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "panel_id", "slot_date", "start_time", "end_time", "is_booked", "created_at",
	).
		From("slots").
		Where(squirrel.Eq{"id": slotID, "panel_id": panelID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.PanelID, &s.Date, &s.StartTime, &s.EndTime, &s.IsBooked, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time

	return &s, nil
}

// GetByPanel returns every slot of a panel ordered by (date, start, id)
func (r *Repository) GetByPanel(ctx context.Context, panelID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "panel_id", "slot_date", "start_time", "end_time", "is_booked", "created_at",
	).
		From("slots").
		Where(squirrel.Eq{"panel_id": panelID}).
		OrderBy("slot_date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPanel - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPanel - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// HasOverlapping reports whether any slot of the panel on the given date
// intersects the half-open interval [start, end). Touching boundaries are
// not an overlap. Inside a transaction the matching rows are locked, which
// together with serializable isolation makes concurrent overlapping adds
// impossible.
func (r *Repository) HasOverlapping(ctx context.Context, panelID int64, date time.Time, start, end string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("slots").
		Where(squirrel.Eq{"panel_id": panelID, "slot_date": date}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Book flips is_booked with compare-and-set semantics: the update only
// applies while the slot is still free, so two racing registrations can
// never both succeed.
func (r *Repository) Book(ctx context.Context, panelID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_booked", true).
		Where(squirrel.Eq{"id": slotID, "panel_id": panelID, "is_booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Book - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Book - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Book - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotAlreadyBooked
	}

	return nil
}

// Unbook marks a slot free again. Used when a roster removal releases a
// student but the slot itself survives for others.
func (r *Repository) Unbook(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_booked", false).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Unbook - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Unbook - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Unbook - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete removes a slot from its panel. Releasing a bound student is the
// caller's duty and must happen in the same transaction.
func (r *Repository) Delete(ctx context.Context, panelID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": slotID, "panel_id": panelID}).
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
		return ErrSlotNotFound
	}

	return nil
}

// CountBooked returns how many of the panel's slots are currently booked.
// This is the capacity check's denominator: one booked slot is one bound
// student, so the count equals the panel's roster-booking count.
func (r *Repository) CountBooked(ctx context.Context, panelID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"panel_id": panelID, "is_booked": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBooked - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBooked - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetOpenFutureForStudent returns every unbooked slot, across all panels
// whose roster contains the student, whose (date, end time) is still ahead
// of now. Ordered by (date, start, id) so equal-time slots keep a
// deterministic relative order.
func (r *Repository) GetOpenFutureForStudent(ctx context.Context, studentID int64, now time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nowClock := now.Format(domain.TimeFormat)

	query, args, err := psqlbuilder.Select(
		"s.id", "s.panel_id", "s.slot_date", "s.start_time", "s.end_time", "s.is_booked", "s.created_at",
	).
		From("slots s").
		Join("panel_students ps ON ps.panel_id = s.panel_id").
		Where(squirrel.Eq{"ps.student_id": studentID, "s.is_booked": false}).
		Where(squirrel.Or{
			squirrel.Gt{"s.slot_date": today},
			squirrel.And{
				squirrel.Eq{"s.slot_date": today},
				squirrel.Gt{"s.end_time": nowClock},
			},
		}).
		OrderBy("s.slot_date ASC", "s.start_time ASC", "s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenFutureForStudent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenFutureForStudent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// scanSlots scans query results into a slice of slots
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt sql.NullTime

		err := rows.Scan(&s.ID, &s.PanelID, &s.Date, &s.StartTime, &s.EndTime, &s.IsBooked, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
