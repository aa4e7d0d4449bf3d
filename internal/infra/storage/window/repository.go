package window

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "availability_windows"

var selectColumns = []string{
	"id",
	"resource_id",
	"window_type",
	"recurrence_kind",
	"weekday",
	"range_start_date",
	"range_end_date",
	"specific_date",
	"start_time",
	"end_time",
	"max_concurrent",
	"slot_duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"min_notice_minutes",
	"max_advance_days",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое окно доступности
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"resource_id",
			"window_type",
			"recurrence_kind",
			"weekday",
			"range_start_date",
			"range_end_date",
			"specific_date",
			"start_time",
			"end_time",
			"max_concurrent",
			"slot_duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"min_notice_minutes",
			"max_advance_days",
			"is_active",
		).
		Values(
			w.ResourceID,
			w.Type,
			w.Recurrence.Kind,
			weekdayValue(w),
			dateValue(w.Recurrence.StartDate),
			dateValue(w.Recurrence.EndDate),
			dateValue(w.Recurrence.Date),
			w.TimeOfDay.Start,
			w.TimeOfDay.End,
			w.MaxConcurrent,
			w.SlotDurationMinutes,
			w.BufferBeforeMinutes,
			w.BufferAfterMinutes,
			int(w.MinAdvanceNotice/time.Minute),
			int(w.MaxAdvanceWindow/(24*time.Hour)),
			w.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// GetByID получает окно по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	w, err := scanWindow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// ActiveWindowsFor возвращает все активные окна ресурса.
// Blackout-окна (blocked/maintenance) тоже активны: они описывают
// исключения, а не предложения.
func (r *Repository) ActiveWindowsFor(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ActiveWindowsFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ActiveWindowsFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ActiveWindowsFor - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ActiveWindowsFor - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Update сохраняет изменённую конфигурацию окна
func (r *Repository) Update(ctx context.Context, w *domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("window_type", w.Type).
		Set("recurrence_kind", w.Recurrence.Kind).
		Set("weekday", weekdayValue(w)).
		Set("range_start_date", dateValue(w.Recurrence.StartDate)).
		Set("range_end_date", dateValue(w.Recurrence.EndDate)).
		Set("specific_date", dateValue(w.Recurrence.Date)).
		Set("start_time", w.TimeOfDay.Start).
		Set("end_time", w.TimeOfDay.End).
		Set("max_concurrent", w.MaxConcurrent).
		Set("slot_duration_minutes", w.SlotDurationMinutes).
		Set("buffer_before_minutes", w.BufferBeforeMinutes).
		Set("buffer_after_minutes", w.BufferAfterMinutes).
		Set("min_notice_minutes", int(w.MinAdvanceNotice/time.Minute)).
		Set("max_advance_days", int(w.MaxAdvanceWindow/(24*time.Hour))).
		Set("is_active", w.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": w.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

// SetActive активирует или деактивирует окно.
// Окна никогда не удаляются физически, пока на них ссылаются бронирования.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

func weekdayValue(w *domain.AvailabilityWindow) interface{} {
	if w.Recurrence.Kind != domain.RecurrenceWeekly {
		return nil
	}
	return int(w.Recurrence.Weekday)
}

func dateValue(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func scanWindow(scan func(dest ...interface{}) error) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var weekday sql.NullInt64
	var rangeStart, rangeEnd, specificDate sql.NullTime
	var minNoticeMinutes, maxAdvanceDays int
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&w.ID,
		&w.ResourceID,
		&w.Type,
		&w.Recurrence.Kind,
		&weekday,
		&rangeStart,
		&rangeEnd,
		&specificDate,
		&w.TimeOfDay.Start,
		&w.TimeOfDay.End,
		&w.MaxConcurrent,
		&w.SlotDurationMinutes,
		&w.BufferBeforeMinutes,
		&w.BufferAfterMinutes,
		&minNoticeMinutes,
		&maxAdvanceDays,
		&w.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekday.Valid {
		w.Recurrence.Weekday = time.Weekday(weekday.Int64)
	}
	w.Recurrence.StartDate = rangeStart.Time
	w.Recurrence.EndDate = rangeEnd.Time
	w.Recurrence.Date = specificDate.Time
	w.MinAdvanceNotice = time.Duration(minNoticeMinutes) * time.Minute
	w.MaxAdvanceWindow = time.Duration(maxAdvanceDays) * 24 * time.Hour
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}
