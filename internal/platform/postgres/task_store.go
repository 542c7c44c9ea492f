package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmoreno/tasktrack-api/internal/domain"
	"github.com/dmoreno/tasktrack-api/internal/platform/logger"
	"github.com/dmoreno/tasktrack-api/internal/store"
)

// PostgreSQL error codes
const pgCheckViolationCode = "23514"

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, title, description, status, priority, due_date, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed
// by the caller. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List.
// It retrieves every live task ordered by creation time, newest first.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC
	`, taskColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		log.Error("task row iteration failed", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "iteration failed", err)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist or is soft-deleted.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE id = $1 AND is_deleted = FALSE
	`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "query failed", err)
	}

	return task, nil
}

// Create implements store.TaskStore.Create.
// Timestamps are taken from the given task; only the ID is store-assigned.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		INSERT INTO tasks (title, description, status, priority, due_date, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
		RETURNING %s
	`, taskColumns)

	row := s.db.QueryRowContext(ctx, query,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		task.CreatedAt,
		task.UpdatedAt,
	)

	created, err := scanTask(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolationCode {
			log.Warn("check constraint violation during task creation",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %s", store.ErrInvalidEntity, pgErr.ConstraintName)
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "insert failed", err)
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return created, nil
}

// Update implements store.TaskStore.Update.
// Returns true iff a live row with the task's ID was modified.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1,
		    description = $2,
		    status = $3,
		    priority = $4,
		    due_date = $5,
		    updated_at = $6
		WHERE id = $7 AND is_deleted = FALSE
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		string(task.Priority),
		nullTime(task.DueDate),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return false, store.NewStoreError("task", "update", "exec failed", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("task", "update", "rows affected unavailable", err)
	}

	log.Info("task updated",
		slog.Int64("task_id", task.ID),
		slog.Int64("rows_affected", affected))
	return affected > 0, nil
}

// SoftDelete implements store.TaskStore.SoftDelete.
// The row is never physically removed; it is flagged and its updated_at bumped.
func (s *PostgresTaskStore) SoftDelete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET is_deleted = TRUE, updated_at = $1
		WHERE id = $2 AND is_deleted = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to soft delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return false, store.NewStoreError("task", "delete", "exec failed", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}

	log.Info("task soft deleted",
		slog.Int64("task_id", id),
		slog.Int64("rows_affected", affected))
	return affected > 0, nil
}

// Exists implements store.TaskStore.Exists.
func (s *PostgresTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1 AND is_deleted = FALSE)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		log.Error("failed to check task existence",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return false, store.NewStoreError("task", "exists", "query failed", err)
	}

	return exists, nil
}

// CountByStatus implements store.TaskStore.CountByStatus.
// The Overdue bucket is computed in SQL against the database's current date,
// the same clock that stamped due_date values.
func (s *PostgresTaskStore) CountByStatus(ctx context.Context) (store.StatusCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'InProgress'),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COUNT(*) FILTER (WHERE status = 'Cancelled'),
			COUNT(*) FILTER (WHERE due_date < CURRENT_DATE AND status NOT IN ('Completed', 'Cancelled'))
		FROM tasks
		WHERE is_deleted = FALSE
	`

	var counts store.StatusCounts
	err := s.db.QueryRowContext(ctx, query).Scan(
		&counts.Pending,
		&counts.InProgress,
		&counts.Completed,
		&counts.Cancelled,
		&counts.Overdue,
	)
	if err != nil {
		log.Error("failed to count tasks by status", slog.String("error", err.Error()))
		return store.StatusCounts{}, store.NewStoreError("task", "count", "query failed", err)
	}

	return counts, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps a task row into a domain.Task, decoding the stored status and
// priority text. A value that no longer decodes is a data-integrity failure
// and surfaces as an error, never a panic.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
		priority    string
		dueDate     sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&priority,
		&dueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status, err = domain.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", task.ID, err)
	}
	task.Priority, err = domain.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", task.ID, err)
	}

	if description.Valid {
		task.Description = description.String
	}
	if dueDate.Valid {
		due := dueDate.Time.UTC()
		task.DueDate = &due
	}

	return &task, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTime maps a nil time pointer to SQL NULL.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
