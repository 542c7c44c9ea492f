package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoreno/tasktrack-api/internal/domain"
	"github.com/dmoreno/tasktrack-api/internal/store"
)

// fakeTaskStore is an in-memory TaskStore that mimics the soft-delete
// semantics of the real one: deleted rows stay in the map but behave like
// missing rows everywhere.
type fakeTaskStore struct {
	rows   map[int64]*fakeRow
	nextID int64
	today  time.Time

	failErr     error
	createCalls int
	getCalls    int
}

type fakeRow struct {
	task    domain.Task
	deleted bool
}

func newFakeTaskStore(today time.Time) *fakeTaskStore {
	return &fakeTaskStore{rows: make(map[int64]*fakeRow), today: today}
}

func (f *fakeTaskStore) seed(task domain.Task) int64 {
	f.nextID++
	task.ID = f.nextID
	f.rows[task.ID] = &fakeRow{task: task}
	return task.ID
}

func (f *fakeTaskStore) seedDeleted(task domain.Task) int64 {
	id := f.seed(task)
	f.rows[id].deleted = true
	return id
}

func (f *fakeTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	tasks := make([]domain.Task, 0, len(f.rows))
	for _, row := range f.rows {
		if !row.deleted {
			tasks = append(tasks, row.task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	f.getCalls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	row, ok := f.rows[id]
	if !ok || row.deleted {
		return nil, store.ErrTaskNotFound
	}
	task := row.task
	return &task, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	f.createCalls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.nextID++
	created := *task
	created.ID = f.nextID
	f.rows[created.ID] = &fakeRow{task: created}
	return &created, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task *domain.Task) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	row, ok := f.rows[task.ID]
	if !ok || row.deleted {
		return false, nil
	}
	row.task = *task
	return true, nil
}

func (f *fakeTaskStore) SoftDelete(ctx context.Context, id int64) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	row, ok := f.rows[id]
	if !ok || row.deleted {
		return false, nil
	}
	row.deleted = true
	row.task.UpdatedAt = f.today
	return true, nil
}

func (f *fakeTaskStore) Exists(ctx context.Context, id int64) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	row, ok := f.rows[id]
	return ok && !row.deleted, nil
}

func (f *fakeTaskStore) CountByStatus(ctx context.Context) (store.StatusCounts, error) {
	if f.failErr != nil {
		return store.StatusCounts{}, f.failErr
	}
	var counts store.StatusCounts
	for _, row := range f.rows {
		if row.deleted {
			continue
		}
		switch row.task.Status {
		case domain.StatusPending:
			counts.Pending++
		case domain.StatusInProgress:
			counts.InProgress++
		case domain.StatusCompleted:
			counts.Completed++
		case domain.StatusCancelled:
			counts.Cancelled++
		}
		if row.task.IsOverdue(f.today) {
			counts.Overdue++
		}
	}
	return counts, nil
}

var _ store.TaskStore = (*fakeTaskStore)(nil)

var testClock = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

// newTestService wires a taskService around the fake with a controllable
// clock. Advancing *now moves the service's notion of the current time.
func newTestService(tasks store.TaskStore, now *time.Time) *taskService {
	return &taskService{
		tasks:  tasks,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return *now },
	}
}

func validInput() TaskInput {
	due := testClock.AddDate(0, 0, 7)
	return TaskInput{
		Title:       "Write quarterly report",
		Description: "Q3 numbers plus commentary",
		Status:      "Pending",
		Priority:    "High",
		DueDate:     &due,
	}
}

func TestNewTaskService(t *testing.T) {
	t.Run("nil store is rejected", func(t *testing.T) {
		svc, err := NewTaskService(nil, slog.Default())
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		svc, err := NewTaskService(newFakeTaskStore(testClock), nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestTaskServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	fake := newFakeTaskStore(testClock)
	now := testClock
	svc := newTestService(fake, &now)

	// Create.
	created := svc.Create(ctx, validInput())
	require.True(t, created.IsSuccess())
	assert.Equal(t, MsgTaskCreated, created.Message())

	task := created.Value()
	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "Write quarterly report", task.Title)
	assert.Equal(t, domain.StatusPending, task.Status)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, testClock, task.CreatedAt)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	// Read back.
	got := svc.GetByID(ctx, task.ID)
	require.True(t, got.IsSuccess())
	assert.Equal(t, task, got.Value())

	// Update with the clock advanced.
	now = testClock.Add(2 * time.Hour)
	update := TaskUpdate{ID: task.ID, TaskInput: validInput()}
	update.Title = "Write quarterly report v2"
	update.Status = "InProgress"

	updated := svc.Update(ctx, task.ID, update)
	require.True(t, updated.IsSuccess())
	assert.Equal(t, MsgTaskUpdated, updated.Message())

	after := updated.Value()
	assert.Equal(t, "Write quarterly report v2", after.Title)
	assert.Equal(t, domain.StatusInProgress, after.Status)
	assert.Equal(t, task.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(after.CreatedAt))

	// Delete.
	deleted := svc.Delete(ctx, task.ID)
	require.True(t, deleted.IsSuccess())
	assert.Equal(t, MsgTaskDeleted, deleted.Message())

	// The soft-deleted task now behaves like a missing one.
	gone := svc.GetByID(ctx, task.ID)
	require.True(t, gone.IsFailure())
	assert.Equal(t, FailureNotFound, gone.Code())
	assert.Equal(t, MsgTaskNotFound, gone.ErrorMessage())

	list := svc.List(ctx, domain.DefaultTaskFilter())
	require.True(t, list.IsSuccess())
	assert.Equal(t, 0, list.Value().TotalCount)
	assert.Equal(t, 0, list.Value().PendingCount)
}

func TestTaskServiceCreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*TaskInput)
		wantMsg string
	}{
		{name: "blank title", mutate: func(in *TaskInput) { in.Title = "  " }, wantMsg: MsgTitleRequired},
		{name: "title too short", mutate: func(in *TaskInput) { in.Title = "ab" }, wantMsg: MsgTitleLength},
		{
			name:    "title too long",
			mutate:  func(in *TaskInput) { in.Title = strings.Repeat("x", 201) },
			wantMsg: MsgTitleLength,
		},
		{
			name:    "description too long",
			mutate:  func(in *TaskInput) { in.Description = strings.Repeat("d", 2001) },
			wantMsg: MsgDescriptionTooLong,
		},
		{name: "missing status", mutate: func(in *TaskInput) { in.Status = "" }, wantMsg: MsgStatusRequired},
		{name: "bad status", mutate: func(in *TaskInput) { in.Status = "Done" }, wantMsg: MsgStatusInvalid},
		{name: "missing priority", mutate: func(in *TaskInput) { in.Priority = "" }, wantMsg: MsgPriorityRequired},
		{name: "bad priority", mutate: func(in *TaskInput) { in.Priority = "Urgent" }, wantMsg: MsgPriorityInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeTaskStore(testClock)
			now := testClock
			svc := newTestService(fake, &now)

			in := validInput()
			tt.mutate(&in)

			res := svc.Create(ctx, in)
			require.True(t, res.IsFailure())
			assert.Equal(t, FailureInvalidInput, res.Code())
			assert.Equal(t, tt.wantMsg, res.ErrorMessage())
			assert.Zero(t, fake.createCalls, "invalid input must not reach the store")
		})
	}
}

func TestTaskServiceCreateTrimsFields(t *testing.T) {
	fake := newFakeTaskStore(testClock)
	now := testClock
	svc := newTestService(fake, &now)

	in := validInput()
	in.Title = "  Buy milk  "
	in.Description = " remember oat milk "

	res := svc.Create(context.Background(), in)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "Buy milk", res.Value().Title)
	assert.Equal(t, "remember oat milk", res.Value().Description)
}

func TestTaskServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive id", func(t *testing.T) {
		now := testClock
		svc := newTestService(newFakeTaskStore(testClock), &now)

		for _, id := range []int64{0, -1} {
			res := svc.GetByID(ctx, id)
			require.True(t, res.IsFailure())
			assert.Equal(t, FailureInvalidInput, res.Code())
			assert.Equal(t, MsgInvalidTaskID, res.ErrorMessage())
		}
	})

	t.Run("missing task", func(t *testing.T) {
		now := testClock
		svc := newTestService(newFakeTaskStore(testClock), &now)

		res := svc.GetByID(ctx, 99)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureNotFound, res.Code())
		assert.Equal(t, MsgTaskNotFound, res.ErrorMessage())
	})

	t.Run("store failure is masked", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		fake.failErr = errors.New("pq: connection reset")
		now := testClock
		svc := newTestService(fake, &now)

		res := svc.GetByID(ctx, 1)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureInternal, res.Code())
		assert.Equal(t, MsgUnexpectedError, res.ErrorMessage())
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("body id must match path id", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		now := testClock
		svc := newTestService(fake, &now)

		update := TaskUpdate{ID: 6, TaskInput: validInput()}
		res := svc.Update(ctx, 5, update)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureInvalidInput, res.Code())
		assert.Equal(t, MsgInvalidTaskID, res.ErrorMessage())
		assert.Zero(t, fake.getCalls, "mismatched ids must not reach the store")
	})

	t.Run("missing task", func(t *testing.T) {
		now := testClock
		svc := newTestService(newFakeTaskStore(testClock), &now)

		res := svc.Update(ctx, 42, TaskUpdate{ID: 42, TaskInput: validInput()})
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureNotFound, res.Code())
		assert.Equal(t, MsgTaskNotFound, res.ErrorMessage())
	})

	t.Run("validation failure", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		id := fake.seed(domain.Task{Title: "old", Status: domain.StatusPending, Priority: domain.PriorityLow, CreatedAt: testClock, UpdatedAt: testClock})
		now := testClock
		svc := newTestService(fake, &now)

		in := validInput()
		in.Title = ""
		res := svc.Update(ctx, id, TaskUpdate{ID: id, TaskInput: in})
		require.True(t, res.IsFailure())
		assert.Equal(t, MsgTitleRequired, res.ErrorMessage())
	})

	t.Run("store failure is masked", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		fake.failErr = errors.New("boom")
		now := testClock
		svc := newTestService(fake, &now)

		res := svc.Update(ctx, 1, TaskUpdate{ID: 1, TaskInput: validInput()})
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureInternal, res.Code())
		assert.Equal(t, MsgUpdateError, res.ErrorMessage())
	})
}

func TestTaskServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("non-positive id", func(t *testing.T) {
		now := testClock
		svc := newTestService(newFakeTaskStore(testClock), &now)

		res := svc.Delete(ctx, 0)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureInvalidInput, res.Code())
	})

	t.Run("missing task", func(t *testing.T) {
		now := testClock
		svc := newTestService(newFakeTaskStore(testClock), &now)

		res := svc.Delete(ctx, 7)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureNotFound, res.Code())
		assert.Equal(t, MsgTaskNotFound, res.ErrorMessage())
	})

	t.Run("already deleted behaves like missing", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		id := fake.seedDeleted(domain.Task{Title: "gone", Status: domain.StatusPending, Priority: domain.PriorityLow})
		now := testClock
		svc := newTestService(fake, &now)

		res := svc.Delete(ctx, id)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureNotFound, res.Code())
	})
}

func TestTaskServiceList(t *testing.T) {
	ctx := context.Background()

	seedSet := func(fake *fakeTaskStore) {
		overdue := testClock.AddDate(0, 0, -3)
		fake.seed(domain.Task{Title: "Report A", Status: domain.StatusCompleted, Priority: domain.PriorityHigh, CreatedAt: testClock.Add(1 * time.Minute), UpdatedAt: testClock})
		fake.seed(domain.Task{Title: "Report B", Status: domain.StatusCompleted, Priority: domain.PriorityLow, CreatedAt: testClock.Add(2 * time.Minute), UpdatedAt: testClock})
		fake.seed(domain.Task{Title: "Notes", Description: "report follow-up", Status: domain.StatusPending, Priority: domain.PriorityLow, CreatedAt: testClock.Add(3 * time.Minute), UpdatedAt: testClock})
		fake.seed(domain.Task{Title: "Groceries", Status: domain.StatusPending, Priority: domain.PriorityMedium, DueDate: &overdue, CreatedAt: testClock.Add(4 * time.Minute), UpdatedAt: testClock})
		fake.seed(domain.Task{Title: "Standup", Status: domain.StatusInProgress, Priority: domain.PriorityMedium, CreatedAt: testClock.Add(5 * time.Minute), UpdatedAt: testClock})
		fake.seedDeleted(domain.Task{Title: "Old report", Status: domain.StatusPending, Priority: domain.PriorityLow, CreatedAt: testClock, UpdatedAt: testClock})
	}

	t.Run("counts cover the full live set regardless of filter", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		seedSet(fake)
		now := testClock
		svc := newTestService(fake, &now)

		completed := domain.StatusCompleted
		filter := domain.DefaultTaskFilter()
		filter.Status = &completed
		filter.SearchTerm = "report"

		res := svc.List(ctx, filter)
		require.True(t, res.IsSuccess())
		list := res.Value()

		// Two completed tasks match "report"; the deleted one never shows.
		assert.Equal(t, 2, list.TotalCount)
		assert.Len(t, list.Tasks, 2)

		// The badges still describe all five live tasks.
		assert.Equal(t, 2, list.PendingCount)
		assert.Equal(t, 1, list.InProgressCount)
		assert.Equal(t, 2, list.CompletedCount)
		assert.Equal(t, 1, list.OverdueCount)
	})

	t.Run("default sort is newest first", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		seedSet(fake)
		now := testClock
		svc := newTestService(fake, &now)

		res := svc.List(ctx, domain.DefaultTaskFilter())
		require.True(t, res.IsSuccess())
		list := res.Value()

		require.NotEmpty(t, list.Tasks)
		assert.Equal(t, "Standup", list.Tasks[0].Title)
		assert.Equal(t, 5, list.TotalCount)
		assert.Equal(t, 1, list.TotalPages)
	})

	t.Run("store failure is masked", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		fake.failErr = errors.New("boom")
		now := testClock
		svc := newTestService(fake, &now)

		res := svc.List(ctx, domain.DefaultTaskFilter())
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureInternal, res.Code())
		assert.Equal(t, MsgTaskLoadError, res.ErrorMessage())
	})
}

func TestTaskServiceGetForEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the editable shape", func(t *testing.T) {
		fake := newFakeTaskStore(testClock)
		due := testClock.AddDate(0, 0, 2)
		id := fake.seed(domain.Task{
			Title:       "Plan sprint",
			Description: "draft the board",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			DueDate:     &due,
			CreatedAt:   testClock,
			UpdatedAt:   testClock,
		})
		now := testClock
		svc := newTestService(fake, &now)

		res := svc.GetForEdit(ctx, id)
		require.True(t, res.IsSuccess())

		edit := res.Value()
		assert.Equal(t, id, edit.ID)
		assert.Equal(t, "Plan sprint", edit.Title)
		assert.Equal(t, "draft the board", edit.Description)
		assert.Equal(t, domain.StatusInProgress, edit.Status)
		assert.Equal(t, domain.PriorityHigh, edit.Priority)
		require.NotNil(t, edit.DueDate)
		assert.Equal(t, due, *edit.DueDate)
		assert.Equal(t, testClock, edit.CreatedAt)
	})

	t.Run("missing task", func(t *testing.T) {
		now := testClock
		svc := newTestService(newFakeTaskStore(testClock), &now)

		res := svc.GetForEdit(ctx, 12)
		require.True(t, res.IsFailure())
		assert.Equal(t, FailureNotFound, res.Code())
	})
}
