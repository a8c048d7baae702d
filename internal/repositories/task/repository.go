package task

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/models"
	"github.com/Ramsey-B/clover/pkg/tracing"
)

var taskColumns = []string{
	"id", "agency_id", "title", "description", "priority", "status",
	"due_date", "created_by_id", "assigned_to_id", "created_at", "updated_at",
}

// Repository handles task persistence.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Create inserts a task. It participates in the context transaction when one
// is open.
func (r *Repository) Create(ctx context.Context, agencyID, createdByID, assignedToID, title string, description *string, priority models.TaskPriority, dueDate *time.Time) (*models.Task, error) {
	ctx, span := tracing.StartSpan(ctx, "task.Repository.Create")
	defer span.End()

	now := time.Now().UTC()
	task := &models.Task{
		ID:           uuid.New().String(),
		AgencyID:     agencyID,
		Title:        title,
		Description:  description,
		Priority:     priority,
		Status:       models.TaskStatusPending,
		DueDate:      dueDate,
		CreatedByID:  createdByID,
		AssignedToID: assignedToID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("tasks")
	sb.Cols(taskColumns...)
	sb.Values(task.ID, task.AgencyID, task.Title, task.Description, task.Priority, task.Status,
		task.DueDate, task.CreatedByID, task.AssignedToID, task.CreatedAt, task.UpdatedAt)

	query, args := sb.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create task")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create task")
	}

	return task, nil
}

// ListByAssignee returns a user's tasks, optionally filtered by status,
// soonest due first.
func (r *Repository) ListByAssignee(ctx context.Context, agencyID, userID string, status *models.TaskStatus) ([]models.Task, error) {
	ctx, span := tracing.StartSpan(ctx, "task.Repository.ListByAssignee")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(taskColumns...)
	sb.From("tasks")
	where := []string{
		sb.Equal("agency_id", agencyID),
		sb.Equal("assigned_to_id", userID),
	}
	if status != nil {
		where = append(where, sb.Equal("status", *status))
	}
	sb.Where(where...)
	sb.OrderBy("due_date ASC NULLS LAST", "created_at ASC")

	query, args := sb.Build()
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list tasks")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return tasks, nil
}

// UpdateStatus moves a task through its workflow.
func (r *Repository) UpdateStatus(ctx context.Context, agencyID, userID, id string, status models.TaskStatus) (*models.Task, error) {
	ctx, span := tracing.StartSpan(ctx, "task.Repository.UpdateStatus")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	sb.Update("tasks")
	sb.Set(
		sb.Assign("status", status),
		sb.Assign("updated_at", time.Now().UTC()),
	)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("assigned_to_id", userID),
	)

	query, args := sb.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update task status")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update task status")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("task %s not found", id))
	}

	return r.Get(ctx, agencyID, userID, id)
}

// Get retrieves a task assigned to userID.
func (r *Repository) Get(ctx context.Context, agencyID, userID, id string) (*models.Task, error) {
	ctx, span := tracing.StartSpan(ctx, "task.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(taskColumns...)
	sb.From("tasks")
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("agency_id", agencyID),
		sb.Equal("assigned_to_id", userID),
	)

	query, args := sb.Build()
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, fmt.Sprintf("task %s not found", id))
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get task")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get task")
	}

	return &task, nil
}
