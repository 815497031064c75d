package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-task-api/internal/model"
)

const taskColumns = `id, title, description, status, priority, due_date, owner_id, created_at, updated_at`

// Priority is stored as text; sorting by it goes through an explicit
// rank so low < medium < high instead of alphabetical order.
const priorityRank = `CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 END`

var sortExpressions = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"priority":   priorityRank,
}

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, model.ErrTaskNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("find task by id: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t model.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, t model.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
		 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTaskNotFound
	}
	return nil
}

// List returns the owner's tasks matching the criteria plus the
// pre-pagination total.
func (r *TaskRepository) List(ctx context.Context, ownerID string, c model.TaskCriteria) ([]model.Task, int, error) {
	where, args := buildTaskFilter(ownerID, c)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	orderExpr, ok := sortExpressions[c.SortBy]
	if !ok {
		orderExpr = "created_at"
	}
	direction := "DESC"
	if c.SortDir == model.SortAsc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		taskColumns, where, orderExpr, direction, len(args)+1, len(args)+2)
	args = append(args, c.Limit, c.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.DueDate, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (r *TaskRepository) CountByStatus(ctx context.Context, ownerID string) (model.TaskStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM tasks WHERE owner_id = $1 GROUP BY status`, ownerID)
	if err != nil {
		return model.TaskStats{}, fmt.Errorf("count tasks by status: %w", err)
	}
	defer rows.Close()

	stats := model.TaskStats{ByStatus: map[string]int{}}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return model.TaskStats{}, fmt.Errorf("scan status count: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

func buildTaskFilter(ownerID string, c model.TaskCriteria) (string, []any) {
	clauses := []string{"owner_id = $1"}
	args := []any{ownerID}

	if c.Status != "" {
		args = append(args, c.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if c.Priority != "" {
		args = append(args, c.Priority)
		clauses = append(clauses, fmt.Sprintf("priority = $%d", len(args)))
	}
	if c.Search != "" {
		args = append(args, "%"+escapeLike(c.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
