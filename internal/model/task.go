package model

import "time"

const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskCriteria is the per-request filter/sort/pagination value object
// for task listings. Zero-value string fields mean "filter not applied".
type TaskCriteria struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
	SortBy   string
	SortDir  string
}

func DefaultTaskCriteria() TaskCriteria {
	return TaskCriteria{
		Page:    DefaultPage,
		Limit:   DefaultLimit,
		SortBy:  "created_at",
		SortDir: SortDesc,
	}
}

func (c TaskCriteria) Offset() int {
	return (c.Page - 1) * c.Limit
}

func ValidStatus(status string) bool {
	switch status {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Sortable fields are whitelisted; anything else never reaches SQL.
func ValidSortField(field string) bool {
	switch field {
	case "created_at", "updated_at", "due_date", "priority":
		return true
	}
	return false
}

type TaskPage struct {
	Tasks []Task   `json:"tasks"`
	Meta  PageMeta `json:"meta"`
}

type TaskStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// TaskPatch carries a partial task update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}
