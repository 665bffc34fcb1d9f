package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title            string      `json:"title" validate:"required,min=3,max=200"`
	Description      string      `json:"description" validate:"omitempty,max=1000"`
	DueDate          *time.Time  `json:"dueDate"`
	Priority         *int        `json:"priority" validate:"omitempty,min=1,max=3"`
	AssignedToUserID *uuid.UUID  `json:"assignedToUserId"`
	CategoryIDs      []uuid.UUID `json:"categoryIds"`
}

// UpdateTaskRequest ทุก field เป็น Optional เพื่อแยก "ไม่ส่งมา" / "ส่ง null" / "ส่งค่า"
type UpdateTaskRequest struct {
	Title            Optional[string]      `json:"title" validate:"omitempty,min=3,max=200"`
	Description      Optional[string]      `json:"description" validate:"omitempty,max=1000"`
	DueDate          Optional[time.Time]   `json:"dueDate"`
	Priority         Optional[int]         `json:"priority" validate:"omitempty,min=1,max=3"`
	AssignedToUserID Optional[uuid.UUID]   `json:"assignedToUserId"`
	CategoryIDs      Optional[[]uuid.UUID] `json:"categoryIds"`
}

// TaskFilter narrows ListOwned / ListAssigned. Nil fields do not filter.
type TaskFilter struct {
	IsCompleted *bool
	Priority    *int
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	CategoryIDs []uuid.UUID
}

// TaskFilterQuery is the raw query string shape; handlers parse it into TaskFilter.
// categoryIds is read separately because it may repeat.
type TaskFilterQuery struct {
	IsCompleted string `query:"isCompleted" json:"isCompleted" validate:"omitempty,oneof=true false"`
	Priority    string `query:"priority" json:"priority" validate:"omitempty,oneof=1 2 3"`
	DueDateFrom string `query:"dueDateFrom" json:"dueDateFrom"`
	DueDateTo   string `query:"dueDateTo" json:"dueDateTo"`
}

type TaskDetailResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	IsCompleted        bool               `json:"isCompleted"`
	CreatedDate        time.Time          `json:"createdDate"`
	DueDate            *time.Time         `json:"dueDate"`
	Priority           *int               `json:"priority"`
	CreatedByUserID    uuid.UUID          `json:"createdByUserId"`
	CreatedByUsername  string             `json:"createdByUsername"`
	AssignedToUserID   *uuid.UUID         `json:"assignedToUserId"`
	AssignedToUsername *string            `json:"assignedToUsername"`
	Categories         []CategoryResponse `json:"categories"`
}
