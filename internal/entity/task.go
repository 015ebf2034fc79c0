package entity

import "time"

// DbTask represents a logged work entry. The composite unique index on
// (user_id, date) enforces one task per owner per day at the store level,
// so two concurrent creates for the same day cannot both succeed.
type DbTask struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"column:user_id;not null;uniqueIndex:idx_tasks_owner_date" json:"user_id"`
	Date        string    `gorm:"column:date;type:varchar(10);not null;uniqueIndex:idx_tasks_owner_date" json:"date"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"task"`
	Hours       float64   `gorm:"column:hours;not null" json:"hours"`
	Description string    `gorm:"column:description;type:text" json:"description"`
}

// TableName overrides default pluralised name.
func (DbTask) TableName() string {
	return "tasks"
}

type TaskCreateRequest struct {
	Date        string  `json:"date" binding:"required"`
	Name        string  `json:"task" binding:"required"`
	Hours       float64 `json:"hours" binding:"required"`
	Description string  `json:"description"`
}

// TaskUpdateRequest carries the editable fields. Date is accepted in the
// payload only so a differing value can be rejected explicitly.
type TaskUpdateRequest struct {
	Date        *string  `json:"date,omitempty"`
	Name        *string  `json:"task,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type TaskResponse struct {
	Success bool   `json:"success"`
	Task    DbTask `json:"task"`
}
