package model

import (
	"time"
)

type TaskType string

const (
	TypeTask    TaskType = "TASK"
	TypeBug     TaskType = "BUG"
	TypeFeature TaskType = "FEATURE"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Task belongs to exactly one column at a time. Positions of the tasks of one
// column are always a contiguous 0..N-1 range; a task can be re-parented to
// another column of the same project.
type Task struct {
	TaskID      uint       `gorm:"column:task_id;primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Type        TaskType   `gorm:"column:type;type:varchar(16);not null;default:'TASK'" json:"type"`
	Status      TaskStatus `gorm:"column:status;type:varchar(16);not null;default:'TODO'" json:"status"`
	Priority    Priority   `gorm:"column:priority;type:varchar(16);not null;default:'MEDIUM'" json:"priority"`
	StartDate   *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date"`
	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`
	Position    int        `gorm:"column:position;not null" json:"position"`
	ProjectID   uint       `gorm:"column:project_id;not null;index" json:"project_id"`
	ColumnID    uint       `gorm:"column:column_id;not null;index" json:"column_id"`
	AssigneeID  *uint      `gorm:"column:assignee_id" json:"assignee_id"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	Tags     []Tag        `gorm:"many2many:task_tags;foreignKey:TaskID;joinForeignKey:TaskID;references:TagID;joinReferences:TagID" json:"tags"`
	Assignee *UserSummary `gorm:"foreignKey:AssigneeID;references:UserID" json:"assignee,omitempty"`
	Column   *Column      `gorm:"foreignKey:ColumnID;references:ColumnID" json:"column,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
