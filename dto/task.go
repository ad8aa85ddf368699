package dto

import (
	"time"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Type        string     `json:"type" binding:"omitempty,oneof=TASK BUG FEATURE"`
	Status      string     `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   uint       `json:"project_id" binding:"required"`
	ColumnID    uint       `json:"column_id" binding:"required"`
	AssigneeID  *uint      `json:"assignee_id"`
	TagIDs      []uint     `json:"tag_ids"`
	Position    *int       `json:"position"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Type        *string    `json:"type" binding:"omitempty,oneof=TASK BUG FEATURE"`
	Status      *string    `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	DueDate     *time.Time `json:"due_date"`
	ColumnID    *uint      `json:"column_id"`
	AssigneeID  *uint      `json:"assignee_id"`
	TagIDs      []uint     `json:"tag_ids"`
	Position    *int       `json:"position"`
}

// TouchesMoreThanStatus reports whether the update changes anything besides
// the status field. MEMBERs who are not the assignee are limited to status.
func (r UpdateTaskRequest) TouchesMoreThanStatus() bool {
	return r.Title != nil || r.Description != nil || r.Type != nil ||
		r.Priority != nil || r.StartDate != nil || r.EndDate != nil ||
		r.DueDate != nil || r.ColumnID != nil || r.AssigneeID != nil ||
		r.TagIDs != nil || r.Position != nil
}
