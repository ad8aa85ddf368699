package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// Create adds a task to a column. Every role except VIEWER may create; the
// column must belong to the project named in the request.
func (s *TaskService) Create(userID uint, req dto.CreateTaskRequest) (*model.Task, error) {
	if _, err := CheckAccess(s.db, userID, req.ProjectID, model.RoleOwner, model.RoleAdmin, model.RoleMember); err != nil {
		return nil, err
	}
	if err := s.checkColumnInProject(s.db, req.ColumnID, req.ProjectID); err != nil {
		return nil, err
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		ColumnID:    req.ColumnID,
		AssigneeID:  req.AssigneeID,
	}
	if req.Type != "" {
		task.Type = model.TaskType(req.Type)
	} else {
		task.Type = model.TypeTask
	}
	if req.Status != "" {
		task.Status = model.TaskStatus(req.Status)
	} else {
		task.Status = model.StatusTodo
	}
	if req.Priority != "" {
		task.Priority = model.Priority(req.Priority)
	} else {
		task.Priority = model.PriorityMedium
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pos, err := taskOrder.Insert(tx, req.ColumnID, req.Position)
		if err != nil {
			return err
		}
		task.Position = pos
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if len(req.TagIDs) > 0 {
			return s.replaceTags(tx, &task, req.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(task.TaskID)
}

// List returns every task of a project grouped by column order.
func (s *TaskService) List(userID, projectID uint) ([]model.Task, error) {
	if _, err := RequireMembership(s.db, userID, projectID); err != nil {
		return nil, err
	}

	var tasks []model.Task
	err := s.db.Where("project_id = ?", projectID).
		Order("column_id ASC, position ASC").
		Preload("Tags").
		Preload("Assignee").
		Preload("Column").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByColumn returns the tasks of one column in display order.
func (s *TaskService) FindByColumn(userID, columnID uint) ([]model.Task, error) {
	var column model.Column
	err := s.db.First(&column, "column_id = ?", columnID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("column not found")
	}
	if err != nil {
		return nil, err
	}
	if _, err := RequireMembership(s.db, userID, column.ProjectID); err != nil {
		return nil, err
	}

	var tasks []model.Task
	err = s.db.Where("column_id = ?", columnID).
		Order("position ASC").
		Preload("Tags").
		Preload("Assignee").
		Preload("Column").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Get(userID, taskID uint) (*model.Task, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, err
	}
	if _, err := RequireMembership(s.db, userID, task.ProjectID); err != nil {
		return nil, err
	}
	return s.load(taskID)
}

// Update applies field changes and, when column or position change, routes
// the task through the same-scope or cross-scope move. MEMBERs who are not
// the assignee may only change the status field; VIEWERs may change nothing.
func (s *TaskService) Update(userID, taskID uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, err
	}
	member, err := RequireMembership(s.db, userID, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if member.Role == model.RoleViewer {
		return nil, apperr.Forbiddenf("insufficient permissions")
	}
	if member.Role == model.RoleMember && !isAssignee(task, userID) && req.TouchesMoreThanStatus() {
		return nil, apperr.Forbiddenf("insufficient permissions")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.ColumnID != nil || req.Position != nil {
			if err := s.applyMove(tx, taskID, req); err != nil {
				return err
			}
		}

		updates := map[string]any{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Type != nil {
			updates["type"] = *req.Type
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.Priority != nil {
			updates["priority"] = *req.Priority
		}
		if req.StartDate != nil {
			updates["start_date"] = *req.StartDate
		}
		if req.EndDate != nil {
			updates["end_date"] = *req.EndDate
		}
		if req.DueDate != nil {
			updates["due_date"] = *req.DueDate
		}
		if req.AssigneeID != nil {
			updates["assignee_id"] = *req.AssigneeID
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.Task{}).Where("task_id = ?", taskID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			return s.replaceTags(tx, task, req.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(taskID)
}

// Remove deletes a task and closes the position gap in its column.
func (s *TaskService) Remove(userID, taskID uint) error {
	task, err := s.find(taskID)
	if err != nil {
		return err
	}
	if _, err := CheckAccess(s.db, userID, task.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		fresh, err := s.lock(tx, taskID)
		if err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id = ?", taskID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Task{}, "task_id = ?", taskID).Error; err != nil {
			return err
		}
		return taskOrder.Remove(tx, fresh.ColumnID, fresh.Position)
	})
}

// applyMove decides between a same-column move and a cross-column move. A
// column change without an explicit position appends to the target column.
// The task's current column is read under lock inside the transaction.
func (s *TaskService) applyMove(tx *gorm.DB, taskID uint, req dto.UpdateTaskRequest) error {
	fresh, err := s.lock(tx, taskID)
	if err != nil {
		return err
	}

	targetColumn := fresh.ColumnID
	if req.ColumnID != nil {
		targetColumn = *req.ColumnID
	}
	if err := s.checkColumnInProject(tx, targetColumn, fresh.ProjectID); err != nil {
		return err
	}

	if targetColumn != fresh.ColumnID {
		return taskOrder.MoveAcross(tx, targetColumn, taskID, req.Position)
	}
	if req.Position != nil {
		return taskOrder.Move(tx, taskID, *req.Position)
	}
	return nil
}

// lock re-reads a task inside the transaction with a row lock.
func (s *TaskService) lock(tx *gorm.DB, taskID uint) (*model.Task, error) {
	var task model.Task
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&task, "task_id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("task not found")
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) checkColumnInProject(tx *gorm.DB, columnID, projectID uint) error {
	var n int64
	err := tx.Model(&model.Column{}).
		Where("column_id = ? AND project_id = ?", columnID, projectID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFoundf("column not found or does not belong to the project")
	}
	return nil
}

// replaceTags sets the task's tag associations wholesale.
func (s *TaskService) replaceTags(tx *gorm.DB, task *model.Task, tagIDs []uint) error {
	var tags []model.Tag
	if len(tagIDs) > 0 {
		if err := tx.Where("tag_id IN ? AND project_id = ?", tagIDs, task.ProjectID).Find(&tags).Error; err != nil {
			return err
		}
	}
	return tx.Model(task).Association("Tags").Replace(tags)
}

func (s *TaskService) find(taskID uint) (*model.Task, error) {
	var task model.Task
	err := s.db.First(&task, "task_id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("task not found")
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) load(taskID uint) (*model.Task, error) {
	var task model.Task
	err := s.db.
		Preload("Tags").
		Preload("Assignee").
		Preload("Column").
		First(&task, "task_id = ?", taskID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func isAssignee(task *model.Task, userID uint) bool {
	return task.AssigneeID != nil && *task.AssigneeID == userID
}
