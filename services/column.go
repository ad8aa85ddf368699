package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ColumnService struct {
	db *gorm.DB
}

func NewColumnService(db *gorm.DB) *ColumnService {
	return &ColumnService{db: db}
}

// Create adds a column to a project. When no position is requested the
// column is appended; otherwise later siblings shift up to make room.
func (s *ColumnService) Create(userID uint, req dto.CreateColumnRequest) (*model.Column, error) {
	if _, err := CheckAccess(s.db, userID, req.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}

	column := model.Column{
		Name:      req.Name,
		Color:     req.Color,
		ProjectID: req.ProjectID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		pos, err := columnOrder.Insert(tx, req.ProjectID, req.Position)
		if err != nil {
			return err
		}
		column.Position = pos
		return tx.Create(&column).Error
	})
	if err != nil {
		return nil, err
	}
	column.Tasks = []model.Task{}
	return &column, nil
}

func (s *ColumnService) List(userID, projectID uint) ([]model.Column, error) {
	if _, err := RequireMembership(s.db, userID, projectID); err != nil {
		return nil, err
	}

	var columns []model.Column
	err := s.db.Where("project_id = ?", projectID).
		Order("position ASC").
		Preload("Tasks", orderByPosition).
		Find(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (s *ColumnService) Get(userID, columnID uint) (*model.Column, error) {
	column, err := s.find(columnID)
	if err != nil {
		return nil, err
	}
	if _, err := RequireMembership(s.db, userID, column.ProjectID); err != nil {
		return nil, err
	}

	if err := s.db.Preload("Tasks", orderByPosition).First(column, "column_id = ?", columnID).Error; err != nil {
		return nil, err
	}
	return column, nil
}

// Update changes name/color independently of position. A position change
// runs through the full-range shift inside one transaction.
func (s *ColumnService) Update(userID, columnID uint, req dto.UpdateColumnRequest) (*model.Column, error) {
	column, err := s.find(columnID)
	if err != nil {
		return nil, err
	}
	if _, err := CheckAccess(s.db, userID, column.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Position != nil {
			if err := columnOrder.Move(tx, columnID, *req.Position); err != nil {
				return err
			}
		}
		updates := map[string]any{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Color != nil {
			updates["color"] = *req.Color
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.Column{}).Where("column_id = ?", columnID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Tasks", orderByPosition).First(column, "column_id = ?", columnID).Error; err != nil {
		return nil, err
	}
	return column, nil
}

// Remove deletes a column with its tasks and closes the gap in the
// project's column ordering, all in one transaction.
func (s *ColumnService) Remove(userID, columnID uint) error {
	column, err := s.find(columnID)
	if err != nil {
		return err
	}
	if _, err := CheckAccess(s.db, userID, column.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// the position read before the transaction may be stale
		var fresh model.Column
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&fresh, "column_id = ?", columnID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("column not found or access denied")
		}
		if err != nil {
			return err
		}

		var taskIDs []uint
		if err := tx.Model(&model.Task{}).Where("column_id = ?", columnID).Pluck("task_id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ?", taskIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("column_id = ?", columnID).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.Column{}, "column_id = ?", columnID).Error; err != nil {
			return err
		}
		return columnOrder.Remove(tx, fresh.ProjectID, fresh.Position)
	})
}

func (s *ColumnService) find(columnID uint) (*model.Column, error) {
	var column model.Column
	err := s.db.First(&column, "column_id = ?", columnID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("column not found or access denied")
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}
