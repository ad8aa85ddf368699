package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// Create sets up a project together with its OWNER membership and the
// default "To Do" column. All three rows are written in one transaction so
// the project is never observable without them.
func (s *ProjectService) Create(userID uint, req dto.CreateProjectRequest) (*model.Project, error) {
	project := model.Project{
		Name:        req.Name,
		Description: req.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := model.ProjectMember{
			ProjectID: project.ProjectID,
			UserID:    userID,
			Role:      model.RoleOwner,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		column := model.Column{
			Name:      "To Do",
			Position:  0,
			ProjectID: project.ProjectID,
		}
		if err := tx.Create(&column).Error; err != nil {
			return err
		}
		project.Members = []model.ProjectMember{member}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForUser returns every project the user is a member of, with members,
// ordered columns (and their tasks) and tags nested.
func (s *ProjectService) ListForUser(userID uint) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.
		Joins("JOIN project_members pm ON pm.project_id = projects.project_id").
		Where("pm.user_id = ?", userID).
		Preload("Members.User").
		Preload("Columns", orderByPosition).
		Preload("Columns.Tasks", orderByPosition).
		Preload("Tags").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Get returns one project with everything nested. Non-members get NotFound.
func (s *ProjectService) Get(projectID, userID uint) (*model.Project, error) {
	if _, err := RequireMembership(s.db, userID, projectID); err != nil {
		return nil, err
	}

	var project model.Project
	err := s.db.
		Preload("Members.User").
		Preload("Columns", orderByPosition).
		Preload("Columns.Tasks", orderByPosition).
		Preload("Columns.Tasks.Tags").
		Preload("Columns.Tasks.Assignee").
		Preload("Tags").
		First(&project, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("project not found or access denied")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Update(projectID, userID uint, req dto.UpdateProjectRequest) (*model.Project, error) {
	if _, err := CheckAccess(s.db, userID, projectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}

	var project model.Project
	if err := s.db.First(&project, "project_id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("project not found or access denied")
		}
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := s.db.Model(&project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &project, nil
}

// Remove deletes a project and everything it owns. OWNER only.
func (s *ProjectService) Remove(projectID, userID uint) error {
	if _, err := CheckAccess(s.db, userID, projectID, model.RoleOwner); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&model.Task{}).Where("project_id = ?", projectID).Pluck("task_id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ?", taskIDs).Error; err != nil {
				return err
			}
		}
		for _, m := range []any{&model.Task{}, &model.Column{}, &model.Tag{}, &model.ProjectMember{}} {
			if err := tx.Where("project_id = ?", projectID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Project{}, "project_id = ?", projectID).Error
	})
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
