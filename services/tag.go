package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// Create adds a tag to a project. Names are unique within a project; the
// pre-check read is backed by a composite unique index, so a concurrent
// duplicate surfaces as Conflict either way.
func (s *TagService) Create(userID uint, req dto.CreateTagRequest) (*model.Tag, error) {
	if _, err := CheckAccess(s.db, userID, req.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(req.ProjectID, req.Name, 0); err != nil {
		return nil, err
	}

	tag := model.Tag{
		Name:      req.Name,
		Color:     req.Color,
		ProjectID: req.ProjectID,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("a tag with this name already exists in the project")
		}
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) List(userID, projectID uint) ([]model.Tag, error) {
	if _, err := RequireMembership(s.db, userID, projectID); err != nil {
		return nil, err
	}

	var tags []model.Tag
	if err := s.db.Where("project_id = ?", projectID).Preload("Tasks").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(userID, tagID uint) (*model.Tag, error) {
	tag, err := s.find(tagID)
	if err != nil {
		return nil, err
	}
	if _, err := RequireMembership(s.db, userID, tag.ProjectID); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Update(userID, tagID uint, req dto.UpdateTagRequest) (*model.Tag, error) {
	tag, err := s.find(tagID)
	if err != nil {
		return nil, err
	}
	if _, err := CheckAccess(s.db, userID, tag.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if err := s.checkNameFree(tag.ProjectID, *req.Name, tagID); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if len(updates) > 0 {
		if err := s.db.Model(tag).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflictf("a tag with this name already exists in the project")
			}
			return nil, err
		}
	}
	return tag, nil
}

func (s *TagService) Remove(userID, tagID uint) error {
	tag, err := s.find(tagID)
	if err != nil {
		return err
	}
	if _, err := CheckAccess(s.db, userID, tag.ProjectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_tags WHERE tag_id = ?", tagID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, "tag_id = ?", tagID).Error
	})
}

func (s *TagService) checkNameFree(projectID uint, name string, excludeTagID uint) error {
	var n int64
	err := s.db.Model(&model.Tag{}).
		Where("project_id = ? AND name = ? AND tag_id != ?", projectID, name, excludeTagID).
		Count(&n).Error
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflictf("a tag with this name already exists in the project")
	}
	return nil
}

func (s *TagService) find(tagID uint) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.First(&tag, "tag_id = ?", tagID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("tag not found")
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
