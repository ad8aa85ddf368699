package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/dto"
	"taskboard/model"

	"gorm.io/gorm"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

func (s *MemberService) List(userID, projectID uint) ([]model.ProjectMember, error) {
	if _, err := RequireMembership(s.db, userID, projectID); err != nil {
		return nil, err
	}

	var members []model.ProjectMember
	err := s.db.Where("project_id = ?", projectID).Preload("User").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Add invites a user to a project, addressed by id or by email. Role
// defaults to MEMBER.
func (s *MemberService) Add(userID, projectID uint, req dto.AddMemberRequest) (*model.ProjectMember, error) {
	if _, err := CheckAccess(s.db, userID, projectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}

	targetID := req.UserID
	if targetID == 0 {
		if req.Email == "" {
			return nil, apperr.BadRequestf("user_id or email must be provided")
		}
		var user model.User
		err := s.db.First(&user, "email = ?", req.Email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("user with this email not found")
		}
		if err != nil {
			return nil, err
		}
		targetID = user.UserID
	}

	var existing model.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, targetID).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflictf("user is already a member of this project")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := model.RoleMember
	if req.Role != "" {
		role = model.Role(req.Role)
	}
	member := model.ProjectMember{
		ProjectID: projectID,
		UserID:    targetID,
		Role:      role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("user is already a member of this project")
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) UpdateRole(userID, projectID, targetUserID uint, role model.Role) (*model.ProjectMember, error) {
	if _, err := CheckAccess(s.db, userID, projectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return nil, err
	}

	member, err := s.find(projectID, targetUserID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(member).Update("role", role).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// Remove deletes a membership. Nothing prevents removing the last OWNER; the
// member surface mirrors the project's observed behavior there.
func (s *MemberService) Remove(userID, projectID, targetUserID uint) error {
	if _, err := CheckAccess(s.db, userID, projectID, model.RoleOwner, model.RoleAdmin); err != nil {
		return err
	}

	member, err := s.find(projectID, targetUserID)
	if err != nil {
		return err
	}
	return s.db.Delete(member).Error
}

func (s *MemberService) find(projectID, targetUserID uint) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, targetUserID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("member not found")
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}
