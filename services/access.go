package services

import (
	"errors"

	"taskboard/apperr"
	"taskboard/model"

	"gorm.io/gorm"
)

var anyRole = []model.Role{model.RoleOwner, model.RoleAdmin, model.RoleMember, model.RoleViewer}

// CheckAccess resolves the caller's membership in a project and enforces a
// per-operation role allow-list. A missing membership reads as NotFound so
// non-members cannot tell the project exists; a membership with a role
// outside the allow-list is Forbidden.
func CheckAccess(db *gorm.DB, userID, projectID uint, allowed ...model.Role) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("project not found or access denied")
	}
	if err != nil {
		return nil, err
	}

	for _, role := range allowed {
		if member.Role == role {
			return &member, nil
		}
	}
	return nil, apperr.Forbiddenf("insufficient permissions")
}

// RequireMembership is CheckAccess with the full allow-list, for read
// operations open to every role.
func RequireMembership(db *gorm.DB, userID, projectID uint) (*model.ProjectMember, error) {
	return CheckAccess(db, userID, projectID, anyRole...)
}
