package model

import (
	"time"
)

// Role of a user inside a single project. Permissions are per-operation
// allow-lists, not a linear ranking: a MEMBER may create tasks but not
// columns, a VIEWER may do neither.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

type Project struct {
	ProjectID   uint      `gorm:"column:project_id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	Members []ProjectMember `gorm:"foreignKey:ProjectID;references:ProjectID" json:"members,omitempty"`
	Columns []Column        `gorm:"foreignKey:ProjectID;references:ProjectID" json:"columns,omitempty"`
	Tags    []Tag           `gorm:"foreignKey:ProjectID;references:ProjectID" json:"tags,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectMember ties a user to a project with a role. Exactly one row may
// exist per (project, user) pair.
type ProjectMember struct {
	MemberID  uint      `gorm:"column:member_id;primaryKey;autoIncrement" json:"id"`
	ProjectID uint      `gorm:"column:project_id;not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_project_user" json:"user_id"`
	Role      Role      `gorm:"column:role;type:varchar(16);not null;default:'MEMBER'" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relations
	User *UserSummary `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
