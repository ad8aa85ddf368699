package dto

type AddMemberRequest struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email" binding:"omitempty,email"`
	Role   string `json:"role" binding:"omitempty,oneof=OWNER ADMIN MEMBER VIEWER"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=OWNER ADMIN MEMBER VIEWER"`
}
