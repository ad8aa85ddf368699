package dto

type CreateColumnRequest struct {
	Name      string `json:"name" binding:"required"`
	Color     string `json:"color" binding:"omitempty,hexcolor"`
	Position  *int   `json:"position"`
	ProjectID uint   `json:"project_id" binding:"required"`
}

type UpdateColumnRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color" binding:"omitempty,hexcolor"`
	Position *int    `json:"position"`
}
