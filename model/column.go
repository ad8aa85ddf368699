package model

import (
	"time"
)

// Column is a kanban lane inside a project. Positions of the columns of one
// project are always a contiguous 0..N-1 range; every mutation that touches
// them runs inside a single transaction.
type Column struct {
	ColumnID  uint      `gorm:"column:column_id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Color     string    `gorm:"column:color;type:varchar(16)" json:"color"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	ProjectID uint      `gorm:"column:project_id;not null;index" json:"project_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:ColumnID;references:ColumnID" json:"tasks"`
}

func (Column) TableName() string {
	return "columns"
}
