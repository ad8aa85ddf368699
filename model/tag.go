package model

import (
	"time"
)

// Tag names are unique within a project, enforced both by a pre-check read
// and a composite unique index.
type Tag struct {
	TagID     uint      `gorm:"column:tag_id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_project_tag_name" json:"name"`
	Color     string    `gorm:"column:color;type:varchar(16);not null" json:"color"`
	ProjectID uint      `gorm:"column:project_id;not null;uniqueIndex:idx_project_tag_name" json:"project_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relations
	Tasks []Task `gorm:"many2many:task_tags;foreignKey:TagID;joinForeignKey:TagID;references:TaskID;joinReferences:TaskID" json:"tasks,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}
