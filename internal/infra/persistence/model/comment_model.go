package model

import (
	"time"
)

// CommentModel mirrors the 'comments' table. PostID carries a foreign key to
// posts.id, so creating a comment against a missing post fails at the store.
type CommentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	PostID    int64  `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}
