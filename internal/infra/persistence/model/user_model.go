package model

import (
	"time"
)

// UserModel mirrors the 'users' table. IDs are server-assigned bigserial values.
type UserModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string `gorm:"type:varchar(255);not null"`
	Age            *int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Posts    []PostModel    `gorm:"foreignKey:UserID"`
	Comments []CommentModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
