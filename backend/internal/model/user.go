package model

import "time"

// User 用户表 — 对应 users
type User struct {
	ID           uint      `gorm:"primaryKey"                          json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"  json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"          json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"  json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
