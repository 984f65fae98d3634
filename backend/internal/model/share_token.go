package model

import "time"

// ShareToken 分享令牌 — 对应 share_tokens
// 每用户至多一条（创建幂等：已存在则返回原令牌），撤销即删除。
type ShareToken struct {
	Token     string    `gorm:"type:varchar(64);primaryKey"        json:"token"`
	UserID    uint      `gorm:"uniqueIndex;not null"               json:"user_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ShareToken) TableName() string { return "share_tokens" }
