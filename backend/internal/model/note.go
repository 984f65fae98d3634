package model

import "time"

// Note 格子备注 — 对应 notes
// 同一格子可挂多条；NoteDate 为 YYYY-MM-DD 日历日期，早于"今天"的
// 备注在聚合读取时被懒清理（见 TimetableService 的过期清扫）。
type Note struct {
	ID        uint      `gorm:"primaryKey"                         json:"id"`
	UserID    uint      `gorm:"not null;index"                     json:"user_id"`
	Day       string    `gorm:"type:varchar(20);not null"          json:"day"`
	Hour      int       `gorm:"not null"                           json:"hour"`
	Content   string    `gorm:"type:text;not null"                 json:"content"`
	NoteDate  *string   `gorm:"type:varchar(10)"                   json:"note_date"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (Note) TableName() string { return "notes" }
