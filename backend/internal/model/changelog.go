package model

import (
	"time"

	"gorm.io/datatypes"
)

// 变更日志动作
const (
	ActionSlotChanged = "slot_changed"
	ActionSlotFree    = "slot_free"
	ActionSlotSwapped = "slot_swapped"
	ActionNoteAdded   = "note_added"
	ActionNoteDeleted = "note_deleted"
	ActionSubAdded    = "sub_added"
)

// ChangeLogEntry 变更日志 — 对应 change_log，只追加的审计记录。
// 写入为尽力而为：失败只记日志，绝不影响主操作。
type ChangeLogEntry struct {
	ID        uint           `gorm:"primaryKey"                         json:"id"`
	UserID    uint           `gorm:"not null;index"                     json:"user_id"`
	Action    string         `gorm:"type:varchar(20);not null"          json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb"                         json:"details"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ChangeLogEntry) TableName() string { return "change_log" }
