package model

// 格子类型
const (
	SlotTypeSubject = "subject" // 普通科目
	SlotTypeFree    = "free"    // 有意留空（自习/空堂）
)

// Slot 课表格子 — 对应 slots
// (user_id, day, hour) 唯一：每个格子至多一条记录，写入走 upsert。
type Slot struct {
	ID       uint   `gorm:"primaryKey"                                  json:"id"`
	UserID   uint   `gorm:"not null;uniqueIndex:uq_slots_cell,priority:1" json:"user_id"`
	Day      string `gorm:"type:varchar(20);not null;uniqueIndex:uq_slots_cell,priority:2" json:"day"`
	Hour     int    `gorm:"not null;uniqueIndex:uq_slots_cell,priority:3" json:"hour"`
	Subject  string `gorm:"type:varchar(100);not null;default:''"       json:"subject"`
	Color    string `gorm:"type:varchar(10);not null;default:'#2563eb'" json:"color"`
	SlotType string `gorm:"type:varchar(10);not null;default:'subject'" json:"slot_type"` // subject | free
}

// TableName 指定表名
func (Slot) TableName() string { return "slots" }
