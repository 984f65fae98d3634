package model

// 主题与默认值常量
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	DefaultHoursPerDay = 6
	MaxHoursPerDay     = 12
	DefaultAvatarColor = "#2563eb"
)

// AllSchoolDays 固定的 6 天词表，顺序即规范的星期顺序。
// 用户选择的上课日始终以该顺序存储，与选择顺序无关。
var AllSchoolDays = []string{"Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"}

// DayIndex 返回星期名称在词表中的位置，未知名称返回 -1。
func DayIndex(day string) int {
	for i, d := range AllSchoolDays {
		if d == day {
			return i
		}
	}
	return -1
}

// CanonicalDays 按词表顺序规范化上课日集合，遇到未知名称返回 false。
func CanonicalDays(days []string) ([]string, bool) {
	selected := make(map[string]bool, len(days))
	for _, d := range days {
		if DayIndex(d) < 0 {
			return nil, false
		}
		selected[d] = true
	}
	ordered := make([]string, 0, len(selected))
	for _, d := range AllSchoolDays {
		if selected[d] {
			ordered = append(ordered, d)
		}
	}
	return ordered, true
}

// UserSettings 用户配置表 — 对应 user_settings，与 users 一对一
type UserSettings struct {
	ID            uint        `gorm:"primaryKey"                                   json:"id"`
	UserID        uint        `gorm:"uniqueIndex;not null"                         json:"user_id"`
	SchoolDays    StringArray `gorm:"type:text[];not null;default:'{}'"            json:"school_days"`
	HoursPerDay   int         `gorm:"not null;default:6"                           json:"hours_per_day"`
	SetupComplete bool        `gorm:"not null;default:false"                       json:"setup_complete"`
	Locked        bool        `gorm:"not null;default:false"                       json:"locked"`
	Theme         string      `gorm:"type:varchar(10);not null;default:'dark'"     json:"theme"` // dark | light
	AvatarColor   string      `gorm:"type:varchar(10);not null;default:'#2563eb'"  json:"avatar_color"`
	HiddenHours   IntArray    `gorm:"type:int[];not null;default:'{}'"             json:"hidden_hours"`
}

// TableName 指定表名
func (UserSettings) TableName() string { return "user_settings" }
