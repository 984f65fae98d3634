package model

// Substitution 代课记录 — 对应 substitutions
// 覆盖层语义：对指定日期 SubDate，在 Day 的 [Hour, HourTo] 闭区间内
// 逐小时覆盖底层 Slot 的显示。写入时强制 HourTo >= Hour。
type Substitution struct {
	ID         uint   `gorm:"primaryKey"                    json:"id"`
	UserID     uint   `gorm:"not null;index"                json:"user_id"`
	Day        string `gorm:"type:varchar(20);not null"     json:"day"`
	Hour       int    `gorm:"not null"                      json:"hour"`
	HourTo     int    `gorm:"not null"                      json:"hour_to"`
	Substitute string `gorm:"type:varchar(100);not null"    json:"substitute"`
	SubDate    string `gorm:"type:varchar(10);not null"     json:"sub_date"`
	Note       string `gorm:"type:text;not null;default:''" json:"note"`
}

// TableName 指定表名
func (Substitution) TableName() string { return "substitutions" }

// Covers 判断该代课记录是否作用于 (day, hour)。
// 读取侧对历史脏数据保持防御：HourTo < Hour 的倒置区间按单小时处理，
// 仅匹配 Hour 本身（新写入在校验层已拒绝倒置区间）。
func (s *Substitution) Covers(day string, hour int) bool {
	if s.Day != day {
		return false
	}
	to := s.HourTo
	if to < s.Hour {
		to = s.Hour
	}
	return s.Hour <= hour && hour <= to
}

// Supersedes 判断该记录在同一格子上是否优先于 other 显示。
// 规则：SubDate 较大者优先；日期相同时取 ID 较大者（后创建者），
// 保证并列最大日期时的确定性裁决。
func (s *Substitution) Supersedes(other *Substitution) bool {
	if other == nil {
		return true
	}
	if s.SubDate != other.SubDate {
		return s.SubDate > other.SubDate
	}
	return s.ID > other.ID
}

// ActiveSubstitution 在 subs 中选出作用于 (day, hour) 的权威记录，
// 无命中时返回 nil。所有渲染路径（整表、单日、分享视图）共用该裁决。
func ActiveSubstitution(subs []Substitution, day string, hour int) *Substitution {
	var winner *Substitution
	for i := range subs {
		s := &subs[i]
		if !s.Covers(day, hour) {
			continue
		}
		if s.Supersedes(winner) {
			winner = s
		}
	}
	return winner
}
