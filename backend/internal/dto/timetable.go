package dto

import "github.com/simoamogit/school-timetable/backend/internal/model"

// ── 设置 ──

// SettingsResponse 用户设置响应（与前端约定 camelCase）
type SettingsResponse struct {
	SetupComplete bool     `json:"setupComplete"`
	SchoolDays    []string `json:"schoolDays"`
	HoursPerDay   int      `json:"hoursPerDay"`
	Locked        bool     `json:"locked"`
	Theme         string   `json:"theme"`
	AvatarColor   string   `json:"avatarColor"`
	HiddenHours   []int    `json:"hiddenHours"`
}

// UpdateSettingsRequest 初始设置/修改网格请求
type UpdateSettingsRequest struct {
	SchoolDays  []string `json:"schoolDays"  binding:"required,min=1"`
	HoursPerDay int      `json:"hoursPerDay" binding:"required,min=1,max=12"`
}

// LockRequest 锁定开关请求
type LockRequest struct {
	Locked bool `json:"locked"`
}

// ThemeRequest 主题切换请求
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=dark light"`
}

// HiddenHoursRequest 隐藏小时请求（仅影响显示，不删数据）
type HiddenHoursRequest struct {
	HiddenHours []int `json:"hiddenHours" binding:"required"`
}

// AvatarRequest 头像颜色请求
type AvatarRequest struct {
	AvatarColor string `json:"avatarColor" binding:"required,hexcolor"`
}

// ── 格子 ──

// UpsertSlotRequest 格子 upsert 请求
type UpsertSlotRequest struct {
	Day      string `json:"day"       binding:"required"`
	Hour     int    `json:"hour"      binding:"required,min=1,max=12"`
	Subject  string `json:"subject"`
	Color    string `json:"color"`
	SlotType string `json:"slot_type" binding:"omitempty,oneof=subject free"`
}

// CellRef 格子坐标
type CellRef struct {
	Day  string `json:"day"  binding:"required"`
	Hour int    `json:"hour" binding:"required,min=1,max=12"`
}

// SwapRequest 拖拽交换请求
type SwapRequest struct {
	From CellRef `json:"from" binding:"required"`
	To   CellRef `json:"to"   binding:"required"`
}

// ── 备注 ──

// CreateNoteRequest 新增备注请求
type CreateNoteRequest struct {
	Day      string  `json:"day"       binding:"required"`
	Hour     int     `json:"hour"      binding:"required,min=1,max=12"`
	Content  string  `json:"content"   binding:"required"`
	NoteDate *string `json:"note_date" binding:"omitempty,datetime=2006-01-02"`
}

// ── 代课 ──

// CreateSubstitutionRequest 新增代课请求
// HourTo 缺省时等于 Hour（单小时代课）
type CreateSubstitutionRequest struct {
	Day        string `json:"day"        binding:"required"`
	Hour       int    `json:"hour"       binding:"required,min=1,max=12"`
	HourTo     *int   `json:"hour_to"    binding:"omitempty,min=1,max=12"`
	Substitute string `json:"substitute" binding:"required"`
	SubDate    string `json:"sub_date"   binding:"required,datetime=2006-01-02"`
	Note       string `json:"note"`
}

// ── 聚合与分享 ──

// TimetableResponse GET /timetable/all 聚合响应
type TimetableResponse struct {
	Settings      SettingsResponse     `json:"settings"`
	Slots         []model.Slot         `json:"slots"`
	Notes         []model.Note         `json:"notes"`
	Substitutions []model.Substitution `json:"substitutions"`
}

// ShareSettings 分享视图中暴露的设置子集
type ShareSettings struct {
	SchoolDays  []string `json:"schoolDays"`
	HoursPerDay int      `json:"hoursPerDay"`
	HiddenHours []int    `json:"hiddenHours"`
}

// ShareViewResponse 只读分享视图响应
type ShareViewResponse struct {
	Username      string               `json:"username"`
	AvatarColor   string               `json:"avatarColor"`
	Settings      ShareSettings        `json:"settings"`
	Slots         []model.Slot         `json:"slots"`
	Notes         []model.Note         `json:"notes"`
	Substitutions []model.Substitution `json:"substitutions"`
}

// ShareTokenResponse 分享令牌响应，未创建时 Token 为 null
type ShareTokenResponse struct {
	Token *string `json:"token"`
}

// IDResponse 新建记录响应
type IDResponse struct {
	ID uint `json:"id"`
}
