package dto

// ── 导出 / 导入 ──
//
// 可移植文档：内部 id 与 user_id 均被剥离，重新导入时按当前用户重建。
// Version 固定为 3，与历史导出文件保持兼容。

// ExportFormatVersion 当前文档格式版本
const ExportFormatVersion = 3

// ExportSettings 文档中的设置子集
type ExportSettings struct {
	SchoolDays  []string `json:"schoolDays"`
	HoursPerDay int      `json:"hoursPerDay"`
}

// ExportSlot 文档中的格子记录
type ExportSlot struct {
	Day      string `json:"day"`
	Hour     int    `json:"hour"`
	Subject  string `json:"subject"`
	Color    string `json:"color"`
	SlotType string `json:"slot_type"`
}

// ExportNote 文档中的备注记录
type ExportNote struct {
	Day      string  `json:"day"`
	Hour     int     `json:"hour"`
	Content  string  `json:"content"`
	NoteDate *string `json:"note_date"`
}

// ExportSubstitution 文档中的代课记录
type ExportSubstitution struct {
	Day        string `json:"day"`
	Hour       int    `json:"hour"`
	HourTo     int    `json:"hour_to"`
	Substitute string `json:"substitute"`
	SubDate    string `json:"sub_date"`
	Note       string `json:"note"`
}

// ExportDocument 完整的可移植文档
// 同时作为导入请求体；导入校验四个部分必须全部存在。
type ExportDocument struct {
	Version       int                  `json:"version"`
	ExportedAt    string               `json:"exportedAt,omitempty"`
	Settings      *ExportSettings      `json:"settings"`
	Slots         []ExportSlot         `json:"slots"`
	Notes         []ExportNote         `json:"notes"`
	Substitutions []ExportSubstitution `json:"substitutions"`
}
