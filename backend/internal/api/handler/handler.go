package handler

import "github.com/simoamogit/school-timetable/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Settings     *SettingsHandler
	Slot         *SlotHandler
	Note         *NoteHandler
	Substitution *SubstitutionHandler
	Timetable    *TimetableHandler
	Share        *ShareHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Settings:     NewSettingsHandler(svc.Settings),
		Slot:         NewSlotHandler(svc.Grid),
		Note:         NewNoteHandler(svc.Note),
		Substitution: NewSubstitutionHandler(svc.Substitution),
		Timetable:    NewTimetableHandler(svc.Timetable),
		Share:        NewShareHandler(svc.Share),
		Export:       NewExportHandler(svc.Export),
	}
}
