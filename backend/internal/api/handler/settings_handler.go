package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/service"
	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// SettingsHandler 设置模块 HTTP 处理器
type SettingsHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingsHandler 创建 SettingsHandler
func NewSettingsHandler(settingsSvc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get 查询当前设置
// GET /api/timetable/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.settingsSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 初始设置/修改网格尺寸
// POST /api/timetable/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.settingsSvc.UpdateGrid(c.Request.Context(), userID, &req); err != nil {
		h.handleSettingsError(c, err)
		return
	}
	response.Ack(c)
}

// Reset 清空全部课表数据并回到未初始化状态
// POST /api/timetable/settings/reset
func (h *SettingsHandler) Reset(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.settingsSvc.Reset(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}

// SetLock 锁定/解锁编辑
// POST /api/timetable/settings/lock
func (h *SettingsHandler) SetLock(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.LockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.settingsSvc.SetLocked(c.Request.Context(), userID, req.Locked); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}

// SetTheme 切换主题
// POST /api/timetable/settings/theme
func (h *SettingsHandler) SetTheme(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.settingsSvc.SetTheme(c.Request.Context(), userID, req.Theme); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}

// SetHiddenHours 设置隐藏小时
// POST /api/timetable/settings/hidden-hours
func (h *SettingsHandler) SetHiddenHours(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.HiddenHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.settingsSvc.SetHiddenHours(c.Request.Context(), userID, req.HiddenHours); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}

// SetAvatar 设置头像颜色
// POST /api/timetable/settings/avatar
func (h *SettingsHandler) SetAvatar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.settingsSvc.SetAvatarColor(c.Request.Context(), userID, req.AvatarColor); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}

func (h *SettingsHandler) handleSettingsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownSchoolDay):
		response.BadRequest(c, "存在无效的星期名称")
	case errors.Is(err, service.ErrInvalidHours):
		response.BadRequest(c, "每日课时数超出范围")
	default:
		response.InternalError(c)
	}
}
