package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/internal/service"
	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// ShareHandler 只读分享 HTTP 处理器
type ShareHandler struct {
	shareSvc service.ShareService
}

// NewShareHandler 创建 ShareHandler
func NewShareHandler(shareSvc service.ShareService) *ShareHandler {
	return &ShareHandler{shareSvc: shareSvc}
}

// GetToken 查询当前分享令牌
// GET /api/timetable/share
func (h *ShareHandler) GetToken(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shareSvc.GetToken(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Create 创建（或返回已有的）分享令牌
// POST /api/timetable/share
func (h *ShareHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shareSvc.Create(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Revoke 撤销分享令牌
// DELETE /api/timetable/share
func (h *ShareHandler) Revoke(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.shareSvc.Revoke(c.Request.Context(), userID); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}

// View 公开只读视图，无需认证
// GET /api/timetable/view/:token
func (h *ShareHandler) View(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.NotFound(c, "分享链接不存在或已撤销")
		return
	}

	result, err := h.shareSvc.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrShareNotFound) {
			response.NotFound(c, "分享链接不存在或已撤销")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
