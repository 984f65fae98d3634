package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/service"
	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// NoteHandler 备注 HTTP 处理器
type NoteHandler struct {
	noteSvc service.NoteService
}

// NewNoteHandler 创建 NoteHandler
func NewNoteHandler(noteSvc service.NoteService) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

// List 列出全部备注
// GET /api/timetable/notes
func (h *NoteHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	notes, err := h.noteSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, notes)
}

// Create 新增备注
// POST /api/timetable/notes
func (h *NoteHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	result, err := h.noteSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDay) {
			response.BadRequest(c, "存在无效的星期名称")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除备注（幂等）
// DELETE /api/timetable/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的备注 ID")
		return
	}

	if err := h.noteSvc.Delete(c.Request.Context(), userID, uint(id)); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}
