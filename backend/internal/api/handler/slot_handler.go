package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/service"
	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// SlotHandler 课表格子 HTTP 处理器
type SlotHandler struct {
	gridSvc service.GridService
}

// NewSlotHandler 创建 SlotHandler
func NewSlotHandler(gridSvc service.GridService) *SlotHandler {
	return &SlotHandler{gridSvc: gridSvc}
}

// List 返回用户的全部格子
// GET /api/timetable/slots
func (h *SlotHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	slots, err := h.gridSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, slots)
}

// Upsert 写入或覆盖一个格子
// POST /api/timetable/slots
func (h *SlotHandler) Upsert(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpsertSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.gridSvc.Upsert(c.Request.Context(), userID, &req); err != nil {
		h.handleGridError(c, err)
		return
	}
	response.Ack(c)
}

// Delete 清空一个格子
// DELETE /api/timetable/slots?day=Lunedì&hour=3
func (h *SlotHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	day := c.Query("day")
	hour, err := strconv.Atoi(c.Query("hour"))
	if day == "" || err != nil || hour < 1 {
		response.BadRequest(c, "缺少 day 或 hour 参数")
		return
	}

	if err := h.gridSvc.Delete(c.Request.Context(), userID, day, hour); err != nil {
		h.handleGridError(c, err)
		return
	}
	response.Ack(c)
}

// Swap 交换两个格子
// POST /api/timetable/slots/swap
func (h *SlotHandler) Swap(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	if err := h.gridSvc.Swap(c.Request.Context(), userID, &req); err != nil {
		h.handleGridError(c, err)
		return
	}
	response.Ack(c)
}

func (h *SlotHandler) handleGridError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownDay):
		response.BadRequest(c, "存在无效的星期名称")
	default:
		response.InternalError(c)
	}
}
