package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/service"
	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// SubstitutionHandler 代课 HTTP 处理器
type SubstitutionHandler struct {
	subSvc service.SubstitutionService
}

// NewSubstitutionHandler 创建 SubstitutionHandler
func NewSubstitutionHandler(subSvc service.SubstitutionService) *SubstitutionHandler {
	return &SubstitutionHandler{subSvc: subSvc}
}

// List 列出全部代课记录
// GET /api/timetable/substitutions
func (h *SubstitutionHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subs, err := h.subSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, subs)
}

// Create 新增代课
// POST /api/timetable/substitutions
func (h *SubstitutionHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSubstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	result, err := h.subSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownDay):
			response.BadRequest(c, "存在无效的星期名称")
		case errors.Is(err, service.ErrInvalidHourRange):
			response.BadRequest(c, "hour_to 不能小于 hour")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Delete 删除代课记录（幂等）
// DELETE /api/timetable/substitutions/:id
func (h *SubstitutionHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "无效的代课 ID")
		return
	}

	if err := h.subSvc.Delete(c.Request.Context(), userID, uint(id)); err != nil {
		response.InternalError(c)
		return
	}
	response.Ack(c)
}
