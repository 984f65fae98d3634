package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/service"
	"github.com/simoamogit/school-timetable/backend/pkg/response"
)

// ExportHandler 备份导出/导入 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Export 导出可移植 JSON 文档
// GET /api/timetable/export
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	doc, err := h.exportSvc.Export(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, doc)
}

// ExportXLSX 导出 Excel 版课表
// GET /api/timetable/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Import 整体替换导入
// POST /api/timetable/import
func (h *ExportHandler) Import(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var doc dto.ExportDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.BadRequest(c, "导入文件格式无效")
		return
	}

	if err := h.exportSvc.Import(c.Request.Context(), userID, &doc); err != nil {
		switch {
		case errors.Is(err, service.ErrImportBadFormat):
			response.BadRequest(c, "导入文件格式无效")
		case errors.Is(err, service.ErrImportFailed):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}
	response.Ack(c)
}
