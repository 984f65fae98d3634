package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// 导出/导入业务错误
var (
	ErrImportBadFormat = errors.New("导入文件格式无效")
	ErrImportFailed    = errors.New("导入失败，数据未变更")
	ErrExportXLSXFail  = errors.New("生成 Excel 失败")
)

// ExportService 备份导出与恢复导入业务接口
//
// 导入采用整体替换语义：设置、格子、备注、代课在单个事务内先清
// 后写，任一步失败全部回滚，用户数据回到导入前的状态。
type ExportService interface {
	Export(ctx context.Context, userID uint) (*dto.ExportDocument, error)
	ExportXLSX(ctx context.Context, userID uint) (*bytes.Buffer, string, error)
	Import(ctx context.Context, userID uint, doc *dto.ExportDocument) error
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger

	now func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) Export(ctx context.Context, userID uint) (*dto.ExportDocument, error) {
	settings, slots, notes, subs, err := s.loadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &dto.ExportDocument{
		Version:    dto.ExportFormatVersion,
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Settings: &dto.ExportSettings{
			SchoolDays:  append([]string{}, settings.SchoolDays...),
			HoursPerDay: settings.HoursPerDay,
		},
		Slots:         make([]dto.ExportSlot, 0, len(slots)),
		Notes:         make([]dto.ExportNote, 0, len(notes)),
		Substitutions: make([]dto.ExportSubstitution, 0, len(subs)),
	}
	if doc.Settings.HoursPerDay == 0 {
		doc.Settings.HoursPerDay = model.DefaultHoursPerDay
	}

	for _, sl := range slots {
		doc.Slots = append(doc.Slots, dto.ExportSlot{
			Day:      sl.Day,
			Hour:     sl.Hour,
			Subject:  sl.Subject,
			Color:    sl.Color,
			SlotType: sl.SlotType,
		})
	}
	for _, n := range notes {
		doc.Notes = append(doc.Notes, dto.ExportNote{
			Day:      n.Day,
			Hour:     n.Hour,
			Content:  n.Content,
			NoteDate: n.NoteDate,
		})
	}
	for _, sub := range subs {
		doc.Substitutions = append(doc.Substitutions, dto.ExportSubstitution{
			Day:        sub.Day,
			Hour:       sub.Hour,
			HourTo:     sub.HourTo,
			Substitute: sub.Substitute,
			SubDate:    sub.SubDate,
			Note:       sub.Note,
		})
	}
	return doc, nil
}

func (s *exportService) Import(ctx context.Context, userID uint, doc *dto.ExportDocument) error {
	if err := validateImport(doc); err != nil {
		return err
	}

	slots := make([]model.Slot, 0, len(doc.Slots))
	for _, sl := range doc.Slots {
		slotType := sl.SlotType
		if slotType == "" {
			slotType = model.SlotTypeSubject
		}
		slots = append(slots, model.Slot{
			UserID:   userID,
			Day:      sl.Day,
			Hour:     sl.Hour,
			Subject:  sl.Subject,
			Color:    sl.Color,
			SlotType: slotType,
		})
	}
	notes := make([]model.Note, 0, len(doc.Notes))
	for _, n := range doc.Notes {
		notes = append(notes, model.Note{
			UserID:   userID,
			Day:      n.Day,
			Hour:     n.Hour,
			Content:  n.Content,
			NoteDate: n.NoteDate,
		})
	}
	subs := make([]model.Substitution, 0, len(doc.Substitutions))
	for _, sub := range doc.Substitutions {
		hourTo := sub.HourTo
		if hourTo == 0 {
			hourTo = sub.Hour
		}
		subs = append(subs, model.Substitution{
			UserID:     userID,
			Day:        sub.Day,
			Hour:       sub.Hour,
			HourTo:     hourTo,
			Substitute: sub.Substitute,
			SubDate:    sub.SubDate,
			Note:       sub.Note,
		})
	}

	days, ok := model.CanonicalDays(doc.Settings.SchoolDays)
	if !ok {
		return ErrImportBadFormat
	}

	err := s.repo.Dataset.ReplaceAll(ctx, userID, days, doc.Settings.HoursPerDay, slots, notes, subs)
	if err != nil {
		s.logger.Error("导入事务失败", zap.Error(err))
		return ErrImportFailed
	}
	return nil
}

// validateImport 结构校验：四个部分必须全部存在，逐条检查字段合法性
func validateImport(doc *dto.ExportDocument) error {
	if doc == nil || doc.Settings == nil ||
		doc.Slots == nil || doc.Notes == nil || doc.Substitutions == nil {
		return ErrImportBadFormat
	}
	if doc.Settings.HoursPerDay < 1 || doc.Settings.HoursPerDay > model.MaxHoursPerDay {
		return ErrImportBadFormat
	}
	for _, sl := range doc.Slots {
		if model.DayIndex(sl.Day) < 0 || sl.Hour < 1 {
			return ErrImportBadFormat
		}
	}
	for _, n := range doc.Notes {
		if model.DayIndex(n.Day) < 0 || n.Hour < 1 {
			return ErrImportBadFormat
		}
	}
	for _, sub := range doc.Substitutions {
		if model.DayIndex(sub.Day) < 0 || sub.Hour < 1 || sub.SubDate == "" {
			return ErrImportBadFormat
		}
		if sub.HourTo != 0 && sub.HourTo < sub.Hour {
			return ErrImportBadFormat
		}
	}
	return nil
}

func (s *exportService) ExportXLSX(ctx context.Context, userID uint) (*bytes.Buffer, string, error) {
	settings, slots, _, subs, err := s.loadAll(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	days := []string(settings.SchoolDays)
	if len(days) == 0 {
		days = model.AllSchoolDays
	}
	hours := settings.HoursPerDay
	if hours == 0 {
		hours = model.DefaultHoursPerDay
	}

	// 格子索引：day:hour → 科目文本
	cellIndex := make(map[string]string, len(slots))
	for _, sl := range slots {
		if sl.SlotType == model.SlotTypeFree {
			cellIndex[fmt.Sprintf("%s:%d", sl.Day, sl.Hour)] = "—"
			continue
		}
		cellIndex[fmt.Sprintf("%s:%d", sl.Day, sl.Hour)] = sl.Subject
	}

	today := s.now().Format("2006-01-02")

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Orario"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	for i := range days {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 20)
	}

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	row := 1
	f.SetCellValue(sheetName, cell("A", row), "Ora")
	for i, day := range days {
		f.SetCellValue(sheetName, cell(colName(1+i), row), day)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(days)), row), headerStyle)

	// 数据行：每行一个课时，当日有效代课覆盖原科目
	for hour := 1; hour <= hours; hour++ {
		row++
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%d°", hour))
		for i, day := range days {
			text := cellIndex[fmt.Sprintf("%s:%d", day, hour)]
			if sub := model.ActiveSubstitution(subsForDate(subs, today), day, hour); sub != nil {
				text = fmt.Sprintf("%s (suppl.)", sub.Substitute)
			}
			f.SetCellValue(sheetName, cell(colName(1+i), row), text)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportXLSXFail
	}

	filename := fmt.Sprintf("orario_%s.xlsx", today)
	return buf, filename, nil
}

// subsForDate 过滤出指定日期生效的代课记录
func subsForDate(subs []model.Substitution, date string) []model.Substitution {
	matched := make([]model.Substitution, 0, len(subs))
	for _, sub := range subs {
		if sub.SubDate == date {
			matched = append(matched, sub)
		}
	}
	return matched
}

// loadAll 取用户全部数据，设置行缺失时按零值处理
func (s *exportService) loadAll(ctx context.Context, userID uint) (*model.UserSettings, []model.Slot, []model.Note, []model.Substitution, error) {
	settings, err := s.repo.Settings.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询设置失败", zap.Error(err))
			return nil, nil, nil, nil, err
		}
		settings = &model.UserSettings{UserID: userID}
	}
	slots, err := s.repo.Slot.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询格子失败", zap.Error(err))
		return nil, nil, nil, nil, err
	}
	notes, err := s.repo.Note.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询备注失败", zap.Error(err))
		return nil, nil, nil, nil, err
	}
	subs, err := s.repo.Substitution.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询代课记录失败", zap.Error(err))
		return nil, nil, nil, nil, err
	}
	return settings, slots, notes, subs, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
