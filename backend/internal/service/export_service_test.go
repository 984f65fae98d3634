package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
)

func setupTestExportService() (*exportService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	svc.now = func() time.Time {
		t, _ := time.Parse("2006-01-02", fixedToday)
		return t
	}
	return svc, mocks
}

func seedExportData(mocks *testRepos) {
	ctx := context.Background()
	mocks.settings.UpdateGrid(ctx, 1, []string{"Lunedì", "Martedì"}, 6)
	mocks.slot.Upsert(ctx, &model.Slot{UserID: 1, Day: "Lunedì", Hour: 1, Subject: "Matematica", Color: "#2563eb", SlotType: model.SlotTypeSubject})
	mocks.slot.Upsert(ctx, &model.Slot{UserID: 1, Day: "Martedì", Hour: 2, Subject: "", Color: "#2563eb", SlotType: model.SlotTypeFree})
	mocks.note.Create(ctx, &model.Note{UserID: 1, Day: "Lunedì", Hour: 1, Content: "verifica", NoteDate: strPtr("2026-09-20")})
	mocks.sub.Create(ctx, &model.Substitution{UserID: 1, Day: "Lunedì", Hour: 1, HourTo: 2, Substitute: "Bianchi", SubDate: fixedToday})
}

// ── Export 测试 ──

func TestExportService_Export_Document(t *testing.T) {
	svc, mocks := setupTestExportService()
	seedExportData(mocks)

	doc, err := svc.Export(context.Background(), 1)
	if err != nil {
		t.Fatalf("Export 应成功: %v", err)
	}
	if doc.Version != dto.ExportFormatVersion {
		t.Errorf("期望版本=%d，实际=%d", dto.ExportFormatVersion, doc.Version)
	}
	if doc.ExportedAt == "" {
		t.Error("exportedAt 不应为空")
	}
	if doc.Settings == nil || doc.Settings.HoursPerDay != 6 {
		t.Errorf("期望 hoursPerDay=6，实际=%v", doc.Settings)
	}
	if len(doc.Slots) != 2 || len(doc.Notes) != 1 || len(doc.Substitutions) != 1 {
		t.Errorf("期望 2/1/1 条记录，实际=%d/%d/%d", len(doc.Slots), len(doc.Notes), len(doc.Substitutions))
	}
}

func TestExportService_Export_EmptyUser(t *testing.T) {
	svc, _ := setupTestExportService()

	doc, err := svc.Export(context.Background(), 42)
	if err != nil {
		t.Fatalf("空用户 Export 仍应成功: %v", err)
	}
	if doc.Slots == nil || doc.Notes == nil || doc.Substitutions == nil {
		t.Error("集合字段应为空切片而非 nil")
	}
	if doc.Settings.HoursPerDay != model.DefaultHoursPerDay {
		t.Errorf("空用户应回落默认课时数，实际=%d", doc.Settings.HoursPerDay)
	}
}

// ── Import 测试 ──

func validImportDoc() *dto.ExportDocument {
	return &dto.ExportDocument{
		Version: dto.ExportFormatVersion,
		Settings: &dto.ExportSettings{
			SchoolDays:  []string{"Martedì", "Lunedì"},
			HoursPerDay: 5,
		},
		Slots: []dto.ExportSlot{
			{Day: "Lunedì", Hour: 1, Subject: "Storia", Color: "#dc2626", SlotType: "subject"},
		},
		Notes: []dto.ExportNote{
			{Day: "Martedì", Hour: 2, Content: "compiti"},
		},
		Substitutions: []dto.ExportSubstitution{
			{Day: "Lunedì", Hour: 1, HourTo: 1, Substitute: "Verdi", SubDate: "2026-09-20"},
		},
	}
}

func TestExportService_Import_ReplacesAll(t *testing.T) {
	svc, mocks := setupTestExportService()
	seedExportData(mocks)

	if err := svc.Import(context.Background(), 1, validImportDoc()); err != nil {
		t.Fatalf("Import 应成功: %v", err)
	}

	ctx := context.Background()
	slots, _ := mocks.slot.ListByUser(ctx, 1)
	if len(slots) != 1 || slots[0].Subject != "Storia" {
		t.Errorf("导入应整体替换格子，实际=%v", slots)
	}
	settings, _ := mocks.settings.GetByUser(ctx, 1)
	if settings.HoursPerDay != 5 || !settings.SetupComplete {
		t.Errorf("导入应覆盖设置并标记初始化完成，实际=%v", settings)
	}
	// 上课日按规范顺序存储，与文档中的顺序无关
	if len(settings.SchoolDays) != 2 || settings.SchoolDays[0] != "Lunedì" {
		t.Errorf("期望规范顺序 [Lunedì Martedì]，实际=%v", settings.SchoolDays)
	}
}

func TestExportService_Import_RoundTrip(t *testing.T) {
	svc, mocks := setupTestExportService()
	seedExportData(mocks)

	ctx := context.Background()
	first, err := svc.Export(ctx, 1)
	if err != nil {
		t.Fatalf("Export 应成功: %v", err)
	}
	if err := svc.Import(ctx, 1, first); err != nil {
		t.Fatalf("导入自己的导出文档应成功: %v", err)
	}
	second, err := svc.Export(ctx, 1)
	if err != nil {
		t.Fatalf("Export 应成功: %v", err)
	}

	if len(second.Slots) != len(first.Slots) ||
		len(second.Notes) != len(first.Notes) ||
		len(second.Substitutions) != len(first.Substitutions) {
		t.Errorf("往返后记录数应不变：%d/%d/%d → %d/%d/%d",
			len(first.Slots), len(first.Notes), len(first.Substitutions),
			len(second.Slots), len(second.Notes), len(second.Substitutions))
	}
	if second.Settings.HoursPerDay != first.Settings.HoursPerDay {
		t.Errorf("往返后课时数应不变：%d → %d", first.Settings.HoursPerDay, second.Settings.HoursPerDay)
	}
}

func TestExportService_Import_BadFormat(t *testing.T) {
	svc, _ := setupTestExportService()
	ctx := context.Background()

	cases := map[string]*dto.ExportDocument{
		"缺少 settings": {
			Slots: []dto.ExportSlot{}, Notes: []dto.ExportNote{}, Substitutions: []dto.ExportSubstitution{},
		},
		"缺少 slots": {
			Settings: &dto.ExportSettings{SchoolDays: []string{"Lunedì"}, HoursPerDay: 6},
			Notes:    []dto.ExportNote{}, Substitutions: []dto.ExportSubstitution{},
		},
		"未知星期": func() *dto.ExportDocument {
			d := validImportDoc()
			d.Slots[0].Day = "Domenica"
			return d
		}(),
		"课时数越界": func() *dto.ExportDocument {
			d := validImportDoc()
			d.Settings.HoursPerDay = 99
			return d
		}(),
		"倒置代课区间": func() *dto.ExportDocument {
			d := validImportDoc()
			d.Substitutions[0].Hour = 4
			d.Substitutions[0].HourTo = 2
			return d
		}(),
	}

	for name, doc := range cases {
		if err := svc.Import(ctx, 1, doc); !errors.Is(err, ErrImportBadFormat) {
			t.Errorf("%s: 期望 ErrImportBadFormat，实际: %v", name, err)
		}
	}
}

func TestExportService_Import_Atomicity(t *testing.T) {
	svc, mocks := setupTestExportService()
	seedExportData(mocks)

	// 事务失败：原数据一条不少
	mocks.dataset.replaceErr = errors.New("disk full")
	err := svc.Import(context.Background(), 1, validImportDoc())
	if !errors.Is(err, ErrImportFailed) {
		t.Fatalf("期望 ErrImportFailed，实际: %v", err)
	}

	ctx := context.Background()
	slots, _ := mocks.slot.ListByUser(ctx, 1)
	if len(slots) != 2 {
		t.Errorf("失败的导入不应改动格子，期望=2，实际=%d", len(slots))
	}
	notes, _ := mocks.note.ListByUser(ctx, 1)
	if len(notes) != 1 {
		t.Errorf("失败的导入不应改动备注，期望=1，实际=%d", len(notes))
	}
}

// ── XLSX 导出测试 ──

func TestExportService_ExportXLSX(t *testing.T) {
	svc, mocks := setupTestExportService()
	seedExportData(mocks)

	buf, filename, err := svc.ExportXLSX(context.Background(), 1)
	if err != nil {
		t.Fatalf("ExportXLSX 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("生成的 xlsx 不应为空")
	}
	if filename != "orario_"+fixedToday+".xlsx" {
		t.Errorf("期望文件名 orario_%s.xlsx，实际=%s", fixedToday, filename)
	}
}
