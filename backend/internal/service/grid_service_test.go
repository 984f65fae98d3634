package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestGridService() (GridService, *testRepos, *ChangeRecorder) {
	repo, mocks := newTestRepos()
	recorder := NewChangeRecorder(mocks.change, zap.NewNop())
	svc := NewGridService(repo, recorder, zap.NewNop())
	return svc, mocks, recorder
}

func upsertReq(day string, hour int, subject string) *dto.UpsertSlotRequest {
	return &dto.UpsertSlotRequest{Day: day, Hour: hour, Subject: subject}
}

// ── Upsert 测试 ──

func TestGridService_Upsert_UnknownDay(t *testing.T) {
	svc, _, recorder := setupTestGridService()
	defer recorder.Close()

	err := svc.Upsert(context.Background(), 1, upsertReq("Domenica", 1, "Matematica"))
	if !errors.Is(err, ErrUnknownDay) {
		t.Errorf("期望 ErrUnknownDay，实际: %v", err)
	}
}

func TestGridService_Upsert_CellUniqueness(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()
	defer recorder.Close()

	ctx := context.Background()
	// 同一格子连续写入三次，只保留最后一次的内容
	for _, subject := range []string{"Matematica", "Fisica", "Storia"} {
		if err := svc.Upsert(ctx, 1, upsertReq("Lunedì", 3, subject)); err != nil {
			t.Fatalf("Upsert 应成功: %v", err)
		}
	}

	slots, _ := mocks.slot.ListByUser(ctx, 1)
	if len(slots) != 1 {
		t.Fatalf("期望格子数=1，实际=%d", len(slots))
	}
	if slots[0].Subject != "Storia" {
		t.Errorf("期望Subject=Storia，实际=%s", slots[0].Subject)
	}
}

func TestGridService_Upsert_Defaults(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()
	defer recorder.Close()

	ctx := context.Background()
	if err := svc.Upsert(ctx, 1, upsertReq("Martedì", 2, "Inglese")); err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}

	slots, _ := mocks.slot.ListByUser(ctx, 1)
	if slots[0].SlotType != model.SlotTypeSubject {
		t.Errorf("期望默认 slot_type=subject，实际=%s", slots[0].SlotType)
	}
	if slots[0].Color != model.DefaultAvatarColor {
		t.Errorf("期望默认颜色 %s，实际=%s", model.DefaultAvatarColor, slots[0].Color)
	}
}

func TestGridService_Upsert_ChangeLogDiff(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()

	ctx := context.Background()
	// 空 → Matematica：slot_changed (vuoto) → Matematica
	svc.Upsert(ctx, 1, upsertReq("Lunedì", 1, "Matematica"))
	// Matematica → Matematica：内容未变，不记日志
	svc.Upsert(ctx, 1, upsertReq("Lunedì", 1, "Matematica"))
	// Matematica → free：slot_free
	svc.Upsert(ctx, 1, &dto.UpsertSlotRequest{Day: "Lunedì", Hour: 1, SlotType: model.SlotTypeFree})
	recorder.Close()

	entries := mocks.change.recorded()
	if len(entries) != 2 {
		t.Fatalf("期望日志条数=2，实际=%d", len(entries))
	}
	if entries[0].Action != model.ActionSlotChanged {
		t.Errorf("期望第一条 action=slot_changed，实际=%s", entries[0].Action)
	}
	var details map[string]interface{}
	if err := json.Unmarshal(entries[0].Details, &details); err != nil {
		t.Fatalf("日志 details 应为合法 JSON: %v", err)
	}
	if details["from"] != "(vuoto)" || details["to"] != "Matematica" {
		t.Errorf("期望 from=(vuoto) to=Matematica，实际=%v", details)
	}
	if entries[1].Action != model.ActionSlotFree {
		t.Errorf("期望第二条 action=slot_free，实际=%s", entries[1].Action)
	}
}

// ── Delete 测试 ──

func TestGridService_Delete(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()
	defer recorder.Close()

	ctx := context.Background()
	svc.Upsert(ctx, 1, upsertReq("Venerdì", 4, "Arte"))
	if err := svc.Delete(ctx, 1, "Venerdì", 4); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	slots, _ := mocks.slot.ListByUser(ctx, 1)
	if len(slots) != 0 {
		t.Errorf("期望格子数=0，实际=%d", len(slots))
	}
}

// ── Swap 测试 ──

func TestGridService_Swap_BothOccupied(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()

	ctx := context.Background()
	svc.Upsert(ctx, 1, upsertReq("Lunedì", 1, "Matematica"))
	svc.Upsert(ctx, 1, upsertReq("Martedì", 2, "Fisica"))

	err := svc.Swap(ctx, 1, &dto.SwapRequest{
		From: dto.CellRef{Day: "Lunedì", Hour: 1},
		To:   dto.CellRef{Day: "Martedì", Hour: 2},
	})
	if err != nil {
		t.Fatalf("Swap 应成功: %v", err)
	}
	recorder.Close()

	slots, _ := mocks.slot.ListByUser(ctx, 1)
	bySubject := make(map[string]model.Slot, len(slots))
	for _, s := range slots {
		bySubject[s.Subject] = s
	}
	if s := bySubject["Fisica"]; s.Day != "Lunedì" || s.Hour != 1 {
		t.Errorf("期望 Fisica 移到 Lunedì/1，实际=%s/%d", s.Day, s.Hour)
	}
	if s := bySubject["Matematica"]; s.Day != "Martedì" || s.Hour != 2 {
		t.Errorf("期望 Matematica 移到 Martedì/2，实际=%s/%d", s.Day, s.Hour)
	}

	entries := mocks.change.recorded()
	last := entries[len(entries)-1]
	if last.Action != model.ActionSlotSwapped {
		t.Errorf("期望记录 slot_swapped，实际=%s", last.Action)
	}
}

func TestGridService_Swap_EmptySide(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()
	defer recorder.Close()

	ctx := context.Background()
	svc.Upsert(ctx, 1, upsertReq("Lunedì", 1, "Matematica"))

	// 与空格子交换：科目移动，原格子清空
	err := svc.Swap(ctx, 1, &dto.SwapRequest{
		From: dto.CellRef{Day: "Lunedì", Hour: 1},
		To:   dto.CellRef{Day: "Sabato", Hour: 6},
	})
	if err != nil {
		t.Fatalf("Swap 应成功: %v", err)
	}

	slots, _ := mocks.slot.ListByUser(ctx, 1)
	if len(slots) != 1 {
		t.Fatalf("期望格子数=1，实际=%d", len(slots))
	}
	if slots[0].Day != "Sabato" || slots[0].Hour != 6 {
		t.Errorf("期望科目在 Sabato/6，实际=%s/%d", slots[0].Day, slots[0].Hour)
	}
}

func TestGridService_Swap_SameCellNoop(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()

	ctx := context.Background()
	svc.Upsert(ctx, 1, upsertReq("Lunedì", 1, "Matematica"))
	before := len(mocks.slot.slots)

	err := svc.Swap(ctx, 1, &dto.SwapRequest{
		From: dto.CellRef{Day: "Lunedì", Hour: 1},
		To:   dto.CellRef{Day: "Lunedì", Hour: 1},
	})
	if err != nil {
		t.Fatalf("同格子交换应为空操作: %v", err)
	}
	recorder.Close()

	if len(mocks.slot.slots) != before {
		t.Error("空操作不应改变格子")
	}
	// 空操作不产生 slot_swapped 日志
	for _, e := range mocks.change.recorded() {
		if e.Action == model.ActionSlotSwapped {
			t.Error("空操作不应记录 slot_swapped")
		}
	}
}

func TestGridService_Swap_UnknownDay(t *testing.T) {
	svc, _, recorder := setupTestGridService()
	defer recorder.Close()

	err := svc.Swap(context.Background(), 1, &dto.SwapRequest{
		From: dto.CellRef{Day: "Lunedì", Hour: 1},
		To:   dto.CellRef{Day: "Domenica", Hour: 1},
	})
	if !errors.Is(err, ErrUnknownDay) {
		t.Errorf("期望 ErrUnknownDay，实际: %v", err)
	}
}

func TestGridService_Swap_RepoFailure(t *testing.T) {
	svc, mocks, recorder := setupTestGridService()
	defer recorder.Close()

	mocks.slot.swapErr = errors.New("deadlock detected")
	err := svc.Swap(context.Background(), 1, &dto.SwapRequest{
		From: dto.CellRef{Day: "Lunedì", Hour: 1},
		To:   dto.CellRef{Day: "Martedì", Hour: 2},
	})
	if !errors.Is(err, ErrSwapFailed) {
		t.Errorf("期望 ErrSwapFailed，实际: %v", err)
	}
}
