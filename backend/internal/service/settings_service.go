package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// ── 设置模块业务错误 ──

var (
	ErrUnknownSchoolDay = errors.New("上课日名称不在固定词表中")
	ErrInvalidHours     = errors.New("每日课时数必须在 1-12 之间")
)

// SettingsService 用户设置业务接口
type SettingsService interface {
	Get(ctx context.Context, userID uint) (*dto.SettingsResponse, error)
	// UpdateGrid 保存上课日与课时数；上课日按固定词表顺序规范化存储
	UpdateGrid(ctx context.Context, userID uint, req *dto.UpdateSettingsRequest) error
	Reset(ctx context.Context, userID uint) error
	SetLocked(ctx context.Context, userID uint, locked bool) error
	SetTheme(ctx context.Context, userID uint, theme string) error
	SetHiddenHours(ctx context.Context, userID uint, hiddenHours []int) error
	SetAvatarColor(ctx context.Context, userID uint, color string) error
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService 创建 SettingsService 实例
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context, userID uint) (*dto.SettingsResponse, error) {
	settings, err := s.repo.Settings.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 设置行随注册创建；历史数据缺行时按未初始化处理
			return &dto.SettingsResponse{
				SchoolDays:  []string{},
				HoursPerDay: model.DefaultHoursPerDay,
				Theme:       model.ThemeDark,
				AvatarColor: model.DefaultAvatarColor,
				HiddenHours: []int{},
			}, nil
		}
		s.logger.Error("查询设置失败", zap.Error(err))
		return nil, err
	}
	resp := toSettingsResponse(settings)
	return &resp, nil
}

func (s *settingsService) UpdateGrid(ctx context.Context, userID uint, req *dto.UpdateSettingsRequest) error {
	if req.HoursPerDay < 1 || req.HoursPerDay > model.MaxHoursPerDay {
		return ErrInvalidHours
	}
	// 存储顺序始终为词表的规范星期顺序，与请求中的选择顺序无关
	days, ok := model.CanonicalDays(req.SchoolDays)
	if !ok {
		return ErrUnknownSchoolDay
	}
	if err := s.repo.Settings.UpdateGrid(ctx, userID, days, req.HoursPerDay); err != nil {
		s.logger.Error("保存设置失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *settingsService) Reset(ctx context.Context, userID uint) error {
	if err := s.repo.Settings.Reset(ctx, userID); err != nil {
		s.logger.Error("重置设置失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *settingsService) SetLocked(ctx context.Context, userID uint, locked bool) error {
	return s.repo.Settings.SetLocked(ctx, userID, locked)
}

func (s *settingsService) SetTheme(ctx context.Context, userID uint, theme string) error {
	return s.repo.Settings.SetTheme(ctx, userID, theme)
}

func (s *settingsService) SetHiddenHours(ctx context.Context, userID uint, hiddenHours []int) error {
	if hiddenHours == nil {
		hiddenHours = []int{}
	}
	return s.repo.Settings.SetHiddenHours(ctx, userID, hiddenHours)
}

func (s *settingsService) SetAvatarColor(ctx context.Context, userID uint, color string) error {
	return s.repo.Settings.SetAvatarColor(ctx, userID, color)
}

// toSettingsResponse 模型 → 前端 camelCase 响应
func toSettingsResponse(m *model.UserSettings) dto.SettingsResponse {
	days := []string(m.SchoolDays)
	if days == nil {
		days = []string{}
	}
	hidden := []int(m.HiddenHours)
	if hidden == nil {
		hidden = []int{}
	}
	hours := m.HoursPerDay
	if hours == 0 {
		hours = model.DefaultHoursPerDay
	}
	theme := m.Theme
	if theme == "" {
		theme = model.ThemeDark
	}
	avatar := m.AvatarColor
	if avatar == "" {
		avatar = model.DefaultAvatarColor
	}
	return dto.SettingsResponse{
		SetupComplete: m.SetupComplete,
		SchoolDays:    days,
		HoursPerDay:   hours,
		Locked:        m.Locked,
		Theme:         theme,
		AvatarColor:   avatar,
		HiddenHours:   hidden,
	}
}
