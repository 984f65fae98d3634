package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/dto"
	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
	"github.com/simoamogit/school-timetable/backend/pkg/redis"
)

// 分享业务错误
var (
	ErrShareNotFound = errors.New("分享链接不存在或已撤销")
)

// shareTokenBytes 令牌随机字节数，hex 编码后 36 字符
const shareTokenBytes = 18

// shareSnapshotTTL 只读快照缓存时长，短 TTL 容忍轻微陈旧换取公共端点抗压
const shareSnapshotTTL = 30 * time.Second

// ShareService 只读分享业务接口
type ShareService interface {
	// GetToken 返回当前令牌，未创建时 Token 为 nil
	GetToken(ctx context.Context, userID uint) (*dto.ShareTokenResponse, error)
	// Create 幂等：已有令牌时直接返回，不轮换
	Create(ctx context.Context, userID uint) (*dto.ShareTokenResponse, error)
	Revoke(ctx context.Context, userID uint) error
	// Resolve 按令牌解析公开视图，无需认证
	Resolve(ctx context.Context, token string) (*dto.ShareViewResponse, error)
}

type shareService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger

	now func() time.Time
}

// NewShareService 创建 ShareService 实例
func NewShareService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ShareService {
	return &shareService{repo: repo, rdb: rdb, logger: logger, now: time.Now}
}

func (s *shareService) GetToken(ctx context.Context, userID uint) (*dto.ShareTokenResponse, error) {
	t, err := s.repo.Share.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ShareTokenResponse{Token: nil}, nil
		}
		s.logger.Error("查询分享令牌失败", zap.Error(err))
		return nil, err
	}
	return &dto.ShareTokenResponse{Token: &t.Token}, nil
}

func (s *shareService) Create(ctx context.Context, userID uint) (*dto.ShareTokenResponse, error) {
	existing, err := s.repo.Share.GetByUser(ctx, userID)
	if err == nil {
		return &dto.ShareTokenResponse{Token: &existing.Token}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询分享令牌失败", zap.Error(err))
		return nil, err
	}

	token, err := newShareToken()
	if err != nil {
		s.logger.Error("生成分享令牌失败", zap.Error(err))
		return nil, err
	}
	record := &model.ShareToken{Token: token, UserID: userID}
	if err := s.repo.Share.Create(ctx, record); err != nil {
		s.logger.Error("保存分享令牌失败", zap.Error(err))
		return nil, err
	}
	return &dto.ShareTokenResponse{Token: &record.Token}, nil
}

func (s *shareService) Revoke(ctx context.Context, userID uint) error {
	t, err := s.repo.Share.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // 撤销不存在的链接视为成功
		}
		s.logger.Error("查询分享令牌失败", zap.Error(err))
		return err
	}
	if err := s.repo.Share.DeleteByUser(ctx, userID); err != nil {
		s.logger.Error("删除分享令牌失败", zap.Error(err))
		return err
	}
	if s.rdb != nil {
		if err := s.rdb.DeleteShareSnapshot(ctx, t.Token); err != nil {
			s.logger.Warn("清除分享快照缓存失败", zap.Error(err))
		}
	}
	return nil
}

func (s *shareService) Resolve(ctx context.Context, token string) (*dto.ShareViewResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.GetShareSnapshot(ctx, token); err != nil {
			s.logger.Warn("读取分享快照缓存失败", zap.Error(err))
		} else if raw != nil {
			var cached dto.ShareViewResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	record, err := s.repo.Share.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		s.logger.Error("解析分享令牌失败", zap.Error(err))
		return nil, err
	}

	view, err := s.buildView(ctx, record.UserID)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(view); err == nil {
			if err := s.rdb.SetShareSnapshot(ctx, token, raw, shareSnapshotTTL); err != nil {
				s.logger.Warn("写入分享快照缓存失败", zap.Error(err))
			}
		}
	}
	return view, nil
}

// buildView 组装公开视图：不含邮箱、主题、锁定状态等私有字段
func (s *shareService) buildView(ctx context.Context, userID uint) (*dto.ShareViewResponse, error) {
	today := s.now().Format("2006-01-02")

	var (
		user     *model.User
		settings *model.UserSettings
		slots    []model.Slot
		notes    []model.Note
		subs     []model.Substitution
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.repo.User.GetByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.repo.Settings.GetByUser(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = &model.UserSettings{UserID: userID}
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = s.repo.Slot.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		notes, err = s.repo.Note.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = s.repo.Substitution.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("组装分享视图失败", zap.Error(err))
		return nil, err
	}

	resp := toSettingsResponse(settings)
	if slots == nil {
		slots = []model.Slot{}
	}
	return &dto.ShareViewResponse{
		Username:    user.Username,
		AvatarColor: resp.AvatarColor,
		Settings: dto.ShareSettings{
			SchoolDays:  resp.SchoolDays,
			HoursPerDay: resp.HoursPerDay,
			HiddenHours: resp.HiddenHours,
		},
		Slots:         slots,
		Notes:         filterExpiredNotes(notes, today),
		Substitutions: filterExpiredSubs(subs, today),
	}, nil
}

// newShareToken 生成不可猜测的 URL 安全令牌
func newShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
