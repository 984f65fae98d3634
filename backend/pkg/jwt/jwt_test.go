package jwt

import (
	"testing"
	"time"

	"github.com/simoamogit/school-timetable/backend/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:  "test-secret-key-at-least-16-chars",
		SessionTTL: ttl,
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateToken(42, "maria")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID 期望 42, 实际 %d", claims.UserID)
	}
	if claims.Username != "maria" {
		t.Errorf("Username 期望 maria, 实际 %s", claims.Username)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateToken(1, "maria")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired, 实际 %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager(time.Hour)
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:  "another-secret-key-16-chars-min",
		SessionTTL: time.Hour,
	})

	token, err := m1.GenerateToken(1, "maria")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	if _, err := m2.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid, 实际 %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager(time.Hour)
	if _, err := m.ParseToken("not.a.token"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid, 实际 %v", err)
	}
}
