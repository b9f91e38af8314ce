package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"fastfood/internal/domain/model"
	"fastfood/internal/repository"
)

// リフレッシュトークンの有効期限
const RefreshTokenTTL = 7 * 24 * time.Hour

// アクセストークンとリフレッシュトークンを扱う
type TokenService struct {
	rtRepo     repository.RefreshTokenRepository
	issuer     AccessTokenIssuer
	idGen      IDGenerator
	clock      Clock
	refreshTTL time.Duration
}

func NewTokenService(
	rtRepo repository.RefreshTokenRepository,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
	refreshTTL time.Duration,
) *TokenService {
	if refreshTTL <= 0 {
		refreshTTL = RefreshTokenTTL
	}
	return &TokenService{
		rtRepo:     rtRepo,
		issuer:     issuer,
		idGen:      idGen,
		clock:      clock,
		refreshTTL: refreshTTL,
	}
}

// アカウントのロールを載せたアクセストークン
func (s *TokenService) IssueAccessToken(account *model.Account) (string, time.Time, error) {
	return s.issuer.Issue(account.ID, account.Username, account.RoleNames(), s.clock.Now())
}

// 生のトークンは返すだけで、DBにはハッシュを保存する
func (s *TokenService) IssueRefreshToken(ctx context.Context, userID int64, role model.RoleName) (*model.RefreshToken, string, error) {
	plain, err := generateSecureToken(32)
	if err != nil {
		return nil, "", err
	}

	now := s.clock.Now()
	rt := &model.RefreshToken{
		ID:         s.idGen.NewID(),
		UserID:     userID,
		UserRole:   string(role),
		TokenHash:  HashToken(plain),
		ExpiryDate: now.Add(s.refreshTTL),
		CreatedAt:  now,
	}
	if err := s.rtRepo.Create(ctx, rt); err != nil {
		return nil, "", err
	}
	return rt, plain, nil
}

// ハッシュとユーザーIDが一致し、失効も期限切れもしていなければtrue
func (s *TokenService) ValidateRefreshToken(ctx context.Context, plain string, userID int64) (bool, error) {
	if plain == "" {
		return false, nil
	}

	rt, err := s.rtRepo.FindByTokenHash(ctx, HashToken(plain))
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return rt.UserID == userID && rt.IsActive(s.clock.Now()), nil
}

// 知らないトークンは何もしない
func (s *TokenService) RevokeRefreshToken(ctx context.Context, plain string) error {
	if plain == "" {
		return nil
	}

	rt, err := s.rtRepo.FindByTokenHash(ctx, HashToken(plain))
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rt.IsRevoked {
		return nil
	}

	err = s.rtRepo.Revoke(ctx, rt.ID, s.clock.Now())
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return nil
	}
	return err
}

// ユーザーの有効なトークンを全部失効させる
func (s *TokenService) RevokeAll(ctx context.Context, userID int64) (int64, error) {
	return s.rtRepo.RevokeAllByUserID(ctx, userID, s.clock.Now())
}

func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func generateSecureToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", fmt.Errorf("bytesLen must be positive")
	}

	// ランダムなバイト列を作る（OSが持つ安全な乱数）
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
