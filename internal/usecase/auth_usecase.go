package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"pos/internal/domain/model"
	repo "pos/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済みのレジ担当者
var ErrCashierInactive = errors.New("cashier is inactive")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(cashierID int64, username string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// bcryptハッシュと平文を比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Cashier model.Cashier  `json:"cashier"`
	Token   JwtAccessToken `json:"token"`
}

type AuthUsecase struct {
	cashierRepo repo.CashierRepository
	verifier    PasswordVerifier
	issuer      AccessTokenIssuer
	clock       Clock
}

func NewAuthUsecase(
	cashierRepo repo.CashierRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		cashierRepo: cashierRepo,
		verifier:    verifier,
		issuer:      issuer,
		clock:       clock,
	}
}

// ログイン処理を実行する
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return out, ErrInvalidCredentials
	}

	//usernameで担当者取得
	cashier, err := u.cashierRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	//停止済みはログイン不可
	if !cashier.IsActive {
		return out, ErrCashierInactive
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, cashier.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//AccessToken発行
	now := u.clock.Now()
	accessToken, expiresAt, err := u.issuer.Issue(cashier.ID, cashier.Username, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻は失敗してもログインは通す
	_ = u.cashierRepo.UpdateLastLogin(ctx, cashier.ID, now)
	cashier.LastLoginAt = &now

	out.Cashier = cashier
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}
	return out, nil
}
