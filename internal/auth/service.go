package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// Service は登録・ログインのビジネスロジックを提供する。
type Service struct {
	userRepo   repository.UserRepository
	codec      *TokenCodec
	bcryptCost int
}

// NewService はServiceを生成する。
// bcryptCostが0以下の場合はDefaultBcryptCostを使用する。
func NewService(userRepo repository.UserRepository, codec *TokenCodec, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = DefaultBcryptCost
	}
	return &Service{
		userRepo:   userRepo,
		codec:      codec,
		bcryptCost: bcryptCost,
	}
}

// Register は新規ユーザーを登録し、認証トークンを発行する。
// userのPasswordには平文を渡す。保存前にハッシュに置き換える。
// メールアドレスが登録済みの場合はEMAIL_TAKENエラーを返し、ストアは変更されない。
func (s *Service) Register(ctx context.Context, user *model.User) (string, error) {
	digest, err := HashPassword(user.Password, s.bcryptCost)
	if err != nil {
		return "", err
	}
	user.Password = digest

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.codec.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("user registered",
		slog.String("email", user.Email),
	)

	return token, nil
}

// Login はメールアドレスとパスワードを照合し、認証トークンを発行する。
// ユーザー不在とパスワード不一致はいずれもINVALID_CREDENTIALSになり、
// 呼び出し側からは区別できない。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return "", model.NewInvalidCredentialsError()
	}

	if !CheckPassword(password, user.Password) {
		return "", model.NewInvalidCredentialsError()
	}

	token, err := s.codec.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("user logged in",
		slog.String("email", user.Email),
	)

	return token, nil
}
