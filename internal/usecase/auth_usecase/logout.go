package auth

import (
	"context"

	"storefront/internal/repository"
)

// ログアウト。token_versionを上げて発行済みトークンを全て無効にする
type LogoutUsecase struct {
	userRepo repository.UserRepository
}

func NewLogoutUsecase(userRepo repository.UserRepository) *LogoutUsecase {
	return &LogoutUsecase{userRepo: userRepo}
}

func (u *LogoutUsecase) Execute(ctx context.Context, userID string) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.TokenVersion++
	return u.userRepo.Update(ctx, user)
}
