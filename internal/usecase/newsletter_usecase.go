package usecase

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ニュースレター購読
type NewsletterUsecase struct {
	notifications repo.NotificationRepository
	mailer        Mailer
	appName       string
	appURL        string
	log           *zap.Logger
}

func NewNewsletterUsecase(notifications repo.NotificationRepository, mailer Mailer, appName string, appURL string, log *zap.Logger) *NewsletterUsecase {
	return &NewsletterUsecase{
		notifications: notifications,
		mailer:        mailer,
		appName:       appName,
		appURL:        strings.TrimRight(appURL, "/"),
		log:           log,
	}
}

// 購読登録してウェルカムメールを送る。メール失敗はログのみ
func (u *NewsletterUsecase) Subscribe(ctx context.Context, email string, subject string, userID *string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validator.ValidateEmail(email); err != nil {
		return fromValidation(err)
	}

	// 再購読ではUpsertが既存のtokenを返す
	n := model.Notification{
		Email:      email,
		Token:      uuid.NewString(),
		UserID:     userID,
		Newsletter: true,
	}
	if err := u.notifications.Upsert(ctx, &n); err != nil {
		u.log.Error("subscribe newsletter failed", zap.String("email", email), zap.Error(err))
		return errDB()
	}

	if strings.TrimSpace(subject) == "" {
		subject = fmt.Sprintf("Welcome to %s", u.appName)
	}
	prefs := u.preferencesURL(n.Token)
	err := u.mailer.Send(ctx, Mail{
		To:      []string{email},
		Subject: subject,
		HTML: fmt.Sprintf(`<p>Thanks for subscribing to the %s newsletter.</p><p><a href="%s">Manage email preferences</a></p>`,
			u.appName, html.EscapeString(prefs)),
		Text: fmt.Sprintf("Thanks for subscribing to the %s newsletter.\nManage email preferences: %s", u.appName, prefs),
	})
	if err != nil {
		u.log.Warn("welcome mail failed", zap.String("email", email), zap.Error(err))
	}
	return nil
}

// 配信設定ページのURL。tokenがメールアドレスの代わりの鍵になる
func (u *NewsletterUsecase) preferencesURL(token string) string {
	return u.appURL + "/email-preferences?token=" + url.QueryEscape(token)
}
