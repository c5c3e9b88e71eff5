package usecase

import (
	"context"
	"io"
	"time"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// メール1通
type Mail struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// メール送信の約束
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// アップロード保存の約束。公開URLを返す
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
