package usecase

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 商品画像のアップロード
type UploadUsecase struct {
	files    FileStore
	maxBytes int64
	log      *zap.Logger
}

func NewUploadUsecase(files FileStore, maxBytes int64, log *zap.Logger) *UploadUsecase {
	return &UploadUsecase{files: files, maxBytes: maxBytes, log: log}
}

// 画像だけ受け付ける。保存名はuuid+拡張子
func (u *UploadUsecase) Upload(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if u.maxBytes > 0 && size > u.maxBytes {
		return "", NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	// 先頭512バイトで種類を判定
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", NewHTTPError(http.StatusBadRequest, "invalid file")
	}
	head = head[:n]
	if n == 0 {
		return "", NewHTTPError(http.StatusBadRequest, "empty file")
	}
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", NewHTTPError(http.StatusUnsupportedMediaType, "only images are allowed")
	}

	body := io.MultiReader(bytes.NewReader(head), r)
	if u.maxBytes > 0 {
		// sizeの申告が嘘でも上限で止める
		body = &capReader{r: body, left: u.maxBytes}
	}

	name := uuid.NewString() + imageExt(filename, contentType)
	url, err := u.files.Save(ctx, name, body)
	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return "", he
		}
		u.log.Error("save upload failed", zap.String("name", name), zap.Error(err))
		return "", NewHTTPError(http.StatusInternalServerError, "upload failed")
	}
	return url, nil
}

func imageExt(filename, contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 5 {
		return ""
	}
	return ext
}

type capReader struct {
	r    io.Reader
	left int64
}

func (c *capReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.left -= int64(n)
	if c.left < 0 {
		return n, NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	return n, err
}
