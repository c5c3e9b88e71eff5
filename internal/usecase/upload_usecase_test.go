package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 最小のPNGヘッダ
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_Image(t *testing.T) {
	files := new(FileStoreMock)
	uc := usecase.NewUploadUsecase(files, 1<<20, zap.NewNop())
	files.On("Save", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, ".png") && len(name) == 36+4
	}), pngHeader).Return("/uploads/x.png", nil)

	url, err := uc.Upload(context.Background(), "deck.PNG", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x.png", url)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	files := new(FileStoreMock)
	uc := usecase.NewUploadUsecase(files, 1<<20, zap.NewNop())

	_, err := uc.Upload(context.Background(), "notes.txt", 5, strings.NewReader("hello"))
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnsupportedMediaType, he.Status)
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_TooLarge(t *testing.T) {
	files := new(FileStoreMock)
	uc := usecase.NewUploadUsecase(files, 10, zap.NewNop())

	_, err := uc.Upload(context.Background(), "deck.png", 11, bytes.NewReader(pngHeader))
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, he.Status)
}

func TestUpload_SizeLieStillCapped(t *testing.T) {
	files := new(FileStoreMock)
	uc := usecase.NewUploadUsecase(files, 20, zap.NewNop())
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)

	_, err := uc.Upload(context.Background(), "deck.png", 1, bytes.NewReader(body))
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, he.Status)
}
