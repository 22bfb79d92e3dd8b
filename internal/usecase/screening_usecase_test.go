package usecase

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yashsaxena18/curesight-server/config"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newScreeningTestUsecase(t *testing.T) (ScreeningUsecase, string) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	dir := t.TempDir()
	cfg := config.ScreeningConfig{UploadDir: dir}
	return NewScreeningUsecase(nil, log, cfg, nil, nil, nil), dir
}

func TestSubmitRejectsUnsupportedExtension(t *testing.T) {
	u, _ := newScreeningTestUsecase(t)

	file := memFile{bytes.NewReader([]byte("not an image"))}
	header := &multipart.FileHeader{Filename: "scan.pdf"}

	_, err := u.Submit(context.Background(), uuid.New(), file, header)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("err = %v, want %v", err, ErrUnsupportedImage)
	}
}

func TestSubmitRejectsOversizedUpload(t *testing.T) {
	u, dir := newScreeningTestUsecase(t)

	oversized := make([]byte, maxUploadSize+1)
	file := memFile{bytes.NewReader(oversized)}
	header := &multipart.FileHeader{Filename: "scan.png"}

	_, err := u.Submit(context.Background(), uuid.New(), file, header)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want %v", err, ErrFileTooLarge)
	}

	// The partial file must not linger on disk
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read upload dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d leftover files, want 0", len(entries))
	}
}
