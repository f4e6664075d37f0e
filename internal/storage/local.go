package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sniffLen is how much of the upload is read for content detection.
const sniffLen = 3072

type LocalStore struct {
	root     string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalStore stores artifacts under root. References are slash separated
// paths relative to root, e.g. "attendance/7_1700000000_<uuid>.jpg".
func NewLocalStore(root string, maxBytes int64, logger ...*zap.Logger) (*LocalStore, error) {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: root, maxBytes: maxBytes, logger: l}, nil
}

func (s *LocalStore) Save(ctx context.Context, upload Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if len(upload.AllowedTypes) > 0 && !mimetype.EqualsAny(mt.String(), upload.AllowedTypes...) {
		s.logger.Warn("upload rejected", zap.String("detected", mt.String()))
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(s.root, upload.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	name := fmt.Sprintf("%s_%d_%s%s", sanitize(upload.Prefix), time.Now().UnixMilli(), uuid.NewString(), mt.Extension())
	full := filepath.Join(dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), upload.Body)
	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	written, copyErr := io.Copy(f, io.LimitReader(body, limit+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("write artifact: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("close artifact: %w", closeErr)
	case written > limit:
		_ = os.Remove(full)
		return "", ErrFileTooLarge
	}

	ref := path.Join(upload.Folder, name)
	s.logger.Debug("artifact stored", zap.String("ref", ref), zap.Int64("bytes", written))
	return ref, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	full, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// Path returns the on-disk location of ref, used to serve uploads.
func (s *LocalStore) Path(ref string) (string, error) {
	return s.resolve(ref)
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) resolve(ref string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(ref, "\\", "/"))
	if clean == "/" {
		return "", ErrInvalidRef
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func sanitize(prefix string) string {
	if prefix == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range prefix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
