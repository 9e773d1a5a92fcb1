// Package filestore реализует файловое хранилище загружаемых документов
// на локальном диске. Объекты раскладываются по бакетам (подкаталогам),
// имя объекта генерируется из метки времени, случайного суффикса и
// исходного расширения, поэтому повторная загрузка создает новый объект.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store инкапсулирует корневой каталог хранилища и базовый публичный URL.
type Store struct {
	dir     string
	baseURL string
}

// New создаёт хранилище, при необходимости создавая корневой каталог.
func New(dir, baseURL string) (*Store, error) {
	const op = "filestore.New"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir возвращает корневой каталог хранилища. Используется при раздаче
// объектов через файловый сервер.
func (s *Store) Dir() string {
	return s.dir
}

// Save записывает объект в бакет и возвращает его публичный URL.
// Имя объекта: <unix-millis>-<случайный суффикс><расширение исходного файла>.
func (s *Store) Save(bucket, originalName string, r io.Reader) (string, error) {
	const op = "filestore.Save"

	ext := filepath.Ext(originalName)
	objectName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	bucketDir := filepath.Join(s.dir, bucket)
	if err := os.MkdirAll(bucketDir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	f, err := os.Create(filepath.Join(bucketDir, objectName))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.baseURL + "/" + bucket + "/" + objectName, nil
}
