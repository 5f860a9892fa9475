// Package filestore сохраняет загруженные фотографии профиля на диск
// и возвращает публичную ссылку, по которой файл раздается сервером.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions — расширения, которые принимаются как фотографии.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// FileStore сохраняет файлы в каталог dir и строит ссылки с префиксом publicPath.
type FileStore struct {
	dir        string
	publicPath string
}

// New создает FileStore и каталог для загрузок, если его еще нет.
func New(dir, publicPath string) (*FileStore, error) {
	const op = "filestore.New"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FileStore{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

// SavePhoto записывает содержимое src в новый файл photo-<uuid><ext>
// и возвращает публичную ссылку вида /uploads/photo-<uuid><ext>.
func (f *FileStore) SavePhoto(src io.Reader, originalName string) (string, error) {
	const op = "filestore.SavePhoto"

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%s: unsupported file extension %q", op, ext)
	}

	name := "photo-" + uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(f.dir, name))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return f.publicPath + "/" + name, nil
}

// Dir возвращает каталог с файлами, используется для настройки раздачи статики.
func (f *FileStore) Dir() string {
	return f.dir
}
