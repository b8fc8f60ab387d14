package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"socialhub/config"
)

type UploadService struct {
	Dir string
}

func NewUploadService() *UploadService {
	return &UploadService{}
}

// dir читает каталог из конфига на каждом сохранении: пакеты
// инициализируются раньше, чем LoadConfig заполнит AppConfig
func (us *UploadService) dir() string {
	if us.Dir != "" {
		return us.Dir
	}
	if config.AppConfig != nil && config.AppConfig.Uploads.Dir != "" {
		return config.AppConfig.Uploads.Dir
	}
	return "uploads"
}

// mediaKind сводит MIME тип к грубому виду медиа
func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return ""
	}
}

// safeBasename отрезает директории и выбрасывает небезопасные символы
func safeBasename(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".")
}

// Save проверяет MIME тип, генерирует несовпадающее с исходным имя
// и кладет файл в каталог загрузок. Возвращает имя файла и вид медиа.
func (us *UploadService) Save(fileHeader *multipart.FileHeader) (string, string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		return "", "", ErrInvalidInput
	}
	kind := mediaKind(contentType)
	if kind == "" {
		return "", "", ErrInvalidInput
	}

	base := safeBasename(fileHeader.Filename)
	token := uuid.New().String()
	filename := token
	if base != "" {
		filename = token + "_" + base
	}

	dir := us.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}
	return filename, kind, nil
}
