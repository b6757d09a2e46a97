package images

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
)

// Store - хранилище картинок объявлений
type Store interface {
	// Upload сохраняет файл и возвращает его публичный URL
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
	// Open открывает файл по идентификатору, вызывающий закрывает reader
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
	// Delete удаляет файл по идентификатору
	Delete(ctx context.Context, id string) error
}

// PublicID достает идентификатор файла из публичного URL:
// последний сегмент пути без расширения.
func PublicID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}

	return strings.TrimSuffix(base, path.Ext(base))
}

// ValidURLs оставляет только абсолютные http(s) ссылки с хостом, порядок сохраняется
func ValidURLs(urls []string) []string {
	valid := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		u, err := url.ParseRequestURI(raw)
		if err != nil {
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			continue
		}
		if u.Host == "" {
			continue
		}

		valid = append(valid, raw)
	}
	return valid
}
