// Package image превращает выбранный пользователем файл в data URI для поля image.
package image

import (
	"ShareAMeal/internal/service"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Encoder проверяет изображение валидатором и кодирует его в base64 data URI.
type Encoder struct {
	Validator service.Validator
}

func NewEncoder(v service.Validator) Encoder { return Encoder{Validator: v} }

// Encode читает не больше лимита+1 байт. Если тип не объявлен, он определяется по содержимому.
func (e Encoder) Encode(r io.Reader, declaredType string) (string, error) {
	limit := e.Validator.ImageMaxBytes
	if limit <= 0 {
		limit = service.DefaultImageMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	ct := mediaType(declaredType)
	if ct == "" || ct == "application/octet-stream" {
		ct = mediaType(http.DetectContentType(data))
	}
	if err := e.Validator.ValidateImage(ct, int64(len(data))); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.Grow(len("data:;base64,") + len(ct) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(ct)
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	return buf.String(), nil
}

// EncodeFile кодирует файл с диска. Тип берётся из расширения, иначе по содержимому.
func (e Encoder) EncodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return e.Encode(f, mime.TypeByExtension(strings.ToLower(filepath.Ext(path))))
}

func mediaType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}
