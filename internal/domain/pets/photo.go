package pets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/h2non/filetype"
)

// MaxPhotoBytes limita el tamaño de una foto embebida.
const MaxPhotoBytes = 5 << 20

var (
	ErrPhotoTooLarge = errors.New("photo too large")
	ErrPhotoNotImage = errors.New("photo is not an image")
)

// EncodePhoto lee una imagen y la devuelve como data URI
// (data:<mime>;base64,<payload>). Es un paso local, sin red.
func EncodePhoto(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		limit = MaxPhotoBytes
	}

	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if int64(len(raw)) > limit {
		return "", ErrPhotoTooLarge
	}
	if !filetype.IsImage(raw) {
		return "", ErrPhotoNotImage
	}

	kind, err := filetype.Match(raw)
	if err != nil {
		return "", fmt.Errorf("sniff photo: %w", err)
	}

	return "data:" + kind.MIME.Value + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// IsDataURI indica si la foto ya viene embebida.
func IsDataURI(photo string) bool {
	return strings.HasPrefix(strings.TrimSpace(photo), "data:")
}
