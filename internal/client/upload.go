package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

const (
	imageField  = "image"
	avatarField = "file"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipartBody encodes img as the single file part of a form. The part's
// Content-Type is sniffed from the bytes rather than trusted from the name.
func multipartBody(field string, img domain.ImageUpload) ([]byte, string, error) {
	if img.Content == nil {
		return nil, "", fmt.Errorf("upload %q has no content", img.Filename)
	}
	data, err := io.ReadAll(img.Content)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %q: %w", img.Filename, err)
	}

	filename := img.Filename
	if filename == "" {
		filename = "upload" + mimetype.Detect(data).Extension()
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", mimetype.Detect(data).String())

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
