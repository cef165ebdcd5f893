// Package extract turns downloaded course files into plain text. The
// callers do not care which format library did the work; unsupported
// formats yield empty text so the ingestion batch can skip them.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/pkg/conv"
	"github.com/sandevgo/campusrag/pkg/log"
)

// Text extracts readable text from a document and returns it together
// with the base source metadata. An empty text with a nil error means the
// format is not supported.
func Text(ctx context.Context, content []byte, contentType, filename string) (string, map[string]any, error) {
	metadata := map[string]any{
		"filename":     filename,
		"content_type": contentType,
	}

	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch {
	case mediaType == "application/pdf":
		text, pages, err := pdfText(content)
		if err != nil {
			return "", metadata, fmt.Errorf("%w: extract pdf %s: %v", core.ErrSourceDocument, filename, err)
		}
		metadata["page_count"] = pages
		return text, metadata, nil

	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		text, err := conv.HTMLToText(content)
		if err != nil {
			return "", metadata, fmt.Errorf("%w: extract html %s: %v", core.ErrSourceDocument, filename, err)
		}
		return text, metadata, nil

	case mediaType == "text/markdown" || strings.HasSuffix(filename, ".md"):
		text, err := conv.MarkdownToText(content)
		if err != nil {
			return "", metadata, fmt.Errorf("%w: extract markdown %s: %v", core.ErrSourceDocument, filename, err)
		}
		return text, metadata, nil

	case strings.HasPrefix(mediaType, "text/"),
		mediaType == "application/json",
		mediaType == "application/xml",
		mediaType == "application/javascript":
		return string(content), metadata, nil

	default:
		log.FromCtx(ctx).Warn().
			Str("file", filename).
			Str("content_type", contentType).
			Msg("unsupported file type")
		return "", metadata, nil
	}
}

func pdfText(content []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, err
	}
	return buf.String(), reader.NumPage(), nil
}
