package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pdf "github.com/ledongthuc/pdf"

	"github.com/asklio/procurement/internal/common"
)

// TextExtractor is the upload flow's Stage 1: document bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, documentBytes []byte) (string, error)
}

// Extractor pulls the plain text of every page of a PDF. An unreadable
// document is fatal to the upload; there is no retry policy here.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

func (e *Extractor) Extract(ctx context.Context, documentBytes []byte) (string, error) {
	start := time.Now()

	r, err := pdf.NewReader(bytes.NewReader(documentBytes), int64(len(documentBytes)))
	if err != nil {
		e.logger.Error("pdftext.unreadable", "error", err, "bytes", len(documentBytes))
		return "", common.NewAppError("DOCUMENT_UNREADABLE", "document is not a readable PDF", common.ErrUpstream)
	}

	var b strings.Builder
	pages := 0
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("pdftext.page_skipped", "page", i, "error", err)
			continue
		}
		if pages > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
		pages++
	}

	if pages == 0 {
		return "", common.NewAppError("DOCUMENT_UNREADABLE",
			fmt.Sprintf("no extractable text in %d pages", r.NumPage()), common.ErrUpstream)
	}

	e.logger.Info("pdftext.ok",
		"pages", pages,
		"text_len", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b.String(), nil
}
