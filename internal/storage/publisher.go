package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gfvrho/go-report-backend/internal/pdf"
)

const pdfContentType = "application/pdf"

// Publisher renders report text into a watermarked PDF, uploads it and
// returns a presigned download URL.
type Publisher struct {
	Store     ObjectStore
	KeyPrefix string        // e.g. "reports/"
	URLTTL    time.Duration // presigned URL lifetime
	Log       zerolog.Logger
}

// Publish renders content with the given watermark, stores the document
// under a fresh key and returns a time-limited URL for it. Each call gets a
// unique key, so repeated publishes never overwrite one another.
func (p *Publisher) Publish(ctx context.Context, content, watermark string) (string, error) {
	doc, err := pdf.Render(content, watermark)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}

	key := p.KeyPrefix + uuid.NewString() + ".pdf"

	if err := p.Store.Put(ctx, key, doc, pdfContentType); err != nil {
		return "", fmt.Errorf("upload pdf: %w", err)
	}

	url, err := p.Store.PresignGet(ctx, key, p.URLTTL)
	if err != nil {
		// The object is already durable but unreachable by the caller.
		// Remove it so the bucket does not accumulate orphans.
		if delErr := p.Store.Delete(ctx, key); delErr != nil {
			p.Log.Warn().Err(delErr).Str("key", key).Msg("cleanup of orphaned pdf failed")
		}
		return "", fmt.Errorf("presign pdf: %w", err)
	}

	p.Log.Debug().Str("key", key).Msg("report pdf published")
	return url, nil
}
