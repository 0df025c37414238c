package llm

import (
	"context"

	"github.com/asklio/procurement/internal/extraction"
)

// ExtractRequest carries everything the extractor needs for one offer.
type ExtractRequest struct {
	OfferText    string
	FilenameHint string
}

// OfferExtractor is the interface the upload flow depends on. The returned
// payload is best-effort: partially populated fields are expected and the
// normalizer deals with them. Errors are reserved for hard failures
// (network, non-JSON model output) and are fatal to the upload.
type OfferExtractor interface {
	ExtractOffer(ctx context.Context, req ExtractRequest) (extraction.RawExtraction, []byte /*rawJSON*/, error)
}
