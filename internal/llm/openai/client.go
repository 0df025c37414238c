package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asklio/procurement/internal/extraction"
	"github.com/asklio/procurement/internal/llm"
)

// ExtractOffer implements llm.OfferExtractor using text-only chat/completions.
// The model's JSON is cleaned, sanitized and schema-checked leniently:
// a partially populated payload is returned as-is for the normalizer to
// degrade; only network failures and non-JSON content are errors.
func (c *Client) ExtractOffer(ctx context.Context, req llm.ExtractRequest) (extraction.RawExtraction, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.OfferText),
		"filename_hint", req.FilenameHint,
	)

	schema := llm.BuildOfferJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, httpErr := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extraction.RawExtraction{}, nil, fmt.Errorf("openai request: %w", httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extraction.RawExtraction{}, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extraction.RawExtraction{}, raw, fmt.Errorf("no choices in openai response")
	}

	content := llm.CleanModelJSON(cc.Choices[0].Message.Content)
	sanitized, dropped, err := llm.NormalizeAndSanitizeJSON([]byte(content), c.log)
	if err != nil {
		c.log.Error("llm.extract.sanitize_failed",
			"req_id", rid, "error", err, "content_len", len(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extraction.RawExtraction{}, []byte(content), fmt.Errorf("model output is not JSON: %w", err)
	}

	// Lenient check: a schema miss is logged, not fatal — the normalizer
	// degrades whatever it cannot use.
	if vErr := llm.CheckOfferPayload(sanitized); vErr != nil {
		c.log.Warn("llm.extract.schema_mismatch",
			"req_id", rid, "error", vErr, "dropped", dropped,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}

	var out extraction.RawExtraction
	if err := json.Unmarshal(sanitized, &out); err != nil {
		c.log.Error("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extraction.RawExtraction{}, sanitized, fmt.Errorf("unmarshal fields: %w", err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"vendor", deref(out.Vendor),
		"commodity_group", deref(out.CommodityGroup),
		"order_lines", len(out.OrderLines),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, sanitized, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
