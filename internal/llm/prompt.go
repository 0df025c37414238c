package llm

import (
	"strings"

	"github.com/asklio/procurement/constants"
)

// BuildSystemPrompt composes the system message: strict-JSON rules, the
// commodity-group enum, and the domain conventions for German vendor offers.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a procurement assistant that extracts structured data from vendor offers.",
		"Return ONLY valid JSON matching exactly the provided schema. Never add extra keys.",
		"Numbers only for prices (no currency symbols). Use null for missing values.",
		"Commodity groups (choose the closest match, use the exact text; if there is no good match, return null): " +
			strings.Join(constants.CommodityGroupNames(), "; ") + ".",
		`"USt.-ID" / "USt.-IdNr." maps to vatId.`,
		`"Kd-Nr." context identifies the customer.`,
		"Process only main items (Pos. 1, 2, 3) plus shipping if present.",
		"totalCost includes shipping + VAT.",
		"Shipping costs are not part of order lines.",
		"Do not invent items not present in the text.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the extracted offer text with an optional
// filename hint. Long documents are truncated; the line items of real
// offers sit well within the first few thousand characters.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if filename := strings.TrimSpace(req.FilenameHint); filename != "" {
		b.WriteString("Filename: ")
		b.WriteString(filename)
		b.WriteString("\n\n")
	}
	b.WriteString("Extract the data from this vendor offer:\n\n")

	text := strings.TrimSpace(req.OfferText)
	if len(text) > 12000 {
		b.WriteString(text[:12000])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}

// BuildOfferJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass it to the model as a structured-output constraint
// and also use it locally for lenient validation. Every field is nullable:
// extraction from real documents is always partially unreliable and a
// partial payload must still pass.
func BuildOfferJSONSchema() map[string]any {
	lineProps := map[string]any{
		"product":   nullableProp("string"),
		"unitPrice": nullableProp("number"),
		"quantity":  nullableProp("number"),
		"totalCost": nullableProp("number"),
	}

	props := map[string]any{
		"requestor":           nullableProp("string"),
		"requestorDepartment": nullableProp("string"),
		"vendor":              nullableProp("string"),
		"commodityGroup":      nullableProp("string"),
		"category":            nullableProp("string"),
		"description":         nullableProp("string"),
		"vatId":               nullableProp("string"),
		"orderLines": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           lineProps,
			},
		},
		"totalCost": nullableProp("number"),
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func nullableProp(typ string) map[string]any {
	return map[string]any{"type": []string{typ, "null"}}
}
