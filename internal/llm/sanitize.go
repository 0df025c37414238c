package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// CleanModelJSON strips the markdown code fences chat models like to wrap
// around JSON output.
func CleanModelJSON(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```JSON")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

var offerNumericKeys = []string{"unitPrice", "quantity", "totalCost"}

// NormalizeAndSanitizeJSON
// - Renames known snake_case synonyms (vat_id -> vatId)
// - Drops null/empty scalars (missing key and explicit null are the same downstream)
// - Coerces numeric strings -> numbers for price/quantity fields
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to the schema's camelCase keys
	renamed("vat_id", "vatId")
	renamed("commodity_group", "commodityGroup")
	renamed("requestor_department", "requestorDepartment")
	renamed("order_lines", "orderLines")
	renamed("total_cost", "totalCost")

	// 2) coerce the aggregate total; drop blanks and nulls
	coerceNumber(m, "totalCost", &dropped, "")

	// 3) sanitize each order line; a non-array orderLines is dropped
	if v, ok := m["orderLines"]; ok {
		lines, isArray := v.([]any)
		if !isArray {
			if v != nil {
				dropped = append(dropped, "orderLines(type)")
			}
			delete(m, "orderLines")
		} else {
			for i, lv := range lines {
				line, isMap := lv.(map[string]any)
				if !isMap {
					continue
				}
				for _, k := range offerNumericKeys {
					coerceNumber(line, k, &dropped, fmt.Sprintf("orderLines[%d].", i))
				}
				if s, ok := line["product"].(string); ok {
					line["product"] = strings.TrimSpace(s)
				}
				lines[i] = line
			}
			m["orderLines"] = lines
		}
	}

	// 4) remove unknown top-level keys
	allowed := map[string]struct{}{
		"requestor": {}, "requestorDepartment": {}, "vendor": {}, "commodityGroup": {},
		"category": {}, "description": {}, "vatId": {}, "orderLines": {}, "totalCost": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 5) trim obvious strings; blank collapses to absent
	trimKeys := []string{"requestor", "requestorDepartment", "vendor", "commodityGroup", "category", "description", "vatId"}
	for _, k := range trimKeys {
		if v, ok := m[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

// coerceNumber turns a numeric string into a number and removes values
// nothing downstream can use; absent keys are left alone.
func coerceNumber(m map[string]any, key string, dropped *[]string, prefix string) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch t := v.(type) {
	case float64:
		// already a number
	case nil:
		delete(m, key)
		*dropped = append(*dropped, prefix+key+"(null)")
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(t, "€"))
		s = strings.ReplaceAll(s, ",", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			m[key] = f
			*dropped = append(*dropped, prefix+key+"(coerced)")
		} else {
			delete(m, key)
			*dropped = append(*dropped, prefix+key+"(unparseable)")
		}
	default:
		delete(m, key)
		*dropped = append(*dropped, prefix+key+"(type)")
	}
}
