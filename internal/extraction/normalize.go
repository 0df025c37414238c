package extraction

import (
	"math"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/entity"
)

// RawExtraction is the best-effort payload produced by the LLM adapter.
// Every field may be missing or null; order lines may be absent entirely.
// The JSON keys match the extraction prompt schema.
type RawExtraction struct {
	Requestor           *string        `json:"requestor"`
	RequestorDepartment *string        `json:"requestorDepartment"`
	Vendor              *string        `json:"vendor"`
	CommodityGroup      *string        `json:"commodityGroup"`
	Category            *string        `json:"category"`
	Description         *string        `json:"description"`
	VATID               *string        `json:"vatId"`
	OrderLines          []RawOrderLine `json:"orderLines"`
	TotalCost           *float64       `json:"totalCost"`
}

// RawOrderLine mirrors one raw line item. Quantity arrives as a float
// because JSON has no integer type; Normalize narrows it.
type RawOrderLine struct {
	Product   *string  `json:"product"`
	UnitPrice *float64 `json:"unitPrice"`
	Quantity  *float64 `json:"quantity"`
	TotalCost *float64 `json:"totalCost"`
}

// Normalize coerces a raw payload into a well-formed Extraction. It never
// fails: unusable values degrade to null and are surfaced later by
// ComputeIssues, so the system always produces a record for human review.
//
// Rules, in order:
//  1. missing/null orderLines -> empty slice (null never leaves this package)
//  2. commodityGroup canonicalized against the taxonomy; unmatched -> null
//  3. category derived from the taxonomy when absent; an explicit value
//     is preserved as-is (external override wins)
//  4. all other scalars pass through; absent stays null
func Normalize(raw RawExtraction) entity.Extraction {
	out := entity.Extraction{
		Requestor:           raw.Requestor,
		RequestorDepartment: raw.RequestorDepartment,
		Vendor:              raw.Vendor,
		Description:         raw.Description,
		VATID:               raw.VATID,
		TotalCost:           raw.TotalCost,
		OrderLines:          make([]entity.OrderLine, 0, len(raw.OrderLines)),
	}

	if raw.CommodityGroup != nil {
		if canonical, ok := constants.NormalizeCommodityGroup(*raw.CommodityGroup); ok {
			out.CommodityGroup = &canonical
		}
	}

	if raw.Category != nil {
		out.Category = raw.Category
	} else if out.CommodityGroup != nil {
		if category, ok := constants.ResolveCategory(*out.CommodityGroup); ok {
			s := string(category)
			out.Category = &s
		}
	}

	for _, line := range raw.OrderLines {
		out.OrderLines = append(out.OrderLines, normalizeLine(line))
	}

	return out
}

func normalizeLine(raw RawOrderLine) entity.OrderLine {
	line := entity.OrderLine{
		Product:   raw.Product,
		UnitPrice: raw.UnitPrice,
		TotalCost: raw.TotalCost,
	}
	// quantity must be a whole number; anything else degrades to null
	if raw.Quantity != nil && *raw.Quantity == math.Trunc(*raw.Quantity) && !math.IsInf(*raw.Quantity, 0) {
		q := int(*raw.Quantity)
		line.Quantity = &q
	}
	return line
}
