package extraction

import (
	"fmt"
	"math"
	"strings"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/entity"
)

// The completeness rules live in one place so the draft report and the
// submit gate cannot drift apart. ComputeIssues only reports; the
// lifecycle package turns a non-empty report into a hard rejection.

func usableText(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func usableAmount(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0
}

func usableQuantity(v *int) bool {
	return v != nil && *v > 0
}

// commodityGroup must not only be present but resolve to a taxonomy entry:
// user edits can write arbitrary text past the normalizer.
func usableCommodityGroup(v *string) bool {
	if !usableText(v) {
		return false
	}
	_, ok := constants.ResolveCategory(*v)
	return ok
}

// ComputeIssues returns the exhaustive list of field paths unusable for
// submission, index-qualified for order lines (e.g. "orderLines[0].unitPrice").
// It never fails; an empty result means the extraction is submittable.
func ComputeIssues(e entity.Extraction) []string {
	var issues []string

	scalars := []struct {
		path string
		ok   bool
	}{
		{"requestor", usableText(e.Requestor)},
		{"requestorDepartment", usableText(e.RequestorDepartment)},
		{"vendor", usableText(e.Vendor)},
		{"commodityGroup", usableCommodityGroup(e.CommodityGroup)},
		{"category", usableText(e.Category)},
		{"description", usableText(e.Description)},
		{"vatId", usableText(e.VATID)},
		{"totalCost", usableAmount(e.TotalCost)},
	}
	for _, s := range scalars {
		if !s.ok {
			issues = append(issues, s.path)
		}
	}

	if len(e.OrderLines) == 0 {
		issues = append(issues, "orderLines")
		return issues
	}

	for i, line := range e.OrderLines {
		if !usableText(line.Product) {
			issues = append(issues, fmt.Sprintf("orderLines[%d].product", i))
		}
		if !usableAmount(line.UnitPrice) {
			issues = append(issues, fmt.Sprintf("orderLines[%d].unitPrice", i))
		}
		if !usableQuantity(line.Quantity) {
			issues = append(issues, fmt.Sprintf("orderLines[%d].quantity", i))
		}
		if !usableAmount(line.TotalCost) {
			issues = append(issues, fmt.Sprintf("orderLines[%d].totalCost", i))
		}
	}

	return issues
}
