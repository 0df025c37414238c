package extraction

import (
	"testing"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestNormalizeDefaultsOrderLines(t *testing.T) {
	out := Normalize(RawExtraction{})
	if out.OrderLines == nil {
		t.Fatal("orderLines must never be nil after normalization")
	}
	if len(out.OrderLines) != 0 {
		t.Errorf("expected empty orderLines, got %d", len(out.OrderLines))
	}
}

func TestNormalizeCanonicalizesCommodityGroup(t *testing.T) {
	out := Normalize(RawExtraction{CommodityGroup: strPtr("software")})
	if out.CommodityGroup == nil || *out.CommodityGroup != "Software" {
		t.Errorf("commodityGroup = %v, want Software", out.CommodityGroup)
	}
	if out.Category == nil || *out.Category != "Information Technology" {
		t.Errorf("category = %v, want Information Technology", out.Category)
	}
}

func TestNormalizeDropsUnknownCommodityGroup(t *testing.T) {
	out := Normalize(RawExtraction{CommodityGroup: strPtr("office furniture")})
	if out.CommodityGroup != nil {
		t.Errorf("unknown commodityGroup should become nil, got %q", *out.CommodityGroup)
	}
	if out.Category != nil {
		t.Errorf("category should stay nil without a registry match, got %q", *out.Category)
	}
}

func TestNormalizePreservesExplicitCategory(t *testing.T) {
	out := Normalize(RawExtraction{
		CommodityGroup: strPtr("Software"),
		Category:       strPtr("Logistics"),
	})
	if out.Category == nil || *out.Category != "Logistics" {
		t.Errorf("explicit category must win, got %v", out.Category)
	}
}

func TestNormalizeLineQuantity(t *testing.T) {
	whole := 2.0
	fractional := 2.5
	out := Normalize(RawExtraction{OrderLines: []RawOrderLine{
		{Quantity: &whole},
		{Quantity: &fractional},
		{},
	}})
	if out.OrderLines[0].Quantity == nil || *out.OrderLines[0].Quantity != 2 {
		t.Errorf("whole quantity should narrow to int, got %v", out.OrderLines[0].Quantity)
	}
	if out.OrderLines[1].Quantity != nil {
		t.Errorf("fractional quantity should degrade to nil, got %d", *out.OrderLines[1].Quantity)
	}
	if out.OrderLines[2].Quantity != nil {
		t.Error("missing quantity should stay nil")
	}
}

// Upload scenario: partially populated payload with an unknown commodity
// group and null order lines.
func TestNormalizePartialPayload(t *testing.T) {
	out := Normalize(RawExtraction{
		Requestor:      strPtr("Jane"),
		CommodityGroup: strPtr("office furniture"),
		TotalCost:      numPtr(100),
	})

	if out.Requestor == nil || *out.Requestor != "Jane" {
		t.Errorf("requestor = %v, want Jane", out.Requestor)
	}
	if out.Vendor != nil {
		t.Error("absent vendor must stay nil")
	}
	if out.CommodityGroup != nil || out.Category != nil {
		t.Error("unmatched commodityGroup and derived category must both be nil")
	}
	if out.OrderLines == nil || len(out.OrderLines) != 0 {
		t.Errorf("orderLines = %v, want empty slice", out.OrderLines)
	}
	if out.TotalCost == nil || *out.TotalCost != 100 {
		t.Errorf("totalCost = %v, want 100", out.TotalCost)
	}
}
