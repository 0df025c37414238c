package export

import (
	"testing"

	"github.com/asklio/procurement/internal/entity"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }
func intPtr(i int) *int         { return &i }

func TestFormatOrderLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []entity.OrderLine
		want  string
	}{
		{"empty", nil, ""},
		{
			"single",
			[]entity.OrderLine{
				{Product: strPtr("Widget"), UnitPrice: numPtr(10), Quantity: intPtr(2), TotalCost: numPtr(20)},
			},
			"2x Widget @ 10.00 = 20.00",
		},
		{
			"gaps render as question marks",
			[]entity.OrderLine{
				{Product: strPtr("Widget")},
			},
			"?x Widget @ ? = ?",
		},
		{
			"multiple joined",
			[]entity.OrderLine{
				{Product: strPtr("A"), UnitPrice: numPtr(1), Quantity: intPtr(1), TotalCost: numPtr(1)},
				{Product: strPtr("B"), UnitPrice: numPtr(2.5), Quantity: intPtr(2), TotalCost: numPtr(5)},
			},
			"1x A @ 1.00 = 1.00; 2x B @ 2.50 = 5.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatOrderLines(tt.lines); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("short string must pass through, got %q", got)
	}
	if got := truncate("hello world", 5); got != "hell…" {
		t.Errorf("got %q", got)
	}
}
