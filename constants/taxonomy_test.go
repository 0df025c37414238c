package constants

import (
	"testing"
)

func TestResolveCategoryCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		found bool
	}{
		{"Software", InformationTechnology, true},
		{"SOFTWARE", InformationTechnology, true},
		{"software", InformationTechnology, true},
		{"Courier, Express, and Postal Services", Logistics, true},
		{"  Cleaning  ", FacilityManagement, true},
		{"office furniture", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, found := ResolveCategory(tt.input)
		if found != tt.found || got != tt.want {
			t.Errorf("ResolveCategory(%q) = (%q, %v), want (%q, %v)", tt.input, got, found, tt.want, tt.found)
		}
	}
}

func TestNormalizeCommodityGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"software", "Software", true},
		{"BOOKS/VIDEOS/CDS", "Books/Videos/CDs", true},
		{"it services", "IT Services", true},
		{"office furniture", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		got, found := NormalizeCommodityGroup(tt.input)
		if found != tt.found || got != tt.want {
			t.Errorf("NormalizeCommodityGroup(%q) = (%q, %v), want (%q, %v)", tt.input, got, found, tt.want, tt.found)
		}
	}
}

func TestCommodityGroupNames(t *testing.T) {
	names := CommodityGroupNames()
	if len(names) != 50 {
		t.Fatalf("expected 50 commodity groups, got %d", len(names))
	}
	if names[0] != "Accommodation Rentals" || names[49] != "Maintenance and Repairs" {
		t.Errorf("taxonomy order changed: first=%q last=%q", names[0], names[49])
	}
}

func TestParseRequestStatus(t *testing.T) {
	for _, s := range []string{"pending", "open", "inprogress", "closed"} {
		if _, ok := ParseRequestStatus(s); !ok {
			t.Errorf("ParseRequestStatus(%q) should succeed", s)
		}
	}
	if _, ok := ParseRequestStatus("archived"); ok {
		t.Error("ParseRequestStatus should reject unknown status")
	}
}
