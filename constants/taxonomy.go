package constants

import (
	"strings"
)

type Category string

const (
	GeneralServices       Category = "General Services"
	FacilityManagement    Category = "Facility Management"
	PublishingProduction  Category = "Publishing Production"
	InformationTechnology Category = "Information Technology"
	Logistics             Category = "Logistics"
	MarketingAdvertising  Category = "Marketing & Advertising"
	Production            Category = "Production"
)

// TaxonomyEntry is one row of the fixed commodity taxonomy.
type TaxonomyEntry struct {
	ID             int
	Category       Category
	CommodityGroup string
}

// taxonomy is loaded once and never mutated; safe for concurrent reads.
var taxonomy = []TaxonomyEntry{
	{1, GeneralServices, "Accommodation Rentals"},
	{2, GeneralServices, "Membership Fees"},
	{3, GeneralServices, "Workplace Safety"},
	{4, GeneralServices, "Consulting"},
	{5, GeneralServices, "Financial Services"},
	{6, GeneralServices, "Fleet Management"},
	{7, GeneralServices, "Recruitment Services"},
	{8, GeneralServices, "Professional Development"},
	{9, GeneralServices, "Miscellaneous Services"},
	{10, GeneralServices, "Insurance"},

	{11, FacilityManagement, "Electrical Engineering"},
	{12, FacilityManagement, "Facility Management Services"},
	{13, FacilityManagement, "Security"},
	{14, FacilityManagement, "Renovations"},
	{15, FacilityManagement, "Office Equipment"},
	{16, FacilityManagement, "Energy Management"},
	{17, FacilityManagement, "Maintenance"},
	{18, FacilityManagement, "Cafeteria and Kitchenettes"},
	{19, FacilityManagement, "Cleaning"},

	{20, PublishingProduction, "Audio and Visual Production"},
	{21, PublishingProduction, "Books/Videos/CDs"},
	{22, PublishingProduction, "Printing Costs"},
	{23, PublishingProduction, "Software Development for Publishing"},
	{24, PublishingProduction, "Material Costs"},
	{25, PublishingProduction, "Shipping for Production"},
	{26, PublishingProduction, "Digital Product Development"},
	{27, PublishingProduction, "Pre-production"},
	{28, PublishingProduction, "Post-production Costs"},

	{29, InformationTechnology, "Hardware"},
	{30, InformationTechnology, "IT Services"},
	{31, InformationTechnology, "Software"},

	{32, Logistics, "Courier, Express, and Postal Services"},
	{33, Logistics, "Warehousing and Material Handling"},
	{34, Logistics, "Transportation Logistics"},
	{35, Logistics, "Delivery Services"},

	{36, MarketingAdvertising, "Advertising"},
	{37, MarketingAdvertising, "Outdoor Advertising"},
	{38, MarketingAdvertising, "Marketing Agencies"},
	{39, MarketingAdvertising, "Direct Mail"},
	{40, MarketingAdvertising, "Customer Communication"},
	{41, MarketingAdvertising, "Online Marketing"},
	{42, MarketingAdvertising, "Events"},
	{43, MarketingAdvertising, "Promotional Materials"},

	{44, Production, "Warehouse and Operational Equipment"},
	{45, Production, "Production Machinery"},
	{46, Production, "Spare Parts"},
	{47, Production, "Internal Transportation"},
	{48, Production, "Production Materials"},
	{49, Production, "Consumables"},
	{50, Production, "Maintenance and Repairs"},
}

// CommodityGroupNames returns the canonical commodity-group strings in
// taxonomy order, for prompt enums and schema constraints.
func CommodityGroupNames() []string {
	result := make([]string, len(taxonomy))
	for i, entry := range taxonomy {
		result[i] = entry.CommodityGroup
	}
	return result
}

// ResolveCategory returns the category of the commodity group matching
// case-insensitively, or false when the group is unknown.
func ResolveCategory(commodityGroup string) (Category, bool) {
	trimmed := strings.TrimSpace(commodityGroup)
	if trimmed == "" {
		return "", false
	}
	for _, entry := range taxonomy {
		if strings.EqualFold(entry.CommodityGroup, trimmed) {
			return entry.Category, true
		}
	}
	return "", false
}

// NormalizeCommodityGroup maps a case-insensitive match to its canonical
// casing. Anything outside the fixed list is dropped, never an error.
func NormalizeCommodityGroup(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, entry := range taxonomy {
		if strings.EqualFold(entry.CommodityGroup, trimmed) {
			return entry.CommodityGroup, true
		}
	}
	return "", false
}
