package llm

import "testing"

func TestCheckOfferPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{"empty object", `{}`, true},
		{"nulls allowed everywhere", `{"vendor":null,"orderLines":null,"totalCost":null}`, true},
		{
			"full payload",
			`{"vendor":"ACME","commodityGroup":"Software","orderLines":[{"product":"License","unitPrice":10,"quantity":2,"totalCost":20}],"totalCost":20}`,
			true,
		},
		{"unknown top-level key", `{"confidence":0.9}`, false},
		{"unknown line key", `{"orderLines":[{"sku":"X-1"}]}`, false},
		{"wrong field type", `{"totalCost":"twenty"}`, false},
		{"not an object", `[1,2,3]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOfferPayload([]byte(tt.payload))
			if tt.valid && err != nil {
				t.Errorf("want valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("want schema violation, got nil")
			}
		})
	}
}
