package requests

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/entity"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }
func intPtr(i int) *int         { return &i }

func sampleAggregate() *entity.ProcurementRequest {
	created := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)
	return &entity.ProcurementRequest{
		ID:     primitive.NewObjectID(),
		Status: constants.StatusPending,
		Document: entity.DocumentPayload{
			FileName:   "offer.pdf",
			FileSize:   48213,
			MimeType:   "application/pdf",
			Data:       []byte("%PDF-1.7"),
			UploadedAt: created,
		},
		Extraction: entity.Extraction{
			Requestor:           strPtr("Jane Doe"),
			RequestorDepartment: strPtr("HR"),
			Vendor:              strPtr("ACME GmbH"),
			CommodityGroup:      strPtr("Software"),
			Category:            strPtr("Information Technology"),
			Description:         strPtr("License renewal"),
			VATID:               strPtr("DE123456789"),
			OrderLines: []entity.OrderLine{
				{Product: strPtr("Widget"), UnitPrice: numPtr(10), Quantity: intPtr(2), TotalCost: numPtr(20)},
				{Product: strPtr("Gadget"), UnitPrice: numPtr(5.5), Quantity: intPtr(1), TotalCost: numPtr(5.5)},
			},
			TotalCost: numPtr(25.5),
		},
		CreatedAt: created,
		UpdatedAt: created.Add(2 * time.Hour),
	}
}

func TestRoundTrip(t *testing.T) {
	original := sampleAggregate()

	resp := ToResponse(original)
	back, err := FromResponse(resp)
	if err != nil {
		t.Fatalf("FromResponse: %v", err)
	}

	if back.ID != original.ID {
		t.Errorf("id changed: %s != %s", back.ID.Hex(), original.ID.Hex())
	}
	if back.Status != original.Status {
		t.Errorf("status changed: %s != %s", back.Status, original.Status)
	}
	if !reflect.DeepEqual(back.Extraction, original.Extraction) {
		t.Errorf("extraction fields changed:\n got %+v\nwant %+v", back.Extraction, original.Extraction)
	}
	if !back.CreatedAt.Equal(original.CreatedAt) || !back.UpdatedAt.Equal(original.UpdatedAt) {
		t.Error("timestamps changed in round trip")
	}
	if back.Document.FileName != original.Document.FileName ||
		back.Document.FileSize != original.Document.FileSize ||
		back.Document.MimeType != original.Document.MimeType {
		t.Error("document metadata changed in round trip")
	}
}

func TestToResponseStripsBytes(t *testing.T) {
	resp := ToResponse(sampleAggregate())
	// DocumentMeta has no data field; check timestamps render as ISO-8601
	if _, err := time.Parse(time.RFC3339Nano, resp.CreatedAt); err != nil {
		t.Errorf("createdAt is not ISO-8601: %q", resp.CreatedAt)
	}
	if _, err := time.Parse(time.RFC3339Nano, resp.Document.UploadedAt); err != nil {
		t.Errorf("document.uploadedAt is not ISO-8601: %q", resp.Document.UploadedAt)
	}
	if len(resp.Issues) != 0 {
		t.Errorf("complete aggregate should report no issues, got %v", resp.Issues)
	}
}

func TestToResponseNilOrderLines(t *testing.T) {
	agg := sampleAggregate()
	agg.OrderLines = nil
	resp := ToResponse(agg)
	if resp.OrderLines == nil {
		t.Error("orderLines must serialize as [], not null")
	}
}

func TestFromResponseRejectsBadID(t *testing.T) {
	resp := ToResponse(sampleAggregate())
	resp.ID = "not-a-hex-id"
	if _, err := FromResponse(resp); err == nil {
		t.Error("malformed id must be rejected")
	}
}

func TestApplyPatch(t *testing.T) {
	agg := sampleAggregate()
	newLines := []entity.OrderLine{
		{Product: strPtr("Replacement"), UnitPrice: numPtr(1), Quantity: intPtr(1), TotalCost: numPtr(1)},
	}
	applyPatch(agg, UpdatePatch{
		Vendor:     strPtr("Initech"),
		OrderLines: &newLines,
	})

	if *agg.Vendor != "Initech" {
		t.Errorf("vendor not patched: %q", *agg.Vendor)
	}
	if len(agg.OrderLines) != 1 || *agg.OrderLines[0].Product != "Replacement" {
		t.Errorf("orderLines should be replaced wholesale, got %+v", agg.OrderLines)
	}
	if *agg.Requestor != "Jane Doe" {
		t.Error("untouched fields must keep their values")
	}
}
