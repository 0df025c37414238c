package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asklio/procurement/constants"
)

// OrderLine is one priced line item of an offer. Lines carry no identity
// beyond their position in the parent's sequence; an edit replaces the
// whole sequence.
type OrderLine struct {
	Product   *string  `bson:"product" json:"product"`
	UnitPrice *float64 `bson:"unitPrice" json:"unitPrice"`
	Quantity  *int     `bson:"quantity" json:"quantity"`
	TotalCost *float64 `bson:"totalCost" json:"totalCost"`
}

// Extraction is the normalized output of document analysis. All scalar
// fields are nullable; OrderLines is never nil after normalization.
type Extraction struct {
	Requestor           *string     `bson:"requestor" json:"requestor"`
	RequestorDepartment *string     `bson:"requestorDepartment" json:"requestorDepartment"`
	Vendor              *string     `bson:"vendor" json:"vendor"`
	CommodityGroup      *string     `bson:"commodityGroup" json:"commodityGroup"`
	Category            *string     `bson:"category" json:"category"`
	Description         *string     `bson:"description" json:"description"`
	VATID               *string     `bson:"vatId" json:"vatId"`
	OrderLines          []OrderLine `bson:"orderLines" json:"orderLines"`
	TotalCost           *float64    `bson:"totalCost" json:"totalCost"`
}

// DocumentPayload is the stored source document. Data is deliberately
// untyped: depending on driver version and write path the stored bytes
// come back as []byte, primitive.Binary, or a raw numeric sequence.
// repository.DecodeStoredBytes is the only place that resolves this.
type DocumentPayload struct {
	FileName   string    `bson:"fileName"`
	FileSize   int64     `bson:"fileSize"`
	MimeType   string    `bson:"mimeType"`
	Data       any       `bson:"data,omitempty"`
	UploadedAt time.Time `bson:"uploadedAt"`
}

// ProcurementRequest is the aggregate root as persisted: lifecycle status,
// the source document, and the flattened extraction fields.
type ProcurementRequest struct {
	ID         primitive.ObjectID      `bson:"_id,omitempty"`
	Status     constants.RequestStatus `bson:"status"`
	Document   DocumentPayload         `bson:"document"`
	Extraction `bson:",inline"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}
