package requests

import (
	"time"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/common"
	"github.com/asklio/procurement/internal/entity"
	"github.com/asklio/procurement/internal/extraction"
	"github.com/asklio/procurement/internal/repository"
)

// DocumentMeta is the external view of the stored document: metadata only,
// never the bytes.
type DocumentMeta struct {
	FileName   string `json:"fileName"`
	FileSize   int64  `json:"fileSize"`
	MimeType   string `json:"mimeType"`
	UploadedAt string `json:"uploadedAt"`
}

// RequestResponse is the externally visible representation of a
// procurement request: opaque text id, ISO-8601 timestamps, flattened
// extraction fields, and the current completeness report.
type RequestResponse struct {
	ID                  string             `json:"id"`
	Status              string             `json:"status"`
	Document            DocumentMeta       `json:"document"`
	Requestor           *string            `json:"requestor"`
	RequestorDepartment *string            `json:"requestorDepartment"`
	Vendor              *string            `json:"vendor"`
	CommodityGroup      *string            `json:"commodityGroup"`
	Category            *string            `json:"category"`
	Description         *string            `json:"description"`
	VATID               *string            `json:"vatId"`
	OrderLines          []entity.OrderLine `json:"orderLines"`
	TotalCost           *float64           `json:"totalCost"`
	Issues              []string           `json:"issues"`
	CreatedAt           string             `json:"createdAt"`
	UpdatedAt           string             `json:"updatedAt"`
}

// ToResponse maps the persisted aggregate to its external representation.
func ToResponse(r *entity.ProcurementRequest) RequestResponse {
	orderLines := r.OrderLines
	if orderLines == nil {
		orderLines = []entity.OrderLine{}
	}
	return RequestResponse{
		ID:     r.ID.Hex(),
		Status: string(r.Status),
		Document: DocumentMeta{
			FileName:   r.Document.FileName,
			FileSize:   r.Document.FileSize,
			MimeType:   r.Document.MimeType,
			UploadedAt: r.Document.UploadedAt.UTC().Format(time.RFC3339Nano),
		},
		Requestor:           r.Requestor,
		RequestorDepartment: r.RequestorDepartment,
		Vendor:              r.Vendor,
		CommodityGroup:      r.CommodityGroup,
		Category:            r.Category,
		Description:         r.Description,
		VATID:               r.VATID,
		OrderLines:          orderLines,
		TotalCost:           r.TotalCost,
		Issues:              extraction.ComputeIssues(r.Extraction),
		CreatedAt:           r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:           r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// FromResponse maps an external representation back to the aggregate
// shape. The stored document bytes are not part of the external view and
// stay empty; Issues are derived state and are discarded.
func FromResponse(resp RequestResponse) (*entity.ProcurementRequest, error) {
	oid, err := repository.ParseID(resp.ID)
	if err != nil {
		return nil, err
	}
	status, ok := constants.ParseRequestStatus(resp.Status)
	if !ok {
		return nil, common.NewAppError("INVALID_STATUS", "unknown status "+resp.Status, common.ErrValidation)
	}
	uploadedAt, err := time.Parse(time.RFC3339Nano, resp.Document.UploadedAt)
	if err != nil {
		return nil, common.WrapError(err, "parse document.uploadedAt")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, resp.CreatedAt)
	if err != nil {
		return nil, common.WrapError(err, "parse createdAt")
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, resp.UpdatedAt)
	if err != nil {
		return nil, common.WrapError(err, "parse updatedAt")
	}

	orderLines := resp.OrderLines
	if orderLines == nil {
		orderLines = []entity.OrderLine{}
	}

	return &entity.ProcurementRequest{
		ID:     oid,
		Status: status,
		Document: entity.DocumentPayload{
			FileName:   resp.Document.FileName,
			FileSize:   resp.Document.FileSize,
			MimeType:   resp.Document.MimeType,
			UploadedAt: uploadedAt,
		},
		Extraction: entity.Extraction{
			Requestor:           resp.Requestor,
			RequestorDepartment: resp.RequestorDepartment,
			Vendor:              resp.Vendor,
			CommodityGroup:      resp.CommodityGroup,
			Category:            resp.Category,
			Description:         resp.Description,
			VATID:               resp.VATID,
			OrderLines:          orderLines,
			TotalCost:           resp.TotalCost,
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// UpdatePatch is a free-form field merge: nil means "leave unchanged",
// OrderLines replaces the whole sequence when present.
type UpdatePatch struct {
	Status              *string             `json:"status"`
	Requestor           *string             `json:"requestor"`
	RequestorDepartment *string             `json:"requestorDepartment"`
	Vendor              *string             `json:"vendor"`
	CommodityGroup      *string             `json:"commodityGroup"`
	Category            *string             `json:"category"`
	Description         *string             `json:"description"`
	VATID               *string             `json:"vatId"`
	OrderLines          *[]entity.OrderLine `json:"orderLines"`
	TotalCost           *float64            `json:"totalCost"`
}

func applyPatch(r *entity.ProcurementRequest, p UpdatePatch) {
	if p.Requestor != nil {
		r.Requestor = p.Requestor
	}
	if p.RequestorDepartment != nil {
		r.RequestorDepartment = p.RequestorDepartment
	}
	if p.Vendor != nil {
		r.Vendor = p.Vendor
	}
	if p.CommodityGroup != nil {
		r.CommodityGroup = p.CommodityGroup
	}
	if p.Category != nil {
		r.Category = p.Category
	}
	if p.Description != nil {
		r.Description = p.Description
	}
	if p.VATID != nil {
		r.VATID = p.VATID
	}
	if p.OrderLines != nil {
		r.OrderLines = *p.OrderLines
		if r.OrderLines == nil {
			r.OrderLines = []entity.OrderLine{}
		}
	}
	if p.TotalCost != nil {
		r.TotalCost = p.TotalCost
	}
}
