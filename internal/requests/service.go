package requests

import (
	"context"
	"log/slog"
	"time"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/common"
	"github.com/asklio/procurement/internal/entity"
	"github.com/asklio/procurement/internal/extraction"
	"github.com/asklio/procurement/internal/lifecycle"
	"github.com/asklio/procurement/internal/llm"
	"github.com/asklio/procurement/internal/pdftext"
	"github.com/asklio/procurement/internal/repository"
)

// Service owns the procurement-request flow: upload ingestion, lifecycle
// transitions, and the mapping to the external representation. It holds
// no transport or storage details.
type Service struct {
	repo   repository.RequestRepository
	text   pdftext.TextExtractor
	llm    llm.OfferExtractor
	logger *slog.Logger
}

func NewService(repo repository.RequestRepository, text pdftext.TextExtractor, extractor llm.OfferExtractor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, text: text, llm: extractor, logger: logger}
}

// UploadInput carries one uploaded document.
type UploadInput struct {
	FileName string
	MimeType string
	FileSize int64
	Data     []byte
}

// DocumentContent is the stored source document resolved to canonical bytes.
type DocumentContent struct {
	FileName string
	MimeType string
	Data     []byte
}

// CreateFromUpload runs the full ingestion flow: text extraction, LLM
// extraction, normalization, persistence as a pending request. Upstream
// failures abort the upload; nothing partial is persisted. A partially
// populated extraction is not a failure — gaps surface in the
// completeness report instead.
func (s *Service) CreateFromUpload(ctx context.Context, in UploadInput) (RequestResponse, error) {
	start := time.Now()
	s.logger.Info("upload.start", "file_name", in.FileName, "file_size", in.FileSize)

	text, err := s.text.Extract(ctx, in.Data)
	if err != nil {
		s.logger.Error("upload.text_extraction_failed", "file_name", in.FileName, "error", err)
		return RequestResponse{}, err
	}

	raw, _, err := s.llm.ExtractOffer(ctx, llm.ExtractRequest{OfferText: text, FilenameHint: in.FileName})
	if err != nil {
		s.logger.Error("upload.llm_extraction_failed", "file_name", in.FileName, "error", err)
		return RequestResponse{}, common.NewAppError("LLM_EXTRACTION", err.Error(), common.ErrUpstream)
	}

	request := &entity.ProcurementRequest{
		Status: lifecycle.InitialStatus,
		Document: entity.DocumentPayload{
			FileName:   in.FileName,
			FileSize:   in.FileSize,
			MimeType:   in.MimeType,
			Data:       in.Data,
			UploadedAt: time.Now().UTC(),
		},
		Extraction: extraction.Normalize(raw),
	}

	created, err := s.repo.Insert(ctx, request)
	if err != nil {
		return RequestResponse{}, err
	}

	resp := ToResponse(created)
	s.logger.Info("upload.ok",
		"id", resp.ID,
		"file_name", in.FileName,
		"issues", len(resp.Issues),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// List returns all requests, newest first, without document bytes.
func (s *Service) List(ctx context.Context) ([]RequestResponse, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]RequestResponse, len(records))
	for i, record := range records {
		result[i] = ToResponse(record)
	}
	return result, nil
}

// Get returns one request by id.
func (s *Service) Get(ctx context.Context, id string) (RequestResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return ToResponse(record), nil
}

// GetDocumentContent returns exactly the stored bytes and mime type of the
// source document.
func (s *Service) GetDocumentContent(ctx context.Context, id string) (DocumentContent, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DocumentContent{}, err
	}

	data, err := repository.DecodeStoredBytes(record.Document.Data)
	if err != nil {
		s.logger.Error("document.unreadable", "id", id, "error", err)
		return DocumentContent{}, err
	}

	mimeType := record.Document.MimeType
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	return DocumentContent{
		FileName: record.Document.FileName,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// Update merges the patch into the current aggregate and, when the patch
// changes the status, asks the lifecycle rules first. A rejected
// transition leaves the stored request untouched.
func (s *Service) Update(ctx context.Context, id string, patch UpdatePatch) (RequestResponse, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, err
	}

	merged := *current
	applyPatch(&merged, patch)

	if patch.Status != nil {
		next, ok := constants.ParseRequestStatus(*patch.Status)
		if !ok {
			return RequestResponse{}, common.NewAppError("INVALID_STATUS", "unknown status "+*patch.Status, common.ErrValidation)
		}
		if err := lifecycle.ValidateTransition(current.Status, next, merged.Extraction); err != nil {
			s.logger.Warn("lifecycle.transition_rejected",
				"id", id, "from", current.Status, "to", next, "error", err)
			return RequestResponse{}, err
		}
		merged.Status = next
	}

	updated, err := s.repo.Update(ctx, &merged)
	if err != nil {
		return RequestResponse{}, err
	}
	return ToResponse(updated), nil
}

// Delete removes a request while it is still pending; submitted requests
// can only be closed through the downstream workflow.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := lifecycle.CheckDelete(current.Status); err != nil {
		s.logger.Warn("lifecycle.delete_rejected", "id", id, "status", current.Status)
		return err
	}
	return s.repo.DeleteByID(ctx, id)
}
