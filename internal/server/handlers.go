package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/common"
	"github.com/asklio/procurement/internal/export"
	"github.com/asklio/procurement/internal/requests"
)

// RequestHandler exposes the procurement-request flow over HTTP.
type RequestHandler struct {
	service      *requests.Service
	export       *export.Service
	maxFileBytes int64
	logger       *slog.Logger
}

func NewRequestHandler(service *requests.Service, exportSvc *export.Service, maxFileBytes int64, logger *slog.Logger) *RequestHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxFileBytes <= 0 {
		maxFileBytes = 10 << 20
	}
	return &RequestHandler{service: service, export: exportSvc, maxFileBytes: maxFileBytes, logger: logger}
}

// Upload handles a vendor-offer PDF upload and returns the created request.
func (h *RequestHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the upload size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if ext != ".pdf" && !strings.Contains(contentType, "pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files are allowed"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the upload size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "application/pdf"
	}

	resp, err := h.service.CreateFromUpload(c.Request.Context(), requests.UploadInput{
		FileName: header.Filename,
		MimeType: contentType,
		FileSize: int64(len(data)),
		Data:     data,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List returns all requests, newest first.
func (h *RequestHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns one request by id.
func (h *RequestHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetContent streams the stored source document back to the client.
func (h *RequestHandler) GetContent(c *gin.Context) {
	content, err := h.service.GetDocumentContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+content.FileName+`"`)
	c.Data(http.StatusOK, content.MimeType, content.Data)
}

// Update merges a field patch and, optionally, a status transition.
func (h *RequestHandler) Update(c *gin.Context) {
	var patch requests.UpdatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a pending request.
func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export returns all requests as an XLSX workbook, optionally filtered by
// ?status=.
func (h *RequestHandler) Export(c *gin.Context) {
	var status *constants.RequestStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := constants.ParseRequestStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status " + raw})
			return
		}
		status = &parsed
	}

	data, err := h.export.ExportRequestsXLSX(c.Request.Context(), status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	filename := "requests-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// writeError maps domain errors onto HTTP status codes. Validation
// failures carry the missing field list so the client can highlight them.
func (h *RequestHandler) writeError(c *gin.Context, err error) {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Request is incomplete",
			"missingFields": verr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrNotPending):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err, "request_id", GetRequestID(c))
	}

	message := err.Error()
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	c.JSON(status, gin.H{"error": message})
}
