package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	"github.com/honeydid/honeydid/internal/document/http/dto"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	"github.com/honeydid/honeydid/internal/httputil"
	customValidation "github.com/honeydid/honeydid/internal/validation"
)

// ExportHandler handles HTTP requests for exporting and importing encrypted files.
type ExportHandler struct {
	documentUseCase documentUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewExportHandler creates a new export handler with required dependencies.
func NewExportHandler(documentUseCase documentUseCase.DocumentUseCase, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// ExportSingleHandler exports the working document with a passphrase.
// POST /v1/export - Returns the HTML file as an attachment.
func (h *ExportHandler) ExportSingleHandler(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	artifact, err := h.documentUseCase.ExportSingle(c.Request.Context(), req.ToOptions())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	writeAttachment(c, artifact.FileName, artifact.HTML)
}

// ExportQuestionsHandler exports the working document for question unlock.
// POST /v1/export/questions - Returns the HTML file as an attachment.
func (h *ExportHandler) ExportQuestionsHandler(c *gin.Context) {
	var req dto.ExportQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	artifact, err := h.documentUseCase.ExportDualKey(c.Request.Context(), req.ToOptions())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	writeAttachment(c, artifact.FileName, artifact.HTML)
}

// ImportHandler opens an exported file. With mode "replace" or "merge" the result becomes part of
// the working document and the new working document is returned.
// POST /v1/import
func (h *ExportHandler) ImportHandler(c *gin.Context) {
	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()
	imported, err := h.documentUseCase.Import(ctx, req.Content(), req.Credentials())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var doc *documentDomain.Document
	switch req.Mode {
	case dto.ImportModeReplace:
		doc, err = h.documentUseCase.Replace(ctx, imported)
	case dto.ImportModeMerge:
		doc, err = h.documentUseCase.Merge(ctx, imported)
	default:
		doc = imported
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// InspectHandler reports how an exported file can be unlocked, including its public slides.
// POST /v1/import/inspect
func (h *ExportHandler) InspectHandler(c *gin.Context) {
	var req dto.FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	info, err := h.documentUseCase.Inspect(c.Request.Context(), req.Content())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFileInfoToResponse(info))
}

// RecoveryCardHandler renders a printable recovery card for a passphrase.
// POST /v1/recovery-card
func (h *ExportHandler) RecoveryCardHandler(c *gin.Context) {
	var req dto.RecoveryCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	html, err := h.documentUseCase.RecoveryCard(c.Request.Context(), req.Passphrase, req.FileName)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, htmlContentType, html)
}

// PassphraseHandler generates a random word passphrase.
// GET /v1/passphrase
func (h *ExportHandler) PassphraseHandler(c *gin.Context) {
	passphrase, err := h.documentUseCase.GeneratePassphrase(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.PassphraseResponse{Passphrase: passphrase})
}
