// Package http provides HTTP handlers for the working document, exports, imports and local account
// operations of the local API.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	"github.com/honeydid/honeydid/internal/httputil"
)

const htmlContentType = "text/html; charset=utf-8"

// DocumentHandler handles HTTP requests for the working document.
type DocumentHandler struct {
	documentUseCase documentUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler with required dependencies.
func NewDocumentHandler(documentUseCase documentUseCase.DocumentUseCase, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// GetHandler returns the working document.
// GET /v1/document
func (h *DocumentHandler) GetHandler(c *gin.Context) {
	doc, err := h.documentUseCase.Get(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// UpdateHandler replaces the working document with the request body.
// PUT /v1/document
func (h *DocumentHandler) UpdateHandler(c *gin.Context) {
	var doc documentDomain.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	updated, err := h.documentUseCase.Update(c.Request.Context(), &doc)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// PrintHandler returns the unencrypted printable document.
// GET /v1/print
func (h *DocumentHandler) PrintHandler(c *gin.Context) {
	html, err := h.documentUseCase.Print(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, htmlContentType, html)
}

// writeAttachment sends html as a file download named fileName.
func writeAttachment(c *gin.Context, fileName string, html []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, htmlContentType, html)
}
