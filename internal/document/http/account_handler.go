package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeydid/honeydid/internal/document/http/dto"
	documentUseCase "github.com/honeydid/honeydid/internal/document/usecase"
	"github.com/honeydid/honeydid/internal/httputil"
	customValidation "github.com/honeydid/honeydid/internal/validation"
)

// AccountHandler handles HTTP requests for the app password, data clearing and settings.
type AccountHandler struct {
	documentUseCase documentUseCase.DocumentUseCase
	logger          *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(documentUseCase documentUseCase.DocumentUseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		documentUseCase: documentUseCase,
		logger:          logger,
	}
}

// PasswordStatusHandler reports whether an app password is set.
// GET /v1/app-password
func (h *AccountHandler) PasswordStatusHandler(c *gin.Context) {
	has, err := h.documentUseCase.HasAppPassword(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PasswordStatusResponse{HasPassword: has})
}

// SetPasswordHandler sets the app password, replacing any existing one.
// POST /v1/app-password - Returns 204 No Content.
func (h *AccountHandler) SetPasswordHandler(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.documentUseCase.SetAppPassword(c.Request.Context(), req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// VerifyPasswordHandler checks a password against the stored app password.
// POST /v1/app-password/verify
func (h *AccountHandler) VerifyPasswordHandler(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	valid, err := h.documentUseCase.VerifyAppPassword(c.Request.Context(), req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPasswordResponse{Valid: valid})
}

// ChangePasswordHandler replaces the app password after checking the old one.
// PUT /v1/app-password - Returns 204 No Content.
func (h *AccountHandler) ChangePasswordHandler(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.documentUseCase.ChangeAppPassword(c.Request.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearHandler deletes all local data. The password is checked when an app password is set.
// POST /v1/clear - Returns 204 No Content.
func (h *AccountHandler) ClearHandler(c *gin.Context) {
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.documentUseCase.ClearAll(c.Request.Context(), req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForceClearHandler deletes all local data once the confirmation phrase is typed.
// POST /v1/force-clear - Returns 204 No Content.
func (h *AccountHandler) ForceClearHandler(c *gin.Context) {
	var req dto.ForceClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.documentUseCase.ForceClear(c.Request.Context(), req.Confirmation); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSettingsHandler returns the user settings.
// GET /v1/settings
func (h *AccountHandler) GetSettingsHandler(c *gin.Context) {
	enabled, err := h.documentUseCase.GetClearOnExit(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{ClearOnExit: enabled})
}

// UpdateSettingsHandler updates the user settings.
// PUT /v1/settings
func (h *AccountHandler) UpdateSettingsHandler(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.documentUseCase.SetClearOnExit(c.Request.Context(), *req.ClearOnExit); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{ClearOnExit: *req.ClearOnExit})
}
