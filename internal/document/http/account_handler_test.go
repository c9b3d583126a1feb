package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	documentDomain "github.com/honeydid/honeydid/internal/document/domain"
	"github.com/honeydid/honeydid/internal/document/http/dto"
	"github.com/honeydid/honeydid/internal/document/usecase/mocks"
	"github.com/honeydid/honeydid/internal/httputil"
)

func setupAccountHandler(t *testing.T) (*AccountHandler, *mocks.MockDocumentUseCase) {
	t.Helper()
	m := newMockUseCase(t)
	return NewAccountHandler(m, discardLogger()), m
}

func TestAccountHandler_PasswordStatusHandler(t *testing.T) {
	handler, mockUseCase := setupAccountHandler(t)
	mockUseCase.On("HasAppPassword", mock.Anything).Return(true, nil).Once()

	c, w := createTestContext(http.MethodGet, "/v1/app-password", nil)
	handler.PasswordStatusHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.PasswordStatusResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.HasPassword)
}

func TestAccountHandler_SetPasswordHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("SetAppPassword", mock.Anything, "hunter2-hunter2").Return(nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/app-password", dto.PasswordRequest{Password: "hunter2-hunter2"})
		handler.SetPasswordHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_EmptyPassword", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/app-password", dto.PasswordRequest{})
		handler.SetPasswordHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAccountHandler_VerifyPasswordHandler(t *testing.T) {
	handler, mockUseCase := setupAccountHandler(t)
	mockUseCase.On("VerifyAppPassword", mock.Anything, "wrong").Return(false, nil).Once()

	c, w := createTestContext(http.MethodPost, "/v1/app-password/verify", dto.PasswordRequest{Password: "wrong"})
	handler.VerifyPasswordHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.VerifyPasswordResponse
	decodeBody(t, w, &resp)
	assert.False(t, resp.Valid)
}

func TestAccountHandler_ChangePasswordHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("ChangeAppPassword", mock.Anything, "old-password", "new-password").Return(nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/app-password", dto.ChangePasswordRequest{
			OldPassword: "old-password",
			NewPassword: "new-password",
		})
		handler.ChangePasswordHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_IncorrectOldPassword", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("ChangeAppPassword", mock.Anything, "bad-password", "new-password").
			Return(documentDomain.ErrIncorrectPassword).Once()

		c, w := createTestContext(http.MethodPut, "/v1/app-password", dto.ChangePasswordRequest{
			OldPassword: "bad-password",
			NewPassword: "new-password",
		})
		handler.ChangePasswordHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var resp httputil.ErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "unauthorized", resp.Error)
	})
}

func TestAccountHandler_ClearHandler(t *testing.T) {
	t.Run("Success_NoPasswordSet", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("ClearAll", mock.Anything, "").Return(nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/clear", dto.PasswordRequest{})
		handler.ClearHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_IncorrectPassword", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("ClearAll", mock.Anything, "guess").Return(documentDomain.ErrIncorrectPassword).Once()

		c, w := createTestContext(http.MethodPost, "/v1/clear", dto.PasswordRequest{Password: "guess"})
		handler.ClearHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAccountHandler_ForceClearHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("ForceClear", mock.Anything, "DELETE ALL DATA").Return(nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/force-clear", dto.ForceClearRequest{
			Confirmation: "DELETE ALL DATA",
		})
		handler.ForceClearHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_WrongPhrase", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/force-clear", dto.ForceClearRequest{Confirmation: "delete"})
		handler.ForceClearHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestAccountHandler_Settings(t *testing.T) {
	t.Run("Get", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("GetClearOnExit", mock.Anything).Return(false, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/settings", nil)
		handler.GetSettingsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"clear_on_exit":false}`, w.Body.String())
	})

	t.Run("Update", func(t *testing.T) {
		handler, mockUseCase := setupAccountHandler(t)
		mockUseCase.On("SetClearOnExit", mock.Anything, true).Return(nil).Once()

		enabled := true
		c, w := createTestContext(http.MethodPut, "/v1/settings", dto.SettingsRequest{ClearOnExit: &enabled})
		handler.UpdateSettingsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"clear_on_exit":true}`, w.Body.String())
	})

	t.Run("Update_MissingField", func(t *testing.T) {
		handler, _ := setupAccountHandler(t)

		c, w := createTestContext(http.MethodPut, "/v1/settings", map[string]string{})
		handler.UpdateSettingsHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
