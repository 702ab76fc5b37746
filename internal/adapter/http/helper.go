package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/document"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/download"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/auth"
	dlusecase "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/download"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/registry"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/workflow"
)

// actionResponse is the uniform envelope for mutating endpoints: a success
// flag plus a human-readable message.
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func okAction(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, actionResponse{Success: true, Message: message, Data: data})
}

// failAction maps a domain error to an HTTP status and the uniform envelope.
// Infrastructure faults are collapsed to a generic 500; the caller never sees
// internal detail.
func failAction(c echo.Context, err error) error {
	status, msg := statusForError(err)
	return c.JSON(status, actionResponse{Success: false, Message: msg})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, workflow.ErrValidation), errors.Is(err, registry.ErrValidation):
		return http.StatusBadRequest, firstLine(err.Error())
	case errors.Is(err, dlusecase.ErrUnknownArtifact):
		return http.StatusBadRequest, "unknown artifact kind"
	case errors.Is(err, otp.ErrInvalidCode):
		return http.StatusBadRequest, "the code you entered is incorrect"
	case errors.Is(err, otp.ErrLockedOut):
		return http.StatusTooManyRequests, "too many incorrect attempts; request a new code"
	case errors.Is(err, otp.ErrNotFound):
		return http.StatusBadRequest, "no valid verification code found; request a new one"
	case errors.Is(err, application.ErrSignatureRequired):
		return http.StatusBadRequest, "a valid signature code is required to approve"
	case errors.Is(err, application.ErrInvalidTransition), errors.Is(err, application.ErrAlreadyDecided):
		return http.StatusConflict, "the application is not in a state that allows this action"
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden, "you are not authorized for this application"
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication failed"
	case errors.Is(err, application.ErrNotFound), errors.Is(err, download.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, document.ErrNotGenerated):
		return http.StatusNotFound, "the document has not been generated yet"
	case errors.Is(err, download.ErrExpired):
		return http.StatusGone, "the download link has expired; verify again to get a new one"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
