package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/auth"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type requestLoginReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) RequestLogin(c echo.Context) error {
	var req requestLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.RequestLogin(c.Request().Context(), req.Email)
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "verification code sent", dto)
}

type verifyLoginReq struct {
	Email   string `json:"email" validate:"required,email"`
	OTPCode string `json:"otp_code" validate:"required,otp6"`
}

func (h *AuthHandler) VerifyLogin(c echo.Context) error {
	var req verifyLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	result, err := h.uc.VerifyLogin(c.Request().Context(), req.Email, req.OTPCode)
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "login successful", result)
}
