package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dlusecase "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/download"
)

type DownloadHandler struct{ uc *dlusecase.Usecase }

func NewDownloadHandler(uc *dlusecase.Usecase) *DownloadHandler { return &DownloadHandler{uc: uc} }

type requestAccessReq struct {
	ApplicationNumber string `json:"application_number" validate:"required,appnum"`
	Email             string `json:"email" validate:"required,email"`
}

func (h *DownloadHandler) RequestAccess(c echo.Context) error {
	var req requestAccessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.RequestAccess(c.Request().Context(), req.ApplicationNumber, req.Email)
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "access code sent to the email on file", dto)
}

type verifyAccessReq struct {
	ApplicationNumber string `json:"application_number" validate:"required,appnum"`
	OTPCode           string `json:"otp_code" validate:"required,otp6"`
}

func (h *DownloadHandler) VerifyOTP(c echo.Context) error {
	var req verifyAccessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.VerifyOTP(c.Request().Context(), req.ApplicationNumber, req.OTPCode)
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "verified", dto)
}

func (h *DownloadHandler) GetArtifact(c echo.Context) error {
	art, err := h.uc.GetArtifact(
		c.Request().Context(),
		c.Param("token"),
		c.Param("kind"),
		c.RealIP(),
		c.Request().UserAgent(),
	)
	if err != nil {
		return failAction(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+art.Filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", art.Data)
}
