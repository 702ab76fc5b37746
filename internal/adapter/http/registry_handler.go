package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/middleware"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/registry"
)

type RegistryHandler struct{ uc *registry.Usecase }

func NewRegistryHandler(uc *registry.Usecase) *RegistryHandler { return &RegistryHandler{uc: uc} }

type submitReq struct {
	ApplicantName  string `json:"applicant_name" validate:"required"`
	ApplicantEmail string `json:"applicant_email" validate:"required,email"`
	PositionType   string `json:"position_type" validate:"required,oneof=architect structural_engineer licensed_engineer supervisor"`
}

func (h *RegistryHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Submit(c.Request().Context(), registry.SubmitInput{
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: req.ApplicantEmail,
		PositionType:   application.PositionType(req.PositionType),
	})
	if err != nil {
		return failAction(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RegistryHandler) GetStatus(c echo.Context) error {
	dto, err := h.uc.GetStatus(c.Request().Context(), c.Param("application_number"))
	if err != nil {
		return failAction(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type assignReq struct {
	OfficerID string `json:"officer_id" validate:"required,hex32"`
}

func (h *RegistryHandler) Assign(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Assign(c.Request().Context(), caller, c.Param("application_number"), req.OfficerID)
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "application assigned", dto)
}

func (h *RegistryHandler) CompleteClerkProcessing(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.CompleteClerkProcessing(c.Request().Context(), caller, c.Param("application_number"))
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "clerk processing completed", dto)
}

func (h *RegistryHandler) CompletePayment(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.CompletePayment(c.Request().Context(), caller, c.Param("application_number"))
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "payment recorded", dto)
}
