package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/middleware"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/workflow"
)

// WorkflowHandler serves every review stage through one implementation; the
// :stage path segment selects the coordinator.
type WorkflowHandler struct {
	coordinators map[application.Stage]*workflow.Coordinator
}

func NewWorkflowHandler(coordinators []*workflow.Coordinator) *WorkflowHandler {
	m := make(map[application.Stage]*workflow.Coordinator, len(coordinators))
	for _, c := range coordinators {
		m[c.Stage().Stage] = c
	}
	return &WorkflowHandler{coordinators: m}
}

func (h *WorkflowHandler) coordinator(c echo.Context) (*workflow.Coordinator, workflow.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return nil, workflow.Caller{}, c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	cfg, ok := application.StageByName(c.Param("stage"))
	if !ok {
		return nil, workflow.Caller{}, c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown stage"})
	}
	coord, ok := h.coordinators[cfg.Stage]
	if !ok {
		return nil, workflow.Caller{}, c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown stage"})
	}
	return coord, caller, nil
}

func (h *WorkflowHandler) ListPending(c echo.Context) error {
	coord, caller, err := h.coordinator(c)
	if coord == nil {
		return err
	}
	position := application.PositionType(c.QueryParam("position_type"))
	out, err := coord.ListPending(c.Request().Context(), caller, position)
	if err != nil {
		return failAction(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WorkflowHandler) ListCompleted(c echo.Context) error {
	coord, caller, err := h.coordinator(c)
	if coord == nil {
		return err
	}
	out, err := coord.ListCompleted(c.Request().Context(), caller)
	if err != nil {
		return failAction(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WorkflowHandler) GenerateOTP(c echo.Context) error {
	coord, caller, err := h.coordinator(c)
	if coord == nil {
		return err
	}
	dto, err := coord.GenerateOTP(c.Request().Context(), caller, c.Param("application_number"))
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "signature code sent", dto)
}

type signReq struct {
	OTPCode  string `json:"otp_code" validate:"required,otp6"`
	Comments string `json:"comments"`
}

func (h *WorkflowHandler) Sign(c echo.Context) error {
	coord, caller, err := h.coordinator(c)
	if coord == nil {
		return err
	}
	var req signReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	result, err := coord.VerifyAndSign(c.Request().Context(), caller, workflow.SignInput{
		ApplicationNumber: c.Param("application_number"),
		OTPCode:           req.OTPCode,
		Comments:          req.Comments,
	})
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "application signed", result)
}

type rejectReq struct {
	Comments string `json:"comments" validate:"required"`
}

func (h *WorkflowHandler) Reject(c echo.Context) error {
	coord, caller, err := h.coordinator(c)
	if coord == nil {
		return err
	}
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	result, err := coord.Reject(c.Request().Context(), caller, c.Param("application_number"), req.Comments)
	if err != nil {
		return failAction(c, err)
	}
	return okAction(c, "application rejected", result)
}
