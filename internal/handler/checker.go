package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/model"
	"github.com/deppfellow/opl-checker/internal/server"
	"github.com/deppfellow/opl-checker/internal/service"
)

type CheckerHandler struct {
	Handler
	checkerService *service.CheckerService
}

func NewCheckerHandler(s *server.Server, checkerService *service.CheckerService) *CheckerHandler {
	return &CheckerHandler{
		Handler:        NewHandler(s),
		checkerService: checkerService,
	}
}

// Check answers every well-formed request with 200. Problems with the
// CSV files are reported inside the output, never as HTTP errors.
func (h *CheckerHandler) Check(c echo.Context, req *model.CheckerInput) (model.CheckerOutput, error) {
	return h.checkerService.Check(c.Request().Context(), req), nil
}
