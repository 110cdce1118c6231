package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/model"
	"github.com/deppfellow/opl-checker/internal/server"
	"github.com/deppfellow/opl-checker/internal/service"
)

type ContactHandler struct {
	Handler
	contactService *service.ContactService
}

func NewContactHandler(s *server.Server, contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:        NewHandler(s),
		contactService: contactService,
	}
}

func (h *ContactHandler) SendMessage(c echo.Context, req *model.ContactMessageRequest) (*model.ContactMessageResponse, error) {
	return h.contactService.Send(c.Request().Context(), req)
}
