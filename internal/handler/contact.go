package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/naomimt/TravelMate/internal/repository"
	"github.com/naomimt/TravelMate/internal/utils"
)

// ContactHandler serves the anonymous contact form and the admin inbox.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

func NewContactHandler(m *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Contacts: m}
}

type contactReq struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Submit handles POST /api/contacts.  No auth; new messages start unread.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Invalid JSON")
	}
	if err := c.Validate(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "Missing required fields: name, email, message")
	}
	m, err := h.Contacts.Create(c.Request().Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to submit contact form")
	}
	return utils.Created(c, http.StatusCreated, "Contact form submitted successfully", m)
}

// ListAll handles GET /api/admin/contacts.
func (h *ContactHandler) ListAll(c echo.Context) error {
	msgs, err := h.Contacts.List(c.Request().Context())
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve contacts")
	}
	return utils.OK(c, http.StatusOK, msgs)
}

// Get handles GET /api/admin/contacts/:id.
func (h *ContactHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid contact id")
	}
	m, err := h.Contacts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Contact not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve contact")
	}
	return utils.OK(c, http.StatusOK, m)
}

// MarkRead handles PATCH /api/admin/contacts/:id/read.  Safe to call twice:
// the second call returns the same read=true row.
func (h *ContactHandler) MarkRead(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid contact id")
	}
	m, err := h.Contacts.MarkRead(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Contact not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to update contact")
	}
	return utils.OK(c, http.StatusOK, m)
}

// Delete handles DELETE /api/admin/contacts/:id.
func (h *ContactHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return utils.Fail(c, http.StatusBadRequest, "Invalid contact id")
	}
	if err := h.Contacts.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.Fail(c, http.StatusNotFound, "Contact not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "Failed to delete contact")
	}
	return c.NoContent(http.StatusNoContent)
}
