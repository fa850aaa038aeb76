package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/registryhq/birth-registry/internal/api/metrics"
	"github.com/registryhq/birth-registry/internal/api/middleware"
	"github.com/registryhq/birth-registry/internal/core/domain"
	"github.com/registryhq/birth-registry/internal/core/ports"
)

// DetailHandler handles HTTP requests for birth detail records.
type DetailHandler struct {
	service ports.DetailService
}

func NewDetailHandler(service ports.DetailService) *DetailHandler {
	return &DetailHandler{service: service}
}

// Add creates a birth detail record for the authenticated caller.
//
// @Summary      Add birth details
// @Tags         details
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addDetailRequest  true  "Birth details"
// @Success      201   {object}  detailResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/add [post]
func (h *DetailHandler) Add(c echo.Context) error {
	var req addDetailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	userID, _ := c.Get(middleware.UserIDKey).(string)
	detail, err := h.service.Add(c.Request().Context(), ports.AddDetailInput{
		Age:          *req.Age,
		YearOfBirth:  *req.YearOfBirth,
		PlaceOfBirth: req.PlaceOfBirth,
		UserID:       userID,
	})
	if err != nil {
		return err
	}

	metrics.DetailMutationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, detailResponse{
		Message: "Details added successfully",
		Data:    detail,
	})
}

// List returns all birth detail records. The route is not gated.
//
// @Summary      List birth details
// @Tags         details
// @Produce      json
// @Success      200  {array}   domain.BirthDetail
// @Failure      500  {object}  errorResponse
// @Router       /auth/get [get]
func (h *DetailHandler) List(c echo.Context) error {
	details, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if details == nil {
		details = []*domain.BirthDetail{}
	}
	return c.JSON(http.StatusOK, details)
}

// Update replaces the payload fields of an existing record.
//
// @Summary      Update birth details
// @Tags         details
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Record id"
// @Param        body  body      addDetailRequest  true  "Replacement fields"
// @Success      200   {object}  detailResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/update/{id} [put]
func (h *DetailHandler) Update(c echo.Context) error {
	var req addDetailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateDetailInput{
		Age:          *req.Age,
		YearOfBirth:  *req.YearOfBirth,
		PlaceOfBirth: req.PlaceOfBirth,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDetailNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Details not found."})
		}
		return err
	}

	metrics.DetailMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, detailResponse{
		Message: "Details updated successfully.",
		Data:    detail,
	})
}

// Delete removes a record by id and returns the removed document.
//
// @Summary      Delete birth details
// @Tags         details
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Record id"
// @Success      200  {object}  detailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/delete/{id} [delete]
func (h *DetailHandler) Delete(c echo.Context) error {
	detail, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDetailNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Details not found."})
		}
		return err
	}

	metrics.DetailMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, detailResponse{
		Message: "Details deleted successfully.",
		Data:    detail,
	})
}
