package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"auction-ledger/internal/api/middleware"
	"auction-ledger/internal/domain"
	"auction-ledger/internal/services"
	"auction-ledger/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	ledger *services.LedgerService
	log    logger.Logger
}

type PlaceBidRequest struct {
	Price uint64 `json:"price"`
}

type CountResponse struct {
	Count uint64 `json:"count"`
}

func NewListingHandler(ledger *services.LedgerService, log logger.Logger) *ListingHandler {
	return &ListingHandler{
		ledger: ledger,
		log:    log,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var input domain.CreateListing
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	listing, err := h.ledger.CreateListing(c.Request().Context(), input, middleware.Principal(c))
	if err != nil {
		h.log.Error("Failed to create listing", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create listing"})
	}

	return c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id, err := parseListingID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing id"})
	}

	listing, err := h.ledger.GetListing(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) EditListing(c echo.Context) error {
	id, err := parseListingID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing id"})
	}

	var input domain.EditListing
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := h.ledger.EditListing(c.Request().Context(), id, input, middleware.Principal(c)); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Listing updated"})
}

func (h *ListingHandler) PlaceBid(c echo.Context) error {
	id, err := parseListingID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid listing id"})
	}

	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := h.ledger.PlaceBid(c.Request().Context(), id, req.Price, middleware.Principal(c)); err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Bid accepted"})
}

func (h *ListingHandler) CountListings(c echo.Context) error {
	count, err := h.ledger.CountListings(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to count listings", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to count listings"})
	}

	return c.JSON(http.StatusOK, CountResponse{Count: count})
}

func (h *ListingHandler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrAccessRejected):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrListingAlreadySold), errors.Is(err, domain.ErrMinimalPriceNotMet):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		h.log.Error("Operation failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal error"})
	}
}

func parseListingID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
