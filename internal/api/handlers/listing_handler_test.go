package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auction-ledger/internal/api/middleware"
	"auction-ledger/internal/domain"
	"auction-ledger/internal/infrastructure/memory"
	"auction-ledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}

func newTestHandler(t *testing.T) (*ListingHandler, *services.LedgerService) {
	t.Helper()
	ledger := services.NewLedgerService(memory.NewListingStore(), memory.NewSequenceAllocator(), nil, nopLogger{})
	return NewListingHandler(ledger, nopLogger{}), ledger
}

func doRequest(handler echo.HandlerFunc, method, path, principal, body string, paramID string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if principal != "" {
		req.Header.Set(middleware.PrincipalHeader, principal)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}

	middleware.ExtractIdentity(handler)(c)
	return rec
}

func TestListingHandler_CreateListing(t *testing.T) {
	h, ledger := newTestHandler(t)

	rec := doRequest(h.CreateListing, http.MethodPost, "/api/v1/listings", "alice",
		`{"title":"Bike","description":"Red","starting_price":100}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)

	var listing domain.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Equal(t, uint64(0), listing.ID)
	require.Equal(t, uint64(100), listing.CurrentPrice)
	require.Equal(t, "alice", listing.Owner)

	count, err := ledger.CountListings(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

func TestListingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		run            func(h *ListingHandler) *httptest.ResponseRecorder
		expectedStatus int
	}{
		{
			name: "get_unknown_listing",
			run: func(h *ListingHandler) *httptest.ResponseRecorder {
				return doRequest(h.GetListing, http.MethodGet, "/api/v1/listings/42", "", "", "42")
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "get_bad_id",
			run: func(h *ListingHandler) *httptest.ResponseRecorder {
				return doRequest(h.GetListing, http.MethodGet, "/api/v1/listings/bike", "", "", "bike")
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "edit_by_non_owner",
			run: func(h *ListingHandler) *httptest.ResponseRecorder {
				return doRequest(h.EditListing, http.MethodPut, "/api/v1/listings/0", "bob",
					`{"title":"Bike","description":"Red","sold":false}`, "0")
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "bid_below_current_price",
			run: func(h *ListingHandler) *httptest.ResponseRecorder {
				return doRequest(h.PlaceBid, http.MethodPost, "/api/v1/listings/0/bids", "bob",
					`{"price":100}`, "0")
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "bid_on_unknown_listing",
			run: func(h *ListingHandler) *httptest.ResponseRecorder {
				return doRequest(h.PlaceBid, http.MethodPost, "/api/v1/listings/42/bids", "bob",
					`{"price":500}`, "42")
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			// Seed listing 0 owned by alice at price 100
			seed := doRequest(h.CreateListing, http.MethodPost, "/api/v1/listings", "alice",
				`{"title":"Bike","description":"Red","starting_price":100}`, "")
			require.Equal(t, http.StatusCreated, seed.Code)

			rec := tt.run(h)
			require.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestListingHandler_BidAndSoldFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	seed := doRequest(h.CreateListing, http.MethodPost, "/api/v1/listings", "alice",
		`{"title":"Bike","description":"Red","starting_price":100}`, "")
	require.Equal(t, http.StatusCreated, seed.Code)

	rec := doRequest(h.PlaceBid, http.MethodPost, "/api/v1/listings/0/bids", "bob", `{"price":150}`, "0")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h.EditListing, http.MethodPut, "/api/v1/listings/0", "alice",
		`{"title":"Bike","description":"Red","sold":true}`, "0")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(h.PlaceBid, http.MethodPost, "/api/v1/listings/0/bids", "bob", `{"price":9999}`, "0")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(h.GetListing, http.MethodGet, "/api/v1/listings/0", "", "", "0")
	require.Equal(t, http.StatusOK, rec.Code)

	var listing domain.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Equal(t, uint64(150), listing.CurrentPrice)
	require.True(t, listing.Sold)
	require.Equal(t, "alice", listing.Owner)
}

func TestListingHandler_CountListings(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h.CountListings, http.MethodGet, "/api/v1/listings/count", "", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, uint64(0), resp.Count)
}
