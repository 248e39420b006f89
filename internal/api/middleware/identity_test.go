package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRequireIdentity(t *testing.T) {
	tests := []struct {
		name           string
		principal      string
		expectedStatus int
	}{
		{name: "with_principal", principal: "alice", expectedStatus: http.StatusOK},
		{name: "missing_principal", principal: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.principal != "" {
				req.Header.Set(PrincipalHeader, tt.principal)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := ExtractIdentity(RequireIdentity(func(c echo.Context) error {
				require.Equal(t, tt.principal, Principal(c))
				return c.NoContent(http.StatusOK)
			}))

			require.NoError(t, handler(c))
			require.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
