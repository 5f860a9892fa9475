package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/eventsity/internal/http/middlewarectx"
)

// AuthServiceMock реализует интерфейс middlewarectx.Service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (string, string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*AuthServiceMock)
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "token validation error",
			authHeader: "Bearer badtoken",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "badtoken").
					Return("", "", errors.New("token is expired")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer goodtoken",
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "goodtoken").
					Return("uid-123", "user@example.com", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				assert.Equal(t, "uid-123", r.Context().Value(middlewarectx.UserUID))
				assert.Equal(t, "user@example.com", r.Context().Value(middlewarectx.Email))
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			mw.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)

			authMock.AssertExpectations(t)
		})
	}
}
