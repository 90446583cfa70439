package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-sweet-storefront/internal/auth"
	"go-sweet-storefront/internal/httpclient"
	"go-sweet-storefront/internal/pkg/apperror"
	"go-sweet-storefront/internal/session"
	"go-sweet-storefront/internal/storage"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T, handler http.Handler) (auth.Service, *session.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.Deps{Local: storage.NewMemory()})
	client := httpclient.New(httpclient.Deps{BaseURL: server.URL, Session: store})
	return auth.NewService(auth.Deps{Client: client, Session: store}), store
}

func authHandler(t *testing.T, status int, resp auth.AuthResponse) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	})
}

func TestService_Register(t *testing.T) {
	t.Run("success_establishes_session", func(t *testing.T) {
		svc, store := newService(t, authHandler(t, http.StatusCreated, auth.AuthResponse{
			Token:     "tok-1",
			ID:        "u1",
			Firstname: "Asha",
			Lastname:  "Rao",
			Email:     "asha@example.com",
			Role:      session.RoleUser,
		}))

		user, err := svc.Register(context.Background(), auth.RegisterRequest{
			Email:     "asha@example.com",
			Firstname: "Asha",
			Lastname:  "Rao",
			Password:  "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Asha Rao", user.Username)
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "tok-1", store.Token())
	})

	t.Run("rejects_invalid_email_before_calling_backend", func(t *testing.T) {
		svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("backend must not be called")
		}))

		_, err := svc.Register(context.Background(), auth.RegisterRequest{
			Email:     "not-an-email",
			Firstname: "Asha",
			Lastname:  "Rao",
			Password:  "secret123",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})

	t.Run("duplicate_email_surfaces_conflict", func(t *testing.T) {
		svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"email already registered"}`))
		}))

		_, err := svc.Register(context.Background(), auth.RegisterRequest{
			Email:     "asha@example.com",
			Firstname: "Asha",
			Lastname:  "Rao",
			Password:  "secret123",
		})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
		assert.False(t, store.IsAuthenticated())
	})
}

func TestService_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, store := newService(t, authHandler(t, http.StatusOK, auth.AuthResponse{
			Token:     "tok-2",
			ID:        "u2",
			Firstname: "Shop",
			Lastname:  "Admin",
			Email:     "admin@example.com",
			Role:      session.RoleAdmin,
		}))

		user, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "admin@example.com",
			Password: "admin123",
		})

		assert.NoError(t, err)
		assert.Equal(t, session.RoleAdmin, user.Role)
		assert.True(t, store.IsAdmin())
	})

	t.Run("bad_credentials_do_not_establish_session", func(t *testing.T) {
		svc, store := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid email or password"}`))
		}))

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("empty_token_in_response", func(t *testing.T) {
		svc, store := newService(t, authHandler(t, http.StatusOK, auth.AuthResponse{
			ID:    "u1",
			Email: "asha@example.com",
		}))

		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Email:    "asha@example.com",
			Password: "secret123",
		})

		assert.ErrorIs(t, err, auth.ErrEmptyToken)
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("missing_fields_rejected_locally", func(t *testing.T) {
		svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("backend must not be called")
		}))

		_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com"})
		assert.Error(t, err)
	})
}

func TestService_Logout(t *testing.T) {
	svc, store := newService(t, authHandler(t, http.StatusOK, auth.AuthResponse{
		Token: "tok-1", ID: "u1", Firstname: "Asha", Lastname: "Rao",
		Email: "asha@example.com", Role: session.RoleUser,
	}))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)

	svc.Logout()
	assert.False(t, store.IsAuthenticated())
}
