package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/pollyapi/polly-go/internal/testutil"
)

func TestRegister_Success(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/register", testutil.NewJSONResponse(`{"id": 7, "username": "alice"}`))

	c := newTestClient(t, mock.URL())

	user, err := c.Register(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if user.ID != 7 {
		t.Errorf("ID = %d, want 7", user.ID)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if got := mock.LastRequestHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want %q", got, "application/json")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/register", testutil.NewDetailResponse(
		http.StatusBadRequest, "Username already registered"))

	c := newTestClient(t, mock.URL())

	_, err := c.Register(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.Class != ErrorClassDomain {
		t.Errorf("Class = %q, want %q", apiErr.Class, ErrorClassDomain)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusBadRequest)
	}
	if apiErr.Message != "Registration failed: Username already registered" {
		t.Errorf("Message = %q, want %q", apiErr.Message,
			"Registration failed: Username already registered")
	}
}

func TestRegister_BadRequestWithoutDetail(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/register", testutil.MockResponse{
		StatusCode: http.StatusBadRequest,
		Body:       `{}`,
	})

	c := newTestClient(t, mock.URL())

	_, err := c.Register(context.Background(), Credentials{Username: "alice", Password: "secret"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Message != "Registration failed: Username already registered" {
		t.Errorf("Message = %q, want default fallback", apiErr.Message)
	}
}

func TestRegister_ServerError(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/register", testutil.MockResponse{
		StatusCode: http.StatusInternalServerError,
	})

	c := newTestClient(t, mock.URL())

	_, err := c.Register(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if !IsTransportError(err) {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestRegister_NetworkError(t *testing.T) {
	mock := testutil.NewMockPolly()
	mock.Close() // Connection refused from now on

	c := newTestClient(t, mock.URL())

	_, err := c.Register(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if !IsTransportError(err) {
		t.Fatalf("Expected transport error, got %v", err)
	}

	var apiErr *APIError
	errors.As(err, &apiErr)
	if apiErr.Err == nil {
		t.Error("Transport error should wrap the underlying network failure")
	}
}

func TestRegister_MalformedResponse(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/register", testutil.NewJSONResponse(`"not an object"`))

	c := newTestClient(t, mock.URL())

	_, err := c.Register(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if !IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestTryRegister(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()

	c := newTestClient(t, mock.URL())
	ctx := context.Background()

	t.Run("failure_returns_nil", func(t *testing.T) {
		mock.SetResponse("/register", testutil.NewDetailResponse(
			http.StatusBadRequest, "Username already registered"))

		if user := c.TryRegister(ctx, Credentials{Username: "alice", Password: "x"}); user != nil {
			t.Errorf("Expected nil user, got %+v", user)
		}
	})

	t.Run("success_returns_user", func(t *testing.T) {
		mock.SetResponse("/register", testutil.NewJSONResponse(`{"id": 1, "username": "bob"}`))

		user := c.TryRegister(ctx, Credentials{Username: "bob", Password: "x"})
		if user == nil {
			t.Fatal("Expected user, got nil")
		}
		if user.Username != "bob" {
			t.Errorf("Username = %q, want %q", user.Username, "bob")
		}
	})
}

func TestLogin_Success(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()

	var receivedContentType, receivedUsername string
	mock.SetHandler("/login", func(w http.ResponseWriter, r *http.Request) {
		receivedContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err == nil {
			receivedUsername = r.PostForm.Get("username")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"access_token": "jwt-abc", "token_type": "bearer"}`))
	})

	c := newTestClient(t, mock.URL())

	token, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	if token.AccessToken != "jwt-abc" {
		t.Errorf("AccessToken = %q, want %q", token.AccessToken, "jwt-abc")
	}
	if receivedContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want form-urlencoded", receivedContentType)
	}
	if receivedUsername != "alice" {
		t.Errorf("Form username = %q, want %q", receivedUsername, "alice")
	}
}

func TestLogin_MissingAccessToken(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/login", testutil.NewJSONResponse(`{"token_type": "bearer"}`))

	c := newTestClient(t, mock.URL())

	_, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "secret"})
	if !IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/login", testutil.NewDetailResponse(
		http.StatusUnauthorized, "Incorrect username or password"))

	c := newTestClient(t, mock.URL())

	_, err := c.Login(context.Background(), Credentials{Username: "alice", Password: "wrong"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Class != ErrorClassDomain {
		t.Errorf("Class = %q, want %q", apiErr.Class, ErrorClassDomain)
	}
	if apiErr.Message != "Login failed: Incorrect username or password" {
		t.Errorf("Message = %q, want login failure message", apiErr.Message)
	}
}

func TestTryLogin_FailureReturnsNil(t *testing.T) {
	mock := testutil.NewMockPolly()
	defer mock.Close()
	mock.SetResponse("/login", testutil.MockResponse{StatusCode: http.StatusUnauthorized})

	c := newTestClient(t, mock.URL())

	if token := c.TryLogin(context.Background(), Credentials{Username: "a", Password: "b"}); token != nil {
		t.Errorf("Expected nil token, got %+v", token)
	}
}
