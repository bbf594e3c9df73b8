package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/core/domain"
)

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, reg domain.Registration) (*domain.User, error) {
			if reg.Email != "alice@example.com" || reg.Password != "password123" {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			if reg.Birthday == nil || reg.Birthday.String() != "1990-05-17" {
				t.Fatalf("birthday not bound: %+v", reg.Birthday)
			}
			u := alice()
			u.Birthday = reg.Birthday
			return u, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"email":"alice@example.com","first_name":"Alice","last_name":"Smith","birthday":"1990-05-17","password":"password123"}`
	c, rec := newTestContext(http.MethodPost, "/signup", echo.MIMEApplicationJSON, body)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" || resp["first_name"] != "Alice" || resp["birthday"] != "1990-05-17" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	for _, leaked := range []string{"password", "password_hash", "PasswordHash"} {
		if _, ok := resp[leaked]; ok {
			t.Fatalf("response leaks %s: %+v", leaked, resp)
		}
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("response leaks the password hash")
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, domain.Registration) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	})

	body := `{"email":"not-an-email","first_name":"A","last_name":"Smith","password":"short"}`
	c, _ := newTestContext(http.MethodPost, "/signup", echo.MIMEApplicationJSON, body)

	err := h.Signup(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"email", "first_name", "password"} {
		if !fields[want] {
			t.Fatalf("expected %s to be reported, got %+v", want, ve.Fields)
		}
	}
}

func TestAuthHandler_Signup_PasswordTooLongForBcrypt(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	// 30 three-byte runes: within 64 characters but 90 bytes.
	password := strings.Repeat("€", 30)
	body := `{"email":"a@example.com","first_name":"Ann","last_name":"Lee","password":"` + password + `"}`
	c, _ := newTestContext(http.MethodPost, "/signup", echo.MIMEApplicationJSON, body)

	err := h.Signup(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 1 || ve.Fields[0].Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestAuthHandler_Signup_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newTestContext(http.MethodPost, "/signup", echo.MIMEApplicationJSON, `{"email":`)

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_DuplicatePropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, domain.Registration) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	body := `{"email":"bob@example.com","first_name":"Bob","last_name":"Stone","password":"password123"}`
	c, _ := newTestContext(http.MethodPost, "/signup", echo.MIMEApplicationJSON, body)

	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Form(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "password123" {
				t.Fatalf("unexpected credentials %s/%s", email, password)
			}
			return "tok", nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/login", echo.MIMEApplicationForm, "username=alice%40example.com&password=password123")

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "tok" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token response: %+v", resp)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	cases := map[string]error{
		"unknown user":   domain.ErrUserNotFound,
		"wrong password": domain.ErrInvalidCredentials,
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{
				authenticateFn: func(context.Context, string, string) (string, error) { return "", want },
			})
			c, _ := newTestContext(http.MethodPost, "/login", echo.MIMEApplicationForm, "username=a%40b.com&password=x")

			if err := h.Login(c); !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newTestContext(http.MethodPost, "/login", echo.MIMEApplicationForm, "username=a%40b.com")

	if err := h.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
