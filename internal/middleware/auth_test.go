package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmeshcher/menu-order-system/internal/model"
)

func TestCapabilityMiddleware_WithValidCookie(t *testing.T) {
	m := NewCapabilityMiddleware("test-secret")

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			t.Fatalf("user not in context")
		}
		if user.ID != 42 {
			t.Fatalf("user id from context = %d, want 42", user.ID)
		}
		if !user.IsAdmin {
			t.Fatalf("admin flag lost in transit")
		}
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/orders", nil)

	m.SetCapabilityCookie(w, model.User{ID: 42, IsAdmin: true})
	res := w.Result()
	resCookies := res.Cookies()
	if len(resCookies) == 0 {
		t.Fatalf("no cookies set by SetCapabilityCookie")
	}

	r.AddCookie(resCookies[0])

	handler := m.Middleware(next)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if !nextCalled {
		t.Fatalf("next handler was not called")
	}
}

func TestCapabilityMiddleware_WithoutCookieIsAnonymous(t *testing.T) {
	m := NewCapabilityMiddleware("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); ok {
			t.Fatalf("anonymous request must not carry a user")
		}
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/products", nil)

	handler := m.Middleware(next)
	handler.ServeHTTP(w, r)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("anonymous request must pass through, got %d", w.Result().StatusCode)
	}
}

func TestCapabilityMiddleware_TamperedCookieIgnored(t *testing.T) {
	m := NewCapabilityMiddleware("test-secret")
	other := NewCapabilityMiddleware("other-secret")

	w := httptest.NewRecorder()
	other.SetCapabilityCookie(w, model.User{ID: 1, IsAdmin: true})
	cookie := w.Result().Cookies()[0]

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.AddCookie(cookie)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserFromContext(r.Context()); ok {
			t.Fatalf("cookie signed with a foreign key must be rejected")
		}
	})

	m.Middleware(next).ServeHTTP(httptest.NewRecorder(), r)
}

func TestRequireAdmin(t *testing.T) {
	m := NewCapabilityMiddleware("test-secret")

	tests := []struct {
		name       string
		user       *model.User
		wantStatus int
	}{
		{"admin allowed", &model.User{ID: 1, IsAdmin: true}, http.StatusOK},
		{"plain user forbidden", &model.User{ID: 2, IsAdmin: false}, http.StatusForbidden},
		{"anonymous forbidden", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/orders/1/status", nil)
			if tt.user != nil {
				w := httptest.NewRecorder()
				m.SetCapabilityCookie(w, *tt.user)
				r.AddCookie(w.Result().Cookies()[0])
			}

			w := httptest.NewRecorder()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			m.Middleware(m.RequireAdmin(next)).ServeHTTP(w, r)

			if w.Result().StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Result().StatusCode, tt.wantStatus)
			}
		})
	}
}
