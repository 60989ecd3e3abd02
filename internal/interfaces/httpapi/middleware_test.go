package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrrfc/mrr-fantasy/internal/domain/user"
	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
	lastToken string
}

func (s *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	s.lastToken = token
	if s.err != nil {
		return user.Principal{}, s.err
	}
	return s.principal, nil
}

func TestRequireAuth_PassesPrincipal(t *testing.T) {
	verifier := &stubVerifier{principal: user.Principal{UserID: "user-1", FullName: "Jane Manager"}}

	var got user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/my", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if verifier.lastToken != "valid-token" {
		t.Fatalf("expected verifier to receive token, got %q", verifier.lastToken)
	}
	if got.UserID != "user-1" {
		t.Fatalf("expected principal user-1 in context, got %q", got.UserID)
	}
}

func TestRequireAuth_RejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &stubVerifier{principal: user.Principal{UserID: "user-1"}}
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				t.Fatal("next handler should not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/teams/my", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(verifier, next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireAuth_PropagatesVerifierError(t *testing.T) {
	verifier := &stubVerifier{err: fmt.Errorf("%w: account service down", usecase.ErrDependencyUnavailable)}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/my", nil)
	req.Header.Set("Authorization", "Bearer any")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		wantCode   int
	}{
		{name: "matching token", configured: "secret-token", provided: "secret-token", wantCode: http.StatusOK},
		{name: "wrong token", configured: "secret-token", provided: "other", wantCode: http.StatusUnauthorized},
		{name: "missing token", configured: "secret-token", provided: "", wantCode: http.StatusUnauthorized},
		{name: "unconfigured", configured: "", provided: "anything", wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recompute-points", nil)
			if tc.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tc.provided)
			}
			rec := httptest.NewRecorder()

			RequireInternalJobToken(tc.configured, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected status %d, got %d", tc.wantCode, rec.Code)
			}
		})
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://mrr-fantasy.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set("Origin", "https://mrr-fantasy.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://mrr-fantasy.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/v1/players", nil)
	req.Header.Set("Origin", "https://mrr-fantasy.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://allowed.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/players", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}
