package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestCSRFSetsCookieOnGet(t *testing.T) {
	h, _ := okHandler()
	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	rec := httptest.NewRecorder()

	CSRF(h).ServeHTTP(rec, req)

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected CSRF cookie to be set on GET")
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	h, called := okHandler()
	req := httptest.NewRequest(http.MethodPost, "/news/add", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token-value"})
	rec := httptest.NewRecorder()

	CSRF(h).ServeHTTP(rec, req)

	if *called {
		t.Error("handler should not run without a matching token")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestCSRFAcceptsMatchingFormToken(t *testing.T) {
	h, called := okHandler()

	form := url.Values{CSRFFormField: {"token-value"}}
	req := httptest.NewRequest(http.MethodPost, "/news/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token-value"})
	rec := httptest.NewRecorder()

	CSRF(h).ServeHTTP(rec, req)

	if !*called {
		t.Error("handler should run with a matching token")
	}
}
