package utilities

import (
	"net/http"
	"net/http/httptest"
)

// FindCookie returns the named cookie set on the recorded response, or nil.
func FindCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
