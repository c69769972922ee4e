// Package testutil provides utility functions for testing HTTP handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// MakeJSONRequest is a helper function for making JSON requests in tests.
// A non empty authToken is sent in the token cookie; a nil body sends no body at all.
func MakeJSONRequest(body interface{}, authToken string, r http.Handler, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req, _ := http.NewRequest(method, endpoint, reader)
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.AddCookie(&http.Cookie{Name: utilities.TokenCookie, Value: authToken})
	}

	return serve(r, req)
}

// FilePart is one file of a multipart request
type FilePart struct {
	Field    string
	Filename string
	Content  []byte
}

// MakeMultipartRequest sends fields and files as multipart/form-data with the token cookie.
func MakeMultipartRequest(t *testing.T, fields map[string]string, files []FilePart, authToken string, r http.Handler, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(method, endpoint, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if authToken != "" {
		req.AddCookie(&http.Cookie{Name: utilities.TokenCookie, Value: authToken})
	}

	return serve(r, req)
}

// IssueToken signs an access token for user
func IssueToken(t *testing.T, tokens *auth.TokenManager, user model.User) string {
	t.Helper()
	token, _, err := tokens.Issue(&user)
	require.NoError(t, err)
	return token
}

func serve(r http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}
