package utilities

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "B"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)
	assert.True(t, VerifyPassword("secret123", hashed))
	assert.False(t, VerifyPassword("secret124", hashed))
}

func TestExtractToken(t *testing.T) {
	newCtx := func(setup func(r *http.Request)) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		setup(c.Request)
		return c
	}

	c := newCtx(func(r *http.Request) { r.AddCookie(&http.Cookie{Name: TokenCookie, Value: "from-cookie"}) })
	token, err := ExtractToken(c)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	c = newCtx(func(r *http.Request) { r.Header.Set("Authorization", "Bearer from-header") })
	token, err = ExtractToken(c)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)

	c = newCtx(func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") })
	_, err = ExtractToken(c)
	assert.Error(t, err)
}

func TestExtractIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := ExtractIdentity(c)
	assert.Error(t, err)

	c.Set(IdentityKey, "not an identity")
	_, err = ExtractIdentity(c)
	assert.Error(t, err)

	c.Set(IdentityKey, policy.Identity{UserID: "u1"})
	id, err := ExtractIdentity(c)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
}

func TestAbortWithErrorHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	AbortWithError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	assert.Len(t, c.Errors, 1)
	assert.True(t, c.IsAborted())
}

func TestAbortWithValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	AbortWithError(c, apperror.Validation([]string{"a", "b"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"a, b","details":["a","b"]}`, rec.Body.String())
}

func TestBindingErrors(t *testing.T) {
	type input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"short"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var in input
	err := c.ShouldBindJSON(&in)
	assert.Error(t, err)
	assert.Equal(t, []string{
		"name is required",
		"email must be a valid email",
		"password must be at least 8 characters",
	}, BindingErrors(err))

	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	c.Request.Header.Set("Content-Type", "application/json")
	err = c.ShouldBindJSON(&in)
	assert.Equal(t, []string{"Invalid request body"}, BindingErrors(err))
}
