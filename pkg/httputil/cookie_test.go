package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetTokenFromRequest(req)
	assert.Error(t, err)

	req.AddCookie(&http.Cookie{Name: GameCookieName, Value: "from-cookie"})
	token, err := GetTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)

	req.Header.Set("Authorization", "Bearer from-header")
	token, err = GetTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)
}

func TestSetGameCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetGameCookie(w, "tok", 60, true)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)

	w = httptest.NewRecorder()
	ClearGameCookie(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
