package websession

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saelmaa/pso-itsmentormatch/config"
)

func newTestStore() *Store {
	return NewStore(&config.SessionConfig{
		Name:   "test_session",
		Secret: "0123456789abcdef0123456789abcdef",
		MaxAge: 3600,
	}, false)
}

// roundTrip 保存会话并把 Set-Cookie 带到下一个请求上
func roundTrip(t *testing.T, store *Store, mutate func(s *Session)) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s := store.Load(r, w)
	mutate(s)
	require.NoError(t, s.Save())

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestFlash_ConsumedOnce(t *testing.T) {
	store := newTestStore()
	next := roundTrip(t, store, func(s *Session) {
		s.Flash(FlashSuccess, "Session booked successfully!")
		s.Flash(FlashError, "This session cannot be edited.")
	})

	s := store.Load(next, httptest.NewRecorder())
	assert.Equal(t, []string{"Session booked successfully!"}, s.Flashes(FlashSuccess))
	assert.Equal(t, []string{"This session cannot be edited."}, s.Flashes(FlashError))
	assert.Empty(t, s.Flashes(FlashSuccess), "flash 读取后应清空")
}

func TestErrorsAndOldInput(t *testing.T) {
	store := newTestStore()
	form := url.Values{
		"title":                 {"Learn Laravel"},
		"password":              {"secret"},
		"password_confirmation": {"secret"},
		"_token":                {"csrf"},
	}
	next := roundTrip(t, store, func(s *Session) {
		s.SetErrors(map[string]string{"target_sessions": "必须为正整数"})
		s.SetOldInput(form)
	})

	s := store.Load(next, httptest.NewRecorder())
	assert.Equal(t, map[string]string{"target_sessions": "必须为正整数"}, s.Errors())
	old := s.OldInput()
	assert.Equal(t, "Learn Laravel", old["title"])
	assert.NotContains(t, old, "password")
	assert.NotContains(t, old, "password_confirmation")
	assert.NotContains(t, old, "_token")
	assert.Empty(t, s.Errors())
}

func TestIntended(t *testing.T) {
	store := newTestStore()
	s := store.Load(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "/", s.PopIntended("/"))
	s.SetIntended("/my/progress")
	assert.Equal(t, "/my/progress", s.PopIntended("/"))
	assert.Equal(t, "/", s.PopIntended("/"), "取出后应清除")
}

func TestCSRFToken(t *testing.T) {
	store := NewWithStore(sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")), "csrf")
	s := store.Load(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	token, created := s.CSRFToken()
	require.True(t, created)
	require.NotEmpty(t, token)

	again, created := s.CSRFToken()
	assert.False(t, created)
	assert.Equal(t, token, again)

	assert.True(t, s.VerifyCSRF(token))
	assert.False(t, s.VerifyCSRF("forged"))
	assert.False(t, s.VerifyCSRF(""))

	rotated := s.RotateCSRF()
	assert.NotEqual(t, token, rotated)
	assert.False(t, s.VerifyCSRF(token))
}
