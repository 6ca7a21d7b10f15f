package middleware

import (
	"gameforge/internal/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.Use(VoterIdentity("pepper"))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Voter(c)+"|"+c.GetString(VoterSourceKey))
	})
	return r
}

func TestVoterIdentityFromIP(t *testing.T) {
	r := newIdentityRouter()
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:5000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	want := utils.HashIP("203.0.113.9", "pepper") + "|ip"
	if w.Body.String() != want {
		t.Errorf("got %s, want %s", w.Body.String(), want)
	}
}

func TestVoterIdentityFallsBackToSession(t *testing.T) {
	r := newIdentityRouter()

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "garbage"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	first := w.Body.String()
	if len(first) != 64+len("|session") {
		t.Fatalf("unexpected identity %q", first)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	// 同一会话保持同一身份
	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "garbage"
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != first {
		t.Errorf("session identity changed: %s vs %s", w.Body.String(), first)
	}
}

func TestCronAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("tick-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.POST("/open", CronAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/guarded", CronAuth(string(hash)), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		path, auth string
		want       int
	}{
		{"/open", "", http.StatusOK},
		{"/guarded", "", http.StatusUnauthorized},
		{"/guarded", "Bearer wrong", http.StatusUnauthorized},
		{"/guarded", "Basic tick-secret", http.StatusUnauthorized},
		{"/guarded", "Bearer tick-secret", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", tt.path, nil)
		if tt.auth != "" {
			req.Header.Set("Authorization", tt.auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s with %q: got %d, want %d", tt.path, tt.auth, w.Code, tt.want)
		}
	}
}
