package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/domain/result"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 200 {
		t.Fatalf("code=%d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) { _ = c.Error(assertErr{}) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
		{name: "disabled", reqs: 5, lim: 0, expect: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RateLimiter(tc.lim, time.Minute))
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last *httptest.ResponseRecorder
			for i := 0; i < tc.reqs; i++ {
				last = httptest.NewRecorder()
				r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
			}
			if last.Code != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last.Code)
			}
			if tc.expect == http.StatusTooManyRequests && last.Header().Get("Retry-After") == "" {
				t.Fatalf("missing Retry-After")
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := &rateLimiter{clients: make(map[string]*client), limit: 1, window: time.Second}
	now := time.Now()

	if _, ok := rl.allow("10.0.0.1", now); !ok {
		t.Fatalf("first request rejected")
	}
	wait, ok := rl.allow("10.0.0.1", now.Add(200*time.Millisecond))
	if ok || wait != 800*time.Millisecond {
		t.Fatalf("second request: ok=%v wait=%s", ok, wait)
	}
	if _, ok := rl.allow("10.0.0.2", now.Add(200*time.Millisecond)); !ok {
		t.Fatalf("other client throttled")
	}
	if _, ok := rl.allow("10.0.0.1", now.Add(1500*time.Millisecond)); !ok {
		t.Fatalf("request after window rejected")
	}
	if len(rl.clients) != 1 {
		t.Fatalf("stale clients not swept: %d", len(rl.clients))
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "1",
		300 * time.Millisecond:  "1",
		time.Second:             "1",
		1500 * time.Millisecond: "2",
		42 * time.Second:        "42",
	}
	for d, want := range cases {
		if got := formatSeconds(d); got != want {
			t.Fatalf("formatSeconds(%s) = %s, want %s", d, got, want)
		}
	}
}

func TestErrorHandler_ResultError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(result.NewNotFoundError("portfolio not found"))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("code=%d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "portfolio not found" {
		t.Fatalf("message=%q", body.Message)
	}
}

func TestErrorHandler_AlreadyWritten(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusAccepted, "done")
		_ = c.Error(assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusAccepted || w.Body.String() != "done" {
		t.Fatalf("response rewritten: %d %q", w.Code, w.Body.String())
	}
}

type observation struct {
	method, route string
	status        int
}

type fakeObserver struct{ seen []observation }

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/portfolios/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/portfolios/a", "/portfolios/b", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	want := []observation{
		{http.MethodGet, "/portfolios/:id", http.StatusNoContent},
		{http.MethodGet, "/portfolios/:id", http.StatusNoContent},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}
	if len(obs.seen) != len(want) {
		t.Fatalf("observations = %+v", obs.seen)
	}
	for i := range want {
		if obs.seen[i] != want[i] {
			t.Fatalf("observation %d = %+v, want %+v", i, obs.seen[i], want[i])
		}
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
}
