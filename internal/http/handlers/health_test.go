package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		db     Pinger
		status int
	}{
		{"no db", nil, http.StatusOK},
		{"db up", fakePinger{}, http.StatusOK},
		{"db down", fakePinger{err: errors.New("refused")}, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		r := gin.New()
		r.GET("/healthcheck", NewHealthHandler(tc.db).HealthCheck)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		if w.Code != tc.status {
			t.Fatalf("%s: status %d want %d", tc.name, w.Code, tc.status)
		}
	}
}
