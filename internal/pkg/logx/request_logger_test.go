package logx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnonymizeIP(t *testing.T) {
	cases := map[string]string{
		"203.0.113.42:51234":    "203.0.113.0",
		"203.0.113.42":          "203.0.113.0",
		"127.0.0.1:8080":        "127.0.0.1",
		"[2001:db8:1:2::5]:443": "2001:db8:1:2::",
		"not-an-ip":             "unknown_ip",
	}

	for in, want := range cases {
		require.Equal(t, want, anonymizeIP(in), in)
	}
}

func TestRequestLogger_InjectsContextLogger(t *testing.T) {
	var sawLogger bool
	h := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = Ctx(r.Context()) != Logger()
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.True(t, sawLogger)
}
