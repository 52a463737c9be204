package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/pkg/token"
	"lms-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLookup struct {
	status entity.UserStatus
	err    error
	calls  atomic.Int32
}

func (s *stubLookup) GetAccountStatus(_ context.Context, _ string) (entity.UserStatus, error) {
	s.calls.Add(1)
	return s.status, s.err
}

func newCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec("test-secret")
	require.NoError(t, err)
	return codec
}

func signFor(t *testing.T, codec *token.Codec, role string) string {
	t.Helper()
	signed, _, err := codec.Sign(token.Identity{
		ID:    "6f1c1b3e-2f7a-4b8a-9d43-0f5c1a2b3c4d",
		Email: "dev@x.com",
		Name:  "Dev",
		Role:  role,
	}, time.Hour)
	require.NoError(t, err)
	return signed
}

// okHandler echoes the identity role it finds in context.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.ResponseSuccess(w, "anonymous", nil)
		return
	}
	utils.ResponseSuccess(w, "ok", map[string]string{"role": identity.Role})
})

func serve(h http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthenticate_NoToken(t *testing.T) {
	lookup := &stubLookup{status: entity.UserStatusActive}
	h := Authenticate(newCodec(t), lookup, zap.NewNop())(okHandler)

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		rec := serve(h, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, "No token provided", decode(t, rec).Message)
	}
	assert.Zero(t, lookup.calls.Load(), "store must not be consulted without a token")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	codec := newCodec(t)
	other, err := token.NewCodec("other-secret")
	require.NoError(t, err)
	lookup := &stubLookup{}
	h := Authenticate(codec, lookup, zap.NewNop())(okHandler)

	for _, raw := range []string{"garbage", signFor(t, other, "developer")} {
		rec := serve(h, "Bearer "+raw)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid token", decode(t, rec).Message)
	}
	assert.Zero(t, lookup.calls.Load())
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	now := time.Now()
	issuedLongAgo, err := token.NewCodec("test-secret", token.WithClock(func() time.Time { return now.Add(-48 * time.Hour) }))
	require.NoError(t, err)
	raw, _, err := issuedLongAgo.Sign(token.Identity{ID: "u1", Role: "developer"}, 24*time.Hour)
	require.NoError(t, err)

	h := Authenticate(newCodec(t), nil, zap.NewNop())(okHandler)
	rec := serve(h, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_StatusDecisions(t *testing.T) {
	codec := newCodec(t)

	tests := []struct {
		name     string
		role     string
		lookup   *stubLookup
		nilStore bool
		want     int
		message  string
		calls    int32
	}{
		{name: "active user", role: "developer", lookup: &stubLookup{status: entity.UserStatusActive}, want: http.StatusOK, message: "ok", calls: 1},
		{name: "blocked user", role: "developer", lookup: &stubLookup{status: entity.UserStatusBlocked}, want: http.StatusForbidden, message: "Your account has been blocked. Please contact an administrator.", calls: 1},
		{name: "lookup error fails open", role: "developer", lookup: &stubLookup{err: errors.New("db down")}, want: http.StatusOK, message: "ok", calls: 1},
		{name: "unknown user fails open", role: "developer", lookup: &stubLookup{}, want: http.StatusOK, message: "ok", calls: 1},
		{name: "no lookup configured", role: "developer", nilStore: true, want: http.StatusOK, message: "ok"},
		{name: "blocked admin bypasses", role: token.RoleAdmin, lookup: &stubLookup{status: entity.UserStatusBlocked}, want: http.StatusOK, message: "ok", calls: 0},
		{name: "admin with failing lookup", role: token.RoleAdmin, lookup: &stubLookup{err: errors.New("db down")}, want: http.StatusOK, message: "ok", calls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lookup StatusLookup
			if !tt.nilStore {
				lookup = tt.lookup
			}
			h := Authenticate(codec, lookup, zap.NewNop())(okHandler)

			rec := serve(h, "Bearer "+signFor(t, codec, tt.role))

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec).Message)
			if tt.lookup != nil {
				assert.Equal(t, tt.calls, tt.lookup.calls.Load())
			}
		})
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	codec := newCodec(t)
	h := Authenticate(codec, nil, zap.NewNop())(okHandler)

	rec := serve(h, "bearer "+signFor(t, codec, "developer"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	codec := newCodec(t)
	h := OptionalAuth(codec)(okHandler)

	assert.Equal(t, "anonymous", decode(t, serve(h, "")).Message)
	assert.Equal(t, "anonymous", decode(t, serve(h, "Bearer garbage")).Message)
	assert.Equal(t, "ok", decode(t, serve(h, "Bearer "+signFor(t, codec, "developer"))).Message)
}

func TestRequireRole(t *testing.T) {
	codec := newCodec(t)
	chain := func(roles ...string) http.Handler {
		return Authenticate(codec, nil, zap.NewNop())(RequireRole(roles...)(okHandler))
	}

	rec := serve(chain(token.RoleAdmin), "Bearer "+signFor(t, codec, "developer"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(chain(token.RoleAdmin, "developer"), "Bearer "+signFor(t, codec, "developer"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(Admin()(okHandler), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "RequireRole without an identity")
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(2, time.Minute)(okHandler)

	for i := range 2 {
		rec := serve(h, "")
		require.Equalf(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := serve(h, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, decode(t, rec).Status)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
