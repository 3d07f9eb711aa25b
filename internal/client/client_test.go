package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	return newTestClientWithConfig(t, config.APIConfig{UserAgent: "cropctl-test"}, handler, opts...)
}

func newTestClientWithConfig(t *testing.T, cfg config.APIConfig, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL + "/api/v1"
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c
}

func loggedIn(t *testing.T, token string) *session.Session {
	t.Helper()
	sess := session.New("default", session.NewMemoryStore())
	require.NoError(t, sess.SetToken(context.Background(), token))
	return sess
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://example.com", "http://[::1"} {
		_, err := New(config.APIConfig{BaseURL: raw})
		assert.Error(t, err, "base URL %q", raw)
	}
}

func TestPipeline_AttachesBearerToken(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/v1/users/me", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": 1, "name": "Gurpreet"})
	})

	user, err := c.Users.Profile(context.Background(), loggedIn(t, "tok-abc"))
	require.NoError(t, err)
	assert.Equal(t, "Gurpreet", user.Name)

	assert.Equal(t, "Bearer tok-abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "cropctl-test", got.Get("User-Agent"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestPipeline_NoTokenNoHeader(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, has := r.Header["Authorization"]
		assert.False(t, has, "unexpected Authorization header")
		seen = append(seen, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"crops": []any{}, "total": 0})
	})
	ctx := context.Background()

	_, err := c.Crops.List(ctx, session.New("default", session.NewMemoryStore()), domain.CropQuery{})
	require.NoError(t, err)

	_, err = c.Crops.List(ctx, nil, domain.CropQuery{})
	require.NoError(t, err)

	assert.Len(t, seen, 2)
}

func TestPipeline_UnauthorizedExpiresSession(t *testing.T) {
	var hookCalls int32
	var hookSess *session.Session
	c := newTestClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
		},
		OnSessionExpired(func(_ context.Context, sess *session.Session) {
			atomic.AddInt32(&hookCalls, 1)
			hookSess = sess
		}),
	)
	ctx := context.Background()
	sess := loggedIn(t, "stale")

	_, err := c.Notifications.List(ctx, sess, domain.NotificationQuery{})
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrSessionExpired))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Could not validate credentials", apiErr.Detail)
	assert.Equal(t, "/notifications", apiErr.Path)

	assert.False(t, sess.LoggedIn(ctx), "token should be cleared")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCalls))
	assert.Same(t, sess, hookSess)
}

func TestPipeline_UnauthorizedWithoutHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ctx := context.Background()
	sess := loggedIn(t, "stale")

	_, err := c.Soil.Tests(ctx, sess)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, sess.LoggedIn(ctx))
}

func TestPipeline_OtherErrorsKeepSession(t *testing.T) {
	statuses := []int{
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusUnprocessableEntity,
		http.StatusInternalServerError,
		http.StatusServiceUnavailable,
	}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var hookCalls int32
			c := newTestClient(t,
				func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, status, map[string]string{"detail": "nope"})
				},
				OnSessionExpired(func(context.Context, *session.Session) { atomic.AddInt32(&hookCalls, 1) }),
			)
			ctx := context.Background()
			sess := loggedIn(t, "keep-me")

			_, err := c.Community.Post(ctx, sess, 7)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrSessionExpired))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, status, apiErr.StatusCode)
			assert.Equal(t, "nope", apiErr.Detail)
			assert.Equal(t, status, StatusCode(err))

			token, err := sess.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "keep-me", token)
			assert.Zero(t, atomic.LoadInt32(&hookCalls))
		})
	}
}

func TestPipeline_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(config.APIConfig{BaseURL: base}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	sess := loggedIn(t, "tok")

	_, err = c.Weather.Current(context.Background(), sess, "Ludhiana")
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
	assert.True(t, sess.LoggedIn(context.Background()))
}

func TestPipeline_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxy error</html>"))
	})

	_, err := c.Soil.Types(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode GET /soil/types")
}

func TestQuery_OmitsZeroValuesAndEscapesPath(t *testing.T) {
	var gotPath, gotRaw string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotRaw = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	ctx := context.Background()

	_, err := c.Market.Prices(ctx, nil, domain.PriceQuery{CropName: "Wheat", State: "Punjab"})
	require.NoError(t, err)
	assert.Equal(t, "crop_name=Wheat&state=Punjab", gotRaw)

	_, err = c.Market.PriceHistory(ctx, nil, "basmati rice/1121", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/market/price-history/basmati%20rice%2F1121", gotPath)
	assert.Equal(t, "days=30", gotRaw)

	unread := false
	_, err = c.Notifications.List(ctx, nil, domain.NotificationQuery{Limit: 20, IsRead: &unread})
	require.NoError(t, err)
	assert.Equal(t, "is_read=false&limit=20", gotRaw)

	_, err = c.Weather.Forecast(ctx, nil, "Ludhiana", 3)
	require.NoError(t, err)
	assert.Equal(t, "days=3&location=Ludhiana", gotRaw)
}

func TestDays_DefaultsAreSent(t *testing.T) {
	var uris []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		uris = append(uris, r.RequestURI)
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	ctx := context.Background()

	_, err := c.Market.PriceHistory(ctx, nil, "wheat", 0, "")
	require.NoError(t, err)
	_, err = c.Weather.Forecast(ctx, nil, "Pune", 0)
	require.NoError(t, err)
	_, err = c.Market.PriceHistory(ctx, nil, "wheat", 14, "Khanna")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v1/market/price-history/wheat?days=30",
		"/api/v1/weather/forecast?days=7&location=Pune",
		"/api/v1/market/price-history/wheat?days=14&market_name=Khanna",
	}, uris)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)

func TestImage_CropTypeTravelsAsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/image/classify-crop-disease", r.URL.Path)
		assert.Equal(t, "wheat", r.URL.Query().Get("crop_type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Empty(t, r.MultipartForm.Value["crop_type"], "crop_type must not be a form field")
		assert.Empty(t, r.MultipartForm.Value)

		files := r.MultipartForm.File["image"]
		require.Len(t, files, 1)
		assert.Equal(t, "leaf.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, pngBytes, data)

		writeJSON(w, http.StatusOK, map[string]any{
			"disease_name":     "Wheat Rust",
			"confidence":       0.91,
			"severity":         "medium",
			"treatment_advice": "Spray propiconazole",
		})
	})

	res, err := c.Image.ClassifyDisease(context.Background(), loggedIn(t, "tok"),
		domain.ImageUpload{Filename: "leaf.png", Content: bytes.NewReader(pngBytes)}, "wheat")
	require.NoError(t, err)
	assert.Equal(t, "Wheat Rust", res.DiseaseName)
	assert.InDelta(t, 0.91, res.Confidence, 1e-9)
}

func TestImage_ClassifyCropHasNoQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{"crop_name": "Maize"})
	})

	res, err := c.Image.ClassifyCrop(context.Background(), nil,
		domain.ImageUpload{Filename: "field.png", Content: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.Equal(t, "Maize", res.CropName)
}

func TestUsers_AvatarUsesFileField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Len(t, r.MultipartForm.File["file"], 1)
		assert.Empty(t, r.MultipartForm.File["image"])
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok", "avatar_url": "/static/avatars/1.png"})
	})

	res, err := c.Users.UploadAvatar(context.Background(), loggedIn(t, "tok"),
		domain.ImageUpload{Content: bytes.NewReader(pngBytes)})
	require.NoError(t, err)
	assert.Equal(t, "/static/avatars/1.png", res.AvatarURL)
}

func TestUpload_NilContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})
	_, err := c.Image.ClassifyPest(context.Background(), nil, domain.ImageUpload{Filename: "x.jpg"}, "")
	assert.Error(t, err)
}

func TestAuth_VerifyOTPStoresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body domain.OTPVerification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "9876543210", body.PhoneNumber)
		assert.Equal(t, "123456", body.OTP)
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "fresh",
			"token_type":   "bearer",
			"user":         map[string]any{"id": 3, "phone_number": "9876543210"},
		})
	})
	ctx := context.Background()
	sess := session.New("default", session.NewMemoryStore())

	resp, err := c.Auth.VerifyOTP(ctx, sess, domain.OTPVerification{PhoneNumber: "9876543210", OTP: "123456"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.User.ID)

	token, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestAuth_VerifyWithoutSessionKeepsResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "fresh",
			"token_type":   "bearer",
			"user":         map[string]any{"id": 3, "phone_number": "9876543210"},
		})
	})

	resp, err := c.Auth.VerifyOTP(context.Background(), nil, domain.OTPVerification{PhoneNumber: "9876543210", OTP: "123456"})
	require.ErrorIs(t, err, ErrTokenNotStored)
	require.NotNil(t, resp)
	assert.Equal(t, "fresh", resp.AccessToken)
	assert.Equal(t, int64(3), resp.User.ID)

	tok, err := c.Auth.RefreshToken(context.Background(), session.New("default", failingStore{}))
	require.ErrorIs(t, err, ErrTokenNotStored)
	require.NotNil(t, tok)
	assert.Equal(t, "fresh", tok.AccessToken)
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) (string, error) { return "old", nil }
func (failingStore) Save(context.Context, string, string) error { return errors.New("read-only") }
func (failingStore) Delete(context.Context, string) error { return nil }

func TestAuth_FailedVerifyLeavesNoToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid or expired OTP"})
	})
	ctx := context.Background()
	sess := loggedIn(t, "previous")

	_, err := c.Auth.VerifyOTP(ctx, sess, domain.OTPVerification{PhoneNumber: "9876543210", OTP: "000000"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.False(t, sess.LoggedIn(ctx))
}

func TestAuth_EmptyTokenIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token_type": "bearer"})
	})
	ctx := context.Background()
	sess := loggedIn(t, "previous")

	_, err := c.Auth.RefreshToken(ctx, sess)
	require.Error(t, err)
	assert.False(t, sess.LoggedIn(ctx))
}

func TestAuth_RefreshReplacesToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer old", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "new", "token_type": "bearer"})
	})
	ctx := context.Background()
	sess := loggedIn(t, "old")

	_, err := c.Auth.RefreshToken(ctx, sess)
	require.NoError(t, err)
	token, _ := sess.Token(ctx)
	assert.Equal(t, "new", token)
}

func TestAuth_LogoutClearsEvenOnServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "boom"})
	})
	ctx := context.Background()
	sess := loggedIn(t, "tok")

	_, err := c.Auth.Logout(ctx, sess)
	require.Error(t, err)
	assert.False(t, sess.LoggedIn(ctx))
}

func TestAuth_LogoutClearsOnSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	})
	ctx := context.Background()
	sess := loggedIn(t, "tok")

	resp, err := c.Auth.Logout(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully", resp.Message)
	assert.False(t, sess.LoggedIn(ctx))
}

func TestChat_HistoryUnwrapsAdvisories(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=5", r.URL.RawQuery)
		w.Write([]byte(`{"advisories":[{"id":1,"title":"Irrigation","content":"Water at dawn","type":"chat","created_at":"2024-05-01T06:30:00","is_read":false}],"total":1}`))
	})

	entries, err := c.Chat.History(context.Background(), loggedIn(t, "tok"), 5, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Irrigation", entries[0].Title)
	assert.Equal(t, 2024, entries[0].CreatedAt.Year())
}

func TestMarket_DecimalPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"prices":[{"id":1,"crop_name":"Wheat","market_name":"Khanna","state":"Punjab","district":"Ludhiana","min_price":2100.5,"max_price":2275,"modal_price":2200.25,"price_date":"2024-04-10"}],"total":1}`))
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"crop_name":"Wheat","target_price":2300.75,"alert_type":"above"}`, string(body))
			w.Write(body)
		}
	})
	ctx := context.Background()

	list, err := c.Market.Prices(ctx, nil, domain.PriceQuery{})
	require.NoError(t, err)
	require.Len(t, list.Prices, 1)
	assert.Equal(t, "2200.25", list.Prices[0].ModalPrice.String())
	assert.Equal(t, "2100.5", list.Prices[0].MinPrice.String())

	target, err := domain.NewPrice("2300.75")
	require.NoError(t, err)
	resp, err := c.Market.SetPriceAlert(ctx, loggedIn(t, "tok"), domain.PriceAlert{
		CropName: "Wheat", TargetPrice: target, AlertType: domain.AlertAbove,
	})
	require.NoError(t, err)
	assert.True(t, resp.TargetPrice.Equal(target.Decimal))
}

func TestRetry_GetRetriesGatewayErrors(t *testing.T) {
	var calls int32
	cfg := config.APIConfig{Retry: config.RetryConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}}
	c := newTestClientWithConfig(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"soil_types": []any{}})
	})

	_, err := c.Soil.Types(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetry_ExhaustedReturnsLastStatus(t *testing.T) {
	var calls int32
	cfg := config.APIConfig{Retry: config.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond}}
	c := newTestClientWithConfig(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusBadGateway, map[string]string{"detail": "upstream down"})
	})

	_, err := c.Soil.Types(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRetry_PostIsSentOnce(t *testing.T) {
	var calls int32
	cfg := config.APIConfig{Retry: config.RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond}}
	c := newTestClientWithConfig(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Chat.Send(context.Background(), loggedIn(t, "tok"), domain.ChatMessage{Content: "hello", Language: "en"})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetry_NeverRetriesUnauthorized(t *testing.T) {
	var calls int32
	cfg := config.APIConfig{Retry: config.RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond}}
	c := newTestClientWithConfig(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Users.Profile(context.Background(), loggedIn(t, "tok"))
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetry_DisabledByDefault(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Crops.Details(context.Background(), nil, 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTimeout(t *testing.T) {
	cfg := config.APIConfig{Timeout: 20 * time.Millisecond}
	c := newTestClientWithConfig(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})

	_, err := c.Shops.SearchProducts(context.Background(), nil, "urea")
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
}

func TestRateLimit_HonoursContext(t *testing.T) {
	var calls int32
	cfg := config.APIConfig{RateLimit: config.RateLimitConfig{RequestsPerSecond: 0.01, Burst: 1}}
	c := newTestClientWithConfig(t, cfg, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, map[string]any{"shops": []any{}, "total": 0})
	})

	_, err := c.Shops.List(context.Background(), nil, domain.ShopQuery{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Shops.List(ctx, nil, domain.ShopQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRequestIDsAreUnique(t *testing.T) {
	ids := make(map[string]bool)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids[r.Header.Get("X-Request-ID")] = true
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	for i := 0; i < 3; i++ {
		_, err := c.Weather.Alerts(context.Background(), nil, "Patiala")
		require.NoError(t, err)
	}
	assert.Len(t, ids, 3)
}

func TestResponseTooLarge(t *testing.T) {
	prev := maxResponseBody
	maxResponseBody = 64
	defer func() { maxResponseBody = prev }()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/soil/types":
			w.Write([]byte(`{"soil_types":[],"total":0,"pad":"` + strings.Repeat("x", 64) + `"}`))
		default:
			w.Write(bytes.Repeat([]byte(" "), 64))
		}
	})
	ctx := context.Background()

	_, err := c.Soil.Types(ctx, nil)
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Contains(t, err.Error(), "GET /soil/types")

	// exactly at the limit is accepted
	_, err = c.Soil.Tests(ctx, nil)
	assert.NoError(t, err)
}

func TestParseDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"detail":"User not found"}`, "User not found"},
		{"validation list", `{"detail":[{"loc":["body","otp"],"msg":"field required","type":"value_error.missing"}]}`, "body.otp: field required"},
		{"no detail", `{"error":"x"}`, ""},
		{"not json", `Bad Gateway`, ""},
		{"object detail", `{"detail":{"code":7}}`, `{"code":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDetail([]byte(tt.body)))
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{Method: "GET", Path: "/crops/9", StatusCode: 404}
	assert.Equal(t, "GET /crops/9: 404 Not Found", err.Error())
	assert.True(t, IsNotFound(err))

	expired := &SessionExpiredError{Err: &APIError{Method: "GET", Path: "/users/me", StatusCode: 401, Detail: "Token expired"}}
	assert.True(t, strings.HasPrefix(expired.Error(), "session expired: "))
	assert.ErrorIs(t, expired, ErrSessionExpired)
}
