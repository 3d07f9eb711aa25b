package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Rrens/crop-advisory/internal/api"
	"github.com/Rrens/crop-advisory/internal/client"
	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOTP = "654321"

type harness struct {
	t   *testing.T
	cfg *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srvCfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "cli-test-secret-32-characters!!!", AccessTokenTTL: time.Hour},
		OTP:  config.OTPConfig{TTL: 5 * time.Minute, MaxAttempts: 3, Static: testOTP},
	}
	srv := httptest.NewServer(api.NewRouter(srvCfg, api.Deps{}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API: config.APIConfig{BaseURL: srv.URL + "/api/v1"},
		Session: config.SessionConfig{
			Store:   "file",
			Profile: "default",
			Path:    filepath.Join(t.TempDir(), "session.json"),
		},
	}
	return &harness{t: t, cfg: cfg}
}

type result struct {
	err    error
	code   int
	stdout string
	stderr string
}

// run executes one cropctl invocation against a fresh App, as a new
// process would
func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	app, err := NewApp(context.Background(), h.cfg, strings.NewReader(stdin), &out, &errOut, client.WithLogger(zerolog.Nop()))
	require.NoError(h.t, err)
	defer app.Close()

	err = app.Run(context.Background(), args)
	code := Report(&errOut, err)
	return result{err: err, code: code, stdout: out.String(), stderr: errOut.String()}
}

func (h *harness) login(phone string) {
	h.t.Helper()
	require.Equal(h.t, ExitOK, h.run("", "auth", "send-otp", "--phone", phone).code)
	res := h.run("", "auth", "verify", "--phone", phone, "--otp", testOTP, "--name", "Asha Devi", "--state", "Bihar")
	require.Equal(h.t, ExitOK, res.code, res.stderr)
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestLogin_PersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t)
	h.login("9123456780")

	res := h.run("", "auth", "whoami")
	require.Equal(t, ExitOK, res.code, res.stderr)
	user := decodeJSON[domain.User](t, res.stdout)
	assert.Equal(t, "9123456780", user.PhoneNumber)
	assert.Equal(t, "Asha Devi", user.Name)

	status := decodeJSON[sessionInfo](t, h.run("", "session", "status").stdout)
	assert.True(t, status.LoggedIn)
	assert.Equal(t, "file", status.Store)
	assert.False(t, status.Encrypted)
}

func TestVerify_PromptsForOTP(t *testing.T) {
	prev := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = prev }()

	h := newHarness(t)
	require.Equal(t, ExitOK, h.run("", "auth", "send-otp", "--phone", "9123456780").code)

	res := h.run(testOTP+"\n", "auth", "verify", "--phone", "9123456780")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "OTP: ")
}

func TestExpiredSession_ExitsThreeAndClearsToken(t *testing.T) {
	h := newHarness(t)
	store := session.NewFileStore(h.cfg.Session.Path)
	require.NoError(t, store.Save(context.Background(), "default", "not-a-valid-jwt"))

	res := h.run("", "profile", "show")
	assert.Equal(t, ExitExpired, res.code)
	assert.True(t, errors.Is(res.err, client.ErrSessionExpired))
	assert.Contains(t, res.stderr, ExpiredMessage)

	_, err := store.Load(context.Background(), "default")
	assert.ErrorIs(t, err, session.ErrNoToken)
}

func TestLogout_ThenCommandsExpire(t *testing.T) {
	h := newHarness(t)
	h.login("9123456780")

	require.Equal(t, ExitOK, h.run("", "auth", "logout").code)
	assert.Equal(t, ExitExpired, h.run("", "weather", "current", "Patna").code)
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"tractor"}},
		{"missing subcommand", []string{"market"}},
		{"unknown subcommand", []string{"market", "sell"}},
		{"missing required flag", []string{"auth", "send-otp"}},
		{"unknown flag", []string{"crops", "list", "--colour", "green"}},
		{"bad id", []string{"community", "show", "abc"}},
		{"read and unread", []string{"notifications", "list", "--read", "--unread"}},
		{"forecast days", []string{"weather", "forecast", "Patna", "--days", "9"}},
		{"bad target price", []string{"market", "alert", "--crop", "Wheat", "--target", "lots", "--type", "above"}},
		{"watch kind", []string{"image", "watch", t.TempDir(), "--kind", "watch"}},
		{"empty update", []string{"profile", "update"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.run("", tt.args...)
			assert.Equal(t, ExitUsage, res.code, res.stderr)
			assert.Contains(t, res.stderr, "error:")
		})
	}
}

func TestUsageErrors_NameTheCommand(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "auth", "send-otp")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "error: auth send-otp: missing --phone")

	res = h.run("", "market", "alert", "--crop", "Wheat")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "error: market alert: missing --target, --type")
}

func TestHelp_ExitsZero(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "help")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stderr, "market history CROP")
}

func TestAPIError_ReportsStatusAndDetail(t *testing.T) {
	h := newHarness(t)
	h.login("9123456780")

	res := h.run("", "crops", "show", "999")
	assert.Equal(t, ExitError, res.code)
	assert.Contains(t, res.stderr, "error: 404 Crop not found")
	assert.True(t, client.IsNotFound(res.err))
}

func TestCommands_EndToEnd(t *testing.T) {
	h := newHarness(t)
	h.login("9123456780")

	prices := decodeJSON[domain.PriceList](t, h.run("", "market", "prices", "--state", "Punjab").stdout)
	assert.NotEmpty(t, prices.Prices)

	res := h.run("", "market", "alert", "--crop", "Wheat", "--target", "2400.50", "--type", "above")
	require.Equal(t, ExitOK, res.code, res.stderr)
	alert := decodeJSON[domain.PriceAlertResponse](t, res.stdout)
	assert.Equal(t, "2400.5", alert.TargetPrice.String())
	assert.Nil(t, alert.MarketName)

	res = h.run("", "community", "post", "--title", "Yellow leaves", "--content", "Wheat leaves turning yellow")
	require.Equal(t, ExitOK, res.code, res.stderr)
	created := decodeJSON[domain.CreatePostResponse](t, res.stdout)

	postID := strconv.FormatInt(created.PostID, 10)
	require.Equal(t, ExitOK, h.run("", "community", "comment", postID, "Try", "urea").code)
	detail := decodeJSON[domain.PostDetail](t, h.run("", "community", "show", postID).stdout)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Try urea", detail.Comments[0].Content)

	res = h.run("", "profile", "update", "--district", "Gaya", "--language", "en")
	require.Equal(t, ExitOK, res.code, res.stderr)
	user := decodeJSON[domain.User](t, res.stdout)
	assert.Equal(t, "Gaya", user.District)
	assert.Equal(t, "en", user.PreferredLanguage)
	assert.Equal(t, "Bihar", user.State)

	res = h.run("", "notifications", "prefs", "weather_alerts=false", "price_alerts=true")
	require.Equal(t, ExitOK, res.code, res.stderr)
	prefs := decodeJSON[domain.PreferencesResponse](t, res.stdout)
	assert.Equal(t, false, prefs.Preferences["weather_alerts"])

	forecast := decodeJSON[domain.WeatherForecast](t, h.run("", "weather", "forecast", "--days", "1", "Patna").stdout)
	assert.Equal(t, 1, forecast.Days)

	soil := decodeJSON[domain.SoilTypeList](t, h.run("", "soil", "types").stdout)
	assert.NotEmpty(t, soil.SoilTypes)

	res = h.run("", "soil", "add-test", "--ph", "6.8", "--lab", "KVK Gaya")
	require.Equal(t, ExitOK, res.code, res.stderr)
	tests := decodeJSON[domain.SoilTestList](t, h.run("", "soil", "tests").stdout)
	require.Len(t, tests.SoilTests, 1)
	require.NotNil(t, tests.SoilTests[0].PHLevel)
	assert.Equal(t, 6.8, *tests.SoilTests[0].PHLevel)
	assert.Nil(t, tests.SoilTests[0].NitrogenContent)

	shops := decodeJSON[domain.ProductSearch](t, h.run("", "shops", "search", "urea").stdout)
	assert.Equal(t, "urea", shops.Query)
}

func TestChatREPL_PicksSuggestion(t *testing.T) {
	h := newHarness(t)
	h.login("9123456780")

	res := h.run("how do I irrigate wheat\n1\nexit\n", "chat", "repl", "--language", "en")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, 2, strings.Count(res.stdout, "bot> "))
	assert.Contains(t, res.stdout, "[1] ")

	history := decodeJSON[[]domain.ChatHistoryEntry](t, h.run("", "chat", "history").stdout)
	assert.Len(t, history, 2)
}

func TestPickSuggestion(t *testing.T) {
	suggestions := []string{"When to sow?", "Which fertilizer?"}
	assert.Equal(t, "Which fertilizer?", pickSuggestion("2", suggestions))
	assert.Equal(t, "3", pickSuggestion("3", suggestions))
	assert.Equal(t, "0", pickSuggestion("0", suggestions))
	assert.Equal(t, "rain", pickSuggestion("rain", suggestions))
}

func TestParsePreferences(t *testing.T) {
	prefs, err := parsePreferences([]string{"market=true", "weather=0"})
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationPreferences{"market": true, "weather": false}, prefs)

	for _, bad := range [][]string{nil, {"market"}, {"=true"}, {"market=maybe"}} {
		_, err := parsePreferences(bad)
		var usageErr *UsageError
		assert.True(t, errors.As(err, &usageErr), "%v", bad)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown kind", func(t *testing.T) {
		_, err := OpenStore(ctx, &config.Config{Session: config.SessionConfig{Store: "etcd"}})
		assert.ErrorContains(t, err, "unknown session store")
	})

	t.Run("memory cannot purge", func(t *testing.T) {
		s, err := OpenStore(ctx, &config.Config{Session: config.SessionConfig{Store: "memory"}})
		require.NoError(t, err)
		defer s.Close()
		_, err = s.Purge(ctx)
		assert.Error(t, err)
	})

	t.Run("sqlite purges expired", func(t *testing.T) {
		cfg := &config.Config{
			Session: config.SessionConfig{Store: "sqlite", TTL: time.Nanosecond},
			SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "sessions.db")},
		}
		s, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, "sqlite", s.Kind())

		require.NoError(t, s.Save(ctx, "default", "token"))
		time.Sleep(2 * time.Millisecond)
		n, err := s.Purge(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("encrypted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		cfg := &config.Config{Session: config.SessionConfig{Store: "file", Path: path, EncryptionKey: "correct horse battery staple"}}
		s, err := OpenStore(ctx, cfg)
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, "default", "plain-token"))

		raw, err := session.NewFileStore(path).Load(ctx, "default")
		require.NoError(t, err)
		assert.NotEqual(t, "plain-token", raw)

		token, err := s.Load(ctx, "default")
		require.NoError(t, err)
		assert.Equal(t, "plain-token", token)
	})
}

func TestSessionKeygen(t *testing.T) {
	h := newHarness(t)
	res := h.run("", "session", "keygen")
	require.Equal(t, ExitOK, res.code)
	assert.NotEmpty(t, strings.TrimSpace(res.stdout))
}
