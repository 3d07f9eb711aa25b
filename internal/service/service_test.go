package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/Rrens/crop-advisory/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAdvisoryService_ChatStoresAdvisory(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewAdvisoryService(store)

	tests := []struct {
		question string
		lang     string
		kind     string
	}{
		{"When should I irrigate my wheat?", "en", "irrigation"},
		{"पत्तियों पर कीट लगे हैं", "hi", "pest_control"},
		{"Which fertilizer after sowing?", "en", "fertilizer"},
		{"ਸਤ ਸ੍ਰੀ ਅਕਾਲ", "pa", "greeting"},
		{"tell me something", "en", "general"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			resp, err := svc.Chat(ctx, 1, domain.ChatMessage{Content: tt.question, Language: tt.lang})
			require.NoError(t, err)
			assert.Equal(t, tt.kind, resp.AdvisoryType)
			assert.Equal(t, tt.lang, resp.Language)
			assert.NotEmpty(t, resp.Message)
			assert.NotNil(t, resp.Suggestions)
			assert.False(t, resp.Timestamp.IsZero())
		})
	}

	history, err := svc.History(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, history.Advisories, 2)
	assert.Equal(t, "general", history.Advisories[0].Type)
	assert.Equal(t, 2, history.Total)
}

func TestAdvisoryService_VoiceDefaultsToHindi(t *testing.T) {
	svc := NewAdvisoryService(memory.New())

	resp, err := svc.Voice(context.Background(), 1, domain.VoiceMessage{TranscribedText: "बारिश कब होगी"})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Language)
	assert.Equal(t, "weather", resp.AdvisoryType)
}

func TestImageService(t *testing.T) {
	svc := NewImageService()
	green := solidPNG(t, color.RGBA{R: 40, G: 160, B: 40, A: 255})
	brown := solidPNG(t, color.RGBA{R: 160, G: 60, B: 40, A: 255})

	t.Run("crop type from query wins", func(t *testing.T) {
		res, err := svc.ClassifyDisease(green, "Wheat")
		require.NoError(t, err)
		assert.Equal(t, "wheat", *res.CropType)
		assert.Equal(t, "Powdery mildew", res.DiseaseName)
	})

	t.Run("crop type detected from colour", func(t *testing.T) {
		res, err := svc.ClassifyDisease(brown, "")
		require.NoError(t, err)
		assert.Equal(t, "tomato", *res.CropType)
		assert.Equal(t, "Early blight", res.DiseaseName)
	})

	t.Run("pest", func(t *testing.T) {
		res, err := svc.ClassifyPest(green, "")
		require.NoError(t, err)
		assert.Equal(t, "Brown plant hopper", res.PestName)
	})

	t.Run("crop", func(t *testing.T) {
		res, err := svc.ClassifyCrop(green)
		require.NoError(t, err)
		assert.Equal(t, "Rice", res.CropName)
		assert.Equal(t, "healthy", res.HealthStatus)
	})

	t.Run("plant health", func(t *testing.T) {
		res, err := svc.AnalyzePlantHealth(brown, "cotton")
		require.NoError(t, err)
		assert.Equal(t, "poor", res.HealthStatus)
		assert.Len(t, res.IssuesDetected, 2)

		res, err = svc.AnalyzePlantHealth(green, "")
		require.NoError(t, err)
		assert.Equal(t, "healthy", res.HealthStatus)
		assert.Empty(t, res.IssuesDetected)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := svc.ClassifyCrop([]byte("%PDF-1.4"))
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})
}

func TestWeatherService(t *testing.T) {
	svc := NewWeatherService()
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	t.Run("deterministic per location", func(t *testing.T) {
		a := svc.Current("Ludhiana")
		b := svc.Current("ludhiana ")
		assert.Equal(t, a.Weather.Temperature, b.Weather.Temperature)
		assert.Equal(t, "Ludhiana", a.Location)
		assert.InDelta(t, 30, a.Weather.Temperature, 20)
		assert.GreaterOrEqual(t, a.Weather.Humidity, 10.0)
		assert.LessOrEqual(t, a.Weather.Humidity, 100.0)
	})

	t.Run("forecast defaults to seven days of 3-hour slots", func(t *testing.T) {
		fc := svc.Forecast("Karnal", 0)
		assert.Equal(t, 7, fc.Days)
		assert.Len(t, fc.Forecast.Forecast, 7*8)
		assert.Equal(t, "2024-06-15 12:00:00", fc.Forecast.Forecast[0].Datetime)
	})

	t.Run("forecast is capped", func(t *testing.T) {
		assert.Equal(t, 16, svc.Forecast("Karnal", 40).Days)
	})

	t.Run("alerts never nil", func(t *testing.T) {
		alerts := svc.Alerts("Karnal")
		assert.NotNil(t, alerts.Alerts)
	})
}

func TestMarketService(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewMarketService(store, store, store)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

	t.Run("prices", func(t *testing.T) {
		list, err := svc.Prices(ctx, domain.PriceQuery{State: "Punjab"})
		require.NoError(t, err)
		assert.Equal(t, 4, list.Total)
	})

	t.Run("history ends on today's quote", func(t *testing.T) {
		h, err := svc.PriceHistory(ctx, "wheat", 10, "")
		require.NoError(t, err)
		require.Len(t, h.PriceHistory, 10)
		assert.Equal(t, "Wheat", h.CropName)
		assert.Nil(t, h.MarketName)

		last := h.PriceHistory[9]
		assert.Equal(t, "2024-03-01", last.Date)
		assert.Equal(t, "2302.5", last.ModalPrice.String(), "average of the two wheat mandis")
		assert.Equal(t, "2024-02-21", h.PriceHistory[0].Date)
	})

	t.Run("history for a single market", func(t *testing.T) {
		h, err := svc.PriceHistory(ctx, "Wheat", 0, "Khanna")
		require.NoError(t, err)
		assert.Equal(t, 30, h.Days)
		require.NotNil(t, h.MarketName)
		assert.Equal(t, "2310", h.PriceHistory[29].ModalPrice.String())
	})

	t.Run("history for unknown crop", func(t *testing.T) {
		_, err := svc.PriceHistory(ctx, "saffron", 0, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("price alert creates a notification", func(t *testing.T) {
		resp, err := svc.SetPriceAlert(ctx, 5, domain.PriceAlert{
			CropName:    "Wheat",
			TargetPrice: domain.PriceFromFloat(2400.5),
			AlertType:   domain.AlertAbove,
		})
		require.NoError(t, err)
		assert.Equal(t, "2400.5", resp.TargetPrice.String())

		alerts, err := store.ListPriceAlerts(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, alerts, 1)

		notes, total, err := store.ListNotifications(ctx, 5, domain.NotificationQuery{NotificationType: "price_alert"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Contains(t, notes[0].Message, "2400.50")
	})

	t.Run("price alert needs a positive target", func(t *testing.T) {
		_, err := svc.SetPriceAlert(ctx, 5, domain.PriceAlert{CropName: "Wheat", AlertType: domain.AlertBelow})
		assert.ErrorIs(t, err, ErrInvalidTargetPrice)
	})
}

func TestCropService_Recommend(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	weather := NewWeatherService()
	weather.now = func() time.Time { return time.Date(2024, 11, 10, 12, 0, 0, 0, time.UTC) }
	svc := NewCropService(store, weather)

	recs, err := svc.Recommend(ctx, domain.RecommendationRequest{
		Location: "Ludhiana",
		Season:   "rabi",
		SoilType: "Alluvial",
		FarmSize: 2.5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, recs.Recommendations)
	assert.LessOrEqual(t, len(recs.Recommendations), 5)

	for i, r := range recs.Recommendations {
		assert.Greater(t, r.SuitabilityScore, 0.5)
		assert.Equal(t, "rabi", r.Season)
		if i > 0 {
			assert.LessOrEqual(t, r.SuitabilityScore, recs.Recommendations[i-1].SuitabilityScore)
		}
	}

	var wheat *domain.CropRecommendation
	for i := range recs.Recommendations {
		if recs.Recommendations[i].CropName == "Wheat" {
			wheat = &recs.Recommendations[i]
		}
	}
	require.NotNil(t, wheat, "wheat suits rabi on alluvial soil")
	assert.Equal(t, 45.0, wheat.ExpectedYield)
	assert.Equal(t, "2260", wheat.MarketPrice.Min.String())
	assert.Equal(t, "2350", wheat.MarketPrice.Max.String())
	assert.Contains(t, wheat.Reason, "right season")
}

func TestSoilAndShopServices(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	soil := NewSoilService(store, store)
	shops := NewShopService(store)

	types, err := soil.Types(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, types.SoilTypes)

	ph := 7.0
	added, err := soil.AddTest(ctx, 3, domain.SoilTestInput{PHLevel: &ph})
	require.NoError(t, err)
	tests, err := soil.Tests(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, tests.Total)
	assert.Equal(t, added.SoilTestID, tests.SoilTests[0].ID)

	found, err := shops.SearchProducts(ctx, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seed", found.Query)
	assert.Equal(t, len(found.Products), found.Total)

	_, err = shops.Inventory(ctx, 404, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationService_MarkAllReadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewNotificationService(store)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AddNotification(ctx, 9, &domain.Notification{Title: "n"}))
	}

	for i := 0; i < 2; i++ {
		_, err := svc.MarkAllRead(ctx, 9)
		require.NoError(t, err)

		unread := false
		list, err := svc.List(ctx, 9, domain.NotificationQuery{IsRead: &unread})
		require.NoError(t, err)
		assert.Zero(t, list.Total)
	}
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewUserService(store, store, store)

	user := &domain.User{PhoneNumber: "9876543210", Name: "Asha", State: "Punjab"}
	require.NoError(t, store.Create(ctx, user))

	district := "Patiala"
	size := 3.5
	updated, err := svc.Update(ctx, user.ID, domain.UserUpdate{
		District:                &district,
		FarmSize:                &size,
		NotificationPreferences: domain.NotificationPreferences{"sms": false},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, "Patiala", updated.District)
	assert.Equal(t, 3.5, *updated.FarmSize)

	prefs, err := store.SavePreferences(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationPreferences{"sms": false}, prefs)

	_, err = svc.Update(ctx, 999, domain.UserUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
