package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/crop-advisory/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ domain.UserRepository            = (*Store)(nil)
	_ domain.OTPRepository             = (*Store)(nil)
	_ domain.TokenRevocationRepository = (*Store)(nil)
	_ domain.AdvisoryRepository        = (*Store)(nil)
	_ domain.CommunityRepository       = (*Store)(nil)
	_ domain.NotificationRepository    = (*Store)(nil)
	_ domain.FarmRepository            = (*Store)(nil)
	_ domain.CatalogRepository         = (*Store)(nil)
	_ domain.AvatarRepository          = (*Store)(nil)
)

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s := New()

	user := &domain.User{PhoneNumber: "9876543210", Name: "Gurpreet", PreferredLanguage: "pa"}
	require.NoError(t, s.Create(ctx, user))
	assert.NotZero(t, user.ID)
	assert.NotNil(t, user.CreatedAt)

	t.Run("duplicate phone", func(t *testing.T) {
		err := s.Create(ctx, &domain.User{PhoneNumber: "9876543210"})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("lookup by phone", func(t *testing.T) {
		got, err := s.GetByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		got, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		got.Name = "changed"

		again, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gurpreet", again.Name)
	})

	t.Run("update", func(t *testing.T) {
		user.District = "Ludhiana"
		require.NoError(t, s.Update(ctx, user))
		got, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ludhiana", got.District)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := s.GetByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, s.Update(ctx, &domain.User{ID: 999}), domain.ErrNotFound)
	})
}

func TestStore_OTPs(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.GetOTP(ctx, "9876543210")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec := &domain.OTPRecord{PhoneNumber: "9876543210", CodeHash: []byte("hash"), Attempts: 1}
	require.NoError(t, s.SaveOTP(ctx, rec))

	got, err := s.GetOTP(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Attempts)

	require.NoError(t, s.DeleteOTP(ctx, "9876543210"))
	_, err = s.GetOTP(ctx, "9876543210")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_RevocationExpires(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "jti-1", now.Add(time.Minute)))
	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-2", now.Add(time.Minute)))
	assert.NotContains(t, s.revoked, "jti-1", "expired entries are swept on revoke")
}

func TestStore_AdvisoriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, s.AddAdvisory(ctx, 1, &domain.ChatHistoryEntry{Title: title}))
	}
	require.NoError(t, s.AddAdvisory(ctx, 2, &domain.ChatHistoryEntry{Title: "other user"}))

	got, total, err := s.ListAdvisories(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Title)
	assert.Equal(t, "second", got[1].Title)

	got, _, err = s.ListAdvisories(ctx, 1, 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_Community(t *testing.T) {
	ctx := context.Background()
	s := New()
	author := domain.PostAuthor{ID: 7, Name: "Asha", District: "Karnal", State: "Haryana"}
	wheat := "wheat"

	tipID, err := s.CreatePost(ctx, author, domain.NewPost{Title: "Sowing tip", Content: "c", PostType: "tip", CropCategory: &wheat}, "en")
	require.NoError(t, err)
	questionID, err := s.CreatePost(ctx, author, domain.NewPost{Title: "Help", Content: "c", PostType: "question"}, "hi")
	require.NoError(t, err)

	t.Run("newest first with filters", func(t *testing.T) {
		posts, total, err := s.ListPosts(ctx, domain.PostQuery{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, questionID, posts[0].ID)

		posts, total, err = s.ListPosts(ctx, domain.PostQuery{CropCategory: "wheat"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, tipID, posts[0].ID)
	})

	t.Run("pinned first", func(t *testing.T) {
		s.posts[tipID].post.IsPinned = true
		defer func() { s.posts[tipID].post.IsPinned = false }()

		posts, _, err := s.ListPosts(ctx, domain.PostQuery{})
		require.NoError(t, err)
		assert.Equal(t, tipID, posts[0].ID)
	})

	t.Run("likes are counted once per user", func(t *testing.T) {
		n, err := s.LikePost(ctx, tipID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = s.LikePost(ctx, tipID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = s.LikePost(ctx, tipID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("comments and views", func(t *testing.T) {
		_, err := s.AddComment(ctx, tipID, author, "Thanks", "en")
		require.NoError(t, err)

		detail, err := s.GetPost(ctx, tipID)
		require.NoError(t, err)
		assert.Equal(t, 1, detail.Post.CommentsCount)
		assert.Equal(t, 1, detail.Post.ViewsCount)
		require.Len(t, detail.Comments, 1)
		assert.Equal(t, "Thanks", detail.Comments[0].Content)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := s.GetPost(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = s.LikePost(ctx, 999, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = s.AddComment(ctx, 999, author, "x", "en")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_Notifications(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, typ := range []string{"weather", "price", "weather"} {
		require.NoError(t, s.AddNotification(ctx, 1, &domain.Notification{Title: typ, NotificationType: typ}))
	}

	all, total, err := s.ListNotifications(ctx, 1, domain.NotificationQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	weather, total, err := s.ListNotifications(ctx, 1, domain.NotificationQuery{NotificationType: "weather"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, all[0].ID, weather[0].ID)

	require.NoError(t, s.MarkRead(ctx, 1, all[0].ID))
	assert.ErrorIs(t, s.MarkRead(ctx, 2, all[0].ID), domain.ErrNotFound, "other users cannot mark it")

	unread := false
	_, total, err = s.ListNotifications(ctx, 1, domain.NotificationQuery{IsRead: &unread})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	changed, err := s.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	changed, err = s.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestStore_PreferencesMerge(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.SavePreferences(ctx, 1, domain.NotificationPreferences{"sms": true, "weather_alerts": true})
	require.NoError(t, err)
	got, err := s.SavePreferences(ctx, 1, domain.NotificationPreferences{"weather_alerts": false})
	require.NoError(t, err)

	assert.Equal(t, domain.NotificationPreferences{"sms": true, "weather_alerts": false}, got)
}

func TestStore_SoilTestRecommendations(t *testing.T) {
	ctx := context.Background()
	s := New()
	ph, n := 5.2, 150.0

	_, err := s.AddSoilTest(ctx, 1, domain.SoilTestInput{PHLevel: &ph, NitrogenContent: &n})
	require.NoError(t, err)

	tests, err := s.ListSoilTests(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	require.NotNil(t, tests[0].Recommendations)
	assert.Contains(t, *tests[0].Recommendations, "lime")
	assert.Contains(t, *tests[0].Recommendations, "urea")
	assert.False(t, tests[0].TestDate.IsZero())
}

func TestStore_PriceAlerts(t *testing.T) {
	ctx := context.Background()
	s := New()
	alert := domain.PriceAlert{CropName: "Wheat", TargetPrice: domain.PriceFromFloat(2400), AlertType: domain.AlertAbove}

	require.NoError(t, s.AddPriceAlert(ctx, 1, alert))
	got, err := s.ListPriceAlerts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.PriceAlert{alert}, got)

	got, err = s.ListPriceAlerts(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Catalog(t *testing.T) {
	ctx := context.Background()
	s := New()

	t.Run("crop search matches local names", func(t *testing.T) {
		crops, total, err := s.Crops(ctx, domain.CropQuery{Search: "गेहूं"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Wheat", crops[0].Name)
	})

	t.Run("crop details", func(t *testing.T) {
		details, err := s.CropDetails(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Rice", details.Name)
		assert.NotNil(t, details.CommonDiseases)

		_, err = s.CropDetails(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("shops filter", func(t *testing.T) {
		approved := true
		shops, total, err := s.Shops(ctx, domain.ShopQuery{State: "punjab", IsGovernmentApproved: &approved})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Kisan Seva Kendra", shops[0].Name)
	})

	t.Run("inventory by product type", func(t *testing.T) {
		inv, err := s.ShopInventory(ctx, 1, "seed")
		require.NoError(t, err)
		assert.Equal(t, 1, inv.Total)
		assert.Equal(t, "Kisan Seva Kendra", inv.ShopName)

		_, err = s.ShopInventory(ctx, 999, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("product search skips unavailable stock", func(t *testing.T) {
		matches, err := s.SearchProducts(ctx, "imidacloprid")
		require.NoError(t, err)
		assert.Empty(t, matches)

		matches, err = s.SearchProducts(ctx, "iffco")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
		assert.Equal(t, int64(1), matches[0].Shop.ID)
	})

	t.Run("market prices", func(t *testing.T) {
		prices, total, err := s.MarketPrices(ctx, domain.PriceQuery{CropName: "wheat", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, prices, 1)
		assert.Equal(t, "2310", prices[0].ModalPrice.String())
	})

	t.Run("insights", func(t *testing.T) {
		insights, err := s.MarketInsights(ctx, domain.InsightQuery{InsightType: "forecast"})
		require.NoError(t, err)
		require.Len(t, insights, 1)
		assert.Equal(t, "Mustard", *insights[0].CropName)
	})
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddAdvisory(ctx, 1, &domain.ChatHistoryEntry{Title: "q"})
		}()
	}
	wg.Wait()

	_, total, err := s.ListAdvisories(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestStore_Avatar(t *testing.T) {
	ctx := context.Background()
	s := New()

	assert.ErrorIs(t, s.SaveAvatar(ctx, 1, []byte("png"), "image/png"), domain.ErrNotFound)

	user := &domain.User{PhoneNumber: "9876543210"}
	require.NoError(t, s.Create(ctx, user))
	require.NoError(t, s.SaveAvatar(ctx, user.ID, []byte("png"), "image/png"))

	data, contentType, err := s.Avatar(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, "image/png", contentType)
}
