package api

import (
	"net/http"

	"github.com/Rrens/crop-advisory/internal/api/handler"
	customMiddleware "github.com/Rrens/crop-advisory/internal/api/middleware"
	"github.com/Rrens/crop-advisory/internal/config"
	"github.com/Rrens/crop-advisory/internal/repository/memory"
	"github.com/Rrens/crop-advisory/internal/security"
	"github.com/Rrens/crop-advisory/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// Deps are the backing services of the router. Sender defaults to
// service.LogSender; Limiter and Ready are optional.
type Deps struct {
	Store   *memory.Store
	Sender  service.OTPSender
	Limiter customMiddleware.Limiter
	Ready   []handler.Pinger
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	store := deps.Store
	if store == nil {
		store = memory.New()
	}
	sender := deps.Sender
	if sender == nil {
		sender = service.LogSender{}
	}

	// Initialize security components
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Initialize services
	weatherService := service.NewWeatherService()
	authService := service.NewAuthService(store, store, store, store, jwtManager, sender, cfg.OTP)
	userService := service.NewUserService(store, store, store)
	advisoryService := service.NewAdvisoryService(store)
	imageService := service.NewImageService()
	marketService := service.NewMarketService(store, store, store)
	communityService := service.NewCommunityService(store, store)
	notificationService := service.NewNotificationService(store)
	cropService := service.NewCropService(store, weatherService)
	soilService := service.NewSoilService(store, store)
	shopService := service.NewShopService(store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(advisoryService)
	imageHandler := handler.NewImageHandler(imageService)
	marketHandler := handler.NewMarketHandler(marketService)
	communityHandler := handler.NewCommunityHandler(communityService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	weatherHandler := handler.NewWeatherHandler(weatherService)
	cropHandler := handler.NewCropHandler(cropService)
	soilHandler := handler.NewSoilHandler(soilService)
	shopHandler := handler.NewShopHandler(shopService)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(authService)

	sendOTP := http.Handler(http.HandlerFunc(authHandler.SendOTP))
	if deps.Limiter != nil {
		log.Info().Int("limit", cfg.OTP.SendLimit).Dur("window", cfg.OTP.SendWindow).Msg("OTP send rate limit enabled")
		sendOTP = customMiddleware.NewRateLimitMiddleware(deps.Limiter, customMiddleware.PhoneKey).Limit(sendOTP)
	}

	r.Get("/health", handler.HealthCheck)
	r.Get("/static/avatars/{userID}", userHandler.Avatar)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.Ready...))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Method(http.MethodPost, "/send-otp", sendOTP)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/register", authHandler.Register)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/refresh-token", authHandler.Refresh)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.Me)
				r.Patch("/", userHandler.Update)
				r.Post("/avatar", userHandler.UploadAvatar)
			})

			r.Route("/chatbot", func(r chi.Router) {
				r.Post("/chat", chatHandler.Chat)
				r.Post("/voice-chat", chatHandler.Voice)
				r.Get("/chat-history", chatHandler.History)
			})

			r.Route("/image", func(r chi.Router) {
				r.Post("/classify-crop-disease", imageHandler.ClassifyDisease)
				r.Post("/classify-pest", imageHandler.ClassifyPest)
				r.Post("/classify-crop", imageHandler.ClassifyCrop)
				r.Post("/analyze-plant-health", imageHandler.AnalyzePlantHealth)
			})

			r.Route("/market", func(r chi.Router) {
				r.Get("/prices", marketHandler.Prices)
				r.Get("/price-history/{cropName}", marketHandler.PriceHistory)
				r.Get("/insights", marketHandler.Insights)
				r.Post("/price-alerts", marketHandler.SetPriceAlert)
				r.Get("/price-alerts", marketHandler.PriceAlerts)
			})

			r.Route("/community/posts", func(r chi.Router) {
				r.Get("/", communityHandler.List)
				r.Post("/", communityHandler.Create)

				r.Route("/{postID}", func(r chi.Router) {
					r.Get("/", communityHandler.Get)
					r.Post("/like", communityHandler.Like)
					r.Post("/comments", communityHandler.Comment)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Patch("/mark-all-read", notificationHandler.MarkAllRead)
				r.Patch("/preferences", notificationHandler.UpdatePreferences)
				r.Patch("/{notificationID}/read", notificationHandler.MarkRead)
			})

			r.Route("/weather", func(r chi.Router) {
				r.Get("/current", weatherHandler.Current)
				r.Get("/forecast", weatherHandler.Forecast)
				r.Get("/alerts", weatherHandler.Alerts)
			})

			r.Route("/crops", func(r chi.Router) {
				r.Get("/", cropHandler.List)
				r.Post("/recommendations", cropHandler.Recommend)
				r.Get("/{cropID}", cropHandler.Details)
			})

			r.Route("/soil", func(r chi.Router) {
				r.Get("/types", soilHandler.Types)
				r.Post("/tests", soilHandler.AddTest)
				r.Get("/tests", soilHandler.Tests)
			})

			r.Route("/shops", func(r chi.Router) {
				r.Get("/", shopHandler.List)
				r.Get("/search-products", shopHandler.SearchProducts)
				r.Get("/{shopID}/inventory", shopHandler.Inventory)
			})
		})
	})

	return r
}
