package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"queueless/internal/cart"
	"queueless/internal/checkout"
	"queueless/internal/config"
	"queueless/internal/email"
	"queueless/internal/handler"
	"queueless/internal/middleware"
	"queueless/internal/model"
	"queueless/internal/push"
	"queueless/internal/store"
	ws "queueless/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	contactH     *handler.ContactHandler
	menuH        *handler.MenuHandler
	cartH        *handler.CartHandler
	orderH       *handler.OrderHandler
	notifH       *handler.NotificationHandler
	qrH          *handler.QRHandler
	statsH       *handler.StatsHandler
	pushH        *handler.PushHandler
	sessionStore *store.SessionStore
	cartRegistry *cart.Registry
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	menuStore := store.NewMenuStore(db)
	orderStore := store.NewOrderStore(db)
	notificationStore := store.NewNotificationStore(db)
	qrStore := store.NewQRStore(db)
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	contactStore := store.NewContactStore(db)
	pushStore := store.NewPushStore(db)
	statsStore := store.NewStatsStore(db)

	// Web push is optional; without VAPID keys the endpoints report it as
	// unconfigured and checkout skips the alert.
	pushSvc := push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	var notifier *push.Notifier
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		notifier = push.NewNotifier(pushSvc, pushStore, logger)
	}

	processor := checkout.NewProcessor(
		orderStore, notificationStore, logger.With("component", "checkout"),
		checkout.WithOrderCallback(func(o *model.Order, n *model.Notification) {
			hub.Broadcast(ws.NewMessage(ws.EntityOrder, "created", o.ID, map[string]any{"status": string(o.Status)}))
			if n != nil {
				hub.Broadcast(ws.NewMessage(ws.EntityNotification, "created", n.ID, nil))
			}
			if notifier != nil {
				notifier.NotifyNewOrder(o)
			}
		}),
	)

	emailClient := email.NewClient(cfg.PostmarkToken, cfg.ContactFrom, cfg.ContactInbox)
	cartRegistry := cart.NewRegistry()

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		contactH:     handler.NewContactHandler(contactStore, emailClient, logger.With("component", "contact")),
		menuH:        handler.NewMenuHandler(menuStore, hub, logger.With("component", "menu")),
		cartH:        handler.NewCartHandler(cartRegistry, menuStore, processor, logger.With("component", "cart")),
		orderH:       handler.NewOrderHandler(orderStore, hub, logger.With("component", "order")),
		notifH:       handler.NewNotificationHandler(notificationStore, hub, logger.With("component", "notification")),
		qrH:          handler.NewQRHandler(qrStore, cfg.BaseURL, logger.With("component", "qr")),
		statsH:       handler.NewStatsHandler(statsStore, logger.With("component", "stats")),
		pushH:        handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler")),
		sessionStore: sessionStore,
		cartRegistry: cartRegistry,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// CartRegistry returns the cart registry for cleanup tasks.
func (s *Server) CartRegistry() *cart.Registry {
	return s.cartRegistry
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("POST /api/auth/signup", s.rateLimitedHandler(s.authH.Signup))
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/contact", s.rateLimitedHandler(s.contactH.Submit))

	// Customer flow: menu, cart, checkout. Reached from a scanned QR code,
	// no account involved.
	outerMux.HandleFunc("GET /api/menu", s.menuH.Customer)
	outerMux.HandleFunc("GET /api/cart", s.cartH.Get)
	outerMux.HandleFunc("POST /api/cart/items", s.cartH.AddItem)
	outerMux.HandleFunc("DELETE /api/cart/items/{id}", s.cartH.RemoveItem)
	outerMux.HandleFunc("POST /api/checkout", s.cartH.Checkout)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Account
	mux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/auth/session", s.authH.Session)
	mux.HandleFunc("GET /api/profile", s.authH.Profile)
	mux.HandleFunc("PUT /api/profile", s.authH.UpdateProfile)

	// Menu management
	mux.HandleFunc("GET /api/menu-items", s.menuH.List)
	mux.HandleFunc("POST /api/menu-items", s.menuH.Create)
	mux.HandleFunc("PUT /api/menu-items/{id}", s.menuH.Update)
	mux.HandleFunc("DELETE /api/menu-items/{id}", s.menuH.Delete)
	mux.HandleFunc("POST /api/menu-items/{id}/toggle", s.menuH.Toggle)
	mux.HandleFunc("POST /api/menu-items/import", s.menuH.Import)

	// Order queue
	mux.HandleFunc("GET /api/orders", s.orderH.List)
	mux.HandleFunc("GET /api/orders/{id}", s.orderH.Get)
	mux.HandleFunc("PUT /api/orders/{id}/status", s.orderH.UpdateStatus)

	// Notification feed
	mux.HandleFunc("GET /api/notifications", s.notifH.List)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.notifH.MarkRead)
	mux.HandleFunc("POST /api/notifications/read-all", s.notifH.MarkAllRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", s.notifH.Delete)

	// Table QR codes
	mux.HandleFunc("GET /api/qr-codes", s.qrH.List)
	mux.HandleFunc("POST /api/qr-codes", s.qrH.Create)
	mux.HandleFunc("DELETE /api/qr-codes/{id}", s.qrH.Delete)
	mux.HandleFunc("GET /api/qr-codes/{id}/image", s.qrH.Image)

	// Statistics
	mux.HandleFunc("GET /api/stats/overview", s.statsH.Overview)
	mux.HandleFunc("GET /api/stats/orders", s.statsH.Orders)

	// Contact messages (staff review)
	mux.HandleFunc("GET /api/contact-messages", s.contactH.List)

	// Push notifications
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
