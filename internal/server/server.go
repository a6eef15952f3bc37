package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/duetapp/duet/internal/config"
	"github.com/duetapp/duet/internal/email"
	"github.com/duetapp/duet/internal/handler"
	"github.com/duetapp/duet/internal/invite"
	"github.com/duetapp/duet/internal/metrics"
	"github.com/duetapp/duet/internal/middleware"
	"github.com/duetapp/duet/internal/push"
	"github.com/duetapp/duet/internal/store"
	ws "github.com/duetapp/duet/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	coupleH      *handler.CoupleHandler
	catalogH     *handler.CatalogHandler
	ownershipH   *handler.OwnershipHandler
	workConfigH  *handler.WorkConfigHandler
	calendarH    *handler.CalendarHandler
	fairnessH    *handler.FairnessHandler
	rewardH      *handler.RewardHandler
	historyH     *handler.HistoryHandler
	pushH        *handler.PushHandler
	sessionStore *store.SessionStore
	userStore    *store.UserStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	coupleStore := store.NewCoupleStore(db)
	sessionStore := store.NewSessionStore(db)
	catalogStore := store.NewCatalogStore(db)
	ownershipStore := store.NewOwnershipStore(db)
	workConfigStore := store.NewWorkConfigStore(db)
	entryStore := store.NewEntryStore(db)
	historyStore := store.NewHistoryStore(db)
	rewardStore := store.NewRewardStore(db)
	pushStore := store.NewPushStore(db)

	inviteIssuer := invite.NewIssuer(cfg.Auth.InviteSecret, 0)
	mailClient := email.NewClient(cfg.Email.PostmarkToken, cfg.Email.FromAddress, cfg.Server.BaseURL)

	var pushSvc *push.Service
	var notifier *push.Notifier
	var pushH *handler.PushHandler
	if cfg.Push.VAPIDPublicKey != "" && cfg.Push.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey)
		notifier = push.NewNotifier(pushSvc, pushStore, logger.With("component", "push"))
		pushH = handler.NewPushHandler(pushStore, pushSvc)
	}

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, sessionStore),
		coupleH:      handler.NewCoupleHandler(coupleStore, userStore, inviteIssuer, mailClient),
		catalogH:     handler.NewCatalogHandler(catalogStore),
		ownershipH:   handler.NewOwnershipHandler(ownershipStore, catalogStore, userStore, hub),
		workConfigH:  handler.NewWorkConfigHandler(workConfigStore, coupleStore, hub),
		calendarH:    handler.NewCalendarHandler(entryStore, ownershipStore, catalogStore, coupleStore, historyStore, userStore, hub, notifier),
		fairnessH:    handler.NewFairnessHandler(workConfigStore, ownershipStore, catalogStore, coupleStore),
		rewardH:      handler.NewRewardHandler(rewardStore, coupleStore, historyStore, userStore, hub, notifier),
		historyH:     handler.NewHistoryHandler(historyStore),
		pushH:        pushH,
		sessionStore: sessionStore,
		userStore:    userStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", metrics.Handler())

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(metrics.Instrument(outerMux))
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
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Couple lifecycle: creating and joining work before a couple is linked
	mux.HandleFunc("POST /api/couple", s.coupleH.Create)
	mux.HandleFunc("POST /api/couple/join", s.coupleH.Join)

	// Everything below needs a linked couple
	coupleMux := http.NewServeMux()

	coupleMux.HandleFunc("GET /api/couple", s.coupleH.Get)
	coupleMux.HandleFunc("POST /api/couple/invite", s.coupleH.Invite)
	coupleMux.HandleFunc("PUT /api/couple/calendar", s.coupleH.SetCalendarEnabled)

	coupleMux.HandleFunc("GET /api/catalog", s.catalogH.List)
	coupleMux.HandleFunc("GET /api/catalog/{id}", s.catalogH.Get)

	coupleMux.HandleFunc("GET /api/ownerships", s.ownershipH.List)
	coupleMux.HandleFunc("POST /api/ownerships", s.ownershipH.Assign)
	coupleMux.HandleFunc("PUT /api/ownerships/{id}/frequency", s.ownershipH.UpdateFrequency)
	coupleMux.HandleFunc("DELETE /api/ownerships/{id}", s.ownershipH.Unassign)

	coupleMux.HandleFunc("GET /api/work-config", s.workConfigH.Get)
	coupleMux.HandleFunc("PUT /api/work-config", s.workConfigH.Update)

	coupleMux.HandleFunc("GET /api/calendar/week", s.calendarH.Week)
	coupleMux.HandleFunc("POST /api/calendar/complete", s.calendarH.Complete)
	coupleMux.HandleFunc("DELETE /api/calendar/entries/{id}", s.calendarH.Uncomplete)

	coupleMux.HandleFunc("GET /api/fairness", s.fairnessH.Get)

	coupleMux.HandleFunc("POST /api/rewards", s.rewardH.Create)
	coupleMux.HandleFunc("GET /api/rewards", s.rewardH.List)
	coupleMux.HandleFunc("PUT /api/rewards/{id}", s.rewardH.Update)
	coupleMux.HandleFunc("DELETE /api/rewards/{id}", s.rewardH.Delete)
	coupleMux.HandleFunc("POST /api/rewards/{id}/redeem", s.rewardH.Redeem)

	coupleMux.HandleFunc("GET /api/history", s.historyH.List)

	if s.pushH != nil {
		coupleMux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
		coupleMux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		coupleMux.HandleFunc("GET /api/push/subscriptions", s.pushH.List)
		coupleMux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
	}

	coupleMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	mux.Handle("/", middleware.RequireCouple(coupleMux))
}
