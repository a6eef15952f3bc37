package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/duetapp/duet/internal/auth"
	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/store"
	"github.com/duetapp/duet/internal/websocket"
)

type WorkConfigHandler struct {
	workConfigStore *store.WorkConfigStore
	coupleStore     *store.CoupleStore
	hub             *websocket.Hub
}

func NewWorkConfigHandler(ws *store.WorkConfigStore, cs *store.CoupleStore, hub *websocket.Hub) *WorkConfigHandler {
	return &WorkConfigHandler{workConfigStore: ws, coupleStore: cs, hub: hub}
}

type memberConfigView struct {
	UserID          int64   `json:"user_id"`
	Name            string  `json:"name"`
	Configured      bool    `json:"configured"`
	MonthlyIncome   float64 `json:"monthly_income"`
	WeeklyWorkHours float64 `json:"weekly_work_hours"`
}

// Get returns both members' work configuration. Members without a stored row
// report configured=false alongside the defaults the fairness calculation
// would use.
func (h *WorkConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	members, err := h.coupleStore.Members(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load members"})
		return
	}

	configs, err := h.workConfigStore.ListByCouple(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load work config"})
		return
	}

	byUser := make(map[int64]model.MemberWorkConfig, len(configs))
	for _, c := range configs {
		byUser[c.UserID] = c
	}

	views := make([]memberConfigView, 0, len(members))
	for _, m := range members {
		view := memberConfigView{
			UserID:          m.ID,
			Name:            m.Name,
			WeeklyWorkHours: 40,
		}
		if c, ok := byUser[m.ID]; ok {
			view.Configured = true
			view.MonthlyIncome = c.MonthlyIncome
			view.WeeklyWorkHours = c.WeeklyWorkHours
		}
		views = append(views, view)
	}

	writeJSON(w, http.StatusOK, views)
}

type workConfigRequest struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	WeeklyWorkHours float64 `json:"weekly_work_hours"`
}

// Update stores the caller's own income and work hours.
func (h *WorkConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())
	userID := auth.UserID(r.Context())

	var req workConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.MonthlyIncome < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "monthly_income must be >= 0"})
		return
	}

	cfg, err := h.workConfigStore.Upsert(coupleID, userID, req.MonthlyIncome, req.WeeklyWorkHours)
	if err != nil {
		log.Printf("failed to save work config: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save work config"})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(coupleID, websocket.NewMessage("work_config", "updated", cfg.ID, nil))
	}

	writeJSON(w, http.StatusOK, cfg)
}
