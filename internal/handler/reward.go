package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/duetapp/duet/internal/auth"
	"github.com/duetapp/duet/internal/metrics"
	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/push"
	"github.com/duetapp/duet/internal/store"
	"github.com/duetapp/duet/internal/websocket"
)

type RewardHandler struct {
	rewardStore  *store.RewardStore
	coupleStore  *store.CoupleStore
	historyStore *store.HistoryStore
	userStore    *store.UserStore
	hub          *websocket.Hub
	notifier     *push.Notifier
}

func NewRewardHandler(rs *store.RewardStore, cs *store.CoupleStore, hs *store.HistoryStore, us *store.UserStore, hub *websocket.Hub, notifier *push.Notifier) *RewardHandler {
	return &RewardHandler{
		rewardStore:  rs,
		coupleStore:  cs,
		historyStore: hs,
		userStore:    us,
		hub:          hub,
		notifier:     notifier,
	}
}

func (h *RewardHandler) broadcast(coupleID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(coupleID, msg)
	}
}

type rewardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"points_cost"`
}

func (req *rewardRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.PointsCost < 1 {
		return "points_cost must be >= 1"
	}
	return ""
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	reward, err := h.rewardStore.Create(coupleID, req.Name, req.Description, req.PointsCost)
	if err != nil {
		log.Printf("failed to create reward: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create reward"})
		return
	}

	h.broadcast(coupleID, websocket.NewMessage("reward", "created", reward.ID, nil))

	writeJSON(w, http.StatusCreated, reward)
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	rewards, err := h.rewardStore.ListByCouple(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list rewards"})
		return
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *RewardHandler) Update(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.rewardStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get reward"})
		return
	}
	if existing == nil || existing.CoupleID != coupleID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reward not found"})
		return
	}

	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	reward, err := h.rewardStore.Update(id, req.Name, req.Description, req.PointsCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update reward"})
		return
	}

	h.broadcast(coupleID, websocket.NewMessage("reward", "updated", id, nil))

	writeJSON(w, http.StatusOK, reward)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.rewardStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get reward"})
		return
	}
	if existing == nil || existing.CoupleID != coupleID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reward not found"})
		return
	}

	if err := h.rewardStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete reward"})
		return
	}

	h.broadcast(coupleID, websocket.NewMessage("reward", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

// Redeem spends the couple's shared points on a reward. The debit is
// conditional, so two concurrent redeems cannot overdraw the pool.
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	reward, err := h.rewardStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get reward"})
		return
	}
	if reward == nil || reward.CoupleID != coupleID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reward not found"})
		return
	}

	if err := h.coupleStore.SpendPoints(coupleID, reward.PointsCost); err != nil {
		if errors.Is(err, store.ErrInsufficientPoints) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "insufficient points"})
			return
		}
		log.Printf("failed to spend points: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to redeem reward"})
		return
	}

	if _, err := h.historyStore.Add(coupleID, userID, -reward.PointsCost, model.HistorySpend, "Redeemed "+reward.Name); err != nil {
		log.Printf("failed to record history: %v", err)
	}

	metrics.RewardsRedeemed.Inc()
	h.broadcast(coupleID, websocket.NewMessage("reward", "redeemed", id, map[string]any{
		"points_cost": reward.PointsCost,
	}))

	if h.notifier != nil {
		user, err := h.userStore.GetByID(userID)
		if err == nil && user != nil {
			payload := push.RewardRedeemed(user.Name, reward.Name, reward.PointsCost)
			go h.notifier.NotifyPartner(context.Background(), coupleID, userID, payload)
		}
	}

	couple, err := h.coupleStore.GetByID(coupleID)
	if err != nil || couple == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load couple"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reward":           reward,
		"remaining_points": couple.Points,
	})
}
