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

type OwnershipHandler struct {
	ownershipStore *store.OwnershipStore
	catalogStore   *store.CatalogStore
	userStore      *store.UserStore
	hub            *websocket.Hub
}

func NewOwnershipHandler(os *store.OwnershipStore, cs *store.CatalogStore, us *store.UserStore, hub *websocket.Hub) *OwnershipHandler {
	return &OwnershipHandler{ownershipStore: os, catalogStore: cs, userStore: us, hub: hub}
}

func (h *OwnershipHandler) broadcast(coupleID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(coupleID, msg)
	}
}

func (h *OwnershipHandler) List(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	ownerships, err := h.ownershipStore.ListActive(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list ownerships"})
		return
	}
	if ownerships == nil {
		ownerships = []model.TaskOwnership{}
	}
	writeJSON(w, http.StatusOK, ownerships)
}

type assignRequest struct {
	TaskID       int64           `json:"task_id"`
	OwnerID      int64           `json:"owner_id"`
	Frequency    model.Frequency `json:"frequency"`
	PreferredDay *int            `json:"preferred_day"`
}

// Assign gives a catalog task to one member. Assigning an already-owned task
// replaces the prior owner and cadence.
func (h *OwnershipHandler) Assign(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	day, errMsg := validateCadence(req.Frequency, req.PreferredDay)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	task, err := h.catalogStore.GetByID(req.TaskID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}

	owner, err := h.userStore.GetByID(req.OwnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get owner"})
		return
	}
	if owner == nil || owner.CoupleID == nil || *owner.CoupleID != coupleID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "owner must be a member of your couple"})
		return
	}

	ownership, err := h.ownershipStore.Assign(coupleID, req.TaskID, req.OwnerID, req.Frequency, day)
	if err != nil {
		log.Printf("failed to assign task: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to assign task"})
		return
	}

	h.broadcast(coupleID, websocket.NewMessage("ownership", "assigned", ownership.ID, nil))

	writeJSON(w, http.StatusCreated, ownership)
}

// Unassign removes the ownership record entirely.
func (h *OwnershipHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ownership, err := h.ownershipStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get ownership"})
		return
	}
	if ownership == nil || ownership.CoupleID != coupleID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ownership not found"})
		return
	}

	if err := h.ownershipStore.Unassign(coupleID, ownership.TaskID); err != nil {
		log.Printf("failed to unassign task: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to unassign task"})
		return
	}

	h.broadcast(coupleID, websocket.NewMessage("ownership", "unassigned", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

type frequencyRequest struct {
	Frequency    model.Frequency `json:"frequency"`
	PreferredDay *int            `json:"preferred_day"`
}

// UpdateFrequency changes how often an owned task recurs.
func (h *OwnershipHandler) UpdateFrequency(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	ownership, err := h.ownershipStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get ownership"})
		return
	}
	if ownership == nil || ownership.CoupleID != coupleID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "ownership not found"})
		return
	}

	var req frequencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	day, errMsg := validateCadence(req.Frequency, req.PreferredDay)
	if errMsg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errMsg})
		return
	}

	updated, err := h.ownershipStore.UpdateFrequency(id, req.Frequency, day)
	if err != nil {
		log.Printf("failed to update frequency: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update frequency"})
		return
	}

	h.broadcast(coupleID, websocket.NewMessage("ownership", "updated", id, nil))

	writeJSON(w, http.StatusOK, updated)
}

// validateCadence checks the frequency and normalizes the preferred day:
// day-pinned cadences require a 0-6 day, all others drop it.
func validateCadence(f model.Frequency, preferredDay *int) (*int, string) {
	if !f.Valid() {
		return nil, "invalid frequency"
	}
	if !f.HasPreferredDay() {
		return nil, ""
	}
	if preferredDay == nil {
		return nil, "preferred_day is required for weekly and biweekly tasks"
	}
	if *preferredDay < 0 || *preferredDay > 6 {
		return nil, "preferred_day must be between 0 (Monday) and 6 (Sunday)"
	}
	return preferredDay, ""
}
