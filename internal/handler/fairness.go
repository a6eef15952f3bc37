package handler

import (
	"net/http"

	"github.com/duetapp/duet/internal/auth"
	"github.com/duetapp/duet/internal/fairness"
	"github.com/duetapp/duet/internal/metrics"
	"github.com/duetapp/duet/internal/store"
)

type FairnessHandler struct {
	workConfigStore *store.WorkConfigStore
	ownershipStore  *store.OwnershipStore
	catalogStore    *store.CatalogStore
	coupleStore     *store.CoupleStore
}

func NewFairnessHandler(ws *store.WorkConfigStore, os *store.OwnershipStore, cs *store.CatalogStore, couples *store.CoupleStore) *FairnessHandler {
	return &FairnessHandler{workConfigStore: ws, ownershipStore: os, catalogStore: cs, coupleStore: couples}
}

// Get computes the couple's current fairness balance. The caller is always
// member 1, so shares and suggestions are phrased from their perspective.
func (h *FairnessHandler) Get(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())
	userID := auth.UserID(r.Context())

	members, err := h.coupleStore.Members(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load members"})
		return
	}
	if len(members) < 2 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "both partners must join before fairness can be computed"})
		return
	}

	member1ID := userID
	member2ID := members[0].ID
	if member2ID == userID {
		member2ID = members[1].ID
	}

	configs, err := h.workConfigStore.ListByCouple(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load work config"})
		return
	}
	ownerships, err := h.ownershipStore.ListActive(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list ownerships"})
		return
	}
	tasks, err := h.catalogStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}

	result := fairness.Calculate(configs, ownerships, tasks, member1ID, member2ID)
	metrics.FairnessScore.Observe(float64(result.Score))

	writeJSON(w, http.StatusOK, result)
}
