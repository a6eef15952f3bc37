package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/duetapp/duet/internal/auth"
	"github.com/duetapp/duet/internal/email"
	"github.com/duetapp/duet/internal/invite"
	"github.com/duetapp/duet/internal/store"
)

type CoupleHandler struct {
	coupleStore *store.CoupleStore
	userStore   *store.UserStore
	invites     *invite.Issuer
	mail        *email.Client
}

func NewCoupleHandler(cs *store.CoupleStore, us *store.UserStore, iss *invite.Issuer, mail *email.Client) *CoupleHandler {
	return &CoupleHandler{coupleStore: cs, userStore: us, invites: iss, mail: mail}
}

// Create starts a new couple with the caller as its first member.
func (h *CoupleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := h.userStore.GetByID(userID)
	if err != nil || user == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load user"})
		return
	}
	if user.CoupleID != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already part of a couple"})
		return
	}

	couple, err := h.coupleStore.Create()
	if err != nil {
		log.Printf("failed to create couple: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create couple"})
		return
	}
	if err := h.userStore.SetCouple(userID, &couple.ID); err != nil {
		log.Printf("failed to link user to couple: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create couple"})
		return
	}

	writeJSON(w, http.StatusCreated, couple)
}

// Get returns the caller's couple with its members.
func (h *CoupleHandler) Get(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	couple, err := h.coupleStore.GetByID(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load couple"})
		return
	}
	if couple == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "couple not found"})
		return
	}

	members, err := h.coupleStore.Members(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load members"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"couple":  couple,
		"members": members,
	})
}

type inviteRequest struct {
	Email string `json:"email"`
}

// Invite issues a signed invite token for the caller's couple and, when an
// email address is given and mail is configured, delivers it.
func (h *CoupleHandler) Invite(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())
	userID := auth.UserID(r.Context())

	members, err := h.coupleStore.Members(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load members"})
		return
	}
	if len(members) >= 2 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "couple already has two members"})
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	token, err := h.invites.Issue(coupleID, userID)
	if err != nil {
		log.Printf("failed to issue invite: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to issue invite"})
		return
	}

	emailed := false
	if req.Email != "" && h.mail.Configured() {
		user, err := h.userStore.GetByID(userID)
		if err != nil || user == nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load user"})
			return
		}
		if err := h.mail.SendInvite(req.Email, user.Name, token); err != nil {
			log.Printf("failed to send invite email: %v", err)
		} else {
			emailed = true
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":   token,
		"emailed": emailed,
	})
}

type joinRequest struct {
	Token string `json:"token"`
}

// Join links the caller to the couple named in a valid invite token.
func (h *CoupleHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	claims, err := h.invites.Verify(req.Token)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid or expired invite"})
		return
	}

	user, err := h.userStore.GetByID(userID)
	if err != nil || user == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load user"})
		return
	}
	if user.CoupleID != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "already part of a couple"})
		return
	}

	couple, err := h.coupleStore.GetByID(claims.CoupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load couple"})
		return
	}
	if couple == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "couple not found"})
		return
	}

	members, err := h.coupleStore.Members(couple.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load members"})
		return
	}
	if len(members) >= 2 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "couple already has two members"})
		return
	}

	if err := h.userStore.SetCouple(userID, &couple.ID); err != nil {
		log.Printf("failed to join couple: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to join couple"})
		return
	}

	writeJSON(w, http.StatusOK, couple)
}

type calendarToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// SetCalendarEnabled toggles the couple's week-view scheduling feature.
func (h *CoupleHandler) SetCalendarEnabled(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	var req calendarToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.coupleStore.SetCalendarEnabled(coupleID, req.Enabled); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update couple"})
		return
	}

	couple, err := h.coupleStore.GetByID(coupleID)
	if err != nil || couple == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load couple"})
		return
	}
	writeJSON(w, http.StatusOK, couple)
}
