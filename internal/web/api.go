package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"badminqueue/internal/configstore"
	"badminqueue/internal/queue"
)

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"matches": len(h.sess.Matches()),
	})
}

type settingsView struct {
	Players      []string  `json:"players"`
	Courts       int       `json:"courts"`
	UpdatedAt    time.Time `json:"updated_at"`
	SessionID    string    `json:"session_id"`
	LedgerPolicy string    `json:"ledger_policy"`
	PoolLimit    int       `json:"pool_limit"`
}

type settingsRequest struct {
	Players      []string `json:"players" validate:"max=512,dive,max=64"`
	Courts       int      `json:"courts"`
	LedgerPolicy string   `json:"ledger_policy" validate:"omitempty,oneof=staged committed"`
	PoolLimit    *int     `json:"pool_limit" validate:"omitempty,gte=0"`
}

func (h *Handler) settingsView(r *http.Request) (settingsView, error) {
	cfg, err := h.conf.GetConfig(r.Context())
	if err != nil {
		return settingsView{}, err
	}
	tuning := h.sess.Settings()
	return settingsView{
		Players:      cfg.Players,
		Courts:       cfg.Courts,
		UpdatedAt:    cfg.UpdatedAt,
		SessionID:    tuning.SessionID,
		LedgerPolicy: tuning.LedgerPolicy,
		PoolLimit:    tuning.PoolLimit,
	}, nil
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := h.settingsView(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !h.decode(w, r, &req) {
		return
	}

	if _, err := h.conf.UpdateConfig(r.Context(), configstore.Config{Players: req.Players, Courts: req.Courts}); err != nil {
		h.respondErr(w, r, err)
		return
	}
	if req.LedgerPolicy != "" || req.PoolLimit != nil {
		cur := h.sess.Settings()
		policy, limit := cur.LedgerPolicy, cur.PoolLimit
		if req.LedgerPolicy != "" {
			policy = req.LedgerPolicy
		}
		if req.PoolLimit != nil {
			limit = *req.PoolLimit
		}
		if _, err := h.sess.UpdateTuning(r.Context(), policy, limit); err != nil {
			h.respondErr(w, r, err)
			return
		}
	}
	h.sess.RegistryChanged()

	view, err := h.settingsView(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleListMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": h.sess.Settings().SessionID,
		"matches":    h.sess.Matches(),
	})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	m, err := h.sess.Next(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/matches/%d", m.Number))
	writeJSON(w, http.StatusCreated, m)
}

type previewView struct {
	Match      queue.Match `json:"match"`
	Fairness   int         `json:"fairness"`
	Matchup    int         `json:"matchup"`
	Order      []string    `json:"order"`
	Candidates int         `json:"candidates"`
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	m, sel, err := h.sess.Preview(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, previewView{
		Match:      m,
		Fairness:   sel.Score.Fairness,
		Matchup:    sel.Score.Matchup,
		Order:      sel.Order,
		Candidates: sel.Candidates,
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.Reset(r.Context()); err != nil {
		h.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func matchNumber(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "number")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", queue.ErrUnknownMatch, raw)
	}
	return n, nil
}

func (h *Handler) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	n, err := matchNumber(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	m, err := h.sess.Match(n)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	n, err := matchNumber(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	m, err := h.sess.Start(r.Context(), n)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type rosterRequest struct {
	Players []string `json:"players" validate:"required"`
}

func (h *Handler) handleEditRoster(w http.ResponseWriter, r *http.Request) {
	n, err := matchNumber(r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	var req rosterRequest
	if !h.decode(w, r, &req) {
		return
	}
	m, err := h.sess.Edit(r.Context(), n, req.Players)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.sess.Summary(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	mismatches, err := h.sess.Check(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         len(mismatches) == 0,
		"mismatches": mismatches,
	})
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.sess.History(r.Context(), limit)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
