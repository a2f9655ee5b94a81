package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/mealai/internal/domain"
)

const maxFavoriteNameLen = 200

type addFavoriteRequest struct {
	Name   string             `json:"name"`
	Result *domain.MealResult `json:"result"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.service.ListFavorites(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	writeJSON(w, http.StatusOK, favorites, s.logger)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "invalid JSON body", s.logger)
		return
	}
	if req.Result == nil {
		badRequest(w, "result is required", s.logger)
		return
	}
	name := strings.TrimSpace(req.Name)
	if len(name) > maxFavoriteNameLen {
		badRequest(w, "favorite name too long", s.logger)
		return
	}

	fav, err := s.service.AddFavorite(r.Context(), name, *req.Result)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fav, s.logger)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteFavorite(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShortcut(w http.ResponseWriter, r *http.Request) {
	var result domain.MealResult
	if err := decodeJSON(w, r, &result); err != nil {
		badRequest(w, "invalid JSON body", s.logger)
		return
	}
	writeJSON(w, http.StatusOK, s.service.ShortcutPayload(result), s.logger)
}
