package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/mealai/internal/domain"
)

type thumbnailPayload struct {
	Data []byte `json:"data"`
}

type saveHistoryRequest struct {
	Result    *domain.MealResult `json:"result"`
	Thumbnail *thumbnailPayload  `json:"thumbnail,omitempty"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListHistory(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []*domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries, s.logger)
}

func (s *Server) handleSaveHistory(w http.ResponseWriter, r *http.Request) {
	var req saveHistoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, "invalid JSON body", s.logger)
		return
	}
	if req.Result == nil {
		badRequest(w, "result is required", s.logger)
		return
	}

	var thumbnail *domain.Image
	if req.Thumbnail != nil && len(req.Thumbnail.Data) > 0 {
		mimeType, ok := allowedImageMIME(req.Thumbnail.Data)
		if !ok {
			s.writeError(w, unsupportedImage("thumbnail"))
			return
		}
		thumbnail = &domain.Image{Data: req.Thumbnail.Data, MimeType: mimeType}
	}

	entry, err := s.service.SaveHistory(r.Context(), *req.Result, thumbnail)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry, s.logger)
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteHistory(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetThumbnail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	img, err := s.service.Thumbnail(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", img.MimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := w.Write(img.Data); err != nil {
		s.logger.Error("write thumbnail failed", "id", id, "error", err)
	}
}
