package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/http/response"
)

// Item photos are content-addressed by item ID and change only through the
// API, so clients may cache them briefly.
const imageCacheControl = "private, max-age=300"

func (s *Server) handleItemImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	data, err := s.services.Closet.Photo(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	serveImage(w, data)
}

func (s *Server) handleItemThumbnail(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required", s.logger)
		return
	}

	data, err := s.services.Closet.Thumbnail(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	serveImage(w, data)
}

func serveImage(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", imageCacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
