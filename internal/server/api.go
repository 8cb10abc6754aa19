package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/download"
	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/storage"
)

// API holds the HTTP handlers.
type API struct {
	registry *Registry
	store    storage.Store
	hub      *Hub
}

type analyzeRequest struct {
	URL string `json:"url"`
}

type sessionResponse struct {
	ID          string          `json:"id"`
	State       model.RunState  `json:"state"`
	Downloading bool            `json:"downloading"`
	Playlist    *model.Playlist `json:"playlist"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// HealthCheck reports liveness
func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"sessions":  a.registry.Len(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CreateSession starts a new session
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.registry.Create()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, model.KindInternal, err.Error())
		return
	}
	logger.WithContext(r.Context()).Info("Session created", "session_id", session.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": session.ID})
}

// GetSession returns the session state. ?q= filters videos by fuzzy title
// match; videoCount then counts the matches.
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	playlist := session.Playlist()
	if q := r.URL.Query().Get("q"); q != "" && playlist != nil {
		playlist.Videos = FilterVideos(playlist.Videos, q)
		playlist.VideoCount = len(playlist.Videos)
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		ID:          session.ID,
		State:       session.State(),
		Downloading: session.IsDownloading(),
		Playlist:    playlist,
	})
}

// DeleteSession closes a session and removes its files
func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !a.registry.Remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, model.KindInternal, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Analyze validates the posted URL and synthesizes a playlist
func (a *API) Analyze(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.KindInternal, "invalid request body")
		return
	}

	playlist, err := session.Analyze(r.Context(), req.URL)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, playlist)
	case model.IsValidationError(err):
		writeError(w, http.StatusBadRequest, model.ErrorKind(err), model.UserMessage(err))
	default:
		writeError(w, http.StatusServiceUnavailable, model.KindInternal, err.Error())
	}
}

// StartDownload starts the pipeline
func (a *API) StartDownload(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	if err := session.StartDownload(); err != nil {
		a.controlError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"state": session.State()})
}

// Cancel stops a running download
func (a *API) Cancel(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	if err := session.Cancel(); err != nil {
		a.controlError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": session.State(), "playlist": session.Playlist()})
}

// Reset discards the session's playlist
func (a *API) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}
	session.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// GetFile serves a saved stand-in file
func (a *API) GetFile(w http.ResponseWriter, r *http.Request) {
	session, ok := a.session(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	data, err := a.store.Read(r.Context(), session.ID, name)
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		writeError(w, http.StatusBadRequest, model.KindInternal, err.Error())
		return
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, model.KindInternal, err.Error())
		return
	case err != nil:
		logger.WithContext(r.Context()).Error("Read stored file failed", "session_id", session.ID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, model.KindInternal, "failed to read file")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (a *API) session(w http.ResponseWriter, r *http.Request) (*download.Session, bool) {
	session, ok := a.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, model.KindInternal, "session not found")
	}
	return session, ok
}

func (a *API) controlError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNoPlaylist), errors.Is(err, model.ErrAlreadyRunning), errors.Is(err, model.ErrNotRunning):
		writeError(w, http.StatusConflict, model.ErrorKind(err), err.Error())
	default:
		writeError(w, http.StatusInternalServerError, model.KindInternal, err.Error())
	}
}

// FilterVideos keeps the videos whose title fuzzily matches q, case-insensitively.
func FilterVideos(videos []*model.Video, q string) []*model.Video {
	filtered := make([]*model.Video, 0, len(videos))
	for _, video := range videos {
		if fuzzy.MatchFold(q, video.Title) {
			filtered = append(filtered, video)
		}
	}
	return filtered
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Logger.Warn("Encode response failed", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Kind: kind, Message: message})
}
