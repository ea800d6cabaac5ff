package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akostin-dev/vidhost/internal/api/middleware"
	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/usecase"
)

// Request/Response types

type AddVideoRequest struct {
	Name     string `json:"name"`
	FileName string `json:"file_name,omitempty"`
}

type AddVideoResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	UploadURL string `json:"upload_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

type VideoResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	ViewCount int64  `json:"view_count"`
	CreatedAt string `json:"created_at"`
}

type VideoDetailResponse struct {
	VideoResponse
	Likes       int64  `json:"likes"`
	Dislikes    int64  `json:"dislikes"`
	MyStance    string `json:"my_stance"`
	PlaybackURL string `json:"playback_url,omitempty"`
}

type ReactionResponse struct {
	VideoID string `json:"video_id"`
	Stance  string `json:"stance"`
}

type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
}

// VideoHandler handles video engagement HTTP requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Routes mounts the engagement endpoints on the router.
func (h *VideoHandler) Routes(r chi.Router) {
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Post("/", h.Add)
		r.Get("/liked", h.Liked)
		r.Get("/disliked", h.Disliked)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Remove)
			r.Post("/views", h.AddView)
			r.Put("/like", h.PutLike)
			r.Put("/dislike", h.PutDislike)
		})
	})
	r.Get("/feed", h.Feed)
	r.Get("/users/{userID}/videos", h.VideosOfUser)
}

// Add handles POST /v1/videos
func (h *VideoHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req AddVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	output, err := h.svc.AddVideo(r.Context(), usecase.AddVideoInput{
		OwnerID:  userID,
		Name:     req.Name,
		FileName: req.FileName,
	})
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, AddVideoResponse{
		ID:        output.Video.ID.String(),
		OwnerID:   output.Video.OwnerID,
		Name:      output.Video.Name,
		UploadURL: output.UploadURL,
		CreatedAt: output.Video.CreatedAt.Format(time.RFC3339),
	})
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.GetVideoByID(r.Context(), videoID, middleware.GetUserID(r.Context()))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoDetailResponse{
		VideoResponse: toVideoResponse(detail.Video),
		Likes:         detail.Likes,
		Dislikes:      detail.Dislikes,
		MyStance:      string(detail.Stance),
		PlaybackURL:   detail.PlaybackURL,
	})
}

// Remove handles DELETE /v1/videos/{id}
func (h *VideoHandler) Remove(w http.ResponseWriter, r *http.Request) {
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveVideo(r.Context(), videoID); err != nil {
		ServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddView handles POST /v1/videos/{id}/views
func (h *VideoHandler) AddView(w http.ResponseWriter, r *http.Request) {
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.AddView(r.Context(), videoID); err != nil {
		ServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PutLike handles PUT /v1/videos/{id}/like
func (h *VideoHandler) PutLike(w http.ResponseWriter, r *http.Request) {
	h.putReaction(w, r, model.KindLike)
}

// PutDislike handles PUT /v1/videos/{id}/dislike
func (h *VideoHandler) PutDislike(w http.ResponseWriter, r *http.Request) {
	h.putReaction(w, r, model.KindDislike)
}

func (h *VideoHandler) putReaction(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	var (
		stance model.Stance
		err    error
	)
	if kind == model.KindLike {
		stance, err = h.svc.PutLike(r.Context(), videoID, userID)
	} else {
		stance, err = h.svc.PutDislike(r.Context(), videoID, userID)
	}
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, ReactionResponse{
		VideoID: videoID.String(),
		Stance:  string(stance),
	})
}

// Search handles GET /v1/videos?name=substr
func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		Error(w, http.StatusBadRequest, "missing_name", "Query parameter 'name' is required")
		return
	}

	videos, err := h.svc.GetVideosByName(r.Context(), name, middleware.GetUserID(r.Context()))
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoListResponse(videos))
}

// Feed handles GET /v1/feed
func (h *VideoHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	videos, err := h.svc.GetSubscriptionFeed(r.Context(), userID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoListResponse(videos))
}

// Liked handles GET /v1/videos/liked
func (h *VideoHandler) Liked(w http.ResponseWriter, r *http.Request) {
	h.reactedList(w, r, h.svc.GetLikedVideos)
}

// Disliked handles GET /v1/videos/disliked
func (h *VideoHandler) Disliked(w http.ResponseWriter, r *http.Request) {
	h.reactedList(w, r, h.svc.GetDislikedVideos)
}

func (h *VideoHandler) reactedList(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID string) ([]*model.Video, error),
) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	videos, err := list(r.Context(), userID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoListResponse(videos))
}

// VideosOfUser handles GET /v1/users/{userID}/videos
func (h *VideoHandler) VideosOfUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		Error(w, http.StatusBadRequest, "invalid_user_id", "User ID is required")
		return
	}

	videos, err := h.svc.GetVideosOfUser(r.Context(), userID)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoListResponse(videos))
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "missing_identity", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func videoIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return uuid.Nil, false
	}
	return videoID, true
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:        v.ID.String(),
		OwnerID:   v.OwnerID,
		Name:      v.Name,
		ViewCount: v.ViewCount,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
}

func toVideoListResponse(videos []*model.Video) VideoListResponse {
	out := VideoListResponse{Videos: make([]VideoResponse, 0, len(videos))}
	for _, v := range videos {
		out.Videos = append(out.Videos, toVideoResponse(v))
	}
	return out
}
