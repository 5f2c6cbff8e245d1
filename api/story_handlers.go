package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	storyservice "github.com/storyweave/storyweave-backend/app/modules/story/application"
	storydb "github.com/storyweave/storyweave-backend/app/modules/story/infrastructure/repositories"
	"github.com/storyweave/storyweave-backend/app/shared/results"
)

// StoryHandler serves the story routes.
type StoryHandler struct {
	service storyservice.Service
	logger  *slog.Logger
}

// NewStoryHandler creates a StoryHandler.
func NewStoryHandler(service storyservice.Service, logger *slog.Logger) *StoryHandler {
	return &StoryHandler{service: service, logger: logger}
}

type createStoryRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Mature   bool     `json:"mature"`
}

// Create handles POST /stories.
func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.CreateStory(r.Context(), storyservice.CreateStoryInput{
		AuthorID: callerID(r),
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
		Tags:     req.Tags,
		Mature:   req.Mature,
	})
	h.respondStoryResult(w, r, result, err, http.StatusCreated)
}

type updateStoryRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	Category      *string  `json:"category"`
	Tags          []string `json:"tags"`
	Mature        *bool    `json:"mature"`
	AllowComments *bool    `json:"allowComments"`
}

// Update handles PUT /stories/{storyID}.
func (h *StoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	var req updateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.UpdateStory(r.Context(), storyID, callerID(r), storyservice.UpdateStoryInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Category:      req.Category,
		Tags:          req.Tags,
		Mature:        req.Mature,
		AllowComments: req.AllowComments,
	})
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// Delete handles DELETE /stories/{storyID}.
func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	result, err := h.service.DeleteStory(r.Context(), storyID, callerID(r))
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// Publish handles POST /stories/{storyID}/publish.
func (h *StoryHandler) Publish(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	result, err := h.service.PublishStory(r.Context(), storyID, callerID(r))
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// Unpublish handles POST /stories/{storyID}/unpublish.
func (h *StoryHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	result, err := h.service.UnpublishStory(r.Context(), storyID, callerID(r))
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// Like handles POST /stories/{storyID}/like.
func (h *StoryHandler) Like(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	result, err := h.service.ToggleLike(r.Context(), storyID, callerID(r))
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// Dislike handles POST /stories/{storyID}/dislike.
func (h *StoryHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	result, err := h.service.ToggleDislike(r.Context(), storyID, callerID(r))
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// View handles POST /stories/{storyID}/view. Anonymous readers count too.
func (h *StoryHandler) View(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathUUID(w, r, "storyID")
	if !ok {
		return
	}
	result, err := h.service.RecordView(r.Context(), storyID, callerID(r))
	h.respondStoryResult(w, r, result, err, http.StatusOK)
}

// GetBySlug handles GET /stories/slug/{slug}.
func (h *StoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	story, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, storydb.ErrStoryNotFound) {
			respondError(w, http.StatusNotFound, "story not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "Failed to load story", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to load story")
		return
	}
	if !story.IsPublished() && !selfOrAdmin(r, story.AuthorID) {
		respondError(w, http.StatusNotFound, "story not found")
		return
	}
	respond(w, http.StatusOK, story)
}

// List handles GET /stories, returning published stories only.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	stories, err := h.service.ListPublished(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to list stories", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, "failed to list stories")
		return
	}

	respond(w, http.StatusOK, PagedData{
		Items:      stories,
		Pagination: Pagination{Page: page, Limit: limit, Count: len(stories)},
	})
}

// respondStoryResult maps a story OperationResult onto HTTP status codes.
func (h *StoryHandler) respondStoryResult(w http.ResponseWriter, r *http.Request, result results.OperationResult, err error, successCode int) {
	if vErr, ok := result.Failure.(*storyservice.ValidationError); ok {
		respondError(w, http.StatusBadRequest, vErr.Error())
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, storydb.ErrStoryNotFound):
			respondError(w, http.StatusNotFound, "story not found")
		case errors.Is(err, storydb.ErrNotAuthor):
			respondError(w, http.StatusForbidden, "only the author can do that")
		default:
			h.logger.ErrorContext(r.Context(), "Story operation failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "story operation failed")
		}
		return
	}
	respond(w, successCode, result.Success)
}
