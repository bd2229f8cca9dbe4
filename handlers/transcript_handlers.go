package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"tubescribe/api-gateway/internal/youtube"
	"tubescribe/api-gateway/models"
	"tubescribe/api-gateway/utils"
)

var validate = validator.New()

// ExtractTranscriptRequest defines the expected JSON structure for transcript
// extraction.
type ExtractTranscriptRequest struct {
	YoutubeURL string `json:"youtubeUrl" validate:"required,url"`
}

// ExtractTranscript handles the full extraction pipeline: parse the video id,
// dedup against the store, fetch metadata, fetch caption segments in the
// video's detected language, normalize and persist.
// POST /api/extract-transcript
func (h *ApplicationHandler) ExtractTranscript(c *fiber.Ctx) error {
	payload := new(ExtractTranscriptRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	videoID, ok := youtube.ExtractVideoID(payload.YoutubeURL)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid YouTube URL")
	}

	existing, err := h.Store.GetTranscriptByVideoID(c.Context(), videoID)
	if err != nil {
		h.Logger.WithError(err).Error("Failed to look up transcript by video id")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to check for existing transcript")
	}
	if existing != nil {
		h.Logger.WithFields(logrus.Fields{
			"video_id":      videoID,
			"transcript_id": existing.ID,
		}).Info("Returning existing transcript")
		return c.JSON(existing)
	}

	// Metadata comes first: its detected language steers which caption track
	// the transcript provider fetches.
	meta, err := h.Metadata.FetchMetadata(c.Context(), videoID)
	if err != nil {
		h.Logger.WithField("video_id", videoID).WithError(err).Warn("Metadata fetch failed")
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	segments, err := h.Transcripts.FetchSegments(c.Context(), videoID, meta.Language)
	if err != nil {
		h.Logger.WithField("video_id", videoID).WithError(err).Warn("Transcript fetch failed")
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	data := youtube.BuildTranscript(payload.YoutubeURL, videoID, meta, segments)
	transcript, err := h.Store.CreateTranscript(c.Context(), data)
	if err != nil {
		h.Logger.WithField("video_id", videoID).WithError(err).Error("Failed to save transcript")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to save transcript")
	}

	h.Logger.WithFields(logrus.Fields{
		"video_id":      videoID,
		"transcript_id": transcript.ID,
		"segments":      len(transcript.Segments),
	}).Info("Transcript extracted successfully")
	return c.JSON(transcript)
}

// CreateTranscript stores a pre-built transcript payload. Bypass path used by
// an external ingestion job.
// POST /api/transcripts
func (h *ApplicationHandler) CreateTranscript(c *fiber.Ctx) error {
	payload := new(models.InsertTranscript)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	transcript, err := h.Store.CreateTranscript(c.Context(), *payload)
	if err != nil {
		h.Logger.WithError(err).Error("Failed to save transcript")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to save transcript")
	}
	return c.JSON(transcript)
}

// GetTranscript retrieves a stored transcript by id.
// GET /api/transcripts/:id
func (h *ApplicationHandler) GetTranscript(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid transcript ID")
	}

	transcript, err := h.Store.GetTranscript(c.Context(), id)
	if err != nil {
		h.Logger.WithField("transcript_id", id).WithError(err).Error("Failed to fetch transcript")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch transcript")
	}
	if transcript == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Transcript not found")
	}
	return c.JSON(transcript)
}

// GetTranscriptSummary returns the AI summary for a transcript, generating it
// on first request and serving the cached text afterwards.
// GET /api/transcripts/:id/summary
func (h *ApplicationHandler) GetTranscriptSummary(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid transcript ID")
	}

	transcript, err := h.Store.GetTranscript(c.Context(), id)
	if err != nil {
		h.Logger.WithField("transcript_id", id).WithError(err).Error("Failed to fetch transcript")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch transcript")
	}
	if transcript == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Transcript not found")
	}

	summary, err := h.Assistant.Summarize(c.Context(), transcript)
	if err != nil {
		h.Logger.WithField("transcript_id", id).WithError(err).Error("Summary generation failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"summary": summary})
}

// GetYouTubeData fetches video metadata without creating a transcript.
// GET /api/get-youtube-data?url=...
func (h *ApplicationHandler) GetYouTubeData(c *fiber.Ctx) error {
	videoURL := c.Query("url")
	if videoURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "url query parameter is required",
		})
	}

	videoID, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid YouTube URL",
		})
	}

	meta, err := h.Metadata.FetchMetadata(c.Context(), videoID)
	if err != nil {
		h.Logger.WithField("video_id", videoID).WithError(err).Warn("Metadata fetch failed")
		// Quota exhaustion and other upstream faults are not the caller's to
		// fix; only an unresolvable video id is.
		status := fiber.StatusInternalServerError
		if errors.Is(err, youtube.ErrVideoNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Video metadata retrieved successfully",
		"data":    meta,
	})
}
