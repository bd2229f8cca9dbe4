package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"tubescribe/api-gateway/utils"
)

// ChatRequest defines the expected JSON structure for a chat turn.
type ChatRequest struct {
	TranscriptID int    `json:"transcriptId" validate:"required"`
	Message      string `json:"message" validate:"required"`
}

// PostChatMessage answers one user question grounded in a stored transcript
// and appends the turn to its chat history.
// POST /api/chat
func (h *ApplicationHandler) PostChatMessage(c *fiber.Ctx) error {
	payload := new(ChatRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	transcript, err := h.Store.GetTranscript(c.Context(), payload.TranscriptID)
	if err != nil {
		h.Logger.WithField("transcript_id", payload.TranscriptID).WithError(err).Error("Failed to fetch transcript")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch transcript")
	}
	if transcript == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Transcript not found")
	}

	turn, err := h.Assistant.Chat(c.Context(), transcript, payload.Message)
	if err != nil {
		h.Logger.WithField("transcript_id", payload.TranscriptID).WithError(err).Error("Chat turn failed")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}

	h.Logger.WithFields(logrus.Fields{
		"transcript_id": payload.TranscriptID,
		"chat_id":       turn.ID,
	}).Info("Chat turn completed")
	return c.JSON(turn)
}

// ListChatMessages returns a transcript's chat history in creation order.
// GET /api/transcripts/:id/chat
func (h *ApplicationHandler) ListChatMessages(c *fiber.Ctx) error {
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

	turns, err := h.Store.ListChatMessages(c.Context(), id)
	if err != nil {
		h.Logger.WithField("transcript_id", id).WithError(err).Error("Failed to list chat messages")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch chat history")
	}
	return c.JSON(turns)
}
