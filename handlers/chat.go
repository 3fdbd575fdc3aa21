package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/services/chat"
	"campuscare/services/faq"
	"campuscare/utils"
)

// ChatHandler exposes the FAQ chat widget endpoints.
type ChatHandler struct {
	Service chat.ChatService
	FAQs    *faq.Store
	Logger  *zap.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(service chat.ChatService, faqs *faq.Store, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Service: service, FAQs: faqs, Logger: logger}
}

// Send handles POST /api/chat/send.
func (h *ChatHandler) Send(c *gin.Context) {
	var body struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" {
		utils.JSONError(c, http.StatusBadRequest, "message is required", "")
		return
	}

	// Prefer the authenticated identity over a caller-supplied one.
	if caller := callerFrom(c); caller.Authenticated() {
		body.UserID = caller.ID
	}

	reply, err := h.Service.Send(c.Request.Context(), body.Message, body.UserID)
	if err != nil {
		h.Logger.Error("failed to process chat message", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process message", "")
		return
	}
	c.JSON(http.StatusOK, reply)
}

// Feedback handles POST /api/chat/feedback.
func (h *ChatHandler) Feedback(c *gin.Context) {
	var body struct {
		Question   string `json:"question"`
		WasHelpful bool   `json:"wasHelpful"`
		UserID     string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Question == "" {
		utils.JSONError(c, http.StatusBadRequest, "question is required", "")
		return
	}

	if err := h.Service.Feedback(c.Request.Context(), body.Question, body.WasHelpful, body.UserID); err != nil {
		h.Logger.Error("failed to save chat feedback", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save feedback", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback recorded"})
}

// Reset handles POST /api/chat/reset (authenticated): clears the
// caller's rolling conversation context.
func (h *ChatHandler) Reset(c *gin.Context) {
	caller := callerFrom(c)
	if !caller.Authenticated() {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
		return
	}

	if err := h.Service.ResetContext(c.Request.Context(), caller.ID); err != nil {
		h.Logger.Error("failed to reset chat context", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to reset conversation", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation reset"})
}

// Questions handles GET /api/chat/faqs — just the question strings for
// the widget's autocomplete.
func (h *ChatHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, h.FAQs.Questions())
}

// QuestionStats handles GET /api/chat/stats (admin).
func (h *ChatHandler) QuestionStats(c *gin.Context) {
	stats, err := h.Service.QuestionStats(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to fetch question stats", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch stats", "")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// FeedbackStats handles GET /api/chat/feedback/stats (admin).
func (h *ChatHandler) FeedbackStats(c *gin.Context) {
	stats, err := h.Service.FeedbackStats(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to fetch feedback stats", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch feedback stats", "")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// EmotionStats handles GET /api/chat/emotions (admin).
func (h *ChatHandler) EmotionStats(c *gin.Context) {
	stats, err := h.Service.EmotionStats(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to fetch emotion stats", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch emotion stats", "")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ClearStats handles DELETE /api/chat/stats (admin).
func (h *ChatHandler) ClearStats(c *gin.Context) {
	if err := h.Service.ClearStats(c.Request.Context()); err != nil {
		h.Logger.Error("failed to clear chat analytics", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to clear analytics", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analytics cleared"})
}
