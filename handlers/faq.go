package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campuscare/models"
	"campuscare/services/faq"
	"campuscare/utils"
)

// FAQHandler exposes admin management of the FAQ knowledge base.
type FAQHandler struct {
	Store  *faq.Store
	Logger *zap.Logger
}

// NewFAQHandler creates an FAQ handler.
func NewFAQHandler(store *faq.Store, logger *zap.Logger) *FAQHandler {
	return &FAQHandler{Store: store, Logger: logger}
}

// List handles GET /api/faqs.
func (h *FAQHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.All())
}

// Create handles POST /api/faqs (admin).
func (h *FAQHandler) Create(c *gin.Context) {
	var entry models.FAQ
	if err := c.ShouldBindJSON(&entry); err != nil || entry.Question == "" || entry.Answer == "" {
		utils.JSONError(c, http.StatusBadRequest, "question and answer are required", "")
		return
	}

	if err := h.Store.Add(entry); err != nil {
		h.Logger.Error("failed to add FAQ entry", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save FAQ", "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "FAQ added"})
}

// Replace handles PUT /api/faqs (admin): swaps in the whole list at
// once, the editing model the admin UI uses.
func (h *FAQHandler) Replace(c *gin.Context) {
	var faqs []models.FAQ
	if err := c.ShouldBindJSON(&faqs); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "expected an array of FAQ entries", "")
		return
	}
	for _, entry := range faqs {
		if entry.Question == "" || entry.Answer == "" {
			utils.JSONError(c, http.StatusBadRequest, "every entry needs a question and an answer", "")
			return
		}
	}

	if err := h.Store.ReplaceAll(faqs); err != nil {
		h.Logger.Error("failed to replace FAQ list", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save FAQs", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FAQs replaced", "count": len(faqs)})
}

// Update handles PUT /api/faqs/:index (admin).
func (h *FAQHandler) Update(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid index", "")
		return
	}

	var entry models.FAQ
	if err := c.ShouldBindJSON(&entry); err != nil || entry.Question == "" || entry.Answer == "" {
		utils.JSONError(c, http.StatusBadRequest, "question and answer are required", "")
		return
	}

	if err := h.Store.UpdateAt(index, entry); err != nil {
		if errors.Is(err, faq.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "FAQ not found", "")
			return
		}
		h.Logger.Error("failed to update FAQ entry", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save FAQ", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FAQ updated"})
}

// Delete handles DELETE /api/faqs/:index (admin).
func (h *FAQHandler) Delete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid index", "")
		return
	}

	if err := h.Store.RemoveAt(index); err != nil {
		if errors.Is(err, faq.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "FAQ not found", "")
			return
		}
		h.Logger.Error("failed to delete FAQ entry", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save FAQ", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FAQ deleted"})
}
