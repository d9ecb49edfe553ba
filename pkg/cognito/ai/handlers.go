package ai

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles AI chat requests
type Handler struct {
	chatter Chatter
	tweets  *TweetFetcher
}

// NewHandler creates a new AI handler. The chatter may be nil when no
// Gemini API key is configured.
func NewHandler(chatter Chatter, tweets *TweetFetcher) *Handler {
	return &Handler{chatter: chatter, tweets: tweets}
}

// ChatRequest represents the chat request body
type ChatRequest struct {
	Message string    `json:"message" binding:"required"`
	History []Message `json:"history"`
}

// ChatResponse represents the chat response
type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// Chat relays a conversation to the model. If the message references a
// tweet, its text is fetched and appended as context; a failed fetch is
// not fatal, the message goes through without the extra context.
func (h *Handler) Chat(c *gin.Context) {
	if h.chatter == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI chat is not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	message := req.Message
	if tweetURL := ExtractTweetURL(req.Message); tweetURL != "" && h.tweets != nil {
		if tweetText, err := h.tweets.Fetch(c.Request.Context(), tweetURL); err == nil {
			message = req.Message + "\n\n[Referenced Tweet]\n" + tweetText + "\n"
		} else {
			log.Printf("ai: failed to fetch tweet %s: %v", tweetURL, err)
		}
	}

	response, err := h.chatter.Chat(c.Request.Context(), req.History, message)
	if err != nil {
		log.Printf("ai: chat request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get response from AI"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response: response,
		Sources:  []string{},
	})
}

// RegisterRoutes registers AI routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/chat", h.Chat)
}
