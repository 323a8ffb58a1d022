package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// SendMessageRequest is the request body for POST /messages.
type SendMessageRequest struct {
	ReceiverID string  `json:"receiver_id"`
	EventID    *string `json:"event_id"`
	Content    string  `json:"content"`
}

// Validate implements Validator.
func (s SendMessageRequest) Validate() []string {
	var errs []string
	if !helpers.IsUUID(s.ReceiverID) {
		errs = append(errs, "receiver_id must be a UUID")
	}
	if s.EventID != nil && !helpers.IsUUID(*s.EventID) {
		errs = append(errs, "event_id must be a UUID")
	}
	if blank(s.Content) {
		errs = append(errs, "content is required")
	}
	return errs
}

// UnreadCountResponse is returned by GET /messages/unread-count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// MessageSuccessResponse is the success envelope for a single message.
type MessageSuccessResponse struct {
	Data  *domain.Message   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MessageListSuccessResponse is the success envelope for message lists.
type MessageListSuccessResponse struct {
	Data  []*domain.Message `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ConversationListSuccessResponse is the success envelope for conversation lists.
type ConversationListSuccessResponse struct {
	Data  []*domain.Conversation `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// UnreadCountSuccessResponse is the success envelope for UnreadCountResponse.
type UnreadCountSuccessResponse struct {
	Data  UnreadCountResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// MessageController handles direct messages.
type MessageController struct {
	Logger  *slog.Logger
	Service domain.MessageService
}

// NewMessageController creates a MessageController with the given logger and service.
func NewMessageController(logger *slog.Logger, svc domain.MessageService) *MessageController {
	return &MessageController{Logger: logger, Service: svc}
}

// ListMessages godoc
// @Summary List my messages
// @Description Sent and received, newest first.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MessageListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /messages [get]
func (c *MessageController) ListMessages(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	msgs, err := c.Service.ListMessages(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msgs)
}

// Conversations godoc
// @Summary List my conversations
// @Description Messages grouped by counterpart, most recently active first.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConversationListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /messages/conversations [get]
func (c *MessageController) Conversations(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	convs, err := c.Service.Conversations(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, convs)
}

// Conversation godoc
// @Summary Get the conversation with another user
// @Description Oldest first.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userID path string true "Counterpart user ID (UUID)"
// @Success 200 {object} controllers.MessageListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /messages/with/{userID} [get]
func (c *MessageController) Conversation(w http.ResponseWriter, r *http.Request) {
	otherID, ok := helpers.PathUUID(w, r, "userID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	msgs, err := c.Service.Conversation(r.Context(), actor, otherID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msgs)
}

// UnreadCount godoc
// @Summary Count my unread messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UnreadCountSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /messages/unread-count [get]
func (c *MessageController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	n, err := c.Service.UnreadCount(r.Context(), actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UnreadCountResponse{Unread: n})
}

// Send godoc
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendMessageRequest true "Message"
// @Success 201 {object} controllers.MessageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (receiver)"
// @Router /messages [post]
func (c *MessageController) Send(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req SendMessageRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	msg := &domain.Message{ReceiverID: req.ReceiverID, EventID: req.EventID, Content: req.Content}
	if err := c.Service.Send(r.Context(), actor, msg); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, msg)
}

// MarkRead godoc
// @Summary Mark a message as read
// @Description Only the receiver may mark a message read.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param messageID path string true "Message ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /messages/{messageID}/read [post]
func (c *MessageController) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID, ok := helpers.PathUUID(w, r, "messageID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	msg, err := c.Service.MarkRead(r.Context(), actor, messageID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, msg)
}

// DeleteMessage godoc
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param messageID path string true "Message ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /messages/{messageID} [delete]
func (c *MessageController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID, ok := helpers.PathUUID(w, r, "messageID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteMessage(r.Context(), actor, messageID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
