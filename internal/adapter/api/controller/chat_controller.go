package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

// ChatController gerencia as conversas com o assistente via REST
type ChatController struct {
	conv           *conversation
	chatRepository chat.Repository
	log            logger.Logger
}

// NewChatController cria uma nova instância de ChatController
func NewChatController(engine *dialogue.Engine, chatRepository chat.Repository, log logger.Logger) *ChatController {
	return &ChatController{
		conv:           &conversation{engine: engine, history: chatRepository, log: log},
		chatRepository: chatRepository,
		log:            log,
	}
}

// SendMessage processa uma mensagem do usuário
// @Summary Envia uma mensagem ao assistente
// @Description Texto, botão ou formulário. Sem session_id uma nova sessão é criada.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message body dto.MessageRequest true "Mensagem"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /chat/message [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	id, ok := auth.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "auth failed: invalid", ""))
		return
	}

	var request dto.MessageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}
	if request.SessionID == "" {
		request.SessionID = uuid.New().String()
	}

	msgs := c.conv.turn(ctx.Request.Context(), id, request.SessionID, request.Event())
	ctx.JSON(http.StatusOK, dto.MessageResponse{
		SessionID: request.SessionID,
		Messages:  dto.ToOutboundList(msgs),
	})
}

// GetHistory retorna o histórico de conversa do usuário
// @Summary Histórico de conversa
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página (padrão 1)"
// @Param page_size query int false "Itens por página (padrão 50)"
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat/history [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
	id, ok := auth.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "auth failed: invalid", ""))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "50"))
	p := dto.GetPagination(page, pageSize)

	entries, err := c.chatRepository.GetUserHistory(ctx.Request.Context(), id.UserID, p.PageSize, p.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to load history", err.Error()))
		return
	}
	total, err := c.chatRepository.CountUserMessages(ctx.Request.Context(), id.UserID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to load history", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(entries, total, p))
}

// DeleteHistory apaga o histórico de conversa do usuário
// @Summary Apaga o histórico de conversa
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /chat/history [delete]
func (c *ChatController) DeleteHistory(ctx *gin.Context) {
	id, ok := auth.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "auth failed: invalid", ""))
		return
	}

	if err := c.chatRepository.DeleteUserHistory(ctx.Request.Context(), id.UserID); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to delete history", err.Error()))
		return
	}

	c.log.Info("chat history deleted", "user_id", id.UserID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("History deleted", nil))
}
