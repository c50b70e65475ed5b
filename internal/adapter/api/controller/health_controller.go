package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker verifica uma dependência externa, como o banco de dados
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthResponse representa o estado do serviço
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Sessions  int               `json:"sessions"`
	Model     string            `json:"model"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthController responde às verificações de saúde
type HealthController struct {
	model    string
	sessions func() int
	checks   map[string]HealthChecker
}

// NewHealthController cria uma nova instância de HealthController.
// model vazio indica que o assistente roda apenas com respostas fixas.
func NewHealthController(model string, sessions func() int, checks map[string]HealthChecker) *HealthController {
	if model == "" {
		model = "none"
	}
	return &HealthController{model: model, sessions: sessions, checks: checks}
}

// Check informa se o serviço está saudável
// @Summary Verificação de saúde
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Sessions:  c.sessions(),
		Model:     c.model,
	}
	status := http.StatusOK

	if len(c.checks) > 0 {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		resp.Checks = make(map[string]string, len(c.checks))
		for name, checker := range c.checks {
			if err := checker.Ping(checkCtx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	ctx.JSON(status, resp)
}
