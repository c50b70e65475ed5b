// Package dialogue decide, para cada evento de uma sessão, qual visão mostrar,
// qual ação executar sob RBAC ou quando consultar o modelo de linguagem.
package dialogue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/activity"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/alert"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/faq"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/report"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

// DefaultSpecificityWords é o número de palavras a partir do qual uma pergunta
// classificada é considerada específica e vai para o sintetizador
const DefaultSpecificityWords = 3

// Repositories agrupa as fontes de dados usadas pelo diálogo
type Repositories struct {
	Devices   device.Repository
	Merchants merchant.Repository
	Alerts    alert.Repository
	Reports   report.Repository
	FAQ       faq.Repository
	Activity  activity.Repository
	Tenants   tenant.Repository
}

// Engine é o motor de diálogo
type Engine struct {
	registry    *capability.Registry
	repos       Repositories
	sessions    *session.Store
	classifier  llm.Classifier
	synthesizer llm.Synthesizer
	model       string
	specificity int
	log         logger.Logger
	now         func() time.Time
	newID       func() string
}

// Option configura o Engine
type Option func(*Engine)

// WithClassifier habilita a classificação por modelo
func WithClassifier(c llm.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithSynthesizer habilita respostas sintetizadas
func WithSynthesizer(s llm.Synthesizer) Option {
	return func(e *Engine) { e.synthesizer = s }
}

// WithModelName define o nome do modelo informado nos metadados
func WithModelName(name string) Option {
	return func(e *Engine) { e.model = name }
}

// WithSpecificityWords ajusta a heurística de especificidade
func WithSpecificityWords(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.specificity = n
		}
	}
}

// WithLogger define o logger
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock substitui o relógio, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine cria o motor. Falha se alguma capacidade usada pelas rotas não estiver registrada.
func NewEngine(registry *capability.Registry, repos Repositories, sessions *session.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		registry:    registry,
		repos:       repos,
		sessions:    sessions,
		specificity: DefaultSpecificityWords,
		log:         logger.NewNop(),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := registry.Require(referencedCapabilities()...); err != nil {
		return nil, fmt.Errorf("dialogue: %w", err)
	}
	return e, nil
}

// turn é o processamento de um evento
type turn struct {
	ctx    context.Context
	caller Caller
	event  Event
	prev   session.State
	next   session.State
}

func (t *turn) await(st session.State) { t.next = st }

// reply é o resultado de uma rota antes de virar mensagem
type reply struct {
	msg        chat.Message
	tool       string
	args       map[string]string
	blocked    bool
	confidence string
	operation  string
	model      string
	typing     bool
}

// Process trata um evento da sessão e devolve as mensagens de saída em ordem.
// Nunca entra em pânico nem devolve erro: falhas viram mensagens.
func (e *Engine) Process(ctx context.Context, sessionID string, caller Caller, ev Event) (out []chat.Message) {
	start := e.now()
	lease := e.sessions.Acquire(sessionID)
	defer lease.Release()

	t := &turn{ctx: ctx, caller: caller, event: ev, prev: lease.State()}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("dialogue panic",
				"session_id", sessionID,
				"user_id", caller.UserID,
				"event", ev.Kind.String(),
				"panic", fmt.Sprint(r),
			)
			lease.Set(session.State{})
			out = []chat.Message{e.apology(caller, start)}
		}
	}()

	r, err := e.dispatch(t)
	if err != nil {
		e.log.Error("dialogue failure",
			"session_id", sessionID,
			"user_id", caller.UserID,
			"event", ev.Kind.String(),
			"kind", failureKind(err),
			"error", err,
		)
		lease.Set(session.State{})
		return []chat.Message{e.apology(caller, start)}
	}

	lease.Set(t.next)
	return e.render(r, caller, start)
}

func (e *Engine) render(r reply, caller Caller, start time.Time) []chat.Message {
	if r.confidence == "" {
		r.confidence = chat.ConfidenceDeterministic
	}

	md := &chat.Metadata{
		ToolUsed:    r.tool,
		ToolArgs:    r.args,
		RBACBlocked: r.blocked,
		Confidence:  r.confidence,
		LatencyMS:   e.now().Sub(start).Milliseconds(),
		Model:       r.model,
		UserRole:    caller.Role.String(),
		OperationID: r.operation,
	}
	chat.SetMetadata(r.msg, md)

	if r.typing {
		return []chat.Message{&chat.Typing{Active: true}, &chat.Typing{Active: false}, r.msg}
	}
	return []chat.Message{r.msg}
}

func (e *Engine) apology(caller Caller, start time.Time) chat.Message {
	return &chat.Text{
		Content: "😵 Sorry, something went wrong on our side. Let's start again from the menu.",
		Buttons: []chat.Button{btnMenu},
		Metadata: &chat.Metadata{
			Confidence: chat.ConfidenceDeterministic,
			LatencyMS:  e.now().Sub(start).Milliseconds(),
			UserRole:   caller.Role.String(),
		},
	}
}

// authorize verifica a capacidade para o papel da requisição atual
func (e *Engine) authorize(t *turn, name string) (reply, bool) {
	if e.registry.Authorize(name, t.caller.Role) {
		return reply{}, true
	}

	e.log.Warn("access denied",
		"user_id", t.caller.UserID,
		"role", t.caller.Role.String(),
		"capability", name,
	)
	return reply{
		msg: &chat.Text{
			Content: fmt.Sprintf("🚫 Access denied: `%s` is not available for role **%s**.", name, t.caller.Role),
			Buttons: []chat.Button{btnMenu},
		},
		tool:    name,
		blocked: true,
	}, false
}

func (e *Engine) can(t *turn, name string) bool {
	return e.registry.Authorize(name, t.caller.Role)
}

// audit registra uma mutação bem sucedida e devolve o id da operação
func (e *Engine) audit(t *turn, action, target string) string {
	id := e.newID()
	err := e.repos.Activity.Record(t.ctx, &activity.Entry{
		User:        t.caller.actor(),
		Action:      action,
		Target:      target,
		OperationID: id,
		Timestamp:   e.now(),
	})
	if err != nil {
		e.log.Warn("activity record failed", "operation_id", id, "error", err)
	}
	e.log.Info("mutation applied",
		"user_id", t.caller.UserID,
		"action", action,
		"target", target,
		"operation_id", id,
	)
	return id
}
