package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

// FormSubmitRequest representa o envio de um formulário
type FormSubmitRequest struct {
	FormID string            `json:"form_id"`
	Fields map[string]string `json:"fields"`
}

// MessageRequest representa uma mensagem enviada ao assistente via REST
type MessageRequest struct {
	SessionID  string             `json:"session_id"`
	Text       string             `json:"text"`
	ButtonData string             `json:"button_data"`
	FormSubmit *FormSubmitRequest `json:"form_submit,omitempty"`
}

// Event converte a requisição em evento do diálogo
func (r MessageRequest) Event() dialogue.Event {
	var form *dialogue.FormSubmission
	if r.FormSubmit != nil {
		form = &dialogue.FormSubmission{FormID: r.FormSubmit.FormID, Fields: r.FormSubmit.Fields}
	}
	return dialogue.NewEvent(r.Text, r.ButtonData, form)
}

// Envelope é a mensagem recebida pelo websocket. Aceita também os nomes
// antigos "token", "message", "form_name" e "form_data".
type Envelope struct {
	Text       string             `json:"text"`
	Message    string             `json:"message"`
	ButtonData string             `json:"button_data"`
	FormSubmit *FormSubmitRequest `json:"form_submit,omitempty"`
	AuthToken  string             `json:"auth_token"`
	Token      string             `json:"token"`
	Type       string             `json:"type"`
	FormName   string             `json:"form_name"`
	FormData   map[string]string  `json:"form_data"`
}

// ParseEnvelope interpreta um quadro do websocket. Texto que não é JSON vira mensagem de texto.
func ParseEnvelope(raw []byte) Envelope {
	var env Envelope
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") || json.Unmarshal(raw, &env) != nil {
		return Envelope{Text: trimmed}
	}
	return env
}

// Credential retorna o token informado no envelope
func (e Envelope) Credential() string {
	if e.AuthToken != "" {
		return e.AuthToken
	}
	return e.Token
}

// Event converte o envelope em evento do diálogo
func (e Envelope) Event() dialogue.Event {
	form := e.FormSubmit
	if form == nil && e.Type == "form_submit" && e.FormName != "" {
		form = &FormSubmitRequest{FormID: e.FormName, Fields: e.FormData}
	}
	text := e.Text
	if text == "" {
		text = e.Message
	}
	return MessageRequest{Text: text, ButtonData: e.ButtonData, FormSubmit: form}.Event()
}

// ButtonDTO representa um botão
type ButtonDTO struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// CardDTO representa um cartão
type CardDTO struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle,omitempty"`
	Fields   []string    `json:"fields,omitempty"`
	Buttons  []ButtonDTO `json:"buttons,omitempty"`
}

// OptionDTO representa uma opção de select
type OptionDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormFieldDTO representa um campo de formulário
type FormFieldDTO struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Type        string      `json:"type"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required"`
	Options     []OptionDTO `json:"options,omitempty"`
}

// MetadataDTO acompanha a mensagem principal de cada turno
type MetadataDTO struct {
	ToolUsed    string            `json:"tool_used,omitempty"`
	ToolArgs    map[string]string `json:"tool_args,omitempty"`
	RBACBlocked bool              `json:"rbac_blocked"`
	Confidence  string            `json:"confidence"`
	LatencyMS   int64             `json:"latency_ms"`
	Model       string            `json:"model,omitempty"`
	UserRole    string            `json:"user_role"`
	OperationID string            `json:"operation_id,omitempty"`
}

// OutboundMessage é a forma JSON de uma mensagem de saída, identificada por "type"
type OutboundMessage struct {
	Type        chat.Kind      `json:"type"`
	Content     string         `json:"content,omitempty"`
	Buttons     []ButtonDTO    `json:"buttons,omitempty"`
	Cards       []CardDTO      `json:"cards,omitempty"`
	FormID      string         `json:"form_id,omitempty"`
	Title       string         `json:"title,omitempty"`
	Notice      string         `json:"notice,omitempty"`
	Fields      []FormFieldDTO `json:"fields,omitempty"`
	SubmitLabel string         `json:"submit_label,omitempty"`
	Status      *bool          `json:"status,omitempty"`
	Code        int            `json:"code,omitempty"`
	Message     string         `json:"message,omitempty"`
	Metadata    *MetadataDTO   `json:"metadata,omitempty"`
}

// MessageResponse representa a resposta de um turno via REST
type MessageResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []OutboundMessage `json:"messages"`
}

// ToOutbound converte uma mensagem do diálogo para o formato do cliente
func ToOutbound(m chat.Message) OutboundMessage {
	out := OutboundMessage{Type: m.Kind()}
	switch v := m.(type) {
	case *chat.Text:
		out.Content = v.Content
		out.Buttons = toButtons(v.Buttons)
		out.Metadata = toMetadata(v.Metadata)
	case *chat.Cards:
		out.Content = v.Content
		out.Buttons = toButtons(v.Buttons)
		out.Metadata = toMetadata(v.Metadata)
		out.Cards = make([]CardDTO, 0, len(v.Cards))
		for _, c := range v.Cards {
			out.Cards = append(out.Cards, CardDTO{Title: c.Title, Subtitle: c.Subtitle, Fields: c.Fields, Buttons: toButtons(c.Buttons)})
		}
	case *chat.Form:
		out.FormID = v.FormID
		out.Title = v.Title
		out.Notice = v.Notice
		out.SubmitLabel = v.SubmitLabel
		out.Buttons = toButtons(v.Buttons)
		out.Metadata = toMetadata(v.Metadata)
		out.Fields = make([]FormFieldDTO, 0, len(v.Fields))
		for _, f := range v.Fields {
			field := FormFieldDTO{Name: f.Name, Label: f.Label, Type: f.Type, Placeholder: f.Placeholder, Required: f.Required}
			for _, o := range f.Options {
				field.Options = append(field.Options, OptionDTO{Value: o.Value, Label: o.Label})
			}
			out.Fields = append(out.Fields, field)
		}
	case *chat.Typing:
		active := v.Active
		out.Status = &active
	case *chat.Error:
		out.Code = v.Code
		out.Message = v.Message
	}
	return out
}

// ToOutboundList converte as mensagens de um turno
func ToOutboundList(msgs []chat.Message) []OutboundMessage {
	out := make([]OutboundMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToOutbound(m))
	}
	return out
}

func toButtons(buttons []chat.Button) []ButtonDTO {
	if len(buttons) == 0 {
		return nil
	}
	out := make([]ButtonDTO, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, ButtonDTO{Text: b.Text, Data: b.Data})
	}
	return out
}

func toMetadata(md *chat.Metadata) *MetadataDTO {
	if md == nil {
		return nil
	}
	return &MetadataDTO{
		ToolUsed:    md.ToolUsed,
		ToolArgs:    md.ToolArgs,
		RBACBlocked: md.RBACBlocked,
		Confidence:  md.Confidence,
		LatencyMS:   md.LatencyMS,
		Model:       md.Model,
		UserRole:    md.UserRole,
		OperationID: md.OperationID,
	}
}

// HistoryEntry representa uma linha do histórico de conversa
type HistoryEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse representa o histórico do usuário em ordem cronológica
type HistoryResponse struct {
	History    []HistoryEntry `json:"history"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}

// ToHistoryResponse converte o histórico (mais recente primeiro) para ordem cronológica
func ToHistoryResponse(entries []chat.Entry, total int, p Pagination) HistoryResponse {
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = HistoryEntry{
			ID:        e.ID,
			SessionID: e.SessionID,
			Role:      e.Role,
			Content:   e.Content,
			Timestamp: e.Timestamp,
		}
	}
	return HistoryResponse{History: out, TotalCount: total, Page: p.Page, PageSize: p.PageSize}
}
