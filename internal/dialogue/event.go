package dialogue

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

// EventKind é o tipo de entrada recebida do cliente
type EventKind int

const (
	EventEmpty EventKind = iota
	EventText
	EventButton
	EventFormSubmit
)

// EventKinds retorna todos os tipos de evento
func EventKinds() []EventKind {
	return []EventKind{EventEmpty, EventText, EventButton, EventFormSubmit}
}

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventButton:
		return "button"
	case EventFormSubmit:
		return "form_submit"
	}
	return "empty"
}

// FormSubmission carrega os valores preenchidos de um formulário
type FormSubmission struct {
	FormID string
	Fields map[string]string
}

// Event é uma entrada do usuário
type Event struct {
	Kind   EventKind
	Text   string
	Button string
	Form   FormSubmission
}

// TextEvent cria um evento de texto livre
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// ButtonEvent cria um evento de botão
func ButtonEvent(data string) Event {
	return Event{Kind: EventButton, Button: data}
}

// FormEvent cria um evento de envio de formulário
func FormEvent(formID string, fields map[string]string) Event {
	return Event{Kind: EventFormSubmit, Form: FormSubmission{FormID: formID, Fields: fields}}
}

// NewEvent monta o evento a partir dos campos crus do transporte.
// Formulário tem precedência sobre botão, e botão sobre texto.
func NewEvent(text, button string, form *FormSubmission) Event {
	switch {
	case form != nil && form.FormID != "":
		return FormEvent(form.FormID, form.Fields)
	case button != "":
		return ButtonEvent(button)
	case text != "":
		return TextEvent(text)
	}
	return Event{Kind: EventEmpty}
}

// Caller é o usuário autenticado desta requisição
type Caller struct {
	UserID   string
	TenantID string
	Name     string
	Role     user.Role
}

func (c Caller) actor() string {
	if c.Name != "" {
		return c.Name
	}
	return c.UserID
}
