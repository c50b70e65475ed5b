package dialogue

import (
	"regexp"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

type route func(e *Engine, t *turn) (reply, error)

type routeKey struct {
	state session.Kind
	event EventKind
}

// routes cobre todos os pares (estado, tipo de evento).
// Estados pendentes são abandonados por qualquer evento que não seja a resposta esperada.
var routes = map[routeKey]route{
	{session.Main, EventEmpty}:      (*Engine).routeEmpty,
	{session.Main, EventText}:       (*Engine).routeText,
	{session.Main, EventButton}:     (*Engine).routeButton,
	{session.Main, EventFormSubmit}: (*Engine).routeForm,

	{session.AwaitingDeviceSearch, EventEmpty}:      (*Engine).routeEmpty,
	{session.AwaitingDeviceSearch, EventText}:       (*Engine).routeDeviceSearch,
	{session.AwaitingDeviceSearch, EventButton}:     (*Engine).routeButton,
	{session.AwaitingDeviceSearch, EventFormSubmit}: (*Engine).routeForm,

	{session.AwaitingForm, EventEmpty}:      (*Engine).routeEmpty,
	{session.AwaitingForm, EventText}:       (*Engine).routeText,
	{session.AwaitingForm, EventButton}:     (*Engine).routeButton,
	{session.AwaitingForm, EventFormSubmit}: (*Engine).routeForm,

	{session.AwaitingConfirmation, EventEmpty}:      (*Engine).routeEmpty,
	{session.AwaitingConfirmation, EventText}:       (*Engine).routeText,
	{session.AwaitingConfirmation, EventButton}:     (*Engine).routeButton,
	{session.AwaitingConfirmation, EventFormSubmit}: (*Engine).routeForm,
}

var sessionKinds = []session.Kind{
	session.Main,
	session.AwaitingDeviceSearch,
	session.AwaitingForm,
	session.AwaitingConfirmation,
}

func (e *Engine) dispatch(t *turn) (reply, error) {
	r, ok := routes[routeKey{t.prev.Kind, t.event.Kind}]
	if !ok {
		return e.fallback(), nil
	}
	return r(e, t)
}

func (e *Engine) routeEmpty(t *turn) (reply, error) {
	return e.mainMenu(t), nil
}

func (e *Engine) routeDeviceSearch(t *turn) (reply, error) {
	id := device.NormalizeID(t.event.Text)
	return e.deviceLookup(t, id, true)
}

func (e *Engine) routeButton(t *turn) (reply, error) {
	cmd, ok := ParseCommand(t.event.Button)
	if !ok {
		e.log.Debug("unknown button payload", "payload", t.event.Button)
		return e.fallback(), nil
	}
	return e.runCommand(t, cmd)
}

func (e *Engine) routeForm(t *turn) (reply, error) {
	return e.submitForm(t, t.event.Form)
}

var deviceIDPattern = regexp.MustCompile(`(?i)POS-\d{4}`)

func (e *Engine) routeText(t *turn) (reply, error) {
	text := strings.TrimSpace(t.event.Text)
	if text == "" {
		return e.mainMenu(t), nil
	}

	if cmd, ok := ParseCommand(text); ok {
		return e.runCommand(t, cmd)
	}

	if m := deviceIDPattern.FindString(text); m != "" {
		return e.runCommand(t, Command{Action: ActionDeviceDetail, Arg: device.NormalizeID(m)})
	}

	if e.classifier != nil {
		return e.routeModel(t, text)
	}
	return e.fallback(), nil
}

func (e *Engine) runCommand(t *turn, cmd Command) (reply, error) {
	spec := commands[cmd.Action]
	if spec.capability != "" {
		if denied, ok := e.authorize(t, spec.capability); !ok {
			return denied, nil
		}
	}

	r, err := spec.handle(e, t, cmd.Arg)
	if err != nil {
		return reply{}, err
	}

	if r.tool == "" {
		r.tool = spec.capability
	}
	if r.args == nil && cmd.Arg != "" {
		r.args = map[string]string{actionArgs[cmd.Action]: cmd.Arg}
	}
	return r, nil
}

// fallback é a resposta final quando nada mais casa. Não depende de nenhum colaborador.
func (e *Engine) fallback() reply {
	return reply{msg: &chat.Text{
		Content: "🤔 I'm not sure what you need. Pick an option:",
		Buttons: fallbackButtons(),
	}}
}
