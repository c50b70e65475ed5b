package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
)

// Categorias de menu: perguntas curtas abrem a visão pronta
var menuCategories = map[llm.Category]Action{
	llm.CategoryDevice:   ActionDeviceMenu,
	llm.CategoryMerchant: ActionMerchants,
	llm.CategoryReport:   ActionReports,
	llm.CategoryAlert:    ActionAlerts,
	llm.CategoryHelp:     ActionHelp,
}

// Categorias de escrita: sempre abrem o formulário
var writeCategories = map[llm.Category]Action{
	llm.CategoryAddDevice:     ActionAddDevice,
	llm.CategoryDisableDevice: ActionDisableDevice,
	llm.CategoryAddMerchant:   ActionAddMerchant,
}

// specific informa se a frase tem palavras suficientes para merecer uma resposta sintetizada
func (e *Engine) specific(text string) bool {
	return len(strings.Fields(text)) >= e.specificity
}

func (e *Engine) routeModel(t *turn, text string) (reply, error) {
	category, err := e.classifier.Classify(t.ctx, text)
	if err != nil {
		e.log.Info("classifier unavailable", "kind", failureKind(err), "error", err)
		r := e.fallback()
		r.typing = true
		return r, nil
	}

	r, err := e.routeCategory(t, text, category)
	if err != nil {
		return reply{}, err
	}
	r.typing = true
	r.confidence = chat.ConfidenceModel
	if r.model == "" {
		r.model = e.model
	}
	return r, nil
}

func (e *Engine) routeCategory(t *turn, text string, category llm.Category) (reply, error) {
	if a, ok := writeCategories[category]; ok {
		return e.runCommand(t, Command{Action: a})
	}

	if a, ok := menuCategories[category]; ok {
		if !e.specific(text) {
			return e.runCommand(t, Command{Action: a})
		}
		if category == llm.CategoryHelp && e.can(t, capability.SearchFAQ) {
			r, found, err := e.searchFAQ(t, text)
			if err != nil {
				return reply{}, err
			}
			if found {
				r.tool = capability.SearchFAQ
				r.args = map[string]string{"query": text}
				return r, nil
			}
		}
	}

	return e.synthesize(t, text)
}

// synthesize pede uma resposta livre ao modelo; qualquer falha vira o fallback estático
func (e *Engine) synthesize(t *turn, text string) (reply, error) {
	if e.synthesizer == nil {
		return e.fallback(), nil
	}

	snapshot, err := e.Snapshot(t.ctx)
	if err != nil {
		return reply{}, err
	}

	answer, err := e.synthesizer.Synthesize(t.ctx, text, snapshot)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err == nil {
			err = fmt.Errorf("%w: empty answer", ErrUnavailable)
		}
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		e.log.Info("synthesizer unavailable", "kind", failureKind(err), "error", err)
		return e.fallback(), nil
	}

	return reply{
		msg: &chat.Text{
			Content: "🤖 **NexPOS AI**\n\n" + strings.TrimSpace(answer),
			Buttons: modelButtons(),
		},
		model: e.model,
	}, nil
}

// Snapshot resume os dados atuais em texto compacto para o sintetizador
func (e *Engine) Snapshot(ctx context.Context) (string, error) {
	devices, err := e.repos.Devices.List(ctx, device.Filter{})
	if err != nil {
		return "", err
	}
	merchants, err := e.repos.Merchants.List(ctx)
	if err != nil {
		return "", err
	}
	regions, err := e.repos.Reports.RegionSummaries(ctx)
	if err != nil {
		return "", err
	}
	alerts, err := e.repos.Alerts.List(ctx)
	if err != nil {
		return "", err
	}

	names := make(map[string]string, len(merchants))
	for _, m := range merchants {
		names[m.ID] = m.Name
	}

	var b strings.Builder
	b.WriteString("DEVICES:")
	for _, d := range devices {
		name, ok := names[d.MerchantID]
		if !ok {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "\n  %s: %s @ %s (%s) — %s, Battery:%d%%", d.ID, d.Name, name, d.Region, d.Status, d.Battery)
	}

	b.WriteString("\n\nMERCHANTS:")
	for _, m := range merchants {
		fmt.Fprintf(&b, "\n  %s: %s (%s, %s) — %d devices", m.ID, m.Name, m.Category, m.Region, m.Devices)
	}

	b.WriteString("\n\nTODAY'S TRANSACTIONS:")
	for _, r := range regions {
		fmt.Fprintf(&b, "\n  %s: %d txns, %s volume", r.Region, r.Count, rupees(r.Volume))
	}

	fmt.Fprintf(&b, "\n\nACTIVE ALERTS: %d", len(alerts))
	for _, a := range alerts {
		fmt.Fprintf(&b, "\n  %s: %s — %s (%s)", a.ID, a.Type, a.DeviceID, a.Severity)
	}

	return b.String(), nil
}
