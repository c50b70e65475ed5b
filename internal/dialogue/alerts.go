package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

var btnAlerts = chat.Button{Text: "🔔 Alerts", Data: Payload(ActionAlerts, "")}

func (e *Engine) cmdAlerts(t *turn, _ string) (reply, error) {
	alerts, err := e.repos.Alerts.List(t.ctx)
	if err != nil {
		return reply{}, err
	}
	if len(alerts) == 0 {
		return textReply("✅ No active alerts!", btnMenu), nil
	}

	canAck := e.can(t, capability.AcknowledgeAlert)
	cards := make([]chat.Card, 0, len(alerts))
	for _, a := range alerts {
		c := chat.Card{
			Title:    fmt.Sprintf("%s %s", severityIcon(a.Severity), a.Type),
			Subtitle: fmt.Sprintf("%s • %s", a.DeviceID, a.Merchant),
			Fields: []string{
				"Time: " + a.Time,
				fmt.Sprintf("Severity: **%s**", strings.ToUpper(string(a.Severity))),
			},
		}
		if canAck {
			c.Buttons = []chat.Button{{Text: "✅ Acknowledge", Data: Payload(ActionAckAlert, a.ID)}}
		}
		cards = append(cards, c)
	}

	return reply{msg: &chat.Cards{
		Content: fmt.Sprintf("🔔 **Alerts** (%d)", len(alerts)),
		Cards:   cards,
		Buttons: []chat.Button{btnMenu},
	}}, nil
}

// cmdAckAlert encerra o alerta. Um segundo reconhecimento informa que ele já saiu.
func (e *Engine) cmdAckAlert(t *turn, id string) (reply, error) {
	id = strings.ToUpper(strings.TrimSpace(id))

	err := e.repos.Alerts.Delete(t.ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply(fmt.Sprintf("ℹ️ Alert **%s** not found or already cleared.", id), btnAlerts, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}

	remaining, err := e.repos.Alerts.List(t.ctx)
	if err != nil {
		return reply{}, err
	}

	r := textReply(fmt.Sprintf("✅ Alert **%s** cleared.\n🔔 Remaining: **%d**", id, len(remaining)), btnAlerts, btnMenu)
	r.operation = e.audit(t, capability.AcknowledgeAlert, id)
	return r, nil
}
