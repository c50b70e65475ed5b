package dialogue

import (
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

const activityLimit = 10

func (e *Engine) cmdActivity(t *turn, _ string) (reply, error) {
	entries, err := e.repos.Activity.List(t.ctx, activityLimit)
	if err != nil {
		return reply{}, err
	}
	if len(entries) == 0 {
		return textReply("📜 No user activity recorded.", btnMenu), nil
	}

	var b strings.Builder
	b.WriteString("📜 **User Activity**\n\n| User | Action | Target | Time | IP |\n|---|---|---|---|---|")
	for _, a := range entries {
		target := a.Target
		if target == "" {
			target = "—"
		}
		ip := a.IP
		if ip == "" {
			ip = "—"
		}
		fmt.Fprintf(&b, "\n| %s | %s | %s | %s | %s |", a.User, a.Action, target, a.Timestamp.Format("2006-01-02 15:04"), ip)
	}
	return textReply(b.String(), btnMenu), nil
}

func (e *Engine) cmdTenants(t *turn, _ string) (reply, error) {
	tenants, err := e.repos.Tenants.List(t.ctx)
	if err != nil {
		return reply{}, err
	}

	cards := make([]chat.Card, 0, len(tenants))
	for _, tn := range tenants {
		icon := "🟢"
		if tn.Status != tenant.StatusActive {
			icon = "⏸️"
		}
		cards = append(cards, chat.Card{
			Title:    fmt.Sprintf("%s %s (%s)", icon, tn.Name, tn.ID),
			Subtitle: fmt.Sprintf("Region: %s • %s", tn.Region, tn.Status),
			Fields: []string{
				fmt.Sprintf("Merchants: **%d**", tn.ActiveMerchants),
				fmt.Sprintf("Devices: **%d**", tn.ActiveDevices),
			},
		})
	}

	buttons := []chat.Button{}
	if e.can(t, capability.UpdateTenant) {
		buttons = append(buttons, chat.Button{Text: "✏️ Update Tenant", Data: Payload(ActionUpdateTenant, "")})
	}
	buttons = append(buttons, btnMenu)

	return reply{msg: &chat.Cards{
		Content: fmt.Sprintf("🏢 **Tenants** (%d)", len(tenants)),
		Cards:   cards,
		Buttons: buttons,
	}}, nil
}

func (e *Engine) cmdCapabilities(t *turn, _ string) (reply, error) {
	caps := e.registry.ListForRole(t.caller.Role)

	var b strings.Builder
	fmt.Fprintf(&b, "🧭 **What you can do** (role **%s**)\n", t.caller.Role)
	for _, c := range caps {
		fmt.Fprintf(&b, "\n• `%s`: %s", c.Name, c.Description)
	}
	return textReply(b.String(), btnMenu), nil
}
