package dialogue

import (
	"errors"
	"fmt"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

var btnAllMerchants = chat.Button{Text: "📋 All Merchants", Data: Payload(ActionAllMerchants, "")}

func (e *Engine) cmdMerchantMenu(t *turn, _ string) (reply, error) {
	merchants, err := e.repos.Merchants.List(t.ctx)
	if err != nil {
		return reply{}, err
	}

	active, devices := 0, 0
	for _, m := range merchants {
		if m.IsActive() {
			active++
		}
		devices += m.Devices
	}

	buttons := []chat.Button{btnAllMerchants}
	if e.can(t, capability.CreateMerchant) {
		buttons = append(buttons, chat.Button{Text: "➕ Add Merchant", Data: Payload(ActionAddMerchant, "")})
	}
	buttons = append(buttons, btnMenu)

	return textReply(fmt.Sprintf("🏪 **Merchant Management**\n\n✅ Active: **%d** merchants\n📱 Total devices: **%d**", active, devices), buttons...), nil
}

func (e *Engine) cmdAllMerchants(t *turn, _ string) (reply, error) {
	merchants, err := e.repos.Merchants.List(t.ctx)
	if err != nil {
		return reply{}, err
	}

	cards := make([]chat.Card, 0, len(merchants))
	for _, m := range merchants {
		cards = append(cards, chat.Card{
			Title:    fmt.Sprintf("🏪 %s (%s)", m.Name, m.ID),
			Subtitle: fmt.Sprintf("%s • %s", m.Category, m.Region),
			Fields: []string{
				fmt.Sprintf("Contact: **%s**", m.Contact),
				fmt.Sprintf("Devices: **%d**", m.Devices),
				"Since: " + m.Onboarded,
			},
			Buttons: []chat.Button{{Text: "View Details", Data: Payload(ActionMerchantDetail, m.ID)}},
		})
	}

	return reply{msg: &chat.Cards{
		Content: "🏪 **All Merchants**",
		Cards:   cards,
		Buttons: []chat.Button{btnMenu},
	}}, nil
}

func (e *Engine) cmdMerchantDetail(t *turn, id string) (reply, error) {
	id = merchant.NormalizeID(id)
	m, err := e.repos.Merchants.FindByID(t.ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply(fmt.Sprintf("❌ Merchant **%s** not found.", id), btnAllMerchants, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}

	address := m.Address
	if address == "" {
		address = "—"
	}

	content := fmt.Sprintf("🏪 **%s** (%s)\n\n", m.Name, m.ID) + table(
		[2]string{"Category", m.Category},
		[2]string{"Region", m.Region},
		[2]string{"Contact", m.Contact},
		[2]string{"Phone", m.Phone},
		[2]string{"Address", address},
		[2]string{"Devices", fmt.Sprint(m.Devices)},
		[2]string{"Status", string(m.Status)},
		[2]string{"Onboarded", m.Onboarded},
	)
	return textReply(content, btnAllMerchants, btnMenu), nil
}
