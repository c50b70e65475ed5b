package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/report"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

const defaultDisableReason = "Admin request"

var btnAllDevices = chat.Button{Text: "📋 All Devices", Data: Payload(ActionAllDevices, "")}

func (e *Engine) cmdDeviceMenu(t *turn, _ string) (reply, error) {
	devices, err := e.repos.Devices.List(t.ctx, device.Filter{})
	if err != nil {
		return reply{}, err
	}

	counts := map[device.Status]int{}
	for _, d := range devices {
		counts[d.Status]++
	}

	buttons := []chat.Button{
		btnAllDevices,
		{Text: "🔍 Search by ID", Data: Payload(ActionSearchDevice, "")},
	}
	if e.can(t, capability.AddDevice) {
		buttons = append(buttons, chat.Button{Text: "➕ Add Device", Data: Payload(ActionAddDevice, "")})
	}
	buttons = append(buttons, btnMenu)

	content := fmt.Sprintf("📱 **Device Dashboard**\n\n🟢 Online: **%d**  •  🔴 Offline: **%d**  •  🟡 Maintenance: **%d**\nTotal: **%d** devices",
		counts[device.StatusOnline], counts[device.StatusOffline], counts[device.StatusMaintenance], len(devices))
	return textReply(content, buttons...), nil
}

func (e *Engine) cmdAllDevices(t *turn, _ string) (reply, error) {
	devices, err := e.repos.Devices.List(t.ctx, device.Filter{})
	if err != nil {
		return reply{}, err
	}

	cards := make([]chat.Card, 0, len(devices))
	for _, d := range devices {
		cards = append(cards, chat.Card{
			Title:    fmt.Sprintf("%s %s — %s", statusIcon(d.Status), d.ID, d.Name),
			Subtitle: fmt.Sprintf("%s • %s", e.merchantName(t, d.MerchantID), d.Region),
			Fields: []string{
				fmt.Sprintf("Status: **%s**", d.Status),
				fmt.Sprintf("%s Battery: **%d%%**", batteryIcon(d), d.Battery),
				"Last Txn: " + d.LastTxn,
			},
			Buttons: []chat.Button{{Text: "View Details", Data: Payload(ActionDeviceDetail, d.ID)}},
		})
	}

	return reply{msg: &chat.Cards{
		Content: "📱 **All Devices**",
		Cards:   cards,
		Buttons: []chat.Button{btnMenu},
	}}, nil
}

func (e *Engine) cmdDeviceDetail(t *turn, id string) (reply, error) {
	return e.deviceLookup(t, device.NormalizeID(id), false)
}

// deviceLookup mostra o detalhe do terminal ou a mensagem de não encontrado.
// fromSearch oferece uma nova busca junto com a mensagem.
func (e *Engine) deviceLookup(t *turn, id string, fromSearch bool) (reply, error) {
	d, err := e.repos.Devices.FindByID(t.ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		buttons := []chat.Button{btnAllDevices, btnMenu}
		if fromSearch {
			buttons = append([]chat.Button{{Text: "🔍 Try Again", Data: Payload(ActionSearchDevice, "")}}, buttons...)
		}
		r := textReply(fmt.Sprintf("❌ Device **%s** not found.", id), buttons...)
		r.tool = capability.GetDeviceStatus
		r.args = map[string]string{"device_id": id}
		return r, nil
	}
	if err != nil {
		return reply{}, err
	}

	r := e.deviceDetail(t, d)
	r.tool = capability.GetDeviceStatus
	r.args = map[string]string{"device_id": id}
	return r, nil
}

func (e *Engine) deviceDetail(t *turn, d *device.Device) reply {
	content := fmt.Sprintf("📱 **%s — %s** %s\n\n", d.ID, d.Name, statusIcon(d.Status)) + table(
		[2]string{"Merchant", e.merchantName(t, d.MerchantID)},
		[2]string{"Region", d.Region},
		[2]string{"Model", d.Model},
		[2]string{"Firmware", d.Firmware},
		[2]string{"Battery", fmt.Sprintf("%d%%", d.Battery)},
		[2]string{"Last Txn", d.LastTxn},
		[2]string{"Status", string(d.Status)},
	)

	var buttons []chat.Button
	if d.IsOnline() && e.can(t, capability.DisableDevice) {
		buttons = append(buttons, chat.Button{Text: "🔴 Deactivate", Data: Payload(ActionConfirmDeactivate, d.ID)})
	}
	if e.can(t, capability.GetTransactions) {
		buttons = append(buttons, chat.Button{Text: "💳 Transactions", Data: Payload(ActionDeviceTransactions, d.ID)})
	}
	buttons = append(buttons, btnAllDevices, btnMenu)

	return textReply(content, buttons...)
}

// merchantName resolve o nome do estabelecimento; referência pendente vira "Unknown"
func (e *Engine) merchantName(t *turn, id string) string {
	if id == "" {
		return "Unknown"
	}
	m, err := e.repos.Merchants.FindByID(t.ctx, id)
	if err != nil {
		return "Unknown"
	}
	return m.Name
}

func (e *Engine) cmdSearchDevice(t *turn, _ string) (reply, error) {
	t.await(session.State{Kind: session.AwaitingDeviceSearch})
	return textReply("🔍 Enter the Device ID (e.g. POS-1001):", btnMenu), nil
}

func (e *Engine) cmdDeviceTransactions(t *turn, id string) (reply, error) {
	id = device.NormalizeID(id)
	if _, err := e.repos.Devices.FindByID(t.ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return textReply(fmt.Sprintf("❌ Device **%s** not found.", id), btnAllDevices, btnMenu), nil
		}
		return reply{}, err
	}

	txns, err := e.repos.Reports.Transactions(t.ctx, report.TransactionFilter{DeviceID: id, Limit: 10})
	if err != nil {
		return reply{}, err
	}

	back := chat.Button{Text: "⬅️ Back", Data: Payload(ActionDeviceDetail, id)}
	if len(txns) == 0 {
		return textReply(fmt.Sprintf("💳 No transactions recorded for **%s**.", id), back, btnMenu), nil
	}
	return textReply(fmt.Sprintf("💳 **Transactions — %s**\n\n%s", id, transactionTable(txns, false)), back, btnMenu), nil
}

func (e *Engine) cmdTransactions(t *turn, _ string) (reply, error) {
	txns, err := e.repos.Reports.Transactions(t.ctx, report.TransactionFilter{Limit: 10})
	if err != nil {
		return reply{}, err
	}
	if len(txns) == 0 {
		return textReply("💳 No transactions recorded yet.", btnMenu), nil
	}
	return textReply("💳 **Recent Transactions**\n\n"+transactionTable(txns, true),
		chat.Button{Text: "📊 Reports", Data: Payload(ActionReports, "")}, btnMenu), nil
}

func transactionTable(txns []report.Transaction, withDevice bool) string {
	var b strings.Builder
	if withDevice {
		b.WriteString("| ID | Device | Type | Amount | Status | Time |\n|---|---|---|---|---|---|")
	} else {
		b.WriteString("| ID | Type | Amount | Status | Time |\n|---|---|---|---|---|")
	}
	for _, tx := range txns {
		ts := tx.Timestamp.Format("2006-01-02 15:04")
		if withDevice {
			fmt.Fprintf(&b, "\n| %s | %s | %s | %s | %s | %s |", tx.ID, tx.DeviceID, tx.Type, rupeesCents(tx.Amount), tx.Status, ts)
		} else {
			fmt.Fprintf(&b, "\n| %s | %s | %s | %s | %s |", tx.ID, tx.Type, rupeesCents(tx.Amount), tx.Status, ts)
		}
	}
	return b.String()
}

func (e *Engine) cmdConfirmDeactivate(t *turn, id string) (reply, error) {
	return e.confirmDeactivation(t, device.NormalizeID(id), defaultDisableReason)
}

// confirmDeactivation mostra o cartão de confirmação sem alterar nada
func (e *Engine) confirmDeactivation(t *turn, id, reason string) (reply, error) {
	d, err := e.repos.Devices.FindByID(t.ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply(fmt.Sprintf("❌ Device **%s** not found.", id),
			chat.Button{Text: "🔁 Try Again", Data: Payload(ActionDisableDevice, "")}, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}

	t.await(session.State{Kind: session.AwaitingConfirmation, Target: d.ID, Reason: reason})

	content := fmt.Sprintf("⚠️ **Confirm Deactivation**\n\nDevice: **%s** (%s)\nMerchant: %s\nStatus: %s %s • Battery: %d%%\nReason: %s\n\nThis will take the device offline.",
		d.ID, d.Name, e.merchantName(t, d.MerchantID), statusIcon(d.Status), d.Status, d.Battery, reason)
	r := textReply(content,
		chat.Button{Text: "✅ Yes, Deactivate", Data: Payload(ActionDoDeactivate, d.ID)},
		chat.Button{Text: "❌ Cancel", Data: Payload(ActionCancelDeactivate, d.ID)},
	)
	r.tool = capability.DisableDevice
	r.args = map[string]string{"device_id": d.ID, "reason": reason}
	return r, nil
}

func (e *Engine) cmdDoDeactivate(t *turn, id string) (reply, error) {
	id = device.NormalizeID(id)

	reason := defaultDisableReason
	if t.prev.Kind == session.AwaitingConfirmation && t.prev.Target == id && t.prev.Reason != "" {
		reason = t.prev.Reason
	}

	if _, err := e.repos.Devices.FindByID(t.ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return textReply(fmt.Sprintf("❌ Device **%s** not found.", id), btnAllDevices, btnMenu), nil
		}
		return reply{}, err
	}

	if err := e.repos.Devices.UpdateField(t.ctx, id, device.FieldStatus, device.StatusOffline); err != nil {
		return reply{}, err
	}
	if err := e.repos.Devices.UpdateField(t.ctx, id, device.FieldBattery, 0); err != nil {
		return reply{}, err
	}

	r := textReply(fmt.Sprintf("✅ Device **%s** deactivated.\n📝 Reason: %s", id, reason), btnAllDevices, btnMenu)
	r.operation = e.audit(t, capability.DisableDevice, id)
	r.args = map[string]string{"device_id": id, "reason": reason}
	return r, nil
}
