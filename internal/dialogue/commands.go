package dialogue

import (
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

type commandSpec struct {
	capability string
	handle     func(e *Engine, t *turn, arg string) (reply, error)
}

// commands associa cada ação à capacidade exigida e ao seu tratador
var commands = [actionCount]commandSpec{
	ActionMenu:               {"", (*Engine).cmdMenu},
	ActionDeviceMenu:         {capability.ListDevices, (*Engine).cmdDeviceMenu},
	ActionAllDevices:         {capability.ListDevices, (*Engine).cmdAllDevices},
	ActionDeviceDetail:       {capability.GetDeviceStatus, (*Engine).cmdDeviceDetail},
	ActionSearchDevice:       {capability.GetDeviceStatus, (*Engine).cmdSearchDevice},
	ActionDeviceTransactions: {capability.GetTransactions, (*Engine).cmdDeviceTransactions},
	ActionConfirmDeactivate:  {capability.DisableDevice, (*Engine).cmdConfirmDeactivate},
	ActionDoDeactivate:       {capability.DisableDevice, (*Engine).cmdDoDeactivate},
	ActionCancelDeactivate:   {capability.GetDeviceStatus, (*Engine).cmdDeviceDetail},
	ActionAddDevice:          {capability.AddDevice, (*Engine).cmdAddDevice},
	ActionDisableDevice:      {capability.DisableDevice, (*Engine).cmdDisableDevice},
	ActionMerchants:          {capability.ListMerchants, (*Engine).cmdMerchantMenu},
	ActionAllMerchants:       {capability.ListMerchants, (*Engine).cmdAllMerchants},
	ActionMerchantDetail:     {capability.ListMerchants, (*Engine).cmdMerchantDetail},
	ActionAddMerchant:        {capability.CreateMerchant, (*Engine).cmdAddMerchant},
	ActionReports:            {capability.GetReport, (*Engine).cmdReports},
	ActionDailySummary:       {capability.GetReport, (*Engine).cmdDailySummary},
	ActionRegionReport:       {capability.GetReport, (*Engine).cmdRegionReport},
	ActionTransactions:       {capability.GetTransactions, (*Engine).cmdTransactions},
	ActionAlerts:             {capability.ListDevices, (*Engine).cmdAlerts},
	ActionAckAlert:           {capability.AcknowledgeAlert, (*Engine).cmdAckAlert},
	ActionHelp:               {capability.SearchFAQ, (*Engine).cmdHelp},
	ActionFAQ:                {capability.SearchFAQ, (*Engine).cmdFAQ},
	ActionActivity:           {capability.GetUserActivity, (*Engine).cmdActivity},
	ActionTenants:            {capability.ListTenants, (*Engine).cmdTenants},
	ActionUpdateTenant:       {capability.UpdateTenant, (*Engine).cmdUpdateTenant},
	ActionCapabilities:       {"", (*Engine).cmdCapabilities},
}

// referencedCapabilities lista as capacidades usadas por comandos e formulários
func referencedCapabilities() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, c := range commands {
		add(c.capability)
	}
	for _, f := range forms {
		add(f.capability)
	}
	return out
}

var btnMenu = chat.Button{Text: "🏠 Menu", Data: Payload(ActionMenu, "")}

func fallbackButtons() []chat.Button {
	return []chat.Button{
		{Text: "📱 Devices", Data: Payload(ActionDeviceMenu, "")},
		{Text: "🏪 Merchants", Data: Payload(ActionMerchants, "")},
		{Text: "📊 Reports", Data: Payload(ActionReports, "")},
		{Text: "🔔 Alerts", Data: Payload(ActionAlerts, "")},
		{Text: "❓ Help", Data: Payload(ActionHelp, "")},
	}
}

func modelButtons() []chat.Button {
	return []chat.Button{
		{Text: "📱 Devices", Data: Payload(ActionDeviceMenu, "")},
		{Text: "🏪 Merchants", Data: Payload(ActionMerchants, "")},
		{Text: "📊 Reports", Data: Payload(ActionReports, "")},
		btnMenu,
	}
}

func textReply(content string, buttons ...chat.Button) reply {
	return reply{msg: &chat.Text{Content: content, Buttons: buttons}}
}

func (e *Engine) cmdMenu(t *turn, _ string) (reply, error) {
	return e.mainMenu(t), nil
}

func (e *Engine) mainMenu(t *turn) reply {
	buttons := []chat.Button{
		{Text: "📱 Devices", Data: Payload(ActionDeviceMenu, "")},
		{Text: "🏪 Merchants", Data: Payload(ActionMerchants, "")},
		{Text: "📊 Reports", Data: Payload(ActionReports, "")},
		{Text: "🔔 Alerts", Data: Payload(ActionAlerts, "")},
		{Text: "❓ Help & FAQ", Data: Payload(ActionHelp, "")},
	}
	if e.can(t, capability.GetUserActivity) {
		buttons = append(buttons, chat.Button{Text: "📜 Activity", Data: Payload(ActionActivity, "")})
	}
	if e.can(t, capability.ListTenants) {
		buttons = append(buttons, chat.Button{Text: "🏢 Tenants", Data: Payload(ActionTenants, "")})
	}
	buttons = append(buttons, chat.Button{Text: "🧭 What can I do?", Data: Payload(ActionCapabilities, "")})

	greeting := "👋 **Welcome to NexPOS Assistant!**"
	if t.caller.Name != "" {
		greeting = "👋 **Welcome to NexPOS Assistant, " + t.caller.Name + "!**"
	}
	return textReply(greeting+"\n\nI can help you manage devices, merchants, view reports and more. What would you like to do?", buttons...)
}
