package dialogue

import (
	"strings"
)

// Action é um comando estruturado vindo de um botão ou de um comando digitado
type Action int

const (
	ActionMenu Action = iota
	ActionDeviceMenu
	ActionAllDevices
	ActionDeviceDetail
	ActionSearchDevice
	ActionDeviceTransactions
	ActionConfirmDeactivate
	ActionDoDeactivate
	ActionCancelDeactivate
	ActionAddDevice
	ActionDisableDevice
	ActionMerchants
	ActionAllMerchants
	ActionMerchantDetail
	ActionAddMerchant
	ActionReports
	ActionDailySummary
	ActionRegionReport
	ActionTransactions
	ActionAlerts
	ActionAckAlert
	ActionHelp
	ActionFAQ
	ActionActivity
	ActionTenants
	ActionUpdateTenant
	ActionCapabilities
	actionCount
)

// Actions retorna todas as ações conhecidas
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := ActionMenu; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

var actionNames = [actionCount]string{
	ActionMenu:               "menu",
	ActionDeviceMenu:         "device_status",
	ActionAllDevices:         "view_all_devices",
	ActionDeviceDetail:       "device_detail",
	ActionSearchDevice:       "search_device",
	ActionDeviceTransactions: "device_transactions",
	ActionConfirmDeactivate:  "confirm_deactivate",
	ActionDoDeactivate:       "do_deactivate",
	ActionCancelDeactivate:   "cancel_deactivate",
	ActionAddDevice:          "add_device",
	ActionDisableDevice:      "disable_device",
	ActionMerchants:          "merchants",
	ActionAllMerchants:       "view_all_merchants",
	ActionMerchantDetail:     "merchant_detail",
	ActionAddMerchant:        "add_merchant",
	ActionReports:            "reports",
	ActionDailySummary:       "daily_summary",
	ActionRegionReport:       "region_report",
	ActionTransactions:       "transactions",
	ActionAlerts:             "alerts",
	ActionAckAlert:           "alert_ack",
	ActionHelp:               "help",
	ActionFAQ:                "faq",
	ActionActivity:           "activity",
	ActionTenants:            "tenants",
	ActionUpdateTenant:       "update_tenant",
	ActionCapabilities:       "capabilities",
}

// Nomes alternativos aceitos em botões e comandos digitados
var actionAliases = map[string]Action{
	"start":             ActionMenu,
	"/start":            ActionMenu,
	"home":              ActionMenu,
	"hi":                ActionMenu,
	"hello":             ActionMenu,
	"hey":               ActionMenu,
	"device_menu":       ActionDeviceMenu,
	"devices":           ActionDeviceMenu,
	"create_merchant":   ActionAddMerchant,
	"alert_acknowledge": ActionAckAlert,
	"what can i do":     ActionCapabilities,
}

// Ações que exigem argumento ("device_detail:POS-1001")
var actionArgs = map[Action]string{
	ActionDeviceDetail:       "device_id",
	ActionDeviceTransactions: "device_id",
	ActionConfirmDeactivate:  "device_id",
	ActionDoDeactivate:       "device_id",
	ActionCancelDeactivate:   "device_id",
	ActionMerchantDetail:     "merchant_id",
	ActionRegionReport:       "region",
	ActionAckAlert:           "alert_id",
	ActionFAQ:                "key",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Command é uma ação com argumento opcional
type Command struct {
	Action Action
	Arg    string
}

// Payload monta o valor de botão da ação
func Payload(a Action, arg string) string {
	if arg == "" {
		return a.String()
	}
	return a.String() + ":" + arg
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, actionCount)
	for a := ActionMenu; a < actionCount; a++ {
		m[actionNames[a]] = a
	}
	return m
}()

// ParseCommand interpreta um payload "acao" ou "acao:argumento".
// Ações com argumento obrigatório sem argumento não são reconhecidas.
func ParseCommand(payload string) (Command, bool) {
	payload = strings.TrimSpace(payload)
	name, arg, _ := strings.Cut(payload, ":")
	name = strings.ToLower(strings.TrimSpace(name))
	arg = strings.TrimSpace(arg)

	a, ok := actionsByName[name]
	if !ok {
		a, ok = actionAliases[name]
	}
	if !ok {
		return Command{}, false
	}

	if _, needsArg := actionArgs[a]; needsArg {
		if arg == "" {
			return Command{}, false
		}
	} else {
		arg = ""
	}
	return Command{Action: a, Arg: arg}, true
}
