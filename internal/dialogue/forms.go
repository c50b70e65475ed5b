package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/merchant"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

// Identificadores de formulário
const (
	FormAddDevice      = "add_device"
	FormCreateMerchant = "create_merchant"
	FormDisableDevice  = "disable_device"
	FormUpdateTenant   = "update_tenant"
)

var (
	regionOptions   = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Hyderabad"}
	modelOptions    = []string{"Verifone V240m", "PAX A920", "Ingenico Move5000", "Sunmi P2"}
	categoryOptions = []chat.Option{
		{Value: "Restaurant", Label: "🍽️ Restaurant"},
		{Value: "Grocery", Label: "🛒 Grocery"},
		{Value: "Retail", Label: "🛍️ Retail"},
		{Value: "Pharmacy", Label: "💊 Pharmacy"},
		{Value: "Fuel Station", Label: "⛽ Fuel Station"},
	}
)

type formSpec struct {
	capability string
	title      string
	submit     string
	aliases    map[string]string
	fields     func(e *Engine, t *turn) ([]chat.FormField, error)
	commit     func(e *Engine, t *turn, values map[string]string) (reply, error)
}

var forms = map[string]formSpec{
	FormAddDevice: {
		capability: capability.AddDevice,
		title:      "➕ Add New Device",
		submit:     "Register Device",
		aliases:    map[string]string{"merchant_id": "merchant"},
		fields:     (*Engine).addDeviceFields,
		commit:     (*Engine).commitAddDevice,
	},
	FormCreateMerchant: {
		capability: capability.CreateMerchant,
		title:      "➕ Add New Merchant",
		submit:     "Create Merchant",
		fields:     (*Engine).createMerchantFields,
		commit:     (*Engine).commitCreateMerchant,
	},
	FormDisableDevice: {
		capability: capability.DisableDevice,
		title:      "🔴 Disable Device",
		submit:     "Review",
		fields:     (*Engine).disableDeviceFields,
		commit:     (*Engine).commitDisableDevice,
	},
	FormUpdateTenant: {
		capability: capability.UpdateTenant,
		title:      "✏️ Update Tenant",
		submit:     "Update Tenant",
		fields:     (*Engine).updateTenantFields,
		commit:     (*Engine).commitUpdateTenant,
	},
}

// Identificadores antigos de formulário
var formAliases = map[string]string{
	"device":   FormAddDevice,
	"merchant": FormCreateMerchant,
	"disable":  FormDisableDevice,
	"tenant":   FormUpdateTenant,
}

func lookupForm(id string) (string, formSpec, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if alias, ok := formAliases[id]; ok {
		id = alias
	}
	def, ok := forms[id]
	return id, def, ok
}

// invalidForm é uma falha de validação que reapresenta o formulário com um aviso
type invalidForm struct {
	notice string
}

func (v *invalidForm) Error() string { return v.notice }
func (v *invalidForm) Unwrap() error { return ErrValidation }

func invalid(format string, args ...interface{}) error {
	return &invalidForm{notice: fmt.Sprintf(format, args...)}
}

func (e *Engine) cmdAddDevice(t *turn, _ string) (reply, error) {
	return e.showForm(t, FormAddDevice, "")
}

func (e *Engine) cmdAddMerchant(t *turn, _ string) (reply, error) {
	return e.showForm(t, FormCreateMerchant, "")
}

func (e *Engine) cmdDisableDevice(t *turn, _ string) (reply, error) {
	return e.showForm(t, FormDisableDevice, "")
}

func (e *Engine) cmdUpdateTenant(t *turn, _ string) (reply, error) {
	return e.showForm(t, FormUpdateTenant, "")
}

// showForm apresenta o formulário e deixa a sessão aguardando o envio. Nada é alterado.
func (e *Engine) showForm(t *turn, kind, notice string) (reply, error) {
	def := forms[kind]
	fields, err := def.fields(e, t)
	if err != nil {
		return reply{}, err
	}

	t.await(session.State{Kind: session.AwaitingForm, Form: kind})
	return reply{
		msg: &chat.Form{
			FormID:      kind,
			Title:       def.title,
			Notice:      notice,
			Fields:      fields,
			SubmitLabel: def.submit,
			Buttons:     []chat.Button{{Text: "✖️ Cancel", Data: Payload(ActionMenu, "")}},
		},
		tool: def.capability,
	}, nil
}

// submitForm valida e efetiva um formulário, com nova checagem de RBAC para o papel atual
func (e *Engine) submitForm(t *turn, sub FormSubmission) (reply, error) {
	kind, def, ok := lookupForm(sub.FormID)
	if !ok {
		return textReply("❌ Unknown form.", btnMenu), nil
	}

	if denied, ok := e.authorize(t, def.capability); !ok {
		return denied, nil
	}

	values := normalizeValues(sub.Fields, def.aliases)

	fields, err := def.fields(e, t)
	if err != nil {
		return reply{}, err
	}
	var missing []string
	for _, f := range fields {
		if f.Required && values[f.Name] == "" {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		return e.rejectForm(t, kind, values, "❌ Please fill all required fields: "+strings.Join(missing, ", ")+".")
	}

	r, err := def.commit(e, t, values)
	var bad *invalidForm
	if errors.As(err, &bad) {
		return e.rejectForm(t, kind, values, bad.notice)
	}
	if err != nil {
		return reply{}, err
	}

	if r.tool == "" {
		r.tool = def.capability
	}
	if r.args == nil {
		r.args = values
	}
	return r, nil
}

func (e *Engine) rejectForm(t *turn, kind string, values map[string]string, notice string) (reply, error) {
	e.log.Debug("form rejected", "form", kind, "user_id", t.caller.UserID, "notice", notice)
	r, err := e.showForm(t, kind, notice)
	if err != nil {
		return reply{}, err
	}
	r.args = values
	return r, nil
}

func normalizeValues(fields map[string]string, aliases map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		k = strings.ToLower(strings.TrimSpace(k))
		if target, ok := aliases[k]; ok {
			if _, set := fields[target]; set {
				continue
			}
			k = target
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

func options(values ...string) []chat.Option {
	out := make([]chat.Option, 0, len(values))
	for _, v := range values {
		out = append(out, chat.Option{Value: v, Label: v})
	}
	return out
}

func (e *Engine) addDeviceFields(t *turn) ([]chat.FormField, error) {
	merchants, err := e.repos.Merchants.List(t.ctx)
	if err != nil {
		return nil, err
	}
	merchantOptions := make([]chat.Option, 0, len(merchants))
	for _, m := range merchants {
		merchantOptions = append(merchantOptions, chat.Option{Value: m.ID, Label: m.Name})
	}

	return []chat.FormField{
		{Name: "device_id", Label: "Device ID", Type: "text", Placeholder: "POS-5001", Required: true},
		{Name: "name", Label: "Device Name", Type: "text", Placeholder: "Counter A"},
		{Name: "merchant", Label: "Merchant", Type: "select", Options: merchantOptions, Required: true},
		{Name: "region", Label: "Region", Type: "select", Options: options(regionOptions...), Required: true},
		{Name: "model", Label: "Device Model", Type: "select", Options: options(modelOptions...), Placeholder: device.DefaultModel},
	}, nil
}

func (e *Engine) commitAddDevice(t *turn, v map[string]string) (reply, error) {
	id := device.NormalizeID(v["device_id"])
	if !device.ValidID(id) {
		return reply{}, invalid("❌ Device ID must look like POS-1234.")
	}

	d, err := device.NewDevice(id, v["name"], v["merchant"], v["region"], v["model"])
	if errors.Is(err, domain.ErrInvalidField) {
		return reply{}, invalid("❌ Please check the device details.")
	}
	if err != nil {
		return reply{}, err
	}

	err = e.repos.Devices.Create(t.ctx, d)
	if errors.Is(err, domain.ErrConflict) {
		return textReply(fmt.Sprintf("❌ Device **%s** already exists.", d.ID),
			chat.Button{Text: "➕ Try Again", Data: Payload(ActionAddDevice, "")}, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}

	merchantName := "Unknown"
	if m, err := e.repos.Merchants.FindByID(t.ctx, d.MerchantID); err == nil {
		merchantName = m.Name
		if err := e.repos.Merchants.UpdateField(t.ctx, m.ID, merchant.FieldDevices, m.Devices+1); err != nil {
			e.log.Warn("merchant device count not updated", "merchant_id", m.ID, "error", err)
		}
	}

	r := textReply(fmt.Sprintf("✅ **Device Registered!**\n\n🆔 **%s**\n📱 %s\n🏪 %s • 📍 %s\n📟 %s",
		d.ID, d.Name, merchantName, d.Region, d.Model),
		chat.Button{Text: "📋 View Devices", Data: Payload(ActionAllDevices, "")}, btnMenu)
	r.operation = e.audit(t, capability.AddDevice, d.ID)
	return r, nil
}

func (e *Engine) createMerchantFields(*turn) ([]chat.FormField, error) {
	return []chat.FormField{
		{Name: "name", Label: "Merchant Name", Type: "text", Placeholder: "Cafe Blue", Required: true},
		{Name: "category", Label: "Category", Type: "select", Options: categoryOptions, Required: true},
		{Name: "region", Label: "Region", Type: "select", Options: options(regionOptions...), Required: true},
		{Name: "contact", Label: "Contact Person", Type: "text", Placeholder: "Rahul Sharma", Required: true},
		{Name: "phone", Label: "Phone Number", Type: "text", Placeholder: "+91-98765-43210"},
		{Name: "address", Label: "Address", Type: "text", Placeholder: "MG Road, Mumbai"},
		{Name: "merchant_id", Label: "Merchant ID", Type: "text", Placeholder: "auto"},
	}, nil
}

func (e *Engine) commitCreateMerchant(t *turn, v map[string]string) (reply, error) {
	id := merchant.NormalizeID(v["merchant_id"])
	if id == "" {
		next, err := e.nextMerchantID(t)
		if err != nil {
			return reply{}, err
		}
		id = next
	}

	m, err := merchant.NewMerchant(id, v["name"], v["category"], v["region"], v["contact"], v["phone"], v["address"], e.now().Format("2006-01-02"))
	if errors.Is(err, domain.ErrInvalidField) {
		return reply{}, invalid("❌ Please check the merchant details.")
	}
	if err != nil {
		return reply{}, err
	}

	err = e.repos.Merchants.Create(t.ctx, m)
	if errors.Is(err, domain.ErrConflict) {
		return textReply(fmt.Sprintf("❌ Merchant **%s** already exists.", m.ID),
			chat.Button{Text: "➕ Try Again", Data: Payload(ActionAddMerchant, "")}, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}

	r := textReply(fmt.Sprintf("✅ **Merchant Created!**\n\n🆔 **%s**\n🏪 %s\n📂 %s • 📍 %s\n👤 %s",
		m.ID, m.Name, m.Category, m.Region, m.Contact),
		chat.Button{Text: "📋 View Merchants", Data: Payload(ActionAllMerchants, "")}, btnMenu)
	r.operation = e.audit(t, capability.CreateMerchant, m.ID)
	return r, nil
}

// nextMerchantID devolve o primeiro MER-NNN livre a partir de len+1
func (e *Engine) nextMerchantID(t *turn) (string, error) {
	merchants, err := e.repos.Merchants.List(t.ctx)
	if err != nil {
		return "", err
	}
	used := make(map[string]bool, len(merchants))
	for _, m := range merchants {
		used[m.ID] = true
	}
	seq := len(merchants) + 1
	for used[merchant.FormatID(seq)] {
		seq++
	}
	return merchant.FormatID(seq), nil
}

func (e *Engine) disableDeviceFields(t *turn) ([]chat.FormField, error) {
	online, err := e.repos.Devices.List(t.ctx, device.Filter{Status: device.StatusOnline})
	if err != nil {
		return nil, err
	}
	deviceOptions := make([]chat.Option, 0, len(online))
	for _, d := range online {
		deviceOptions = append(deviceOptions, chat.Option{Value: d.ID, Label: d.ID + " — " + d.Name})
	}

	return []chat.FormField{
		{Name: "device_id", Label: "Device ID", Type: "select", Options: deviceOptions, Placeholder: "POS-1001", Required: true},
		{Name: "reason", Label: "Reason", Type: "text", Placeholder: defaultDisableReason},
	}, nil
}

// commitDisableDevice só leva ao cartão de confirmação; a alteração acontece em do_deactivate
func (e *Engine) commitDisableDevice(t *turn, v map[string]string) (reply, error) {
	reason := v["reason"]
	if reason == "" {
		reason = defaultDisableReason
	}
	return e.confirmDeactivation(t, device.NormalizeID(v["device_id"]), reason)
}

func (e *Engine) updateTenantFields(t *turn) ([]chat.FormField, error) {
	tenants, err := e.repos.Tenants.List(t.ctx)
	if err != nil {
		return nil, err
	}
	tenantOptions := make([]chat.Option, 0, len(tenants))
	for _, tn := range tenants {
		tenantOptions = append(tenantOptions, chat.Option{Value: tn.ID, Label: tn.Name})
	}

	return []chat.FormField{
		{Name: "tenant_id", Label: "Tenant", Type: "select", Options: tenantOptions, Required: true},
		{Name: "region", Label: "Region", Type: "text", Placeholder: "IN"},
		{Name: "status", Label: "Status", Type: "select", Options: options(string(tenant.StatusActive), string(tenant.StatusSuspended))},
	}, nil
}

func (e *Engine) commitUpdateTenant(t *turn, v map[string]string) (reply, error) {
	id := strings.TrimSpace(v["tenant_id"])
	if v["status"] != "" {
		if _, err := tenant.ParseStatus(v["status"]); err != nil {
			return reply{}, invalid("❌ Status must be active or suspended.")
		}
	}

	tn, err := e.repos.Tenants.Update(t.ctx, id, tenant.Patch{Region: v["region"], Status: v["status"]})
	if errors.Is(err, domain.ErrNotFound) {
		return textReply(fmt.Sprintf("❌ Tenant **%s** not found.", id),
			chat.Button{Text: "🔁 Try Again", Data: Payload(ActionUpdateTenant, "")}, btnMenu), nil
	}
	if errors.Is(err, domain.ErrInvalidField) {
		return reply{}, invalid("❌ Please check the tenant details.")
	}
	if err != nil {
		return reply{}, err
	}

	r := textReply(fmt.Sprintf("✅ **Tenant Updated!**\n\n🆔 **%s**\n🏢 %s\n🌐 %s • %s", tn.ID, tn.Name, tn.Region, tn.Status),
		chat.Button{Text: "🏢 Tenants", Data: Payload(ActionTenants, "")}, btnMenu)
	r.operation = e.audit(t, capability.UpdateTenant, tn.ID)
	return r, nil
}
