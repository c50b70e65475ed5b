package dialogue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/repository"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
)

type fakeClassifier struct {
	mu       sync.Mutex
	category llm.Category
	err      error
	calls    int
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (llm.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.category, f.err
}

type fakeSynthesizer struct {
	mu       sync.Mutex
	answer   string
	err      error
	calls    int
	snapshot string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _ string, snapshot string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.snapshot = snapshot
	return f.answer, f.err
}

type fixture struct {
	engine   *Engine
	store    *repository.Store
	sessions *session.Store
	classify *fakeClassifier
	synth    *fakeSynthesizer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	seed, err := repository.DefaultSeed()
	require.NoError(t, err)
	store := repository.NewMemoryStore(seed)

	registry, err := capability.DefaultRegistry()
	require.NoError(t, err)

	f := &fixture{
		store:    store,
		sessions: session.NewStore(time.Hour),
		classify: &fakeClassifier{err: llm.ErrUnavailable},
		synth:    &fakeSynthesizer{err: llm.ErrUnavailable},
	}

	base := []Option{
		WithClassifier(f.classify),
		WithSynthesizer(f.synth),
		WithModelName("fake:model"),
	}
	f.engine, err = NewEngine(registry, reposOf(store), f.sessions, append(base, opts...)...)
	require.NoError(t, err)
	return f
}

func reposOf(s *repository.Store) Repositories {
	return Repositories{
		Devices:   s.Devices,
		Merchants: s.Merchants,
		Alerts:    s.Alerts,
		Reports:   s.Reports,
		FAQ:       s.FAQ,
		Activity:  s.Activity,
		Tenants:   s.Tenants,
	}
}

func caller(role user.Role) Caller {
	return Caller{UserID: "U-" + role.String(), TenantID: "tenant-001", Name: "Test " + role.String(), Role: role}
}

var (
	viewer     = caller(user.RoleViewer)
	manager    = caller(user.RoleManager)
	admin      = caller(user.RoleAdmin)
	superAdmin = caller(user.RoleSuperAdmin)
)

func (f *fixture) send(sid string, c Caller, ev Event) []chat.Message {
	return f.engine.Process(context.Background(), sid, c, ev)
}

func (f *fixture) state(t *testing.T, sid string) session.State {
	t.Helper()
	st, ok := f.sessions.Get(sid)
	require.True(t, ok)
	return st
}

func (f *fixture) device(t *testing.T, id string) *device.Device {
	t.Helper()
	d, err := f.store.Devices.FindByID(context.Background(), id)
	require.NoError(t, err)
	return d
}

func primary(t *testing.T, msgs []chat.Message) chat.Message {
	t.Helper()
	require.NotEmpty(t, msgs)
	m := msgs[len(msgs)-1]
	require.True(t, chat.IsPrimary(m), "last message must be primary, got %T", m)
	for _, other := range msgs[:len(msgs)-1] {
		assert.False(t, chat.IsPrimary(other), "only one primary message per turn")
	}
	return m
}

func content(t *testing.T, msgs []chat.Message) string {
	t.Helper()
	return chat.Summary(primary(t, msgs))
}

func buttons(t *testing.T, msgs []chat.Message) []string {
	t.Helper()
	var out []string
	switch m := primary(t, msgs).(type) {
	case *chat.Text:
		for _, b := range m.Buttons {
			out = append(out, b.Data)
		}
	case *chat.Cards:
		for _, b := range m.Buttons {
			out = append(out, b.Data)
		}
	case *chat.Form:
		for _, b := range m.Buttons {
			out = append(out, b.Data)
		}
	}
	return out
}

func meta(t *testing.T, msgs []chat.Message) *chat.Metadata {
	t.Helper()
	md := chat.MetadataOf(primary(t, msgs))
	require.NotNil(t, md)
	return md
}

func TestDispatchTableIsTotal(t *testing.T) {
	for _, k := range sessionKinds {
		for _, ev := range EventKinds() {
			_, ok := routes[routeKey{k, ev}]
			assert.True(t, ok, "missing route for (%s, %s)", k, ev)
		}
	}
}

func TestEveryActionHasHandler(t *testing.T) {
	for _, a := range Actions() {
		assert.NotNil(t, commands[a].handle, a.String())
		assert.NotEqual(t, "unknown", a.String())

		arg := ""
		if _, ok := actionArgs[a]; ok {
			arg = "X-1"
		}
		cmd, ok := ParseCommand(Payload(a, arg))
		require.True(t, ok, a.String())
		assert.Equal(t, Command{Action: a, Arg: arg}, cmd)
	}
}

func TestParseCommand(t *testing.T) {
	cmd, ok := ParseCommand(" Device_Detail:POS-1001 ")
	require.True(t, ok)
	assert.Equal(t, Command{Action: ActionDeviceDetail, Arg: "POS-1001"}, cmd)

	cmd, ok = ParseCommand("/start")
	require.True(t, ok)
	assert.Equal(t, ActionMenu, cmd.Action)

	cmd, ok = ParseCommand("create_merchant")
	require.True(t, ok)
	assert.Equal(t, ActionAddMerchant, cmd.Action)

	_, ok = ParseCommand("device_detail")
	assert.False(t, ok, "argument is required")

	_, ok = ParseCommand("launch_rockets")
	assert.False(t, ok)
}

func TestNewEngineRequiresRouteCapabilities(t *testing.T) {
	registry, err := capability.NewRegistry(capability.Capability{Name: capability.ListDevices, MinRole: user.RoleViewer})
	require.NoError(t, err)

	_, err = NewEngine(registry, Repositories{}, session.NewStore(0))
	assert.ErrorIs(t, err, capability.ErrMissing)
}

func TestMainMenu(t *testing.T) {
	f := newFixture(t)

	for _, ev := range []Event{{Kind: EventEmpty}, TextEvent("hello"), TextEvent("/start"), ButtonEvent("menu")} {
		msgs := f.send("s1", viewer, ev)
		assert.Contains(t, content(t, msgs), "Welcome to NexPOS Assistant")
		assert.Equal(t, chat.ConfidenceDeterministic, meta(t, msgs).Confidence)
	}
	assert.Zero(t, f.classify.calls)

	assert.NotContains(t, buttons(t, f.send("s1", viewer, ButtonEvent("menu"))), "tenants")
	assert.Contains(t, buttons(t, f.send("s1", superAdmin, ButtonEvent("menu"))), "tenants")
}

func TestHelloWithModelUnavailable(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, TextEvent("hello"))
	assert.Contains(t, content(t, msgs), "Welcome")
	assert.Len(t, msgs, 1)
}

func TestFreeTextFallsBackWhenModelUnavailable(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, TextEvent("tell me something interesting"))
	require.Len(t, msgs, 3)
	assert.Equal(t, &chat.Typing{Active: true}, msgs[0])
	assert.Equal(t, &chat.Typing{Active: false}, msgs[1])
	assert.Equal(t, "🤔 I'm not sure what you need. Pick an option:", content(t, msgs))
	assert.Contains(t, buttons(t, msgs), "device_status")
	assert.Equal(t, 1, f.classify.calls)
	assert.Zero(t, f.synth.calls)
}

func TestFallbackWithoutCollaborators(t *testing.T) {
	seed, err := repository.DefaultSeed()
	require.NoError(t, err)
	registry, err := capability.DefaultRegistry()
	require.NoError(t, err)

	e, err := NewEngine(registry, reposOf(repository.NewMemoryStore(seed)), session.NewStore(time.Hour))
	require.NoError(t, err)

	msgs := e.Process(context.Background(), "s", viewer, TextEvent("what's the weather"))
	require.Len(t, msgs, 1)
	assert.Contains(t, content(t, msgs), "I'm not sure what you need")
	assert.Len(t, buttons(t, msgs), 5)
}

func TestDirectDeviceIDBypassesClassifier(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, TextEvent("is pos-1001 working?"))
	assert.Contains(t, content(t, msgs), "POS-1001 — Counter A")
	assert.Contains(t, content(t, msgs), "| Merchant | Cafe Blue |")
	assert.Zero(t, f.classify.calls)

	md := meta(t, msgs)
	assert.Equal(t, capability.GetDeviceStatus, md.ToolUsed)
	assert.Equal(t, map[string]string{"device_id": "POS-1001"}, md.ToolArgs)
	assert.Equal(t, "viewer", md.UserRole)
}

func TestViewerCannotDisableDevice(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, ButtonEvent("disable_device"))
	assert.Equal(t, "🚫 Access denied: `disable_device` is not available for role **viewer**.", content(t, msgs))
	assert.True(t, meta(t, msgs).RBACBlocked)
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)

	msgs = f.send("s1", viewer, ButtonEvent("do_deactivate:POS-1001"))
	assert.True(t, meta(t, msgs).RBACBlocked)
	assert.Equal(t, device.StatusOnline, f.device(t, "POS-1001").Status)
}

func TestDeviceDetailButtons(t *testing.T) {
	f := newFixture(t)

	assert.NotContains(t, buttons(t, f.send("s1", viewer, ButtonEvent("device_detail:POS-1001"))), "confirm_deactivate:POS-1001")
	assert.Contains(t, buttons(t, f.send("s1", admin, ButtonEvent("device_detail:POS-1001"))), "confirm_deactivate:POS-1001")
	assert.NotContains(t, buttons(t, f.send("s1", admin, ButtonEvent("device_detail:POS-2001"))), "confirm_deactivate:POS-2001")
	assert.Contains(t, buttons(t, f.send("s1", viewer, ButtonEvent("device_detail:POS-2001"))), "device_transactions:POS-2001")

	msgs := f.send("s1", viewer, ButtonEvent("device_detail:POS-0000"))
	assert.Equal(t, "❌ Device **POS-0000** not found.", content(t, msgs))
}

func TestAddDeviceFlow(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", admin, ButtonEvent("add_device"))
	form, ok := primary(t, msgs).(*chat.Form)
	require.True(t, ok)
	assert.Equal(t, FormAddDevice, form.FormID)
	assert.Equal(t, session.State{Kind: session.AwaitingForm, Form: FormAddDevice}, f.state(t, "s1"))

	fields := map[string]string{"device_id": "POS-9001", "merchant": "MER-001", "region": "Mumbai"}
	msgs = f.send("s1", admin, FormEvent(FormAddDevice, fields))
	assert.Contains(t, content(t, msgs), "Device Registered!")
	assert.Contains(t, content(t, msgs), "Cafe Blue")
	md := meta(t, msgs)
	assert.NotEmpty(t, md.OperationID)
	assert.Equal(t, capability.AddDevice, md.ToolUsed)
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)

	d := f.device(t, "POS-9001")
	assert.Equal(t, device.StatusOnline, d.Status)
	assert.Equal(t, 100, d.Battery)
	assert.Equal(t, device.DefaultModel, d.Model)
	assert.Equal(t, device.NoTransaction, d.LastTxn)

	m, err := f.store.Merchants.FindByID(context.Background(), "MER-001")
	require.NoError(t, err)
	assert.Equal(t, 3, m.Devices)

	entries, err := f.store.Activity.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "add_device", entries[0].Action)
	assert.Equal(t, md.OperationID, entries[0].OperationID)

	msgs = f.send("s1", admin, FormEvent(FormAddDevice, fields))
	assert.Equal(t, "❌ Device **POS-9001** already exists.", content(t, msgs))
	all, err := f.store.Devices.List(context.Background(), device.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 9)
}

func TestAddDeviceValidation(t *testing.T) {
	f := newFixture(t)
	f.send("s1", admin, ButtonEvent("add_device"))

	msgs := f.send("s1", admin, FormEvent(FormAddDevice, map[string]string{"device_id": "POS-9002", "merchant_id": "MER-002"}))
	form, ok := primary(t, msgs).(*chat.Form)
	require.True(t, ok)
	assert.Equal(t, "❌ Please fill all required fields: Region.", form.Notice)
	assert.Equal(t, session.State{Kind: session.AwaitingForm, Form: FormAddDevice}, f.state(t, "s1"))

	msgs = f.send("s1", admin, FormEvent(FormAddDevice, map[string]string{"device_id": "TERM-1", "merchant": "MER-002", "region": "Delhi"}))
	form, ok = primary(t, msgs).(*chat.Form)
	require.True(t, ok)
	assert.Equal(t, "❌ Device ID must look like POS-1234.", form.Notice)

	_, err := f.store.Devices.FindByID(context.Background(), "POS-9002")
	assert.Error(t, err)
}

func TestAddDeviceWithDanglingMerchant(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", admin, FormEvent("device", map[string]string{"device_id": "pos-9100", "merchant": "MER-999", "region": "Delhi", "model": "Sunmi P2"}))
	assert.Contains(t, content(t, msgs), "🏪 Unknown • 📍 Delhi")

	msgs = f.send("s1", admin, TextEvent("POS-9100"))
	assert.Contains(t, content(t, msgs), "| Merchant | Unknown |")
}

func TestFormSubmissionRechecksCurrentRole(t *testing.T) {
	f := newFixture(t)

	f.send("s1", admin, ButtonEvent("add_device"))
	msgs := f.send("s1", viewer, FormEvent(FormAddDevice, map[string]string{"device_id": "POS-9003", "merchant": "MER-001", "region": "Mumbai"}))
	assert.True(t, meta(t, msgs).RBACBlocked)
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)

	_, err := f.store.Devices.FindByID(context.Background(), "POS-9003")
	assert.Error(t, err)
}

func TestTextAbandonsPendingForm(t *testing.T) {
	f := newFixture(t)

	f.send("s1", admin, ButtonEvent("add_merchant"))
	assert.Equal(t, session.AwaitingForm, f.state(t, "s1").Kind)

	msgs := f.send("s1", admin, TextEvent("alerts"))
	assert.Contains(t, content(t, msgs), "Alerts")
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)
}

func TestUnknownFormAndButton(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", admin, FormEvent("rocket", nil))
	assert.Equal(t, "❌ Unknown form.", content(t, msgs))

	f.send("s1", admin, ButtonEvent("search_device"))
	msgs = f.send("s1", admin, ButtonEvent("launch_rockets"))
	assert.Contains(t, content(t, msgs), "I'm not sure what you need")
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)
	assert.Zero(t, f.classify.calls)
}

func TestCreateMerchant(t *testing.T) {
	f := newFixture(t)

	fields := map[string]string{"name": "Chai Point", "category": "Restaurant", "region": "Hyderabad", "contact": "Ravi"}
	msgs := f.send("s1", admin, FormEvent(FormCreateMerchant, fields))
	assert.Contains(t, content(t, msgs), "🆔 **MER-005**")

	m, err := f.store.Merchants.FindByID(context.Background(), "MER-005")
	require.NoError(t, err)
	assert.Equal(t, "Chai Point", m.Name)
	assert.Zero(t, m.Devices)

	fields["merchant_id"] = "mer-001"
	msgs = f.send("s1", admin, FormEvent(FormCreateMerchant, fields))
	assert.Equal(t, "❌ Merchant **MER-001** already exists.", content(t, msgs))

	msgs = f.send("s1", manager, FormEvent(FormCreateMerchant, fields))
	assert.True(t, meta(t, msgs).RBACBlocked)
}

func TestConfirmDeactivateFlow(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", admin, ButtonEvent("confirm_deactivate:POS-1001"))
	assert.Contains(t, content(t, msgs), "⚠️ **Confirm Deactivation**")
	assert.Equal(t, []string{"do_deactivate:POS-1001", "cancel_deactivate:POS-1001"}, buttons(t, msgs))
	assert.Equal(t, session.State{Kind: session.AwaitingConfirmation, Target: "POS-1001", Reason: defaultDisableReason}, f.state(t, "s1"))
	assert.Equal(t, device.StatusOnline, f.device(t, "POS-1001").Status)

	msgs = f.send("s1", admin, ButtonEvent("cancel_deactivate:POS-1001"))
	assert.Contains(t, content(t, msgs), "| Status | Online |")
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)
	assert.Equal(t, 87, f.device(t, "POS-1001").Battery)

	f.send("s1", admin, ButtonEvent("confirm_deactivate:POS-1001"))
	msgs = f.send("s1", admin, ButtonEvent("do_deactivate:POS-1001"))
	assert.Contains(t, content(t, msgs), "✅ Device **POS-1001** deactivated.")
	assert.NotEmpty(t, meta(t, msgs).OperationID)

	d := f.device(t, "POS-1001")
	assert.Equal(t, device.StatusOffline, d.Status)
	assert.Zero(t, d.Battery)

	assert.NotContains(t, buttons(t, f.send("s1", admin, ButtonEvent("device_detail:POS-1001"))), "confirm_deactivate:POS-1001")
}

func TestDisableFormLeadsToConfirmation(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", admin, ButtonEvent("disable_device"))
	form, ok := primary(t, msgs).(*chat.Form)
	require.True(t, ok)
	assert.Equal(t, FormDisableDevice, form.FormID)

	msgs = f.send("s1", admin, FormEvent(FormDisableDevice, map[string]string{"device_id": "POS-1002", "reason": "Lost"}))
	assert.Contains(t, content(t, msgs), "Reason: Lost")
	assert.Equal(t, session.State{Kind: session.AwaitingConfirmation, Target: "POS-1002", Reason: "Lost"}, f.state(t, "s1"))
	assert.Equal(t, device.StatusOnline, f.device(t, "POS-1002").Status)

	msgs = f.send("s1", admin, ButtonEvent("do_deactivate:POS-1002"))
	assert.Contains(t, content(t, msgs), "Reason: Lost")
	assert.Equal(t, device.StatusOffline, f.device(t, "POS-1002").Status)

	msgs = f.send("s1", admin, FormEvent(FormDisableDevice, map[string]string{"device_id": "POS-7777"}))
	assert.Equal(t, "❌ Device **POS-7777** not found.", content(t, msgs))
}

func TestDeviceSearch(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, ButtonEvent("search_device"))
	assert.Contains(t, content(t, msgs), "Enter the Device ID")
	assert.Equal(t, session.AwaitingDeviceSearch, f.state(t, "s1").Kind)

	msgs = f.send("s1", viewer, TextEvent(" pos-2001 "))
	assert.Contains(t, content(t, msgs), "POS-2001 — Billing 1")
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)

	f.send("s1", viewer, ButtonEvent("search_device"))
	msgs = f.send("s1", viewer, TextEvent("POS-7777"))
	assert.Equal(t, "❌ Device **POS-7777** not found.", content(t, msgs))
	assert.Equal(t, []string{"search_device", "view_all_devices", "menu"}, buttons(t, msgs))
	assert.Equal(t, session.Main, f.state(t, "s1").Kind)
	assert.Zero(t, f.classify.calls)
}

func TestAcknowledgeAlertIsIdempotent(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, ButtonEvent("alerts"))
	cards, ok := primary(t, msgs).(*chat.Cards)
	require.True(t, ok)
	assert.Len(t, cards.Cards, 4)

	msgs = f.send("s1", viewer, ButtonEvent("alert_ack:ALT-001"))
	assert.Equal(t, "✅ Alert **ALT-001** cleared.\n🔔 Remaining: **3**", content(t, msgs))

	msgs = f.send("s1", viewer, ButtonEvent("alert_ack:ALT-001"))
	assert.Contains(t, content(t, msgs), "not found or already cleared")
	assert.Empty(t, meta(t, msgs).OperationID)
}

func TestReports(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, ButtonEvent("reports"))
	assert.Contains(t, content(t, msgs), "**1,085** transactions")
	assert.Contains(t, content(t, msgs), "**₹1,458,000** volume")
	assert.Contains(t, buttons(t, msgs), "region_report:Delhi")

	msgs = f.send("s1", viewer, ButtonEvent("region_report:delhi"))
	assert.Contains(t, content(t, msgs), "📍 **Delhi**")
	assert.Contains(t, content(t, msgs), "• POS-2001: Billing 1 (Offline)")

	msgs = f.send("s1", viewer, ButtonEvent("region_report:Atlantis"))
	assert.Equal(t, "❌ No data for **Atlantis**.", content(t, msgs))

	msgs = f.send("s1", viewer, ButtonEvent("daily_summary"))
	assert.Contains(t, content(t, msgs), "| Mumbai | 342 | ₹485,000 | ₹1,418 |")

	msgs = f.send("s1", viewer, ButtonEvent("device_transactions:POS-1001"))
	assert.Contains(t, content(t, msgs), "TXN-604170")
	assert.NotContains(t, content(t, msgs), "TXN-604211")
}

func TestHelpAndFAQ(t *testing.T) {
	f := newFixture(t)

	msgs := f.send("s1", viewer, ButtonEvent("help"))
	assert.Contains(t, buttons(t, msgs), "faq:reset-device")

	msgs = f.send("s1", viewer, ButtonEvent("faq:reset device"))
	assert.Contains(t, content(t, msgs), "Hold Power + Volume Down")

	msgs = f.send("s1", viewer, ButtonEvent("faq:nothing"))
	assert.Contains(t, content(t, msgs), "No FAQ entry found.")
}

func TestRoleGatedViews(t *testing.T) {
	f := newFixture(t)

	assert.True(t, meta(t, f.send("s1", viewer, ButtonEvent("activity"))).RBACBlocked)
	assert.Contains(t, content(t, f.send("s1", manager, ButtonEvent("activity"))), "User Activity")

	assert.True(t, meta(t, f.send("s1", admin, ButtonEvent("tenants"))).RBACBlocked)
	msgs := f.send("s1", superAdmin, ButtonEvent("tenants"))
	assert.Contains(t, content(t, msgs), "Tenants** (3)")

	msgs = f.send("s1", viewer, TextEvent("capabilities"))
	assert.Contains(t, content(t, msgs), "`list_devices`")
	assert.NotContains(t, content(t, msgs), "`add_device`")
}

func TestUpdateTenant(t *testing.T) {
	f := newFixture(t)

	f.send("s1", superAdmin, ButtonEvent("update_tenant"))
	msgs := f.send("s1", superAdmin, FormEvent(FormUpdateTenant, map[string]string{"tenant_id": "tenant-003", "status": "active"}))
	assert.Contains(t, content(t, msgs), "Tenant Updated!")

	tn, err := f.store.Tenants.FindByID(context.Background(), "tenant-003")
	require.NoError(t, err)
	assert.True(t, tn.IsActive())

	msgs = f.send("s1", superAdmin, FormEvent(FormUpdateTenant, map[string]string{"tenant_id": "tenant-001", "status": "paused"}))
	form, ok := primary(t, msgs).(*chat.Form)
	require.True(t, ok)
	assert.Equal(t, "❌ Status must be active or suspended.", form.Notice)

	msgs = f.send("s1", superAdmin, FormEvent(FormUpdateTenant, map[string]string{"tenant_id": "tenant-999"}))
	assert.Equal(t, "❌ Tenant **tenant-999** not found.", content(t, msgs))
}

func TestClassifierRouting(t *testing.T) {
	cases := []struct {
		name     string
		category llm.Category
		text     string
		caller   Caller
		want     string
		synth    bool
	}{
		{"short device query opens dashboard", llm.CategoryDevice, "my terminals", viewer, "Device Dashboard", false},
		{"specific device query is synthesized", llm.CategoryDevice, "show me mumbai terminals", viewer, "🤖 **NexPOS AI**", true},
		{"write category opens form", llm.CategoryAddMerchant, "onboard a shop for me please", admin, "Add New Merchant", false},
		{"write category is role checked", llm.CategoryAddDevice, "register terminal", viewer, "🚫 Access denied: `add_device`", false},
		{"general goes to synthesizer", llm.CategoryGeneral, "thanks", viewer, "🤖 **NexPOS AI**", true},
		{"short help opens menu", llm.CategoryHelp, "support", viewer, "Help & FAQ", false},
		{"specific help searches faq", llm.CategoryHelp, "how do I reset my terminal", viewer, "Hold Power + Volume Down", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			f.classify.category, f.classify.err = c.category, nil
			f.synth.answer, f.synth.err = "Mumbai has **2** devices online right now.", nil

			msgs := f.send("s1", c.caller, TextEvent(c.text))
			require.Len(t, msgs, 3)
			assert.Contains(t, content(t, msgs), c.want)
			assert.Equal(t, chat.ConfidenceModel, meta(t, msgs).Confidence)
			assert.Equal(t, c.synth, f.synth.calls == 1)
			if c.synth {
				assert.Equal(t, "fake:model", meta(t, msgs).Model)
				assert.Contains(t, f.synth.snapshot, "POS-1001: Counter A @ Cafe Blue (Mumbai) — Online, Battery:87%")
			}
		})
	}
}

func TestSpecificityThresholdIsConfigurable(t *testing.T) {
	f := newFixture(t, WithSpecificityWords(10))
	f.classify.category, f.classify.err = llm.CategoryReport, nil

	msgs := f.send("s1", viewer, TextEvent("reports for delhi please"))
	assert.Contains(t, content(t, msgs), "📊 **Reports**")
	assert.Zero(t, f.synth.calls)
}

func TestSynthesizerFailuresFallBack(t *testing.T) {
	for _, s := range []*fakeSynthesizer{
		{err: llm.ErrUnavailable},
		{err: errors.New("connection refused")},
		{answer: "   "},
	} {
		f := newFixture(t)
		f.classify.category, f.classify.err = llm.CategoryGeneral, nil
		f.engine.synthesizer = s

		msgs := f.send("s1", viewer, TextEvent("what's new"))
		assert.Contains(t, content(t, msgs), "I'm not sure what you need")
	}
}

type panickyDevices struct {
	device.Repository
}

func (panickyDevices) List(context.Context, device.Filter) ([]*device.Device, error) {
	panic("boom")
}

type brokenDevices struct {
	device.Repository
}

func (brokenDevices) List(context.Context, device.Filter) ([]*device.Device, error) {
	return nil, errors.New("database is down")
}

func TestUnexpectedFailuresBecomeApology(t *testing.T) {
	for _, repo := range []device.Repository{panickyDevices{}, brokenDevices{}} {
		f := newFixture(t)
		f.engine.repos.Devices = repo

		f.send("s1", viewer, ButtonEvent("search_device"))
		assert.Equal(t, session.AwaitingDeviceSearch, f.state(t, "s1").Kind)

		msgs := f.send("s1", viewer, ButtonEvent("view_all_devices"))
		assert.Contains(t, content(t, msgs), "something went wrong")
		assert.Equal(t, []string{"menu"}, buttons(t, msgs))
		assert.Equal(t, session.Main, f.state(t, "s1").Kind)

		msgs = f.send("s1", viewer, ButtonEvent("merchants"))
		assert.Contains(t, content(t, msgs), "Merchant Management")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)

	f.send("a", admin, ButtonEvent("add_device"))
	f.send("b", viewer, ButtonEvent("search_device"))

	assert.Equal(t, session.AwaitingForm, f.state(t, "a").Kind)
	assert.Equal(t, session.AwaitingDeviceSearch, f.state(t, "b").Kind)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := "c" + strings.Repeat("x", i%4)
			f.send(sid, viewer, ButtonEvent("device_status"))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 6, f.sessions.Len())
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)

	snap, err := f.engine.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(snap, "DEVICES:\n  POS-1001"))
	assert.Contains(t, snap, "MER-002: FreshMart (Grocery, Delhi) — 2 devices")
	assert.Contains(t, snap, "Mumbai: 342 txns, ₹485,000 volume")
	assert.Contains(t, snap, "ACTIVE ALERTS: 4")
	assert.Contains(t, snap, "ALT-002: Device Offline — POS-2001 (critical)")
}
