package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/report"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

var btnReports = chat.Button{Text: "📊 Reports", Data: Payload(ActionReports, "")}

func (e *Engine) cmdReports(t *turn, _ string) (reply, error) {
	regions, err := e.repos.Reports.RegionSummaries(t.ctx)
	if err != nil {
		return reply{}, err
	}
	total := report.Sum(regions)

	buttons := []chat.Button{{Text: "📈 Full Summary", Data: Payload(ActionDailySummary, "")}}
	for _, r := range regions {
		buttons = append(buttons, chat.Button{Text: "📍 " + r.Region, Data: Payload(ActionRegionReport, r.Region)})
	}
	buttons = append(buttons,
		chat.Button{Text: "💳 Transactions", Data: Payload(ActionTransactions, "")},
		btnMenu,
	)

	content := fmt.Sprintf("📊 **Reports**\n\n📅 Today:\n💳 **%s** transactions\n💰 **%s** volume\n📈 **%s** avg ticket",
		groupDigits(int64(total.Count)), rupees(total.Volume), rupees(total.Average))
	return textReply(content, buttons...), nil
}

func (e *Engine) cmdDailySummary(t *turn, _ string) (reply, error) {
	regions, err := e.repos.Reports.RegionSummaries(t.ctx)
	if err != nil {
		return reply{}, err
	}

	var b strings.Builder
	b.WriteString("📈 **Daily Summary**\n\n| Region | Txns | Volume | Avg |\n|---|---|---|---|")
	for _, r := range regions {
		fmt.Fprintf(&b, "\n| %s | %s | %s | %s |", r.Region, groupDigits(int64(r.Count)), rupees(r.Volume), rupees(r.Average))
	}
	total := report.Sum(regions)
	fmt.Fprintf(&b, "\n| **Total** | **%s** | **%s** | **%s** |", groupDigits(int64(total.Count)), rupees(total.Volume), rupees(total.Average))

	return textReply(b.String(), btnReports, btnMenu), nil
}

func (e *Engine) cmdRegionReport(t *turn, region string) (reply, error) {
	r, err := e.repos.Reports.RegionSummary(t.ctx, region)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply(fmt.Sprintf("❌ No data for **%s**.", region), btnReports, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}

	devices, err := e.repos.Devices.List(t.ctx, device.Filter{Region: r.Region})
	if err != nil {
		return reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📍 **%s**\n\n💳 Txns: **%s**\n💰 Volume: **%s**\n📈 Avg: **%s**\n\n📱 Devices:",
		r.Region, groupDigits(int64(r.Count)), rupees(r.Volume), rupees(r.Average))
	if len(devices) == 0 {
		b.WriteString("\n• none")
	}
	for _, d := range devices {
		fmt.Fprintf(&b, "\n• %s: %s (%s)", d.ID, d.Name, d.Status)
	}

	out := textReply(b.String(), btnReports, btnMenu)
	out.args = map[string]string{"region": r.Region}
	return out, nil
}
