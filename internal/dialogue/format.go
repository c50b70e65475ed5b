package dialogue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/alert"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/device"
)

// groupDigits insere separadores de milhar: 1658000 -> "1,658,000"
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func rupees(n int64) string {
	return "₹" + groupDigits(n)
}

func rupeesCents(v float64) string {
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("₹%s.%02d", groupDigits(cents/100), abs(cents%100))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func statusIcon(s device.Status) string {
	switch s {
	case device.StatusOnline:
		return "🟢"
	case device.StatusOffline:
		return "🔴"
	case device.StatusMaintenance:
		return "🟡"
	}
	return "⚪"
}

func batteryIcon(d *device.Device) string {
	if d.LowBattery() {
		return "🪫"
	}
	return "🔋"
}

func severityIcon(s alert.Severity) string {
	switch s {
	case alert.SeverityCritical:
		return "🔴"
	case alert.SeverityWarning:
		return "🟡"
	case alert.SeverityInfo:
		return "🔵"
	}
	return "⚪"
}

// table monta uma tabela markdown de duas colunas sem cabeçalho
func table(rows ...[2]string) string {
	var b strings.Builder
	b.WriteString("| | |\n|---|---|")
	for _, r := range rows {
		fmt.Fprintf(&b, "\n| %s | %s |", r[0], r[1])
	}
	return b.String()
}
