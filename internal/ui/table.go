package ui

import (
	"fmt"
	"strings"

	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/registry"
)

// DeviceTable renders the registry as an aligned plain-text table.
func DeviceTable(devices []registry.Device) string {
	if len(devices) == 0 {
		return MutedStyle.Render("No devices found.") + "\n"
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-19s %-16s %-16s %s", "MAC", "IP", "BROADCAST", "REMARK")))
	b.WriteByte('\n')

	for _, d := range devices {
		b.WriteString(fmt.Sprintf("%-19s %-16s %-16s %s\n", d.MAC, orDash(d.IP), orDash(d.BroadcastIP), d.Remark))
	}

	return b.String()
}

// StatusTable renders bulk probe results, joining each status to its device
// record by MAC.
func StatusTable(devices []registry.Device, statuses []probe.DeviceStatus) string {
	if len(statuses) == 0 {
		return MutedStyle.Render("No devices registered.") + "\n"
	}

	byMAC := make(map[string]registry.Device, len(devices))
	for _, d := range devices {
		byMAC[d.MAC] = d
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-19s %-16s %-8s %-9s %s", "MAC", "IP", "STATUS", "LATENCY", "REMARK")))
	b.WriteByte('\n')

	for _, s := range statuses {
		d := byMAC[s.MAC]

		status := OfflineStyle.Render("offline")
		latency := "-"
		if s.Online {
			status = OnlineStyle.Render("online")
			if s.Latency != nil {
				latency = fmt.Sprintf("%d ms", *s.Latency)
			}
		}

		// Styled cells carry invisible escape codes, so pad the raw
		// text before styling to keep columns aligned.
		b.WriteString(fmt.Sprintf("%-19s %-16s %s %-9s %s\n",
			s.MAC, orDash(d.IP), padStyled(status, s.Online, 8), latency, d.Remark))
	}

	return b.String()
}

func padStyled(rendered string, online bool, width int) string {
	plain := "offline"
	if online {
		plain = "online"
	}
	if pad := width - len(plain); pad > 0 {
		return rendered + strings.Repeat(" ", pad)
	}
	return rendered
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
