package requestinfo

import (
	"strings"

	surfer "github.com/avct/uasurfer"
)

// Device classes reported in Agent.Device.
const (
	DeviceDesktop = "Desktop"
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceOther   = "Other"
)

// Agent is the slice of the User-Agent the access log, the login line,
// and the page footer print.
type Agent struct {
	Browser string // "Chrome", "Firefox", ... empty when unknown
	OS      string // "MacOSX", "Android", ...
	Device  string // one of the Device* constants
	IsBot   bool
}

// parseAgent classifies a raw User-Agent header.
func parseAgent(raw string) Agent {
	if raw == "" {
		return Agent{Device: DeviceOther}
	}
	u := surfer.Parse(raw)
	return Agent{
		Browser: known(strings.TrimPrefix(u.Browser.Name.String(), "Browser")),
		OS:      known(strings.TrimPrefix(u.OS.Name.String(), "OS")),
		Device:  deviceClass(u.DeviceType),
		IsBot:   u.IsBot(),
	}
}

func deviceClass(d surfer.DeviceType) string {
	switch d {
	case surfer.DeviceComputer:
		return DeviceDesktop
	case surfer.DeviceTablet:
		return DeviceTablet
	case surfer.DevicePhone, surfer.DeviceWearable:
		return DeviceMobile
	}
	return DeviceOther
}

// known blanks uasurfer's "Unknown" placeholder.
func known(name string) string {
	if name == "Unknown" {
		return ""
	}
	return name
}
