package metadata

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknownDevice = "Unknown Device"

// ParseUserAgent renders a User-Agent as "<browser> on <os>" for security
// forensics, e.g. "Chrome on Intel Mac OS X 10_15_7".
func ParseUserAgent(userAgent string) string {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return unknownDevice
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if ua.Bot() {
		browser = "Bot"
	}
	if browser == "" {
		browser = "Unknown Browser"
	}
	system := ua.OS()
	if system == "" {
		system = ua.Platform()
	}
	if system == "" {
		system = "Unknown OS"
	}
	return strings.TrimSpace(browser) + " on " + strings.TrimSpace(system)
}
