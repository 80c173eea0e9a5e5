package services

import (
	"context"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"
	Unknown        = "Unknown"

	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"

	DefaultTimezone = "UTC"
)

var (
	tabletUARe = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobileUARe = regexp.MustCompile(`(?i)mobile|iphone|ipod|android|blackberry|opera|mini|windows\sce|palm|smartphone|iemobile`)
)

// ClientHints is what the visitor's browser reports about itself.
type ClientHints struct {
	UserAgent     string
	ViewportWidth int
	Timezone      string
}

// Environment is the metadata attached to every lead.
type Environment struct {
	Timezone   string
	Browser    string
	DeviceType string
	IPAddress  string
}

// DetectBrowser maps a user agent to a browser family. Order matters:
// Edge and Opera also advertise Chrome.
func DetectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Chrome") && !strings.Contains(ua, "Edg"):
		return BrowserChrome
	case strings.Contains(ua, "Firefox"):
		return BrowserFirefox
	case strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome"):
		return BrowserSafari
	case strings.Contains(ua, "Edg"):
		return BrowserEdge
	case strings.Contains(ua, "Opera") || strings.Contains(ua, "OPR"):
		return BrowserOpera
	default:
		return Unknown
	}
}

// DetectDeviceType classifies the device from user agent keywords, then the
// viewport width. A width <= 0 means the browser did not report one.
func DetectDeviceType(ua string, viewportWidth int) string {
	if tabletUARe.MatchString(ua) {
		return DeviceTablet
	}
	if mobileUARe.MatchString(ua) {
		return DeviceMobile
	}
	if viewportWidth <= 0 {
		if strings.TrimSpace(ua) == "" {
			return Unknown
		}
		return DeviceDesktop
	}
	switch {
	case viewportWidth < 768:
		return DeviceMobile
	case viewportWidth < 1024:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// ResolveTimezone returns name when it is a known IANA zone, otherwise UTC.
func ResolveTimezone(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return DefaultTimezone
	}
	if _, err := time.LoadLocation(name); err != nil {
		return DefaultTimezone
	}
	return name
}

// Enrich collects the submission environment. The IP lookup is best effort:
// resolver failures yield PlaceholderAddress.
func Enrich(ctx context.Context, hints ClientHints, resolver AddressResolver) Environment {
	env := Environment{
		Timezone:   ResolveTimezone(hints.Timezone),
		Browser:    DetectBrowser(hints.UserAgent),
		DeviceType: DetectDeviceType(hints.UserAgent, hints.ViewportWidth),
		IPAddress:  PlaceholderAddress,
	}
	if resolver != nil {
		if addr, err := resolver.ResolveAddress(ctx); err == nil && addr != "" {
			env.IPAddress = addr
		}
	}
	return env
}
