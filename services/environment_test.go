package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	uaChrome  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaEdge    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
	uaFirefox = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	uaSafari  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_2) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15"
	uaOpera   = "Opera/9.80 (Windows NT 6.1) Presto/2.12.388 Version/12.16"
	uaIPad    = "Mozilla/5.0 (iPad; CPU OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1"
	uaIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1"
)

func TestDetectBrowser(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"Chrome", uaChrome, BrowserChrome},
		{"Edge advertises Chrome", uaEdge, BrowserEdge},
		{"Firefox", uaFirefox, BrowserFirefox},
		{"Safari", uaSafari, BrowserSafari},
		{"Opera Presto", uaOpera, BrowserOpera},
		{"Empty", "", Unknown},
		{"Curl", "curl/8.4.0", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBrowser(tt.ua))
		})
	}
}

func TestDetectDeviceType(t *testing.T) {
	tests := []struct {
		name  string
		ua    string
		width int
		want  string
	}{
		{"iPad keyword beats width", uaIPad, 1400, DeviceTablet},
		{"iPhone keyword", uaIPhone, 1400, DeviceMobile},
		{"Opera keyword counts as mobile", uaOpera, 1400, DeviceMobile},
		{"Narrow desktop viewport", uaChrome, 500, DeviceMobile},
		{"Mid desktop viewport", uaChrome, 800, DeviceTablet},
		{"Boundary 768 is tablet", uaChrome, 768, DeviceTablet},
		{"Boundary 1024 is desktop", uaChrome, 1024, DeviceDesktop},
		{"Wide viewport", uaChrome, 1920, DeviceDesktop},
		{"Width not reported", uaChrome, 0, DeviceDesktop},
		{"Nothing reported", "", 0, Unknown},
		{"Only width reported", "", 600, DeviceMobile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDeviceType(tt.ua, tt.width))
		})
	}
}

func TestResolveTimezone(t *testing.T) {
	assert.Equal(t, "America/New_York", ResolveTimezone("America/New_York"))
	assert.Equal(t, "Europe/Madrid", ResolveTimezone(" Europe/Madrid "))
	assert.Equal(t, DefaultTimezone, ResolveTimezone(""))
	assert.Equal(t, DefaultTimezone, ResolveTimezone("Mars/Olympus_Mons"))
	assert.Equal(t, DefaultTimezone, ResolveTimezone("Local"))
}

func TestEnrich(t *testing.T) {
	hints := ClientHints{UserAgent: uaFirefox, ViewportWidth: 1280, Timezone: "America/Chicago"}

	env := Enrich(context.Background(), hints, &stubResolver{addr: "203.0.113.4"})
	assert.Equal(t, Environment{
		Timezone:   "America/Chicago",
		Browser:    BrowserFirefox,
		DeviceType: DeviceDesktop,
		IPAddress:  "203.0.113.4",
	}, env)

	env = Enrich(context.Background(), hints, &stubResolver{err: errors.New("down")})
	assert.Equal(t, PlaceholderAddress, env.IPAddress)

	env = Enrich(context.Background(), hints, nil)
	assert.Equal(t, PlaceholderAddress, env.IPAddress)
}
