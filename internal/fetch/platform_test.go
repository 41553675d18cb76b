package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform_MapYourShow(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://isasignexpo2025.mapyourshow.com/8_0/explore/exhibitor-gallery.cfm", PlatformMapYourShow},
		{"https://show.mapyourshow.com/exhibitors", PlatformMapYourShow},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_A2Z(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://fabtech25.exh.a2zinc.net/exhibitors", PlatformA2Z},
		{"https://www.a2zevents.com/directory", PlatformA2Z},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_ExpoCad(t *testing.T) {
	result := DetectPlatform("https://app.expocad.com/events/show/floorplan")
	assert.Equal(t, PlatformExpoCad, result)
}

func TestDetectPlatform_Unknown(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://example.com/exhibitors", PlatformUnknown},
		{"https://printingunited.com/exhibitor-list", PlatformUnknown},
		{"not-a-url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPlatformContentSelectors_MapYourShow(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformMapYourShow)
	assert.Contains(t, selectors, "#exhibitor-results")
	assert.Contains(t, selectors, ".mys-table-exhibname")
}

func TestPlatformContentSelectors_Unknown(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformUnknown)
	// Should fallback to generic directory selectors
	assert.Contains(t, selectors, ".exhibitor-list")
	assert.Contains(t, selectors, "main")
}

func TestPlatformNoiseSelectors_MapYourShow(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformMapYourShow)
	// Common selectors
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".cookie-banner")
	// Platform-specific
	assert.Contains(t, selectors, ".mys-header")
}

func TestPlatformNoiseSelectors_Unknown(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".pagination")
}

func TestPlatformsRequiringBrowser(t *testing.T) {
	assert.True(t, PlatformsRequiringBrowser(PlatformMapYourShow))
	assert.True(t, PlatformsRequiringBrowser(PlatformA2Z))
	assert.False(t, PlatformsRequiringBrowser(PlatformExpoCad))
	assert.False(t, PlatformsRequiringBrowser(PlatformUnknown))
}
