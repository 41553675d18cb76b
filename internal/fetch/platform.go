// Package fetch - platform.go provides platform detection and platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known exhibitor-directory platform.
type Platform string

const (
	// PlatformMapYourShow is the Map Your Show floorplan/directory platform
	PlatformMapYourShow Platform = "mapyourshow"
	// PlatformA2Z is the A2Z Events (Personify) directory platform
	PlatformA2Z Platform = "a2z"
	// PlatformExpoCad is the ExpoCad floorplan platform
	PlatformExpoCad Platform = "expocad"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the exhibitor-directory platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "mapyourshow.com") {
		return PlatformMapYourShow
	}

	if strings.Contains(host, "a2zinc.net") ||
		strings.Contains(host, "a2zevents.com") {
		return PlatformA2Z
	}

	if strings.Contains(host, "expocad.com") {
		return PlatformExpoCad
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformMapYourShow:
		return []string{
			"#exhibitor-results",
			".mys-table-exhibname",
			".card-body",
			"main",
			"#content",
		}
	case PlatformA2Z:
		return []string{
			"#exhibitorList",
			".companyName",
			".boothLabel",
			"main",
			"#content",
		}
	case PlatformExpoCad:
		return []string{
			".exhibitor-name",
			".EVList",
			"main",
			"#content",
		}
	default:
		return ExhibitorDirectorySelectors()
	}
}

// PlatformNoiseSelectors returns elements stripped before text extraction
// for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".cookie-banner",
		".search-bar",
		"#filters",
		".pagination",
	}
	switch platform {
	case PlatformMapYourShow:
		return append(common, ".mys-header", ".floorplan-controls")
	case PlatformA2Z:
		return append(common, ".boothLabel", ".sponsorStrip")
	default:
		return common
	}
}

// PlatformsRequiringBrowser reports whether a platform is known to render its
// directory client-side, making a plain HTTP fetch come back nearly empty.
func PlatformsRequiringBrowser(platform Platform) bool {
	switch platform {
	case PlatformMapYourShow, PlatformA2Z:
		return true
	default:
		return false
	}
}
