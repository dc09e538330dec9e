package tests

import (
	"context"
	"testing"

	"courier/internal/service"
)

// ──────────────────────────────────────────────
// 1. ADDRESS RESOLUTION
// ──────────────────────────────────────────────

// The geocoder under test carries no API key, so every resolution
// works from coordinates embedded in the link itself.

func TestGeocoder_ResolveMapLinks(t *testing.T) {
	t.Parallel()

	geocoder := service.NewGeocodingService("")

	testCases := []struct {
		name    string
		input   string
		wantLat float64
		wantLng float64
	}{
		{
			name:    "at-coords viewport marker",
			input:   "https://www.google.com/maps/place/Parque+Kennedy/@-12.119294,-77.029583,17z",
			wantLat: -12.119294,
			wantLng: -77.029583,
		},
		{
			name:    "q query parameter",
			input:   "https://maps.google.com/?q=-12.046374,-77.042793",
			wantLat: -12.046374,
			wantLng: -77.042793,
		},
		{
			name:    "3d/4d data fragment",
			input:   "https://www.google.com/maps/place/X/data=!3d-11.994858!4d-77.061479",
			wantLat: -11.994858,
			wantLng: -77.061479,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			coords := geocoder.Resolve(context.Background(), tc.input)
			if coords.Lat != tc.wantLat || coords.Lng != tc.wantLng {
				t.Errorf("Resolve(%q) = (%v, %v), want (%v, %v)",
					tc.input, coords.Lat, coords.Lng, tc.wantLat, tc.wantLng)
			}
		})
	}
}

func TestGeocoder_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	geocoder := service.NewGeocodingService("")

	testCases := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"street address without API key", "Av. Arequipa 1234"},
		{"link without coordinates", "https://maps.app.goo.gl/abc123"},
		{"coordinates outside Lima", "https://maps.google.com/?q=-16.409047,-71.537451"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			coords := geocoder.Resolve(context.Background(), tc.input)
			if coords != service.DefaultCoordinates {
				t.Errorf("Resolve(%q) = %+v, want default coordinates", tc.input, coords)
			}
		})
	}
}
