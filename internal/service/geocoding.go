package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"courier/internal/domain"
)

// DefaultCoordinates is the fixed fallback location (Lima, Perú) used
// whenever an address cannot be resolved. Order creation never fails
// on a bad address.
var DefaultCoordinates = domain.Coordinates{Lat: -12.080772, Lng: -76.980565}

// GeocoderInterface resolves a free-text address or maps link to
// coordinates. Implementations fall back to DefaultCoordinates rather
// than failing; an error is only returned for context cancellation.
type GeocoderInterface interface {
	Resolve(ctx context.Context, input string) domain.Coordinates
}

// Ensure GeocodingService implements GeocoderInterface.
var _ GeocoderInterface = (*GeocodingService)(nil)

// GeocodingService resolves addresses via coordinate extraction from
// maps links, falling back to the Google Geocoding API.
type GeocodingService struct {
	apiKey     string
	httpClient *http.Client
}

// NewGeocodingService creates a new GeocodingService. An empty API key
// disables the remote geocoding fallback; link extraction still works.
func NewGeocodingService(apiKey string) *GeocodingService {
	return &GeocodingService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Coordinate patterns found in Google Maps share links. The bounding
// values keep matches inside the Lima metropolitan area.
var (
	reLinkAtCoords = regexp.MustCompile(`@(-1[1-2]\.\d+),(-7[6-7]\.\d+)`)
	reLinkLat      = regexp.MustCompile(`-1[1-2]\.\d+`)
	reLinkLng      = regexp.MustCompile(`-7[6-7]\.\d+`)
	reLink3dLat    = regexp.MustCompile(`!3d(-1[1-2]\.\d+)`)
	reLink4dLng    = regexp.MustCompile(`!4d(-7[6-7]\.\d+)`)
	reLinkPlace    = regexp.MustCompile(`/place/(.*?)(/data=|/@|$)`)
	reLinkQuery    = regexp.MustCompile(`/maps\?q=(.*?)(&|$)`)
)

// Resolve maps an address or maps link to coordinates. Resolution
// failures degrade to DefaultCoordinates instead of surfacing errors:
// the builder must never refuse an order over an unresolvable address.
func (s *GeocodingService) Resolve(ctx context.Context, input string) domain.Coordinates {
	input = strings.TrimSpace(input)
	if input == "" {
		return DefaultCoordinates
	}

	var coords domain.Coordinates
	var ok bool

	if isMapLink(input) {
		coords, ok = s.resolveLink(ctx, input)
	} else {
		coords, ok = s.geocodeAddress(ctx, input)
	}

	if !ok {
		return DefaultCoordinates
	}
	return coords
}

// resolveLink extracts coordinates from a maps link, trying direct
// extraction first and geocoding the embedded place name second.
func (s *GeocodingService) resolveLink(ctx context.Context, link string) (domain.Coordinates, bool) {
	if coords, ok := coordsFromLink(link); ok {
		return coords, true
	}

	if place := placeNameFromLink(link); place != "" {
		return s.geocodeAddress(ctx, place)
	}

	return domain.Coordinates{}, false
}

// isMapLink reports whether the input looks like a URL rather than a
// street address.
func isMapLink(input string) bool {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "www.") {
		return true
	}

	for _, dom := range []string{".com", ".org", ".net", ".gob", ".edu", ".pe", ".maps"} {
		if strings.Contains(input, dom) {
			return true
		}
	}
	return false
}

// coordsFromLink tries the known coordinate encodings of Google Maps
// share links, in order of reliability.
func coordsFromLink(link string) (domain.Coordinates, bool) {
	decoded, err := url.QueryUnescape(link)
	if err != nil {
		decoded = link
	}

	// "@lat,lng" viewport marker.
	if m := reLinkAtCoords.FindStringSubmatch(decoded); m != nil {
		return parseCoordPair(m[1], m[2])
	}

	// "q=lat,lng" query parameter.
	if u, err := url.Parse(link); err == nil {
		if q := u.Query().Get("q"); q != "" {
			parts := strings.Split(q, ",")
			if len(parts) == 2 {
				if coords, ok := parseCoordPair(parts[0], parts[1]); ok && withinLima(coords) {
					return coords, true
				}
			}
		}
	}

	// Any in-range lat/lng pair anywhere in the link.
	latMatches := reLinkLat.FindAllString(decoded, -1)
	lngMatches := reLinkLng.FindAllString(decoded, -1)
	for _, lat := range latMatches {
		for _, lng := range lngMatches {
			if coords, ok := parseCoordPair(lat, lng); ok && withinLima(coords) {
				return coords, true
			}
		}
	}

	// "!3dlat!4dlng" data fragments.
	latM := reLink3dLat.FindStringSubmatch(decoded)
	lngM := reLink4dLng.FindStringSubmatch(decoded)
	if latM != nil && lngM != nil {
		return parseCoordPair(latM[1], lngM[1])
	}

	return domain.Coordinates{}, false
}

// placeNameFromLink extracts the place name embedded in a maps link.
func placeNameFromLink(link string) string {
	decoded, err := url.QueryUnescape(link)
	if err != nil {
		decoded = link
	}

	for _, re := range []*regexp.Regexp{reLinkPlace, reLinkQuery} {
		if m := re.FindStringSubmatch(decoded); m != nil {
			place := strings.ReplaceAll(m[1], "+", " ")
			place = strings.ReplaceAll(place, "%20", " ")
			place = strings.ReplaceAll(place, "%2C", ",")
			return place
		}
	}
	return ""
}

// geocodeResponse is the subset of the Google Geocoding API response
// this service reads.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// geocodeAddress resolves an address through the Geocoding API,
// adding the "Lima, Perú" context when the address does not carry it.
func (s *GeocodingService) geocodeAddress(ctx context.Context, address string) (domain.Coordinates, bool) {
	if s.apiKey == "" {
		return domain.Coordinates{}, false
	}

	lower := strings.ToLower(address)
	if !strings.Contains(lower, "lima") && !strings.Contains(lower, "perú") &&
		!strings.Contains(lower, "peru") {
		address += ", Lima, Perú"
	}

	endpoint := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/geocode/json?address=%s&key=%s",
		url.QueryEscape(address), s.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinates{}, false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("geocoding request failed: %v", err)
		return domain.Coordinates{}, false
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Printf("geocoding response decode failed: %v", err)
		return domain.Coordinates{}, false
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return domain.Coordinates{}, false
	}

	coords := domain.Coordinates{
		Lat: decoded.Results[0].Geometry.Location.Lat,
		Lng: decoded.Results[0].Geometry.Location.Lng,
	}
	if !withinLima(coords) {
		return domain.Coordinates{}, false
	}
	return coords, true
}

// parseCoordPair parses a lat/lng string pair.
func parseCoordPair(latStr, lngStr string) (domain.Coordinates, bool) {
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, true
}

// withinLima reports whether coordinates fall inside the Lima
// metropolitan bounding box.
func withinLima(c domain.Coordinates) bool {
	return c.Lat >= -12.999999 && c.Lat <= -11.0 && c.Lng >= -77.999999 && c.Lng <= -76.0
}
