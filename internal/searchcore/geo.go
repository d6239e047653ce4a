package searchcore

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// geoPointRE matches a "_geoPoint(lat,lng)" sort expression, per spec §4.6.
var geoPointRE = regexp.MustCompile(`_geoPoint\(\s*([0-9.\-]+)\s*,\s*([0-9.\-]+)\s*\)`)

// earthRadiusMeters is the mean Earth radius used for the haversine
// great-circle distance, matching the reference implementation's geo
// ranking.
const earthRadiusMeters = 6372797.560856

// GeoPoint is a latitude/longitude pair, e.g. a document's stored "_geo"
// field.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// FindGeoSort scans sort for the first "_geoPoint(lat,lng)" expression and
// returns the parsed point. ok is false if no sort entry matches; err is
// non-nil only when a matching entry's captures fail to parse as floats,
// which the spec treats as an Internal bug (the regex only accepts
// `[0-9.\-]+`, so this should never actually happen in practice).
func FindGeoSort(sort []string) (point GeoPoint, ok bool, err error) {
	for _, entry := range sort {
		m := geoPointRE.FindStringSubmatch(entry)
		if m == nil {
			continue
		}

		lat, parseErr := strconv.ParseFloat(m[1], 64)
		if parseErr != nil {
			return GeoPoint{}, false, fmt.Errorf("%w: geo sort latitude %q: %w", ErrInternal, m[1], parseErr)
		}

		lng, parseErr := strconv.ParseFloat(m[2], 64)
		if parseErr != nil {
			return GeoPoint{}, false, fmt.Errorf("%w: geo sort longitude %q: %w", ErrInternal, m[2], parseErr)
		}

		return GeoPoint{Lat: lat, Lng: lng}, true, nil
	}

	return GeoPoint{}, false, nil
}

// HaversineMeters computes the great-circle distance between a and b in
// meters.
func HaversineMeters(a, b GeoPoint) float64 {
	const degToRad = math.Pi / 180

	lat1, lat2 := a.Lat*degToRad, b.Lat*degToRad
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// InsertGeoDistance implements spec §4.6: if sort contains a "_geoPoint"
// expression and doc has a "_geo" object with numeric lat/lng, it inserts a
// "_geoDistance" field (rounded to the nearest integer meter) into doc.
// Only the first matching sort entry is used. Absent "_geo", nothing is
// inserted.
func InsertGeoDistance(doc *OrderedDoc, sort []string) error {
	target, ok, err := FindGeoSort(sort)
	if err != nil {
		return err
	}

	if !ok {
		return nil
	}

	geoVal, ok := doc.Get("_geo")
	if !ok {
		return nil
	}

	origin, ok := parseGeoField(geoVal)
	if !ok {
		return nil
	}

	dist := HaversineMeters(origin, target)
	doc.Set("_geoDistance", int(math.Round(dist)))

	return nil
}

// parseGeoField extracts a GeoPoint from a "_geo" document field, which may
// be a map[string]any (post-json.Unmarshal) or an *OrderedDoc.
func parseGeoField(v any) (GeoPoint, bool) {
	get := func(key string) (any, bool) { return nil, false }

	switch m := v.(type) {
	case map[string]any:
		get = func(key string) (any, bool) { val, ok := m[key]; return val, ok }
	case *OrderedDoc:
		get = m.Get
	default:
		return GeoPoint{}, false
	}

	lat, ok := numericValue(get, "lat")
	if !ok {
		return GeoPoint{}, false
	}

	lng, ok := numericValue(get, "lng")
	if !ok {
		return GeoPoint{}, false
	}

	return GeoPoint{Lat: lat, Lng: lng}, true
}

// numericValue fetches key via get and coerces it to float64, accepting the
// JSON-decoded float64 shape as well as plain int/int64/float32 for
// documents built directly by Go code rather than round-tripped through
// JSON.
func numericValue(get func(string) (any, bool), key string) (float64, bool) {
	v, ok := get(key)
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
