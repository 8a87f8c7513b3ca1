// README: Encoded polyline codec (Google signed-varint format).
package maps

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ridecompare/internal/types"
)

const (
	// PolylinePrecision5 is the standard Google factor.
	PolylinePrecision5 = 1e5
	// PolylinePrecision6 is used by OSRM/Valhalla "polyline6".
	PolylinePrecision6 = 1e6

	polylineOffset = 63
	chunkBits      = 5
	chunkMask      = 0x1f
	continueBit    = 0x20
	// 12 chunks carry 60 bits, more than any coordinate at supported precisions.
	maxChunks = 12
)

var ErrMalformedPolyline = errors.New("malformed polyline")

// MalformedPolylineError reports where decoding stopped.
type MalformedPolylineError struct {
	Offset int
	Reason string
}

func (e *MalformedPolylineError) Error() string {
	return fmt.Sprintf("malformed polyline at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedPolylineError) Is(target error) bool {
	return target == ErrMalformedPolyline
}

// DecodePolyline decodes a precision-5 polyline. An empty string decodes to an empty path.
func DecodePolyline(encoded string) ([]types.Point, error) {
	return DecodePolylineFactor(encoded, PolylinePrecision5)
}

// DecodePolylineFactor decodes a polyline whose coordinates were multiplied by factor.
func DecodePolylineFactor(encoded string, factor float64) ([]types.Point, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("polyline factor must be positive, got %v", factor)
	}
	if encoded == "" {
		return nil, nil
	}

	// Every coordinate pair takes at least two characters.
	path := make([]types.Point, 0, len(encoded)/4)
	var lat, lng int64
	pos := 0
	for pos < len(encoded) {
		dLat, next, err := decodeValue(encoded, pos)
		if err != nil {
			return nil, err
		}
		if next >= len(encoded) {
			return nil, &MalformedPolylineError{Offset: next, Reason: "latitude without longitude"}
		}
		dLng, after, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}
		pos = after

		lat += dLat
		lng += dLng
		path = append(path, types.Point{Lat: float64(lat) / factor, Lng: float64(lng) / factor})
	}
	return path, nil
}

// decodeValue reads one zig-zag varint starting at pos and returns the value and the next offset.
func decodeValue(s string, pos int) (int64, int, error) {
	var result uint64
	var shift uint
	for chunks := 0; ; chunks++ {
		if pos >= len(s) {
			return 0, pos, &MalformedPolylineError{Offset: pos, Reason: "truncated value"}
		}
		if chunks == maxChunks {
			return 0, pos, &MalformedPolylineError{Offset: pos, Reason: "value too long"}
		}
		c := s[pos]
		if c < polylineOffset || c > '~' {
			return 0, pos, &MalformedPolylineError{Offset: pos, Reason: fmt.Sprintf("invalid character %q", c)}
		}
		b := uint64(c - polylineOffset)
		pos++
		result |= (b & chunkMask) << shift
		shift += chunkBits
		if b&continueBit == 0 {
			break
		}
	}
	if result&1 != 0 {
		return ^int64(result >> 1), pos, nil
	}
	return int64(result >> 1), pos, nil
}

// EncodePolyline encodes path at precision 5.
func EncodePolyline(path []types.Point) string {
	return EncodePolylineFactor(path, PolylinePrecision5)
}

func EncodePolylineFactor(path []types.Point, factor float64) string {
	var sb strings.Builder
	sb.Grow(len(path) * 8)
	var prevLat, prevLng int64
	for _, p := range path {
		lat := int64(math.Round(p.Lat * factor))
		lng := int64(math.Round(p.Lng * factor))
		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

func encodeValue(sb *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= continueBit {
		sb.WriteByte(byte((continueBit | (u & chunkMask)) + polylineOffset))
		u >>= chunkBits
	}
	sb.WriteByte(byte(u + polylineOffset))
}
