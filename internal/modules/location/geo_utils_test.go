package location

import (
	"math"
	"testing"

	"ridecompare/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			lat1:      12.9716, lng1: 77.5946,
			lat2:      12.9716, lng2: 77.5946,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "MG Road to Koramangala (~5km)",
			lat1:      12.9756, lng1: 77.6066,
			lat2:      12.9352, lng2: 77.6245,
			wantKm:    4.9,
			tolerance: 0.5,
		},
		{
			name:      "Bangalore to Mumbai (~845km)",
			lat1:      12.9716, lng1: 77.5946,
			lat2:      19.0760, lng2: 72.8777,
			wantKm:    845,
			tolerance: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(12.0, 77.0, 13.0, 78.0)
	d2 := haversineKm(13.0, 78.0, 12.0, 77.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestPathLengthKm(t *testing.T) {
	a := types.Point{Lat: 12.9716, Lng: 77.5946}
	b := types.Point{Lat: 12.9352, Lng: 77.6245}
	c := types.Point{Lat: 12.9784, Lng: 77.6408}

	want := DistanceKm(a, b) + DistanceKm(b, c)
	if got := PathLengthKm([]types.Point{a, b, c}); math.Abs(got-want) > 1e-9 {
		t.Errorf("PathLengthKm() = %f, want %f", got, want)
	}
	if got := PathLengthKm([]types.Point{a}); got != 0 {
		t.Errorf("single point path = %f, want 0", got)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in     string
		want   types.Point
		wantOK bool
	}{
		{"12.9716,77.5946", types.Point{Lat: 12.9716, Lng: 77.5946}, true},
		{" 12.9716 , 77.5946 ", types.Point{Lat: 12.9716, Lng: 77.5946}, true},
		{"Koramangala", types.Point{}, false},
		{"12.9,abc", types.Point{}, false},
		{"91,10", types.Point{Lat: 91, Lng: 10}, false},
		{"10,-181", types.Point{Lat: 10, Lng: -181}, false},
	}
	for _, tt := range tests {
		got, ok := ParsePoint(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParsePoint(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParsePoint(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault(nil); got != Default {
		t.Errorf("OrDefault(nil) = %v, want %v", got, Default)
	}
	bad := types.Point{Lat: math.NaN(), Lng: 0}
	if got := OrDefault(&bad); got != Default {
		t.Errorf("OrDefault(NaN) = %v, want default", got)
	}
	p := types.Point{Lat: 28.6139, Lng: 77.2090}
	if got := OrDefault(&p); got != p {
		t.Errorf("OrDefault(%v) = %v", p, got)
	}
}
