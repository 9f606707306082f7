package audio

import (
	"math"
	"testing"
)

func TestPCMRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 12345}
	got := PCMBytesToInt16(Int16ToPCMBytes(samples))
	if len(got) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(got))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d: expected %d, got %d", i, samples[i], got[i])
		}
	}
}

func TestRMSDecibels_Silence(t *testing.T) {
	if db := RMSDecibels(nil); db != SilenceDB {
		t.Errorf("nil input: expected %v, got %v", SilenceDB, db)
	}
	if db := RMSDecibels(make([]int16, 160)); db != SilenceDB {
		t.Errorf("zero samples: expected %v, got %v", SilenceDB, db)
	}
}

func TestRMSDecibels_FullScale(t *testing.T) {
	samples := make([]int16, 160)
	for i := range samples {
		samples[i] = 32767
	}
	db := RMSDecibels(samples)
	if math.Abs(db) > 0.01 {
		t.Errorf("full-scale DC should be ~0 dBFS, got %v", db)
	}
}

func TestRMSDecibels_HalfScale(t *testing.T) {
	samples := make([]int16, 160)
	for i := range samples {
		samples[i] = 16384
	}
	db := RMSDecibels(samples)
	if math.Abs(db-(-6.02)) > 0.1 {
		t.Errorf("half-scale should be ~-6 dBFS, got %v", db)
	}
}
