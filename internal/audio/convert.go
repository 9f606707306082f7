package audio

import (
	"encoding/binary"
	"math"
)

func PCMBytesToInt16(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := 0; i < len(samples); i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return samples
}

func Int16ToPCMBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return pcm
}

// RMSDecibels computes the RMS level of PCM16 samples in dBFS.
// Silence returns SilenceDB.
func RMSDecibels(samples []int16) float64 {
	if len(samples) == 0 {
		return SilenceDB
	}

	var sum float64
	for _, s := range samples {
		f := float64(s) / 32768.0
		sum += f * f
	}

	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return SilenceDB
	}

	db := 20 * math.Log10(rms)
	if db < SilenceDB {
		return SilenceDB
	}
	return db
}

// SilenceDB is the sentinel level for silence or unknown input.
const SilenceDB = -120.0
