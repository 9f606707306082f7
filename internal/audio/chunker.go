package audio

import "time"

const (
	SampleRate     = 16000
	BytesPerSample = 2
	FrameDuration  = 50 * time.Millisecond

	// FrameSize is the byte length of one upstream audio frame:
	// 16 kHz mono PCM16 over one frame duration (1600 bytes at 50 ms).
	FrameSize = int(SampleRate*FrameDuration/time.Second) * BytesPerSample
)

// Chunker reassembles arbitrary-sized PCM byte chunks into fixed-size
// frames. Bytes below one frame are carried over to the next push. One
// chunker belongs to one session; it is not safe for concurrent use.
type Chunker struct {
	carry []byte
}

func NewChunker() *Chunker {
	return &Chunker{}
}

// Push appends data to the carry buffer and drains it in FrameSize
// slices, oldest bytes first. It returns zero or more complete frames
// and never drops bytes.
func (c *Chunker) Push(data []byte) [][]byte {
	if len(data) == 0 && len(c.carry) < FrameSize {
		return nil
	}

	c.carry = append(c.carry, data...)

	n := len(c.carry) / FrameSize
	if n == 0 {
		return nil
	}

	frames := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		frame := make([]byte, FrameSize)
		copy(frame, c.carry[i*FrameSize:(i+1)*FrameSize])
		frames = append(frames, frame)
	}

	c.carry = append(c.carry[:0], c.carry[n*FrameSize:]...)
	return frames
}

// Pending reports how many bytes are buffered below one frame.
func (c *Chunker) Pending() int {
	return len(c.carry)
}
