package upscale

import (
	"fmt"

	"github.com/gogpu/ffx"
)

// QualityMode trades render resolution for output quality.
type QualityMode uint32

// Quality modes, from highest to lowest render resolution.
const (
	QualityNativeAA QualityMode = iota
	QualityQuality
	QualityBalanced
	QualityPerformance
	QualityUltraPerformance
)

var qualityModes = [...]struct {
	name  string
	ratio float32
}{
	QualityNativeAA:         {"native_aa", 1.0},
	QualityQuality:          {"quality", 1.5},
	QualityBalanced:         {"balanced", 1.7},
	QualityPerformance:      {"performance", 2.0},
	QualityUltraPerformance: {"ultra_performance", 3.0},
}

// String returns the mode name.
func (m QualityMode) String() string {
	if int(m) < len(qualityModes) {
		return qualityModes[m].name
	}
	return fmt.Sprintf("QualityMode(%d)", uint32(m))
}

// Ratio returns the display-to-render ratio of the mode.
func (m QualityMode) Ratio() (float32, error) {
	if int(m) >= len(qualityModes) {
		return 0, fmt.Errorf("%w: unknown quality mode %d", ffx.ErrInvalidArgument, uint32(m))
	}
	return qualityModes[m].ratio, nil
}

// RenderSize returns the render resolution the mode uses for a display
// resolution. Each dimension is truncated.
func RenderSize(display [2]uint32, m QualityMode) ([2]uint32, error) {
	ratio, err := m.Ratio()
	if err != nil {
		return [2]uint32{}, err
	}
	return [2]uint32{
		uint32(float32(display[0]) / ratio),
		uint32(float32(display[1]) / ratio),
	}, nil
}

// basePhaseCount is the jitter sequence length at native resolution.
const basePhaseCount = 8

// JitterPhaseCount returns the jitter sequence length for the given
// horizontal render and display resolutions. The sequence grows with the
// square of the upscale ratio so every output pixel is covered.
func JitterPhaseCount(renderWidth, displayWidth uint32) (int32, error) {
	if renderWidth == 0 {
		return 0, fmt.Errorf("%w: render width is zero", ffx.ErrInvalidArgument)
	}
	ratio := float32(displayWidth) / float32(renderWidth)
	return int32(basePhaseCount * ratio * ratio), nil
}

// JitterOffset returns the sub-pixel jitter of frame index in a sequence
// of phaseCount frames. Offsets are in [-0.5, 0.5) and follow the
// Halton(2, 3) sequence. Negative indices wrap.
func JitterOffset(index, phaseCount int32) ([2]float32, error) {
	if phaseCount <= 0 {
		return [2]float32{}, fmt.Errorf("%w: phase count %d", ffx.ErrInvalidArgument, phaseCount)
	}
	i := index % phaseCount
	if i < 0 {
		i += phaseCount
	}
	base := i + 1
	return [2]float32{halton(base, 2) - 0.5, halton(base, 3) - 0.5}, nil
}

// halton returns element index of the radical inverse sequence in base.
func halton(index, base int32) float32 {
	f := float32(1)
	var r float32
	for i := index; i > 0; i /= base {
		f /= float32(base)
		r += f * float32(i%base)
	}
	return r
}
