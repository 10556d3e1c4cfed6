package upscale

import "github.com/gogpu/ffx"

// Descriptor types served by this package.
const (
	DescCreate            = ffx.DescUpscaleCreate
	DescDispatch          = ffx.DescUpscaleDispatch
	DescQueryUpscaleRatio = ffx.DescUpscaleQueryUpscaleRatio
	DescQueryRenderSize   = ffx.DescUpscaleQueryRenderSize
	DescQueryJitterPhases = ffx.DescUpscaleQueryJitterPhases
	DescQueryJitterOffset = ffx.DescUpscaleQueryJitterOffset
	DescGenerateReactive  = ffx.DescUpscaleGenerateReactive
	DescConfigureKeyValue = ffx.DescUpscaleConfigureKeyValue
)

// Flags are context creation flags.
type Flags uint32

const (
	// FlagHDR marks the color input as high dynamic range.
	FlagHDR Flags = 1 << 0

	// FlagDisplayResolutionMotionVectors marks motion vectors as rendered
	// at display resolution rather than render resolution.
	FlagDisplayResolutionMotionVectors Flags = 1 << 1

	// FlagJitterCancellation marks motion vectors as containing the
	// camera jitter.
	FlagJitterCancellation Flags = 1 << 2

	// FlagInvertedDepth marks depth as 1 at the near plane.
	FlagInvertedDepth Flags = 1 << 3

	// FlagInfiniteDepth marks the projection as having an infinite far
	// plane.
	FlagInfiniteDepth Flags = 1 << 4

	// FlagAutoExposure computes exposure instead of reading it.
	FlagAutoExposure Flags = 1 << 5

	// FlagDynamicResolution allows the render size to change every frame.
	FlagDynamicResolution Flags = 1 << 6

	// FlagDebugChecking logs extra validation warnings.
	FlagDebugChecking Flags = 1 << 8
)

// Has reports whether every flag in g is set in f.
func (f Flags) Has(g Flags) bool { return f&g == g }

// CreateDesc creates an upscaler context.
type CreateDesc struct {
	// MaxRenderSize is the largest render resolution dispatches may use.
	MaxRenderSize [2]uint32
	// MaxUpscaleSize is the largest output resolution.
	MaxUpscaleSize [2]uint32
	Flags          Flags
}

func (*CreateDesc) Type() ffx.DescType { return DescCreate }

// DispatchFlags select optional work for one dispatch.
type DispatchFlags uint32

const (
	// DispatchDrawDebugView renders the debug view over the output.
	DispatchDrawDebugView DispatchFlags = 1 << 0
)

// DispatchDesc upscales one frame.
type DispatchDesc struct {
	RenderSize  [2]uint32
	UpscaleSize [2]uint32

	// JitterOffset is the sub-pixel jitter applied to the projection,
	// in pixels.
	JitterOffset      [2]float32
	MotionVectorScale [2]float32

	EnableSharpening bool
	// Sharpness is in [0, 1] and used when EnableSharpening is set.
	Sharpness float32

	// FrameTimeDelta is the time since the last frame, in milliseconds.
	FrameTimeDelta float32
	PreExposure    float32

	// Reset discards accumulated history, e.g. after a camera cut.
	Reset bool

	CameraNear             float32
	CameraFar              float32
	CameraFovAngleVertical float32

	Flags DispatchFlags
}

func (*DispatchDesc) Type() ffx.DescType { return DescDispatch }

// GenerateReactiveDesc builds a reactive mask from the opaque-only and
// final color inputs.
type GenerateReactiveDesc struct {
	RenderSize [2]uint32

	// Scale multiplies the reactive value.
	Scale float32
	// CutoffThreshold clamps the mask below this value to zero.
	CutoffThreshold float32
	// BinaryValue is written for pixels above the threshold when the
	// mask is binary.
	BinaryValue float32
}

func (*GenerateReactiveDesc) Type() ffx.DescType { return DescGenerateReactive }

// QueryUpscaleRatioDesc asks for the upscale ratio of a quality mode.
type QueryUpscaleRatioDesc struct {
	QualityMode QualityMode
	OutRatio    *float32
}

func (*QueryUpscaleRatioDesc) Type() ffx.DescType { return DescQueryUpscaleRatio }

// QueryRenderSizeDesc asks for the render resolution that a quality mode
// uses for a display resolution.
type QueryRenderSizeDesc struct {
	DisplaySize   [2]uint32
	QualityMode   QualityMode
	OutRenderSize *[2]uint32
}

func (*QueryRenderSizeDesc) Type() ffx.DescType { return DescQueryRenderSize }

// QueryJitterPhasesDesc asks for the jitter sequence length.
type QueryJitterPhasesDesc struct {
	RenderWidth   uint32
	DisplayWidth  uint32
	OutPhaseCount *int32
}

func (*QueryJitterPhasesDesc) Type() ffx.DescType { return DescQueryJitterPhases }

// QueryJitterOffsetDesc asks for the jitter offset of one frame.
type QueryJitterOffsetDesc struct {
	Index      int32
	PhaseCount int32
	OutOffset  *[2]float32
}

func (*QueryJitterOffsetDesc) Type() ffx.DescType { return DescQueryJitterOffset }

// ConfigureKeyValueDesc sets one runtime tunable.
type ConfigureKeyValueDesc struct {
	Key   ConfigKey
	Value float32
}

func (*ConfigureKeyValueDesc) Type() ffx.DescType { return DescConfigureKeyValue }
