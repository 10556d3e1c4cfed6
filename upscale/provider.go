package upscale

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ffx"
	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/internal/shaders/fsr3upscaler"
	"github.com/gogpu/ffx/permutation"
)

// features are the optional capabilities of a provider.
type features uint8

const (
	featureDebugView features = 1 << iota
	featureGenerateReactive
	featureAllConfigKeys
)

// Provider is an FSR3 upscaler implementation. The zero value is not
// usable; use Current or Legacy.
type Provider struct {
	id       uint64
	version  string
	features features
}

var (
	// Current is the newest upscaler. It serves every upscale descriptor.
	Current = &Provider{
		id:       0xF5A5300000030104,
		version:  "3.1.4",
		features: featureDebugView | featureGenerateReactive | featureAllConfigKeys,
	}

	// Legacy is the 3.0 upscaler. It has no debug view, cannot generate
	// reactive masks and only accepts KeyVelocityFactor.
	Legacy = &Provider{
		id:      0xF5A5300000030003,
		version: "3.0.3",
	}
)

var _ ffx.Provider = (*Provider)(nil)

// Workgroup tiles in pixels. The luma pyramid reduces a 64x64 tile per
// workgroup.
var (
	lumaPyramidTile     = [3]uint32{64, 64, 1}
	autogenReactiveTile = [3]uint32{8, 8, 1}
	debugViewTile       = [3]uint32{8, 8, 1}
)

// ID returns the provider identifier.
func (p *Provider) ID() uint64 { return p.id }

// Version returns the provider version label.
func (p *Provider) Version() string { return p.version }

func (p *Provider) has(f features) bool { return p.features&f == f }

// CanProvide reports whether p serves descriptor type t.
func (p *Provider) CanProvide(t ffx.DescType) bool {
	if t.Effect() != ffx.EffectUpscale {
		return false
	}
	switch t {
	case DescCreate, DescDispatch, DescConfigureKeyValue,
		DescQueryUpscaleRatio, DescQueryRenderSize,
		DescQueryJitterPhases, DescQueryJitterOffset:
		return true
	case DescGenerateReactive:
		return p.has(featureGenerateReactive)
	}
	return false
}

// state is the per-context data of an upscaler context.
type state struct {
	owner     *Provider
	backend   backend.Backend
	log       *slog.Logger
	desc      CreateDesc
	lanczos   bool
	tunables  tunables
	frame     uint64
	pipelines *pipelineCache
}

func (s *state) Owner() ffx.Provider { return s.owner }

// CreateContext validates desc and allocates the context state.
// Pipelines are created on first use.
func (p *Provider) CreateContext(desc ffx.Descriptor, env *ffx.Env) (ffx.State, error) {
	d, ok := desc.(*CreateDesc)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not an upscale create descriptor", ffx.ErrUnsupportedDescriptor, desc.Type())
	}
	if env == nil || env.Backend == nil {
		return nil, ffx.ErrNoBackend
	}
	if d.MaxRenderSize[0] == 0 || d.MaxRenderSize[1] == 0 {
		return nil, fmt.Errorf("%w: max render size %v", ffx.ErrInvalidArgument, d.MaxRenderSize)
	}
	if d.MaxUpscaleSize[0] == 0 || d.MaxUpscaleSize[1] == 0 {
		return nil, fmt.Errorf("%w: max upscale size %v", ffx.ErrInvalidArgument, d.MaxUpscaleSize)
	}

	log := env.Logger
	if log == nil {
		log = ffx.Logger()
	}

	// Integrated and software adapters take the cheaper reprojection
	// kernel.
	adapter := env.AdapterType()
	lanczos := adapter == gpucontext.AdapterTypeIntegrated || adapter == gpucontext.AdapterTypeSoftware

	s := &state{
		owner:     p,
		backend:   env.Backend,
		log:       log,
		desc:      *d,
		lanczos:   lanczos,
		tunables:  defaultTunables(),
		pipelines: newPipelineCache(env.Backend),
	}
	log.Debug("upscale: context state created",
		"version", p.version,
		"max_render", d.MaxRenderSize,
		"max_upscale", d.MaxUpscaleSize,
		"flags", fmt.Sprintf("%#x", uint32(d.Flags)),
		"lanczos", lanczos)
	if d.Flags.Has(FlagDebugChecking) && d.MaxRenderSize[0] > d.MaxUpscaleSize[0] {
		log.Warn("upscale: max render width exceeds max upscale width",
			"render", d.MaxRenderSize[0], "upscale", d.MaxUpscaleSize[0])
	}
	return s, nil
}

// DestroyContext releases the pipelines of a context.
func (p *Provider) DestroyContext(s ffx.State) error {
	st, err := p.state(s)
	if err != nil {
		return err
	}
	st.pipelines.destroy()
	return nil
}

func (p *Provider) state(s ffx.State) (*state, error) {
	st, ok := s.(*state)
	if !ok || st == nil || st.owner != p {
		return nil, ffx.ErrInvalidContext
	}
	return st, nil
}

// Configure applies a key/value tunable.
func (p *Provider) Configure(s ffx.State, desc ffx.Descriptor) error {
	st, err := p.state(s)
	if err != nil {
		return err
	}
	d, ok := desc.(*ConfigureKeyValueDesc)
	if !ok {
		return fmt.Errorf("%w: %v", ffx.ErrUnsupportedDescriptor, desc.Type())
	}
	if d.Key != KeyVelocityFactor && !p.has(featureAllConfigKeys) {
		return fmt.Errorf("%w: %s not supported by %s", ffx.ErrInvalidArgument, d.Key, p.version)
	}
	if err := st.tunables.set(d.Key, d.Value); err != nil {
		return err
	}
	st.log.Debug("upscale: configured", "key", d.Key.String(), "value", d.Value)
	return nil
}

// Query answers a query descriptor. s may be nil: every upscale query is
// stateless.
func (p *Provider) Query(_ ffx.State, desc ffx.Descriptor) error {
	switch d := desc.(type) {
	case *QueryUpscaleRatioDesc:
		if d.OutRatio == nil {
			return fmt.Errorf("%w: nil output", ffx.ErrInvalidArgument)
		}
		r, err := d.QualityMode.Ratio()
		if err != nil {
			return err
		}
		*d.OutRatio = r
	case *QueryRenderSizeDesc:
		if d.OutRenderSize == nil {
			return fmt.Errorf("%w: nil output", ffx.ErrInvalidArgument)
		}
		size, err := RenderSize(d.DisplaySize, d.QualityMode)
		if err != nil {
			return err
		}
		*d.OutRenderSize = size
	case *QueryJitterPhasesDesc:
		if d.OutPhaseCount == nil {
			return fmt.Errorf("%w: nil output", ffx.ErrInvalidArgument)
		}
		n, err := JitterPhaseCount(d.RenderWidth, d.DisplayWidth)
		if err != nil {
			return err
		}
		*d.OutPhaseCount = n
	case *QueryJitterOffsetDesc:
		if d.OutOffset == nil {
			return fmt.Errorf("%w: nil output", ffx.ErrInvalidArgument)
		}
		off, err := JitterOffset(d.Index, d.PhaseCount)
		if err != nil {
			return err
		}
		*d.OutOffset = off
	default:
		return fmt.Errorf("%w: %v", ffx.ErrUnsupportedDescriptor, desc.Type())
	}
	return nil
}

// Dispatch runs an upscale or reactive mask generation dispatch.
func (p *Provider) Dispatch(s ffx.State, desc ffx.Descriptor) error {
	st, err := p.state(s)
	if err != nil {
		return err
	}
	switch d := desc.(type) {
	case *DispatchDesc:
		return p.upscale(st, d)
	case *GenerateReactiveDesc:
		if !p.has(featureGenerateReactive) {
			return fmt.Errorf("%w: %v not supported by %s", ffx.ErrUnsupportedDescriptor, desc.Type(), p.version)
		}
		return p.generateReactive(st, d)
	}
	return fmt.Errorf("%w: %v", ffx.ErrUnsupportedDescriptor, desc.Type())
}

func (p *Provider) upscale(s *state, d *DispatchDesc) error {
	if err := checkSize("render", d.RenderSize, s.desc.MaxRenderSize); err != nil {
		return err
	}
	if err := checkSize("upscale", d.UpscaleSize, s.desc.MaxUpscaleSize); err != nil {
		return err
	}
	if d.EnableSharpening && !unit(d.Sharpness) {
		return fmt.Errorf("%w: sharpness %v, want a value in [0, 1]", ffx.ErrInvalidArgument, d.Sharpness)
	}
	if d.FrameTimeDelta < 0 {
		return fmt.Errorf("%w: negative frame time delta %v", ffx.ErrInvalidArgument, d.FrameTimeDelta)
	}
	if d.RenderSize != s.desc.MaxRenderSize && !s.desc.Flags.Has(FlagDynamicResolution) && s.desc.Flags.Has(FlagDebugChecking) {
		s.log.Warn("upscale: render size changed without dynamic resolution",
			"render", d.RenderSize, "max_render", s.desc.MaxRenderSize)
	}

	if d.Reset {
		s.frame = 0
	}
	opts := s.options(d.EnableSharpening)

	render := [3]uint32{d.RenderSize[0], d.RenderSize[1], 1}
	if err := s.run(fsr3upscaler.LumaPyramid, opts, backend.GroupsFor(render, lumaPyramidTile)); err != nil {
		return err
	}

	if d.Flags&DispatchDrawDebugView != 0 {
		if p.has(featureDebugView) {
			out := [3]uint32{d.UpscaleSize[0], d.UpscaleSize[1], 1}
			if err := s.run(fsr3upscaler.DebugView, opts, backend.GroupsFor(out, debugViewTile)); err != nil {
				return err
			}
		} else {
			s.log.Warn("upscale: debug view not supported, ignored", "version", p.version)
		}
	}

	s.frame++
	return nil
}

func (p *Provider) generateReactive(s *state, d *GenerateReactiveDesc) error {
	if err := checkSize("render", d.RenderSize, s.desc.MaxRenderSize); err != nil {
		return err
	}
	if !unit(d.Scale) || !unit(d.CutoffThreshold) || !unit(d.BinaryValue) {
		return fmt.Errorf("%w: reactive parameters must be in [0, 1]", ffx.ErrInvalidArgument)
	}
	render := [3]uint32{d.RenderSize[0], d.RenderSize[1], 1}
	return s.run(fsr3upscaler.AutogenReactive, s.options(false), backend.GroupsFor(render, autogenReactiveTile))
}

// options derives the permutation option set for a pass.
func (s *state) options(sharpen bool) permutation.OptionSet {
	var o permutation.OptionSet
	f := s.desc.Flags
	if f.Has(FlagJitterCancellation) {
		o |= fsr3upscaler.OptionJitteredMotionVectors
	}
	if f.Has(FlagInvertedDepth) {
		o |= fsr3upscaler.OptionInvertedDepth
	}
	if s.lanczos {
		o |= fsr3upscaler.OptionReprojectLanczos
	}
	if f.Has(FlagHDR) {
		o |= fsr3upscaler.OptionHDRColorInput
	}
	if !f.Has(FlagDisplayResolutionMotionVectors) {
		o |= fsr3upscaler.OptionLowResolutionMotionVectors
	}
	if sharpen {
		o |= fsr3upscaler.OptionApplySharpening
	}
	return o
}

// run resolves the variant of one pass and submits it.
func (s *state) run(t *permutation.Table, opts permutation.OptionSet, groups [3]uint32) error {
	v, err := t.Resolve(opts)
	if err != nil {
		return err
	}
	pl, err := s.pipelines.get(t.Name(), v)
	if err != nil {
		return fmt.Errorf("upscale: %s pipeline: %w", t.Name(), err)
	}
	if s.log.Enabled(context.Background(), slog.LevelDebug) {
		s.log.Debug("upscale: pass",
			"stage", t.Name(),
			"options", fsr3upscaler.Options.Describe(opts),
			"groups", groups,
			"frame", s.frame)
	}
	return s.backend.Dispatch(&backend.Job{Label: t.Name(), Pipeline: pl, Groups: groups})
}

func checkSize(what string, size, limit [2]uint32) error {
	if size[0] == 0 || size[1] == 0 || size[0] > limit[0] || size[1] > limit[1] {
		return fmt.Errorf("%w: %s size %v outside (0, %v]", ffx.ErrInvalidArgument, what, size, limit)
	}
	return nil
}

// unit reports whether v is in [0, 1]. NaN is not.
func unit(v float32) bool {
	return v >= 0 && v <= 1
}
