package upscale

import (
	"fmt"
	"math"

	"github.com/gogpu/ffx"
)

// ConfigKey names a runtime tunable set with ConfigureKeyValueDesc.
type ConfigKey uint32

const (
	// KeyVelocityFactor scales how much motion affects temporal
	// stability.
	KeyVelocityFactor ConfigKey = iota
	// KeyReactivenessScale scales the reactive mask.
	KeyReactivenessScale
	// KeyShadingChangeScale scales the shading change detection.
	KeyShadingChangeScale
	// KeyAccumulationAddedPerFrame is the history weight added each
	// frame.
	KeyAccumulationAddedPerFrame
	// KeyMinDisocclusionAccumulation is the history weight kept for
	// disoccluded pixels.
	KeyMinDisocclusionAccumulation

	numConfigKeys
)

var configKeyNames = [numConfigKeys]string{
	"velocity_factor",
	"reactiveness_scale",
	"shading_change_scale",
	"accumulation_added_per_frame",
	"min_disocclusion_accumulation",
}

func (k ConfigKey) String() string {
	if k < numConfigKeys {
		return configKeyNames[k]
	}
	return fmt.Sprintf("ConfigKey(%d)", uint32(k))
}

// tunables holds the configurable values of one context.
type tunables [numConfigKeys]float32

func defaultTunables() tunables {
	return tunables{
		KeyVelocityFactor:              1.0,
		KeyReactivenessScale:           1.0,
		KeyShadingChangeScale:          1.0,
		KeyAccumulationAddedPerFrame:   1.0 / 3.0,
		KeyMinDisocclusionAccumulation: 0,
	}
}

// set validates and stores v under k.
func (t *tunables) set(k ConfigKey, v float32) error {
	if k >= numConfigKeys {
		return fmt.Errorf("%w: unknown key %d", ffx.ErrInvalidArgument, uint32(k))
	}
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s = %v, want a value in [0, 1]", ffx.ErrInvalidArgument, k, v)
	}
	t[k] = v
	return nil
}
