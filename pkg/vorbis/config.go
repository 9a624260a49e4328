// ABOUTME: Encoder configuration and its translation onto engine setup calls
// ABOUTME: Chooses quality VBR or managed bitrate mode and applies tunables
package vorbis

import "fmt"

// Host-facing tunable ranges. Quality uses the familiar oggenc scale of
// -1..10; the engine's native scale is -0.1..1.0.
const (
	MinQuality     = -1.0
	MaxQuality     = 10.0
	MinImpulseBias = -15.0
	MaxImpulseBias = 0.0

	// defaultQuality applies when neither a bitrate nor a quality was set.
	defaultQuality = 3.0
)

// noBound is passed to the engine for an unset min/max bitrate bound.
const noBound = -1

// Config holds the user-facing encoder settings.
type Config struct {
	Channels   int
	SampleRate int

	// Bitrate is the target average bitrate in bits per second. Zero means
	// unset and selects quality-based VBR.
	Bitrate int

	// MinBitrate and MaxBitrate bound managed-bitrate mode. Values below 1
	// mean "no bound". Each is independently optional.
	MinBitrate int
	MaxBitrate int

	// Quality on the -1..10 scale. Honored only when UseQuality is set;
	// quality mode selected implicitly (Bitrate == 0) uses the default of 3.
	Quality    float32
	UseQuality bool

	// Cutoff is the low-pass cutoff frequency in Hz. Zero means unset.
	Cutoff int

	// ImpulseBias biases the engine's short-block decisions, -15..0.
	// Zero means unset (library default).
	ImpulseBias float64

	// StagingCapacity overrides the packet staging buffer size in bytes.
	// Zero selects DefaultStagingCapacity.
	StagingCapacity int
}

func (c Config) validate() error {
	if c.Channels < 1 {
		return fmt.Errorf("%w: channels %d", ErrConfiguration, c.Channels)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("%w: sample rate %d", ErrConfiguration, c.SampleRate)
	}
	if c.UseQuality && (c.Quality < MinQuality || c.Quality > MaxQuality) {
		return fmt.Errorf("%w: quality %g outside %g..%g",
			ErrConfiguration, c.Quality, MinQuality, MaxQuality)
	}
	if c.ImpulseBias < MinImpulseBias || c.ImpulseBias > MaxImpulseBias {
		return fmt.Errorf("%w: impulse bias %g outside %g..%g",
			ErrConfiguration, c.ImpulseBias, MinImpulseBias, MaxImpulseBias)
	}
	return nil
}

// configure translates the configuration onto the engine's setup calls and
// finalizes the setup. The first failing step aborts; no further steps run.
func configure(eng Engine, cfg Config) error {
	if cfg.UseQuality || cfg.Bitrate == 0 {
		q := float32(defaultQuality)
		if cfg.UseQuality {
			q = cfg.Quality
		}
		// Engine scale is the host scale divided by 10.
		if err := eng.SetupVBR(cfg.Channels, cfg.SampleRate, q/10); err != nil {
			return err
		}
	} else {
		minrate, maxrate := noBound, noBound
		if cfg.MinBitrate > 0 {
			minrate = cfg.MinBitrate
		}
		if cfg.MaxBitrate > 0 {
			maxrate = cfg.MaxBitrate
		}
		if err := eng.SetupManaged(cfg.Channels, cfg.SampleRate, maxrate, cfg.Bitrate, minrate); err != nil {
			return err
		}
		// With no bounds, drop the slower rate-management pass in favor of
		// estimate-only bitrate control.
		if minrate == noBound && maxrate == noBound {
			if err := eng.DisableBitrateManagement(); err != nil {
				return err
			}
		}
	}

	if cfg.Cutoff > 0 {
		if err := eng.SetLowpass(float64(cfg.Cutoff) / 1000.0); err != nil {
			return err
		}
	}
	if cfg.ImpulseBias != 0 {
		if err := eng.SetImpulseBias(cfg.ImpulseBias); err != nil {
			return err
		}
	}

	return eng.FinishSetup()
}
