package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// FileName is the options file looked up next to the sources.
const FileName = "thrush.toml"

var ErrInvalidOptLevel = errors.New("invalid optimization level")

type OptLevel string

const (
	OptNone OptLevel = "none"
	OptLow  OptLevel = "low"
	OptMid  OptLevel = "mid"
	OptHigh OptLevel = "high"
	OptSize OptLevel = "size"
	OptZize OptLevel = "zize" // aggressive size optimization
)

func (o OptLevel) valid() bool {
	switch o {
	case OptNone, OptLow, OptMid, OptHigh, OptSize, OptZize:
		return true
	}
	return false
}

type Options struct {
	Build   BuildOptions   `toml:"build"`
	Checks  CheckOptions   `toml:"checks"`
	Codegen CodegenOptions `toml:"codegen"`
}

type BuildOptions struct {
	OptLevel     OptLevel `toml:"opt_level"`
	TargetTriple string   `toml:"target_triple"`
	DataLayout   string   `toml:"data_layout"`
	Verify       bool     `toml:"verify"`
}

type CheckOptions struct {
	MaxParams        int  `toml:"max_params"`
	Lint             bool `toml:"lint"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

type CodegenOptions struct {
	HeapFreeOnScopeExit bool `toml:"heap_free_on_scope_exit"`
}

// Default returns the options used when no file is present.
func Default() *Options {
	return &Options{
		Build: BuildOptions{
			OptLevel:   OptNone,
			DataLayout: "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-i128:128-f80:128-n8:16:32:64-S128",
			Verify:     true,
		},
		Checks: CheckOptions{
			MaxParams: 12,
			Lint:      true,
		},
		Codegen: CodegenOptions{
			HeapFreeOnScopeExit: true,
		},
	}
}

// Parse decodes TOML on top of the defaults, so absent keys keep their
// default values.
func Parse(data []byte) (*Options, error) {
	opts := Default()
	if err := toml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Load reads options from path. A missing file yields the defaults.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	return Parse(data)
}

func (o *Options) Validate() error {
	if !o.Build.OptLevel.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOptLevel, o.Build.OptLevel)
	}
	if o.Checks.MaxParams <= 0 {
		return fmt.Errorf("max_params must be positive, got %d", o.Checks.MaxParams)
	}
	return nil
}
