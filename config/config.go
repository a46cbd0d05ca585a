package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/revert"
	"github.com/wippyai/sway-abi/transcoder"
)

const EnvPrefix = "SWAYABI"

// Config keys.
const (
	KeyPointerBase     = "codec.pointer_base"
	KeyMaxHeapSize     = "codec.max_heap_size"
	KeyMaxVectorLength = "codec.max_vector_length"
	KeyPanicDocsURL    = "revert.panic_docs_url"
	KeyLogLevel        = "log.level"
	KeyLogDevelopment  = "log.development"
	KeyPrograms        = "programs"
)

// Flag names registered by BindFlags.
const (
	FlagPointerBase     = "pointer-base"
	FlagMaxHeapSize     = "max-heap-size"
	FlagMaxVectorLength = "max-vector-length"
	FlagPanicDocsURL    = "panic-docs-url"
	FlagLogLevel        = "log-level"
	FlagLogDevelopment  = "log-dev"
	FlagProgram         = "program"
)

type Config struct {
	Programs map[string]string `mapstructure:"programs"`
	Log      Log               `mapstructure:"log"`
	Revert   Revert            `mapstructure:"revert"`
	Codec    Codec             `mapstructure:"codec"`
}

type Codec struct {
	PointerBase     uint64 `mapstructure:"pointer_base"`
	MaxHeapSize     uint64 `mapstructure:"max_heap_size"`
	MaxVectorLength uint64 `mapstructure:"max_vector_length"`
}

type Revert struct {
	PanicDocsURL string `mapstructure:"panic_docs_url"`
}

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

var flagKeys = map[string]string{
	FlagPointerBase:     KeyPointerBase,
	FlagMaxHeapSize:     KeyMaxHeapSize,
	FlagMaxVectorLength: KeyMaxVectorLength,
	FlagPanicDocsURL:    KeyPanicDocsURL,
	FlagLogLevel:        KeyLogLevel,
	FlagLogDevelopment:  KeyLogDevelopment,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPointerBase, uint64(0))
	v.SetDefault(KeyMaxHeapSize, uint64(transcoder.MaxHeapSize))
	v.SetDefault(KeyMaxVectorLength, uint64(transcoder.MaxVectorLength))
	v.SetDefault(KeyPanicDocsURL, revert.DefaultPanicDocsURL)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDevelopment, false)
	v.SetDefault(KeyPrograms, map[string]string{})
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.Uint64(FlagPointerBase, 0, "absolute address of the first payload byte")
	fs.Uint64(FlagMaxHeapSize, transcoder.MaxHeapSize, "encoder heap limit in bytes")
	fs.Uint64(FlagMaxVectorLength, transcoder.MaxVectorLength, "element limit for decoded vectors")
	fs.String(FlagPanicDocsURL, revert.DefaultPanicDocsURL, "page panic messages link to")
	fs.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
	fs.Bool(FlagLogDevelopment, false, "human-readable console logging")
	fs.StringToString(FlagProgram, nil, "contract program ABI, as 0x<contract-id>=<abi.json> (repeatable)")
}

// Load reads configuration. file may be empty; fs may be nil.
func Load(fs *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read config "+file)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bind flag "+name)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode config")
	}
	if c.Programs == nil {
		c.Programs = map[string]string{}
	}

	if fs != nil && fs.Changed(FlagProgram) {
		extra, err := fs.GetStringToString(FlagProgram)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "flag "+FlagProgram)
		}
		for id, path := range extra {
			c.Programs[strings.ToLower(id)] = path
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Codec.MaxHeapSize == 0 {
		return errors.InvalidInput(errors.PhaseConfig, KeyMaxHeapSize+" must be positive")
	}
	if c.Codec.MaxVectorLength == 0 {
		return errors.InvalidInput(errors.PhaseConfig, KeyMaxVectorLength+" must be positive")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CodecOptions returns encoder and decoder options.
func (c *Config) CodecOptions() []transcoder.Option {
	return []transcoder.Option{
		transcoder.WithBase(c.Codec.PointerBase),
		transcoder.WithMaxHeapSize(c.Codec.MaxHeapSize),
		transcoder.WithMaxVectorLength(c.Codec.MaxVectorLength),
	}
}

// Interpreter returns a revert interpreter linking to the configured docs.
func (c *Config) Interpreter() *revert.Interpreter {
	return revert.New(revert.WithPanicDocsURL(c.Revert.PanicDocsURL))
}
