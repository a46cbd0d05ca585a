package config

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/sway-abi/errors"
	"github.com/wippyai/sway-abi/logs"
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/types"
)

// ScriptKey registers a script program, whose logs carry the zero contract id.
const ScriptKey = "script"

func parseLevel(level string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return l, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level "+level)
	}
	return l, nil
}

// Logger builds a zap logger from the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "build logger")
	}
	return l, nil
}

// LoadPrograms parses every configured ABI file.
func (c *Config) LoadPrograms() (map[receipt.ContractID]*types.Program, error) {
	ids := make([]string, 0, len(c.Programs))
	for id := range c.Programs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make(map[receipt.ContractID]*types.Program, len(ids))
	for _, key := range ids {
		var id receipt.ContractID
		if key != ScriptKey {
			parsed, err := receipt.ParseB256(key)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "contract id "+key)
			}
			id = parsed
		}
		p, err := LoadProgram(c.Programs[key])
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}

// Registry builds a log registry from the configured programs.
func (c *Config) Registry() (*logs.Registry, error) {
	programs, err := c.LoadPrograms()
	if err != nil {
		return nil, err
	}
	return logs.NewRegistry(programs, c.CodecOptions()...), nil
}

// LoadProgram reads and parses one JSON program ABI file.
func LoadProgram(path string) (*types.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "abi file "+path)
	}
	p, err := types.ParseProgram(data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "abi file "+path)
	}
	return p, nil
}
