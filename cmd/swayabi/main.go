package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/sway-abi/config"
	"github.com/wippyai/sway-abi/invoke"
	"github.com/wippyai/sway-abi/logs"
	"github.com/wippyai/sway-abi/revert"
	"github.com/wippyai/sway-abi/transcoder"
	"github.com/wippyai/sway-abi/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// app carries state shared by subcommands.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	configFile string
	abiFile    string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "swayabi",
		Short:         "Encode, decode and explain Sway ABI data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (yaml, toml or json)")
	pf.StringVar(&a.abiFile, "abi", "", "program ABI JSON file")
	config.BindFlags(pf)

	root.AddCommand(
		newDescribeCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newLogsCmd(a),
		newRevertCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags(), a.configFile)
	if err != nil {
		return err
	}
	l, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, l

	transcoder.SetLogger(l)
	logs.SetLogger(l)
	revert.SetLogger(l)
	invoke.SetLogger(l)
	return nil
}

// program loads the --abi file.
func (a *app) program() (*types.Program, error) {
	if a.abiFile == "" {
		return nil, fmt.Errorf("--abi is required")
	}
	return config.LoadProgram(a.abiFile)
}

func (a *app) encoder() *transcoder.Encoder { return transcoder.NewEncoder(a.cfg.CodecOptions()...) }

func (a *app) decoder() *transcoder.Decoder { return transcoder.NewDecoder(a.cfg.CodecOptions()...) }
