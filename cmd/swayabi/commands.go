package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/wippyai/sway-abi/invoke"
	"github.com/wippyai/sway-abi/logs"
	"github.com/wippyai/sway-abi/receipt"
	"github.com/wippyai/sway-abi/types"
	"github.com/wippyai/sway-abi/value"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [type-or-function]",
		Short: "Show the functions, logs and types of a program ABI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := a.program()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				return describeOne(out, prog, args[0])
			}
			describeProgram(out, a.abiFile, prog)
			return nil
		},
	}
}

func describeProgram(w io.Writer, name string, prog *types.Program) {
	fmt.Fprintln(w, titleStyle.Render("Program")+" "+name)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Functions:")
	for _, f := range prog.Functions {
		sel := f.Selector()
		fmt.Fprintf(w, "  %s  %s\n", typeStyle.Render(hexutil.Encode(sel[:])), formatFunc(f))
	}

	if len(prog.LogIDs) > 0 {
		fmt.Fprintln(w, "\nLogged types:")
		for _, id := range prog.LogIDs {
			t, _ := prog.LogType(id)
			fmt.Fprintf(w, "  %-20d %s\n", id, typeStyle.Render(t.String()))
		}
	}

	if len(prog.Configurables) > 0 {
		fmt.Fprintln(w, "\nConfigurables:")
		for _, c := range prog.Configurables {
			fmt.Fprintf(w, "  %s: %s @ %d\n", funcStyle.Render(c.Name), typeStyle.Render(c.Type.String()), c.Offset)
		}
	}
}

func describeOne(w io.Writer, prog *types.Program, name string) error {
	if f, ok := prog.Function(name); ok {
		sel := f.Selector()
		fmt.Fprintln(w, formatFunc(f))
		fmt.Fprintf(w, "signature: %s\nselector:  %s\n\n", f.Signature(), hexutil.Encode(sel[:]))
		fmt.Fprint(w, f.Params().Tree())
		return nil
	}
	t, err := resolveType(prog, name)
	if err != nil {
		return err
	}
	fmt.Fprint(w, t.Tree())
	return nil
}

func formatFunc(f *types.Function) string {
	params := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		params[i] = in.Name + ": " + typeStyle.Render(in.Type.String())
	}
	result := ""
	if f.Output != nil && !f.Output.IsUnit() {
		result = " -> " + typeStyle.Render(f.Output.String())
	}
	return funcStyle.Render(f.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

// resolveType finds a named program type or a built-in type.
func resolveType(prog *types.Program, name string) (*types.Descriptor, error) {
	if t, ok := prog.Type(name); ok {
		return t, nil
	}
	switch name {
	case "String":
		return types.String(), nil
	case "Bytes":
		return types.Bytes(), nil
	case "()":
		return types.Unit(), nil
	}
	return types.Primitive(name)
}

func newEncodeCmd(a *app) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "encode <function> [json-args]",
		Short: "Encode call data for a function",
		Long:  "Encode call data for a function. Arguments are a JSON array, one element per parameter.",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := a.program()
			if err != nil {
				return err
			}
			if interactive || len(args) == 0 {
				if !interactiveTerminal() {
					return fmt.Errorf("interactive mode needs a terminal")
				}
				return runInteractive(a.abiFile, prog, a.encoder())
			}

			var callArgs []any
			if len(args) == 2 {
				if callArgs, err = parseJSONArgs(args[1]); err != nil {
					return err
				}
			}
			data, err := invoke.EncodeCall(a.encoder(), prog, args[0], callArgs...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the function and enter arguments in a TUI")
	return cmd
}

func parseJSONArgs(s string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var args []any
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON array: %w", err)
	}
	return args, nil
}

func newDecodeCmd(a *app) *cobra.Command {
	var typeName, output, call string
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode hex data as a type, a function output or call data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := a.program()
			if err != nil {
				return err
			}
			data, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}
			dec := a.decoder()

			var v value.Value
			switch {
			case call != "":
				f, ok := prog.Function(call)
				if !ok {
					return fmt.Errorf("function %q not found", call)
				}
				sel := f.Selector()
				if len(data) < len(sel) || !bytes.Equal(data[:len(sel)], sel[:]) {
					return fmt.Errorf("call data does not start with the %s selector", call)
				}
				vals, err := dec.DecodeAt(data[len(sel):], f.Params(), a.cfg.Codec.PointerBase+uint64(len(sel)))
				if err != nil {
					return err
				}
				v = vals
			case output != "":
				f, ok := prog.Function(output)
				if !ok {
					return fmt.Errorf("function %q not found", output)
				}
				if v, err = dec.Decode(data, f.Output); err != nil {
					return err
				}
			case typeName != "":
				t, err := resolveType(prog, typeName)
				if err != nil {
					return err
				}
				if v, err = dec.Decode(data, t); err != nil {
					return err
				}
			default:
				return fmt.Errorf("one of --type, --output or --call is required")
			}
			fmt.Fprintln(cmd.OutOrStdout(), value.Render(v))
			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "", "type name")
	cmd.Flags().StringVar(&output, "output", "", "decode the return value of this function")
	cmd.Flags().StringVar(&call, "call", "", "decode call data (selector and arguments) of this function")
	return cmd
}

func newLogsCmd(a *app) *cobra.Command {
	var contract string
	var interactive bool
	cmd := &cobra.Command{
		Use:   "logs <receipts.json|->",
		Short: "Decode the logs in a receipt list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			receipts, err := readReceipts(cmd, args[0])
			if err != nil {
				return err
			}
			reg, err := a.registry(contract)
			if err != nil {
				return err
			}
			res := logs.Decode(receipts, reg)
			if interactive && interactiveTerminal() {
				return runLogBrowser(res)
			}
			printLogs(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&contract, "contract", "", "contract id the --abi program belongs to (default: script)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse logs in a TUI")
	return cmd
}

func printLogs(w io.Writer, res *logs.Result) {
	for _, e := range res.Entries {
		fmt.Fprintf(w, "%3d  %s  %-20d %s\n", e.Index, shortID(e.Contract), e.LogID, resultStyle.Render(value.Render(e.Value)))
	}
	for _, f := range res.Failures {
		fmt.Fprintf(w, "%3d  %s  %-20d %s\n", f.Index, shortID(f.Contract), f.LogID, errorStyle.Render(f.Err.Error()))
	}
	if len(res.Contracts) > 0 {
		fmt.Fprintln(w, "\nGrouped:")
	}
	for _, id := range res.Contracts {
		fmt.Fprintf(w, "  %s: %s\n", id, value.Render(value.Vector(res.Group(id))))
	}
}

func shortID(id receipt.ContractID) string {
	s := id.String()
	return s[:10] + "…" + s[len(s)-4:]
}

func newRevertCmd(a *app) *cobra.Command {
	var contract string
	cmd := &cobra.Command{
		Use:   "revert <receipts.json|->",
		Short: "Explain why a transaction reverted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			receipts, err := readReceipts(cmd, args[0])
			if err != nil {
				return err
			}
			reg, err := a.registry(contract)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			f, failed := a.cfg.Interpreter().Interpret(receipts, reg)
			if !failed {
				fmt.Fprintln(out, resultStyle.Render("The transaction did not revert."))
				return nil
			}
			fmt.Fprintln(out, errorStyle.Render(f.Message))
			fmt.Fprintf(out, "\nreason: %s  code: %s  panic: %t  revert: %t\n", f.ReasonName, f.ErrorCode, f.Panic, f.Revert)
			if len(f.Logs) > 0 {
				fmt.Fprintf(out, "logs:   %s\n", value.Render(value.Vector(f.Logs)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contract, "contract", "", "contract id the --abi program belongs to (default: script)")
	return cmd
}

// registry combines the configured programs with the --abi program, which
// is registered under contract (or the script id when empty).
func (a *app) registry(contract string) (*logs.Registry, error) {
	programs, err := a.cfg.LoadPrograms()
	if err != nil {
		return nil, err
	}
	if a.abiFile != "" {
		prog, err := a.program()
		if err != nil {
			return nil, err
		}
		var id receipt.ContractID
		if contract != "" {
			if id, err = receipt.ParseB256(contract); err != nil {
				return nil, fmt.Errorf("--contract: %w", err)
			}
		}
		programs[id] = prog
	}
	return logs.NewRegistry(programs, a.cfg.CodecOptions()...), nil
}

func readReceipts(cmd *cobra.Command, path string) ([]receipt.Receipt, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read receipts: %w", err)
	}
	return receipt.UnmarshalList(data)
}
