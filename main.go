package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vmasm/pkg/asm"
	"vmasm/pkg/utils"
	"vmasm/pkg/vml"
)

var errMissingSource = errors.New("missing source file")

type options struct {
	output string
	dump   bool
	color  string
}

func main() {
	flag.Set("logtostderr", "true")
	err := newRootCmd().Execute()
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "vmasm filename.asm",
		Short: "Assemble VM source into a .vml word stream",
		Long: `vmasm translates assembly text for the 32-register word machine into a
.vml file: the number of words on the first line, then one decimal word per
line. The output is written next to the source with .asm replaced by .vml
unless -o is given. Nothing is written if any error is reported.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "Usage: %s filename.asm\n", cmd.Root().Name())
				return errMissingSource
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file path (default: source with .vml extension)")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the label and relocation tables")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "colour diagnostics: auto, always or never")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	return cmd
}

func run(cmd *cobra.Command, opts *options, path string) error {
	prog := cmd.Root().Name()
	stderr := cmd.ErrOrStderr()

	color, err := useColor(opts.color, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", prog, err)
		return err
	}

	source, err := utils.ReadSource(path)
	if err != nil {
		if errors.Is(err, utils.ErrNotText) {
			fmt.Fprintf(stderr, "%s: error: file '%s' does not appear to be a text file\n", prog, path)
		} else {
			fmt.Fprintf(stderr, "%s: error: unable to find or open file '%s'\n", prog, path)
		}
		return err
	}

	program, diags, asmErr := asm.Assemble(path, source)
	if err := diags.Report(stderr, color); err != nil {
		return err
	}
	if opts.dump {
		dumpTables(cmd.OutOrStdout(), program, color)
	}
	if asmErr != nil {
		glog.V(1).Info(asmErr)
		return asmErr
	}

	output := opts.output
	if output == "" {
		output = vml.OutputPath(path)
	}
	if err := vml.WriteFile(output, program.Words); err != nil {
		fmt.Fprintf(stderr, "%s: error: %v\n", prog, err)
		return err
	}
	return nil
}

func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (want auto, always or never)", mode)
	}
}

func dumpTables(w io.Writer, program *asm.Program, color bool) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)
	printer.Println(program.Labels)
	printer.Println(program.Relocations)
}
