package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"vmasm/pkg/asm"
	"vmasm/pkg/utils"
)

const sampleSource = `loop: movi 0 r1
out r1
movi loop r2
jmp r2
`

func main() {
	if err := newDumpCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "asmdump:", err)
		os.Exit(1)
	}
}

func newDumpCmd() *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "asmdump [filename.asm]",
		Short: "Show every assembler stage for a source file",
		Long: `asmdump runs the assembler over one file (or a built-in sample when no
file is given) and prints each stage: the tokenized lines, the label and
relocation tables, the word stream before relocation and the final words.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src := "<sample>", sampleSource
			if len(args) == 1 {
				var err error
				if src, err = utils.ReadSource(args[0]); err != nil {
					return err
				}
				name = args[0]
			}
			return dump(cmd.OutOrStdout(), name, src, color)
		},
	}
	cmd.Flags().BoolVar(&color, "color", false, "colour the table dumps")
	return cmd
}

func dump(w io.Writer, name, src string, color bool) error {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)

	fmt.Fprintf(w, "Source (%s):\n%s\n", name, src)

	fmt.Fprintln(w, "Lines")
	for _, l := range asm.Tokenize(src) {
		if len(l.Labels) == 0 && l.Mnemonic == "" {
			continue
		}
		fmt.Fprintf(w, "  %3d: labels=%v op=%q operands=%v\n", l.Number, l.Labels, l.Mnemonic, l.Operands)
	}
	fmt.Fprintln(w)

	a := asm.NewAssembler(name)
	prog, asmErr := a.Assemble(src)

	fmt.Fprintln(w, "Labels")
	printer.Println(prog.Labels)
	fmt.Fprintln(w, "Relocations")
	printer.Println(prog.Relocations)

	fmt.Fprintf(w, "Pass 1 words: %s\n", joinWords(a.Unpatched()))
	if err := a.Diagnostics().Report(w, color); err != nil {
		return err
	}
	fmt.Fprintf(w, "State: %s\n", a.State())
	if asmErr != nil {
		return asmErr
	}
	fmt.Fprintf(w, "Final words: %s\n", joinWords(prog.Words))
	return nil
}

func joinWords(words []asm.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprint(int64(w))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
