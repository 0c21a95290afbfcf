package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webidl-go/webidl"
	"github.com/webidl-go/webidl/ast"
)

func newRootCmd() *cobra.Command {
	var printTree bool
	var externals []string
	cmd := &cobra.Command{
		Use:           "webidl-check [files...]",
		Short:         "Parse and validate WebIDL files",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := webidl.New()
			p.RegisterExternal(externals...)
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				if err := p.Parse(string(data)); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			defs, err := p.Finish()
			if err != nil {
				return err
			}
			if printTree {
				ast.Print(defs)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printTree, "print", false, "dump the validated definition tree")
	cmd.Flags().StringArrayVar(&externals, "external", nil, "type name resolvable without a definition; may be repeated")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
