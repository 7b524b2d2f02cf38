package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde-lumen/lumen/internal/parser"
	"github.com/cwbudde-lumen/lumen/pkg/ident"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		p := parser.New(string(src), ident.New())
		script, err := p.Parse()
		if err != nil {
			return err
		}
		for i, stmt := range script.Body {
			fmt.Printf("[%d] %s\n", i, stmt.String())
		}
		return nil
	},
}
