package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde-lumen/lumen/internal/lexer"
	"github.com/cwbudde-lumen/lumen/pkg/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream for a script file",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		l := lexer.New(string(src))
		for {
			tok := l.Next()
			fmt.Printf("%-6s %-18s %q\n", tok.Pos, tok.Type, tok.Literal)
			if tok.Type == token.EOF {
				break
			}
		}
		for _, e := range l.Errors() {
			fmt.Fprintln(os.Stderr, e)
		}
		return nil
	},
}
