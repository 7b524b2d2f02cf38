package cmd

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cwbudde-lumen/lumen/pkg/lumen"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		rl, err := readline.New("lumen> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		pterm.Info.Println("lumen REPL -- quit with <ctrl>D")
		realm := lumen.CreateRealm()
		for {
			line, err := rl.Readline()
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				break
			}
			if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			v, err := lumen.Eval(realm, line)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			pterm.Info.Println(lumen.ToDisplay(v))
		}
		pterm.Println("goodbye")
		return nil
	},
}
