package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde-lumen/lumen/pkg/lumen"
)

var stepBudget int64

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Parse and evaluate a script file",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var opts []lumen.RealmOption
		if stepBudget > 0 {
			opts = append(opts, lumen.WithStepBudget(stepBudget))
		}
		realm := lumen.CreateRealm(opts...)
		v, err := lumen.Eval(realm, string(src))
		if err != nil {
			return fmt.Errorf("uncaught: %w", err)
		}
		fmt.Println(lumen.ToDisplay(v))
		return nil
	},
}

func init() {
	runCmd.Flags().Int64Var(&stepBudget, "step-budget", 0, "bound the number of evaluator steps (0 = unbounded)")
}
