package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcrlab/xsecs/internal/usecase/query"
)

func runsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved tables under runs/",
	}

	c.AddCommand(runsListCmd(), runsShowCmd(), runsQueryCmd())
	return c
}

func runsListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved tables, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListTables()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no saved tables)")
				return nil
			}

			for _, r := range refs {
				fmt.Fprintf(out, "- %s  %s  %s  %s\n", r.ID, r.Name, r.Model, r.StartedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func runsShowCmd() *cobra.Command {
	var workspace string
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved table (by store id or uuid)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			a, _, err := ws.store.LoadTable(args[0])
			if err != nil {
				return err
			}
			return printArtifact(cmd.OutOrStdout(), a, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: plain|pretty|json")
	return cmd
}

func runsQueryCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:     "query <id> name=<expr>...",
		Short:   "Evaluate JSONPath queries against a saved table",
		Example: "  xsecs runs query 20260203T101112Z_positrons model=$.table.model energies=x first=col:p+H_ISM[0]",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := query.ParseRules(args[1:])
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			_, raw, err := ws.store.LoadTable(args[0])
			if err != nil {
				return err
			}

			results := query.Apply(raw, rules)

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if !r.Success {
					failed++
					fmt.Fprintf(out, "✗ %s: %s\n", r.Name, r.Message)
					continue
				}
				fmt.Fprintf(out, "%s = %s\n", r.Name, r.Message)
			}
			if failed > 0 {
				return fmt.Errorf("%d query(ies) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}
