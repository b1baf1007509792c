package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"homeplan/internal/store"
	"homeplan/pkg/export"
	"homeplan/pkg/plan"
)

var planSaveName string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage saved plan snapshots",
}

var planSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the configured inputs as a named plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		created, err := repo.Create(store.Plan{Name: planSaveName, Inputs: conf.Plan})
		if err != nil {
			return err
		}
		fmt.Printf("Saved plan %q as %s\n", created.Name, created.ID)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		plans, err := repo.List()
		if err != nil {
			return err
		}
		for _, p := range plans {
			fmt.Printf("%s  %-30s  %s\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the summary of a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		p, err := repo.Get(args[0])
		if err != nil {
			return err
		}
		export.PrettySummary(os.Stdout, p.Inputs, plan.Summarize(p.Inputs))
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		if err := repo.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted plan %s\n", args[0])
		return nil
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all saved plans to a YAML archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		data, err := store.ExportYAML(repo)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write archive %s: %w", args[0], err)
		}
		return nil
	},
}

var planImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import plans from a YAML archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := newRepository()
		if err != nil {
			return err
		}
		defer func() {
			_ = closeRepo()
		}()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read archive %s: %w", args[0], err)
		}
		n, err := store.ImportYAML(repo, data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d plan(s)\n", n)
		return nil
	},
}

func init() {
	planSaveCmd.Flags().StringVar(&planSaveName, "name", "", "plan name (defaults to the project name)")
	planCmd.AddCommand(planSaveCmd, planListCmd, planShowCmd, planDeleteCmd, planExportCmd, planImportCmd)
	rootCmd.AddCommand(planCmd)
}
