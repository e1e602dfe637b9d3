package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore the current library",
	Long: `Writes the current library (documents, profile and settings) to a JSON or
YAML file, or replaces it with one. The format follows the file extension.`,
}

var backupExportCmd = &cobra.Command{
	Use:     "export <file.json|file.yaml>",
	Short:   "Export the current library",
	Args:    cobra.ExactArgs(1),
	RunE:    runBackupExport,
	Example: `  smartstudy backup export physics.json`,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json|file.yaml>",
	Short: "Replace the current library with a backup",
	Long: `Replaces the current library with the backup. The library is left unchanged
if the file cannot be read.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBackupImport,
	Example: `  smartstudy --library physics backup import physics.json`,
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) (err error) {
	if backupService == nil {
		return errBackupNotConfigured
	}

	path := args[0]
	format, err := domain.BackupFormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write backup: %w", cerr)
		}
	}()

	if err := backupService.Export(commandContext(cmd), f, format); err != nil {
		return fmt.Errorf("failed to export library: %w", err)
	}

	cmd.Printf("Library exported to %s.\n", path)
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	if backupService == nil {
		return errBackupNotConfigured
	}

	path := args[0]
	format, err := domain.BackupFormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	if err := backupService.Import(commandContext(cmd), f, format); err != nil {
		if errors.Is(err, domain.ErrInvalidBackup) {
			return fmt.Errorf("%s is not a valid backup: %w", path, err)
		}
		return fmt.Errorf("failed to import library: %w", err)
	}

	cmd.Printf("Library restored from %s.\n", path)
	return nil
}
