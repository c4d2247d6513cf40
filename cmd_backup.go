package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kasuganosora/memorybox/transfer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup of the inventory",
	Long: `Write the inventory to a file. JSON backups can be restored with
"memorybox import"; CSV and TXT are summaries for reading elsewhere.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the inventory with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, csv or txt")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default memorybox_backup_<date>.<ext>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := transfer.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	data, items, err := a.importer.Dump(cmd.Context(), f, time.Local)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no data to export")
	}
	out := exportOut
	if out == "" {
		out = transfer.Filename(f, time.Now())
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("backup written", zap.String("path", out), zap.Int("items", len(items)))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	payload, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.importer.Restore(cmd.Context(), payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d items\n", n)
	return nil
}
