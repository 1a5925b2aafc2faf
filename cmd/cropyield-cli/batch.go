package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/cropyield/cropyield"
)

func (c *cli) batchCmd() *cobra.Command {
	var inputPath, outputPath, outputDir, sheet string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Predict every row of a CSV, TSV or XLSX file",
		Long: `Reads a file with a header row. Soil, crop and area columns are required;
year, msp and sack size fall back to the configured defaults.
The output format follows the extension of --output (.csv, .xlsx, .html).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := cropyield.OpenService(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			records, err := cropyield.ReadBatchFile(strings.TrimSpace(inputPath), cropyield.BatchParseOptions{
				Defaults: c.cfg.Form.DefaultInput(svc.Catalog()),
				Sheet:    sheet,
			})
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			rows := svc.PredictBatch(cmd.Context(), records, c.cfg.Form.SelectionValidator(svc.Catalog()))

			if outputPath == "" {
				outputPath = cropyield.DefaultResultPath(outputDir, time.Now())
			}
			f, err := c.formatter()
			if err != nil {
				return err
			}
			var bg *cropyield.Background
			if ext := strings.ToLower(filepath.Ext(outputPath)); ext == ".html" || ext == ".htm" {
				if bg, err = cropyield.LoadBackground(c.cfg.BackgroundPath); err != nil {
					c.logger.Warn("report without background", zap.Error(err))
				}
			}
			if err := cropyield.WriteResults(outputPath, rows, bg, f); err != nil {
				return err
			}

			failed := 0
			for _, row := range rows {
				if !row.OK() {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", row.Line, row.Err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows (%d failed) to %s\n", len(rows), failed, outputPath)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&inputPath, "input", "", "CSV/TSV/XLSX file with one field per row")
	flags.StringVar(&outputPath, "output", "", "Result file (default uses --output-dir/result_*.csv)")
	flags.StringVar(&outputDir, "output-dir", "results", "Directory used when --output is omitted")
	flags.StringVar(&sheet, "sheet", "", "Worksheet to read from an XLSX file (default: first)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
