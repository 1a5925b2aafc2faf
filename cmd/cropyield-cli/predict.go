package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/cropyield/cropyield"
)

func (c *cli) predictCmd() *cobra.Command {
	var (
		in     cropyield.Input
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the yield of one field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := c.cfg.Form
			flags := cmd.Flags()
			if !flags.Changed("year") {
				in.Year = form.DefaultYear
			}
			if !flags.Changed("msp") {
				in.MSP = form.DefaultMSP
			}
			if !flags.Changed("sack-size") {
				in.SackSizeKg = form.DefaultSack
			}

			svc, err := cropyield.OpenService(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := form.SelectionValidator(svc.Catalog())(in); err != nil {
				return err
			}
			res, err := svc.Predict(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			f, err := c.formatter()
			if err != nil {
				return err
			}
			s := f.Summarize(res)
			fmt.Fprintln(out, f.AreaLine(in.AreaHectares))
			fmt.Fprintln(out, s.Yield)
			fmt.Fprintln(out, s.Sacks)
			fmt.Fprintln(out, s.Revenue)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&in.SoilType, "soil", "", "Soil type, e.g. Loamy")
	flags.StringVar(&in.CropType, "crop", "", "Crop type recommended for the soil, e.g. Wheat")
	flags.IntVar(&in.Year, "year", 0, "Crop year (default from config)")
	flags.Float64Var(&in.AreaHectares, "area", 0, "Irrigated area in hectares")
	flags.Float64Var(&in.MSP, "msp", 0, "Minimum support price per kg (default from config)")
	flags.IntVar(&in.SackSizeKg, "sack-size", 0, "Sack size in kg (default from config)")
	flags.BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	_ = cmd.MarkFlagRequired("soil")
	_ = cmd.MarkFlagRequired("crop")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}
