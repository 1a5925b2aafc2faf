package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"yashubustudio/cropyield/cropyield"
)

func (c *cli) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List soil types, crop codes and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := cropyield.OpenCatalog(c.cfg, c.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SOIL\tCODE\tRECOMMENDED CROPS")
			for _, soil := range catalog.SoilTypes() {
				code := "-"
				if n, err := catalog.EncodeSoil(soil); err == nil {
					code = strconv.Itoa(n)
				}
				crops, _ := catalog.RecommendedCrops(soil)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", soil, code, strings.Join(crops, ", "))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			classes := catalog.CropEncoder().Classes()
			codes := make([]string, len(classes))
			for i, crop := range classes {
				codes[i] = fmt.Sprintf("%s=%d", crop, i)
			}
			fmt.Fprintf(out, "\nCrop codes: %s\n", strings.Join(codes, ", "))

			for _, issue := range catalog.Issues() {
				fmt.Fprintf(out, "warning: %s\n", issue)
			}
			return nil
		},
	}
}

func (c *cli) acresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acres HECTARES",
		Short: "Convert an irrigated area from hectares to acres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ha, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil || ha < 0 {
				return fmt.Errorf("%w: %q is not a non-negative number of hectares", cropyield.ErrInvalidInput, args[0])
			}
			f, err := c.formatter()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.AreaLine(ha))
			return nil
		},
	}
}
