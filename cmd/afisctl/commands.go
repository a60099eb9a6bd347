package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jtejido/afisnet/catalog"
	"github.com/jtejido/afisnet/config"
	"github.com/jtejido/afisnet/matching"
	"github.com/jtejido/afisnet/plot"
	"github.com/jtejido/afisnet/primitives"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog and network size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			stats, err := svc.Stats()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.success("Loaded %d records", stats.Records)
			p.success("Detected %d network nodes, %d connections", stats.GraphNodes, stats.GraphEdges)
			return nil
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		record     catalog.Record
		points     []string
		associates []int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog record",
		Long:  "Points are given as K,x,y,angle[,orientation] where K is R (ridge ending) or B (bifurcation).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := primitives.ParseMinutiae(points)
			if err != nil {
				return err
			}
			for _, m := range parsed {
				record.Points = append(record.Points, m.Catalogued())
			}
			record.Associates = associates

			svc, err := ctx.service()
			if err != nil {
				return err
			}
			if err := svc.AddRecord(record); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Record #%d added.", record.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&record.ID, "id", 0, "Record id (unique, positive)")
	cmd.Flags().StringVar(&record.Name, "name", "", "Display name")
	cmd.Flags().StringArrayVarP(&points, "point", "p", nil, "Minutia K,x,y,angle[,orientation] (repeatable)")
	cmd.Flags().IntSliceVarP(&associates, "associate", "a", nil, "Associate record ids")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			r, err := svc.Record(id)
			if err != nil {
				return err
			}
			printRecord(newPrinter(cmd.OutOrStdout()), r)
			return nil
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			records, err := svc.Records()
			if err != nil {
				return err
			}
			printRecordList(newPrinter(cmd.OutOrStdout()), records)
			return nil
		},
	}
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		points      []string
		method      string
		showNetwork bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Identify a fingerprint sample against the catalog",
		Long:  "Points are given as K,x,y,angle[,ridge-count] where K is R (ridge ending) or B (bifurcation).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := primitives.ParseMinutiae(points)
			if err != nil {
				return err
			}
			alg, err := matching.ParseAlgorithm(method)
			if err != nil {
				return err
			}
			svc, err := ctx.service()
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.info("Analyzing fingerprint...")
			res, ok, err := svc.Identify(sample, alg)
			if err != nil {
				return err
			}
			if !ok {
				p.header("FINGERPRINT MATCH RESULT")
				p.warn("No matching fingerprint found in catalog.")
				return nil
			}
			printMatch(p, res, sample)

			if showNetwork {
				t, err := svc.Network(res.RecordID)
				if err != nil {
					return err
				}
				printTraversal(p, t)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&points, "point", "p", nil, "Minutia K,x,y,angle[,ridge-count] (repeatable)")
	cmd.Flags().StringVarP(&method, "method", "m", matching.GraphBased.String(), "Matching method: graph or zonal")
	cmd.Flags().BoolVar(&showNetwork, "network", false, "Also show the matched record's associate network")
	return cmd
}

func newAdjacencyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "adjacency <id>",
		Short: "List a record's direct associates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			adj, err := svc.Adjacency(id)
			if err != nil {
				return err
			}
			printAdjacency(newPrinter(cmd.OutOrStdout()), adj)
			return nil
		},
	}
}

func newNetworkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "network <id>",
		Short: "Walk every direct and indirect associate of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			t, err := svc.Network(id)
			if err != nil {
				return err
			}
			printTraversal(newPrinter(cmd.OutOrStdout()), t)
			return nil
		},
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			lines, err := svc.History()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.header("SEARCH HISTORY")
			for _, l := range lines {
				p.block(l)
			}
			return nil
		},
	}
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import records from a legacy pipe-delimited catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			records, err := catalog.ReadLegacy(f)
			if err != nil {
				return err
			}
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			n, err := svc.Import(records)
			newPrinter(cmd.OutOrStdout()).success("Imported %d of %d records.", n, len(records))
			return err
		},
	}
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the catalog in the legacy pipe-delimited format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			records, err := svc.Records()
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return catalog.WriteLegacy(w, records)
		},
	}
}

func newPlotCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "plot <id>",
		Short: "Write a record's minutiae as a PGM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.service()
			if err != nil {
				return err
			}
			r, err := svc.Record(id)
			if err != nil {
				return err
			}
			img, err := plot.Render(r.Points, plot.OptionsFrom(config.Config.Plot))
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := plot.Encode(f, img); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).success("Wrote %s (%dx%d).", output, img.Bounds().Dx(), img.Bounds().Dy())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PGM path")
	return cmd
}
