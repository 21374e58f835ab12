package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ripconsole/internal/api"
)

type renameFlags struct {
	seriesName string
	customName string
	asJSON     bool
}

func (f *renameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.seriesName, "series-name", "", "Series name (defaults to the name inferred by analyze)")
	cmd.Flags().StringVar(&f.customName, "custom-name", "", "Custom name; also written as the manual title of renamed jobs")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Emit JSON")
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	renameCmd := &cobra.Command{
		Use:   "rename",
		Short: "Batch-rename TV series job folders",
	}
	renameCmd.AddCommand(newRenameAnalyzeCommand(ctx))
	renameCmd.AddCommand(newRenamePreviewCommand(ctx))
	renameCmd.AddCommand(newRenameExecuteCommand(ctx))
	return renameCmd
}

func newRenameAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze <job-id>...",
		Short: "Infer the series name shared by the selected jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseJobIDs(args)
			if err != nil {
				return err
			}
			svc, err := ctx.renameService()
			if err != nil {
				return err
			}
			resp, err := svc.Analyze(cmd.Context(), api.AnalyzeRequest{JobIDs: ids})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			view := newTableView([]columnAlignment{alignRight}, "ID", "Manual title", "Title", "Year", "Label", "Detected series")
			for _, detail := range resp.JobDetails {
				view.add(
					strconv.FormatInt(detail.JobID, 10),
					valueOrDash(detail.TitleManual),
					valueOrDash(detail.Title),
					valueOrDash(detail.Year),
					valueOrDash(detail.Label),
					valueOrDash(detail.DetectedSeries),
				)
			}
			fmt.Fprintln(out, view.render())
			if resp.HasConflicts {
				fmt.Fprintln(out, paint("Conflicting series names: "+strings.Join(quoteAll(resp.SeriesNamesFound), ", "), ansiYellow, colorize))
				fmt.Fprintln(out, "Pass --custom-name to preview or execute.")
				return nil
			}
			fmt.Fprintf(out, "Suggested series name: %s\n", valueOrDash(resp.SuggestedSeriesName))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newRenamePreviewCommand(ctx *commandContext) *cobra.Command {
	var flags renameFlags
	cmd := &cobra.Command{
		Use:   "preview <job-id>...",
		Short: "Show the folder names a rename would produce",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, req, err := buildRenameRequest(cmd, ctx, args, flags)
			if err != nil {
				return err
			}
			resp, err := svc.Preview(cmd.Context(), req)
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd, resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPreviewTable(resp.Preview))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRenameExecuteCommand(ctx *commandContext) *cobra.Command {
	var (
		flags   renameFlags
		confirm bool
	)
	cmd := &cobra.Command{
		Use:   "execute <job-id>...",
		Short: "Rename the job folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, req, err := buildRenameRequest(cmd, ctx, args, flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !confirm {
				preview, err := svc.Preview(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderPreviewTable(preview.Preview))
				return errors.New("no changes made; re-run with --yes to rename these folders")
			}

			resp, err := svc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if flags.asJSON {
				return writeJSON(cmd, resp)
			}

			colorize := shouldColorize(out)
			view := newTableView([]columnAlignment{alignRight}, "ID", "Result", "Old path", "New path / error")
			for _, outcome := range resp.Results {
				detail := outcome.NewPath
				if !outcome.Success {
					detail = outcome.Error
				}
				view.add(
					strconv.FormatInt(outcome.JobID, 10),
					outcomeLabel(outcome.Success, colorize),
					valueOrDash(outcome.OldPath),
					valueOrDash(detail),
				)
			}
			view.caption = fmt.Sprintf("Batch %s", resp.BatchID)
			fmt.Fprintln(out, view.render())
			fmt.Fprintf(out, "Renamed %d of %d job(s)\n", resp.SuccessfulRenames, resp.TotalProcessed)
			if resp.SuccessfulRenames < resp.TotalProcessed {
				return fmt.Errorf("%d rename(s) failed", resp.TotalProcessed-resp.SuccessfulRenames)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Apply the renames without printing a preview first")
	return cmd
}

// buildRenameRequest resolves the job ids and base name for preview and
// execute. Without --series-name or --custom-name the name inferred by
// analyze is used.
func buildRenameRequest(cmd *cobra.Command, ctx *commandContext, args []string, flags renameFlags) (*api.RenameService, api.RenameRequest, error) {
	ids, err := parseJobIDs(args)
	if err != nil {
		return nil, api.RenameRequest{}, err
	}
	svc, err := ctx.renameService()
	if err != nil {
		return nil, api.RenameRequest{}, err
	}
	req := api.RenameRequest{
		JobIDs:        ids,
		SeriesName:    strings.TrimSpace(flags.seriesName),
		UseCustomName: strings.TrimSpace(flags.customName) != "",
		CustomName:    strings.TrimSpace(flags.customName),
	}
	if req.SeriesName == "" && !req.UseCustomName && len(ids) > 0 {
		analysis, err := svc.Analyze(cmd.Context(), api.AnalyzeRequest{JobIDs: ids})
		if err != nil {
			return nil, api.RenameRequest{}, err
		}
		req.SeriesName = analysis.SuggestedSeriesName
	}
	return svc, req, nil
}

func renderPreviewTable(entries []api.PlanEntry) string {
	view := newTableView([]columnAlignment{alignRight}, "ID", "Title", "Current path", "New folder", "New path")
	for _, entry := range entries {
		view.add(
			strconv.FormatInt(entry.JobID, 10),
			valueOrDash(entry.CurrentTitle),
			valueOrDash(entry.CurrentPath),
			entry.NewFolderName,
			entry.NewPath,
		)
	}
	view.caption = fmt.Sprintf("%d folder(s) to rename", len(entries))
	return view.render()
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strconv.Quote(value)
	}
	return out
}
