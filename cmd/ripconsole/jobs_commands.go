package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ripconsole/internal/api"
	"ripconsole/internal/jobs"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and record rip jobs",
	}
	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))
	jobsCmd.AddCommand(newJobsAddCommand(ctx))
	jobsCmd.AddCommand(newJobsEditCommand(ctx))
	jobsCmd.AddCommand(newJobsStatsCommand(ctx))
	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var (
		eligible bool
		statuses []string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rip jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.jobService()
			if err != nil {
				return err
			}
			var list []api.Job
			if eligible {
				list, err = svc.ListEligible(cmd.Context())
			} else {
				parsed, parseErr := parseStatusFlags(statuses)
				if parseErr != nil {
					return parseErr
				}
				list, err = svc.List(cmd.Context(), parsed...)
			}
			if err != nil {
				return err
			}
			if asJSON {
				if list == nil {
					list = []api.Job{}
				}
				return writeJSON(cmd, api.JobListResponse{Jobs: list})
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No jobs found")
				return nil
			}
			fmt.Fprintln(out, renderJobsTable(list))
			return nil
		},
	}
	cmd.Flags().BoolVar(&eligible, "eligible", false, "Only list jobs eligible for batch rename")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Filter by status (active, waiting, success, fail)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func renderJobsTable(list []api.Job) string {
	view := newTableView([]columnAlignment{alignRight}, "ID", "Title", "Label", "Status", "Type", "Path")
	eligible := 0
	for _, job := range list {
		view.add(
			strconv.FormatInt(job.JobID, 10),
			valueOrDash(job.DisplayTitle),
			valueOrDash(job.Label),
			job.Status,
			job.VideoType,
			valueOrDash(job.Path),
		)
		if job.BatchRenameEligible {
			eligible++
		}
	}
	view.caption = fmt.Sprintf("%d job(s), %d eligible for batch rename", len(list), eligible)
	return view.render()
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			svc, err := ctx.jobService()
			if err != nil {
				return err
			}
			job, err := svc.Describe(cmd.Context(), id)
			if err != nil {
				return err
			}
			if job == nil {
				return fmt.Errorf("job %d not found", id)
			}
			if asJSON {
				return writeJSON(cmd, api.JobResponse{Job: *job})
			}
			out := cmd.OutOrStdout()
			fields := [][2]string{
				{"ID", strconv.FormatInt(job.JobID, 10)},
				{"Title", valueOrDash(job.Title)},
				{"Manual title", valueOrDash(job.TitleManual)},
				{"Display title", valueOrDash(job.DisplayTitle)},
				{"Year", valueOrDash(job.Year)},
				{"Label", valueOrDash(job.Label)},
				{"Path", valueOrDash(job.Path)},
				{"Status", job.Status},
				{"Type", job.VideoType},
				{"Rename eligible", yesNo(job.BatchRenameEligible)},
				{"Started", valueOrDash(job.StartTime)},
				{"Stopped", valueOrDash(job.StopTime)},
			}
			for _, field := range fields {
				fmt.Fprintf(out, "%-16s %s\n", field[0]+":", field[1])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newJobsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		job       jobs.Job
		status    string
		videoType string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a rip job",
		Long:  "Record a rip job the way the ripping pipeline does once a disc finishes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := jobs.ParseStatus(status)
			if !ok {
				return fmt.Errorf("unknown status %q", status)
			}
			job.Status = parsed
			job.VideoType = jobs.ParseVideoType(videoType)
			if job.Status == jobs.StatusSuccess || job.Status == jobs.StatusFail {
				stopped := time.Now().UTC()
				job.StopTime = &stopped
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			created, err := store.Create(cmd.Context(), &job)
			if err != nil {
				return err
			}
			dto := api.FromJob(created, ctx.config.Rename.UseDiscLabelForTVSeries)
			if asJSON {
				return writeJSON(cmd, api.JobResponse{Job: dto})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded job %d (%s)\n", dto.JobID, valueOrDash(dto.DisplayTitle))
			return nil
		},
	}
	cmd.Flags().StringVar(&job.Title, "title", "", "Detected title")
	cmd.Flags().StringVar(&job.TitleManual, "title-manual", "", "Manual title override")
	cmd.Flags().StringVar(&job.Year, "year", "", "Release year")
	cmd.Flags().StringVar(&job.Label, "label", "", "Disc label")
	cmd.Flags().StringVar(&job.Path, "path", "", "Output folder")
	cmd.Flags().StringVar(&status, "status", string(jobs.StatusSuccess), "Job status")
	cmd.Flags().StringVar(&videoType, "video-type", string(jobs.VideoTypeSeries), "Video type (movie, series, unknown)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newJobsEditCommand(ctx *commandContext) *cobra.Command {
	var (
		edit      jobs.Job
		status    string
		videoType string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Correct the recorded fields of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			job, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if job == nil {
				return fmt.Errorf("job %d not found", id)
			}

			flags := cmd.Flags()
			changed := 0
			apply := func(name string, dst *string, value string) {
				if flags.Changed(name) {
					*dst = strings.TrimSpace(value)
					changed++
				}
			}
			apply("title", &job.Title, edit.Title)
			apply("title-manual", &job.TitleManual, edit.TitleManual)
			apply("year", &job.Year, edit.Year)
			apply("label", &job.Label, edit.Label)
			apply("path", &job.Path, edit.Path)
			if flags.Changed("status") {
				parsed, ok := jobs.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				job.Status = parsed
				changed++
			}
			if flags.Changed("video-type") {
				job.VideoType = jobs.ParseVideoType(videoType)
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("nothing to change; pass at least one field flag")
			}

			if err := store.Update(cmd.Context(), job); err != nil {
				return err
			}
			dto := api.FromJob(job, ctx.config.Rename.UseDiscLabelForTVSeries)
			if asJSON {
				return writeJSON(cmd, api.JobResponse{Job: dto})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated job %d (%s)\n", dto.JobID, valueOrDash(dto.DisplayTitle))
			return nil
		},
	}
	cmd.Flags().StringVar(&edit.Title, "title", "", "Detected title")
	cmd.Flags().StringVar(&edit.TitleManual, "title-manual", "", "Manual title override (empty clears it)")
	cmd.Flags().StringVar(&edit.Year, "year", "", "Release year")
	cmd.Flags().StringVar(&edit.Label, "label", "", "Disc label")
	cmd.Flags().StringVar(&edit.Path, "path", "", "Output folder")
	cmd.Flags().StringVar(&status, "status", "", "Job status")
	cmd.Flags().StringVar(&videoType, "video-type", "", "Video type (movie, series, unknown)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func newJobsStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show job counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.jobService()
			if err != nil {
				return err
			}
			counts, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, counts)
			}
			view := newTableView([]columnAlignment{alignLeft, alignRight}, "Status", "Count")
			for _, status := range jobs.Statuses() {
				view.add(string(status), strconv.Itoa(counts[string(status)]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON")
	return cmd
}

func parseStatusFlags(values []string) ([]jobs.Status, error) {
	var out []jobs.Status
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		status, ok := jobs.ParseStatus(value)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", value)
		}
		out = append(out, status)
	}
	return out, nil
}

func parseJobIDs(args []string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			id, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid job id %q", trimmed)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
