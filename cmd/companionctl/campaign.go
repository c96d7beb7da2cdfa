package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironfellow/companion/x/campaign"
)

func campaignCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}
	cmd.AddCommand(campaignDeleteCmd(opts))
	return cmd
}

func campaignDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <campaign-id>",
		Short: "Delete a campaign, detach its characters and remove everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaignDelete(cmd, opts, args[0])
		},
	}
}

func runCampaignDelete(cmd *cobra.Command, opts *options, campaignID string) error {
	s, err := opts.connect()
	if err != nil {
		return err
	}

	service := campaign.NewService(s.store, s.gateway, s.config)
	report, err := service.Delete(context.Background(), campaignID)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Deletion %s.\n", report.Status)
	if len(report.Detached) > 0 {
		fmt.Fprintf(out, "Detached characters (%d):\n", len(report.Detached))
		for _, id := range report.Detached {
			fmt.Fprintf(out, "  %s\n", id)
		}
	}
	fmt.Fprintf(out, "Deleted documents: %d\n", len(report.Deleted))
	if len(report.Failures) > 0 {
		fmt.Fprintf(out, "Failures (%d):\n", len(report.Failures))
		for _, failure := range report.Failures {
			fmt.Fprintf(out, "  %s\n", failure.Error())
		}
	}

	return err
}
