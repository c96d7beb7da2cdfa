package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/x/track"
)

func trackCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Manage progress tracks",
	}
	cmd.AddCommand(trackMarkCmd(opts))
	return cmd
}

func trackMarkCmd(opts *options) *cobra.Command {
	var clearProgress bool
	cmd := &cobra.Command{
		Use:   "mark <track-path>",
		Short: "Mark progress on a track by one difficulty step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrackMark(cmd, opts, args[0], clearProgress)
		},
	}
	cmd.Flags().BoolVar(&clearProgress, "clear", false, "Clear progress instead of marking it")
	return cmd
}

func runTrackMark(cmd *cobra.Command, opts *options, path string, clearProgress bool) error {
	ctx := context.Background()

	s, err := opts.connect()
	if err != nil {
		return err
	}

	current, err := loadTrack(ctx, s.store, path)
	if err != nil {
		return err
	}

	service := track.NewService(s.gateway, nil, nil)
	step := service.Mark
	if clearProgress {
		step = service.Clear
	}
	next, change, err := step(ctx, path, current)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch change {
	case core.TrackAtMaximum:
		fmt.Fprintln(out, "Track is already full.")
	case core.TrackAtZero:
		fmt.Fprintln(out, "Track is already empty.")
	}
	fmt.Fprintf(out, "%s: %s %d/%d\n", next.Label, renderBoxes(track.Boxes(next.Value, next.Max)), next.Value, next.Max)
	return nil
}

func loadTrack(ctx context.Context, store core.RemoteStore, path string) (core.ProgressTrack, error) {
	doc, err := store.Get(ctx, path)
	if err != nil {
		return core.ProgressTrack{}, err
	}
	entity, err := core.NormalizeDocument(doc)
	if err != nil {
		return core.ProgressTrack{}, err
	}
	value, ok := entity.Value.(core.ProgressTrack)
	if !ok {
		return core.ProgressTrack{}, core.NewErrorValidation("not a track: " + path)
	}
	return value, nil
}

var boxGlyphs = []string{" ", "-", "x", "*", "#"}

func renderBoxes(boxes []int) string {
	var b strings.Builder
	for _, ticks := range boxes {
		b.WriteString("[" + boxGlyphs[ticks] + "]")
	}
	return b.String()
}
