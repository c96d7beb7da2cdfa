package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/x/gamelog"
	"github.com/ironfellow/companion/x/resolution"
	"github.com/ironfellow/companion/x/track"
)

// logTarget names where a roll is recorded. Nothing is recorded when both ids are empty.
type logTarget struct {
	campaignID  string
	characterID string
	uid         string
}

func (l *logTarget) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&l.campaignID, "campaign", "", "Record the roll in this campaign's log")
	cmd.Flags().StringVar(&l.characterID, "character", "", "Character making the roll")
	cmd.Flags().StringVar(&l.uid, "uid", "", "User making the roll")
}

func (l *logTarget) enabled() bool {
	return l.campaignID != "" || l.characterID != ""
}

func (l *logTarget) record(ctx context.Context, cmd *cobra.Command, opts *options, roll core.Roll) error {
	if !l.enabled() {
		return nil
	}
	s, err := opts.connect()
	if err != nil {
		return err
	}

	roll.CharacterID = l.characterID
	roll.UID = l.uid
	id, err := gamelog.NewService(s.store, s.gateway).Log(ctx, l.campaignID, l.characterID, roll)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged as %s\n", id)
	return nil
}

func seedOrRandom(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return resolution.NewSeed()
}

func rollCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll dice",
	}
	cmd.AddCommand(rollStatCmd(opts))
	cmd.AddCommand(rollProgressCmd(opts))
	cmd.AddCommand(rollOracleCmd(opts))
	return cmd
}

func rollStatCmd(opts *options) *cobra.Command {
	var (
		modifier int
		adds     int
		seed     int64
		label    string
		move     string
		target   logTarget
	)
	cmd := &cobra.Command{
		Use:   "stat",
		Short: "Make an action roll",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := seedOrRandom(seed)
			if err != nil {
				return err
			}
			result, err := resolution.RollStat(resolution.StatRollRequest{Modifier: modifier, Adds: adds, Seed: seed})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Action: %d + %d + %d = %s\n", result.Action, result.Modifier, result.Adds, result.DisplayTotal())
			fmt.Fprintf(out, "Challenge: %d, %d\n", result.Challenge1, result.Challenge2)
			fmt.Fprintf(out, "Outcome: %s", result.Outcome)
			if result.Match {
				fmt.Fprint(out, " (match)")
			}
			fmt.Fprintln(out)

			return target.record(context.Background(), cmd, opts, resolution.StatRoll(result, label, move))
		},
	}
	cmd.Flags().IntVar(&modifier, "stat", 0, "Stat value added to the action die")
	cmd.Flags().IntVar(&adds, "adds", 0, "Adds")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Roll seed (random when 0)")
	cmd.Flags().StringVar(&label, "label", "Action roll", "Label of the roll")
	cmd.Flags().StringVar(&move, "move", "", "Move id")
	target.register(cmd)
	return cmd
}

func rollProgressCmd(opts *options) *cobra.Command {
	var (
		ticks      int
		trackPath  string
		trackType  string
		gameSystem string
		seed       int64
		label      string
		target     logTarget
	)
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Make a progress roll against a tick count or a stored track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			request := core.ProgressRollRequest{
				CampaignID:  target.campaignID,
				CharacterID: target.characterID,
				UID:         target.uid,
				GameSystem:  gameSystem,
				TrackType:   core.TrackType(trackType),
				Label:       label,
				Ticks:       ticks,
				Seed:        seed,
			}

			var service core.TrackService
			if trackPath != "" || target.enabled() {
				s, err := opts.connect()
				if err != nil {
					return err
				}
				service = track.NewService(s.gateway, gamelog.NewService(s.store, s.gateway), nil)

				if trackPath != "" {
					stored, err := loadTrack(ctx, s.store, trackPath)
					if err != nil {
						return err
					}
					request.Ticks = stored.Value
					request.TrackType = stored.Type
					if request.Label == "" {
						request.Label = stored.Label
					}
				}
			} else {
				service = track.NewService(nil, nil, nil)
			}

			roll, err := service.RollProgress(ctx, request)
			if roll.Kind != "" {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Progress: %d\n", roll.TrackProgress)
				fmt.Fprintf(out, "Challenge: %d, %d\n", roll.Challenge1, roll.Challenge2)
				fmt.Fprintf(out, "Outcome: %s", roll.Result)
				if roll.Match {
					fmt.Fprint(out, " (match)")
				}
				fmt.Fprintln(out)
				if roll.MoveName != "" {
					fmt.Fprintf(out, "Move: %s\n", roll.MoveName)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 0, "Ticks of progress")
	cmd.Flags().StringVar(&trackPath, "track", "", "Path of a stored track to roll against")
	cmd.Flags().StringVar(&trackType, "type", string(core.TrackVow), "Track type")
	cmd.Flags().StringVar(&gameSystem, "system", "", "Game system (ironsworn or starforged)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Roll seed (random when 0)")
	cmd.Flags().StringVar(&label, "label", "", "Label of the roll")
	target.register(cmd)
	return cmd
}

func rollOracleCmd(opts *options) *cobra.Command {
	var (
		tablePath string
		seed      int64
		target    logTarget
	)
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Roll on an oracle table read from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadOracleTable(tablePath)
			if err != nil {
				return err
			}
			seed, err := seedOrRandom(seed)
			if err != nil {
				return err
			}
			result, err := resolution.RollOracle(table, seed)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %s\n", table.Name, result.Roll, result.Result)
			return target.record(context.Background(), cmd, opts, resolution.OracleRoll(result, table.Name))
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "Path to the oracle table")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Roll seed (random when 0)")
	_ = cmd.MarkFlagRequired("table")
	target.register(cmd)
	return cmd
}

func loadOracleTable(path string) (resolution.OracleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return resolution.OracleTable{}, errors.Wrap(err, "failed to open oracle table")
	}
	defer f.Close()

	var table resolution.OracleTable
	err = yaml.NewDecoder(f).Decode(&table)
	if err != nil {
		return resolution.OracleTable{}, errors.Wrap(err, "failed to load oracle table")
	}
	if table.Name == "" {
		table.Name = table.ID
	}
	return table, nil
}
