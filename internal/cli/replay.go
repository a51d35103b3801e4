package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/supergame"
)

// MoveLog is the YAML document read by replay.
type MoveLog struct {
	Moves []supergame.Move `yaml:"moves"`
}

type ReplayResult struct {
	Applied int    `json:"applied"`
	Error   string `json:"error,omitempty"`
	supergame.Snapshot
}

func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a YAML move log and print the resulting position",
		Long: `Replay a move log through the rules engine and print the position it
reaches. The file lists moves in order:

  moves:
    - {player: X, macro: 4, cell: 4}
    - {player: O, macro: 4, cell: 0}

Replay stops at the first rejected move, prints the position before it and
exits with code 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, cmd.OutOrStdout(), args[0])
		},
	}
}

func runReplay(opts *RootOptions, out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read move log", err)
	}

	var moveLog MoveLog
	if err = yaml.Unmarshal(data, &moveLog); err != nil {
		return WrapExitError(ExitCommandError, "failed to parse move log", err)
	}

	engine := supergame.NewEngine()

	var (
		applied   int
		replayErr error
	)

	for i, move := range moveLog.Moves {
		if _, err = engine.ApplyMove(move.Player, move.Macro, move.Cell); err != nil {
			replayErr = fmt.Errorf("move %d: %w", i+1, err)
			break
		}

		applied++
	}

	game := engine.State()

	if opts.Format == "json" {
		result := ReplayResult{Applied: applied, Snapshot: engine.Snapshot()}
		if replayErr != nil {
			result.Error = replayErr.Error()
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		if err = encoder.Encode(result); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	} else {
		fmt.Fprint(out, supergame.Render(game))
		fmt.Fprintln(out, supergame.Status(game))
	}

	if replayErr != nil {
		return WrapExitError(ExitFailure, "replay stopped", replayErr)
	}

	return nil
}
