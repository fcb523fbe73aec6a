package cli

import (
	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomTransferHostCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		maxPlayers    int
		roundDuration int
		totalRounds   int
		category      string
		basePoints    int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if maxPlayers > 0 {
				req["max_players"] = maxPlayers
			}
			if roundDuration > 0 {
				req["round_duration_seconds"] = roundDuration
			}
			if totalRounds > 0 {
				req["total_rounds"] = totalRounds
			}
			if category != "" {
				req["category"] = category
			}
			if basePoints > 0 {
				req["base_points"] = basePoints
			}

			var result Room
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Maximum players (default 8)")
	cmd.Flags().IntVar(&roundDuration, "round-duration", 0, "Round duration in seconds (default 45)")
	cmd.Flags().IntVar(&totalRounds, "rounds", 0, "Total rounds (default 5)")
	cmd.Flags().StringVar(&category, "category", "", "Word category hint (default general)")
	cmd.Flags().IntVar(&basePoints, "base-points", 0, "Base points per round (default 100)")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	var byCode bool

	cmd := &cobra.Command{
		Use:   "get <room-id|code>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/rooms/" + args[0]
			if byCode {
				path = "/api/v1/rooms/code/" + args[0]
			}

			var result Room
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byCode, "code", false, "Look up by shareable code instead of room ID")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room by its shareable code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": args[0]}

			var result Room
			if err := client.Post("/api/v1/rooms/join", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <room-id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/rooms/"+args[0]+"/leave", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Left room")
			return nil
		},
	}
}

func newRoomTransferHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer-host <room-id> <player-id>",
		Short: "Transfer host to another member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"new_host_id": args[1]}

			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/transfer-host", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
