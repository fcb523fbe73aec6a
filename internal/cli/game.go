package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameWordCmd())
	cmd.AddCommand(newGameGuessCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <room-id>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/game/start", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Word-giver commands",
	}

	cmd.AddCommand(newGameWordSetCmd())
	cmd.AddCommand(newGameWordGetCmd())

	return cmd
}

func newGameWordSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <room-id> <word>",
		Short: "Submit the secret word (word-giver only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"word": args[1]}

			var result Room
			if err := client.Post("/api/v1/rooms/"+args[0]+"/game/word", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameWordGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room-id>",
		Short: "Show the current secret word (word-giver only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result WordResult
			if err := client.Get("/api/v1/rooms/"+args[0]+"/game/word", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <room-id> <guess>",
		Short: "Submit a guess for the current round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"guess": args[1]}

			var result GuessResult
			if err := client.Post("/api/v1/rooms/"+args[0]+"/game/guess", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
