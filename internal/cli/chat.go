package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat commands",
	}

	cmd.AddCommand(newChatSendCmd())
	cmd.AddCommand(newChatHistoryCmd())

	return cmd
}

func newChatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <room-id> <text>",
		Short: "Send a chat message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"text": args[1]}

			var result ChatMessage
			if err := client.Post("/api/v1/rooms/"+args[0]+"/chat", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newChatHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <room-id>",
		Short: "Show recent chat messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/rooms/" + args[0] + "/chat"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			var result ChatHistory
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of messages (default 100)")

	return cmd
}
