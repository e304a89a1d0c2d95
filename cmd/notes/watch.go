package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"rich-notes-be/pkg/events"
	pktNats "rich-notes-be/pkg/nats"

	"github.com/spf13/cobra"
)

var (
	watchNatsURL string
	watchDurable string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note events as they happen",
	Long:  `Watch follows the NOTES stream on NATS JetStream until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := clientCfg.NatsURL
		if cmd.Flags().Changed("nats") {
			url = watchNatsURL
		}

		sub, err := pktNats.NewSubscriber(url, logger)
		if err != nil {
			return err
		}
		defer sub.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		stopConsume, err := sub.Subscribe(ctx, pktNats.SubjectPrefix+">", watchDurable, func(_ context.Context, e events.Event) error {
			_, err := fmt.Fprintln(out, formatEvent(e))
			return err
		})
		if err != nil {
			return err
		}
		defer stopConsume()

		fmt.Fprintln(cmd.ErrOrStderr(), "Watching", url, "(Ctrl+C to stop)")
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchNatsURL, "nats", "", "NATS URL (default $NATS_URL)")
	watchCmd.Flags().StringVar(&watchDurable, "durable", "", "Durable consumer name; empty for an ephemeral one")
}

func formatEvent(e events.Event) string {
	return fmt.Sprintf("%s  %-13s %s  %q",
		e.Timestamp().Format("15:04:05"),
		e.EventType(),
		events.StringField(e, "note_id"),
		events.StringField(e, "title"),
	)
}
