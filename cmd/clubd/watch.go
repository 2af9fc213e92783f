package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/clubworks/clubd/internal/events"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Tail event lifecycle activity",
	GroupID: "events",
	// Connects straight to NATS; no API client needed.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		natsURL := os.Getenv("CLUBD_NATS_URL")
		if natsURL == "" {
			return fmt.Errorf("CLUBD_NATS_URL is required for watch")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		sub, err := events.NewNATSSubscriber(natsURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				log.Printf("nats: disconnected: %v", err)
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				log.Printf("nats: reconnected")
			}),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer sub.Close()

		ch, cancel, err := sub.SubscribeMessages(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", topic)
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				printActivity(msg)
			}
		}
	},
}

// printActivity renders one lifecycle event as a single line, or as raw JSON
// with --json.
func printActivity(msg events.Message) {
	ts := time.Now().Format("15:04:05")
	if jsonOutput {
		fmt.Printf("{\"subject\":%q,\"payload\":%s}\n", msg.Subject, msg.Data)
		return
	}

	var payload struct {
		Event *struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"event"`
		EventID string `json:"event_id"`
		UserID  string `json:"user_id"`
		Actor   string `json:"actor"`
	}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		fmt.Printf("%s  %s  %s\n", ts, msg.Subject, msg.Data)
		return
	}

	switch {
	case payload.Event != nil:
		fmt.Printf("%s  %s  %s (%s) by %s\n", ts, msg.Subject, payload.Event.Name, payload.Event.ID, payload.Actor)
	case payload.UserID != "":
		fmt.Printf("%s  %s  %s by %s\n", ts, msg.Subject, payload.EventID, payload.UserID)
	default:
		fmt.Printf("%s  %s  %s by %s\n", ts, msg.Subject, payload.EventID, payload.Actor)
	}
}

func init() {
	watchCmd.Flags().String("topic", "club.>", "NATS subject to watch")
}
