package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/events"
	pktNats "contract-assistant-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTailCmd() *cobra.Command {
	var (
		subject string
		durable string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow contract events published to NATS JetStream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.App.NatsURL == "" {
				return fmt.Errorf("NATS_URL is not set")
			}

			sub, err := pktNats.NewSubscriber(cfg.App.NatsURL, cfg.App.NatsStream, logger.NewNopLogger())
			if err != nil {
				return err
			}
			defer sub.Close()

			out := cmd.OutOrStdout()
			err = sub.Subscribe(cmd.Context(), subject, durable, func(_ context.Context, e events.Event) error {
				printEvent(out, e)
				return nil
			})
			if err != nil {
				return err
			}

			color.New(color.Faint).Fprintf(out, "following %s on stream %s (ctrl-c to stop)\n", subject, cfg.App.NatsStream)
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", pktNats.Subject(">"), "subject filter")
	cmd.Flags().StringVar(&durable, "durable", "contractctl-tail", "durable consumer name")
	return cmd
}

var eventColors = map[string]color.Attribute{
	events.TypeContractDrafted:  color.FgGreen,
	events.TypeContractModified: color.FgCyan,
	events.TypeContractAnalyzed: color.FgMagenta,
	events.TypeDocumentUploaded: color.FgBlue,
	events.TypeSessionReset:     color.FgYellow,
	events.TypeSessionDeleted:   color.FgRed,
}

// printEvent writes one line per event: time, type, then the payload sorted by key.
func printEvent(out io.Writer, e events.Event) {
	attr, ok := eventColors[e.EventType()]
	if !ok {
		attr = color.FgWhite
	}

	fmt.Fprintf(out, "%s ", e.Timestamp().Local().Format(time.TimeOnly))
	color.New(attr, color.Bold).Fprintf(out, "%-18s", e.EventType())

	payload := e.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, " %s=%v", k, payload[k])
	}
	fmt.Fprintln(out)
}
