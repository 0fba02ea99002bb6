package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/homeassistant"
	"github.com/teemow/meetpresence/internal/netcheck"
	"github.com/teemow/meetpresence/internal/retry"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send on|off",
		Short: "Push a presence state to Home Assistant manually",
		Long: `Deliver a presence state through the configured method, with the same
retry behavior the daemon uses. Useful for wiring checks and automation
testing.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
				return fmt.Errorf("expected exactly one argument: on or off")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inMeeting := args[0] == "on"

			store, err := config.NewStore()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}

			cfg, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if result := config.Validate(cfg); !result.Valid {
				for _, msg := range result.Errors {
					fmt.Printf("  - %s\n", msg)
				}
				return fmt.Errorf("configuration is incomplete")
			}

			ctx := context.Background()
			if !netcheck.New().Online(ctx) {
				return fmt.Errorf("no network connectivity, not attempting delivery")
			}

			deliverer, err := homeassistant.NewDeliverer(cfg)
			if err != nil {
				return err
			}

			if err := retry.Do(ctx, func() error {
				return deliverer.Deliver(ctx, inMeeting)
			}, retry.DefaultOptions()); err != nil {
				return fmt.Errorf("delivery failed: %w", err)
			}

			fmt.Printf("Delivered %q via %s\n", args[0], cfg.Method)
			return nil
		},
	}

	return cmd
}
