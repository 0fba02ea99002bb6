package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/homeassistant"
)

func newTestCmd() *cobra.Command {
	var (
		method     string
		host       string
		token      string
		entityID   string
		webhookURL string
	)

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the Home Assistant connection",
		Long: `Perform a single connection test against Home Assistant using the
stored configuration. No retries are attempted and no state is changed
for the api method; the webhook method sends one test value.

Flags override the stored configuration for this test only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewStore()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}

			cfg, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flags().Changed("method") {
				cfg.Method = config.Method(method)
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if cmd.Flags().Changed("entity-id") {
				cfg.EntityID = entityID
			}
			if cmd.Flags().Changed("webhook-url") {
				cfg.WebhookURL = webhookURL
			}

			if result := config.Validate(cfg); !result.Valid {
				for _, msg := range result.Errors {
					fmt.Printf("  - %s\n", msg)
				}
				return fmt.Errorf("configuration is incomplete")
			}

			result := homeassistant.TestConnection(context.Background(), cfg)
			if !result.Success {
				return fmt.Errorf("connection test failed: %s", result.Message)
			}

			fmt.Printf("Connection test passed: %s\n", result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Delivery method: api or webhook (overrides config)")
	cmd.Flags().StringVar(&host, "host", "", "Home Assistant base URL (overrides config)")
	cmd.Flags().StringVar(&token, "token", "", "Home Assistant access token (overrides config)")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "Entity to check (overrides config)")
	cmd.Flags().StringVar(&webhookURL, "webhook-url", "", "Webhook URL (overrides config)")

	return cmd
}
