package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/meetpresence/internal/config"
)

func newConfigureCmd() *cobra.Command {
	var (
		method       string
		host         string
		token        string
		entityID     string
		webhookURL   string
		source       string
		devtoolsURL  string
		pollInterval time.Duration
		account      string
		spaces       []string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Save delivery and presence settings",
		Long: `Save meetpresence settings. Only the flags you pass are changed; the
rest of the stored configuration is kept.

Delivery via the Home Assistant REST API:
  meetpresence configure --method api --host http://homeassistant.local:8123 \
    --token <long-lived-access-token> --entity-id input_boolean.in_meeting

Delivery via a webhook:
  meetpresence configure --method webhook \
    --webhook-url http://homeassistant.local:8123/api/webhook/meet_presence`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewStore()
			if err != nil {
				return fmt.Errorf("failed to locate config directory: %w", err)
			}

			cfg, err := store.Load()
			if err != nil {
				return fmt.Errorf("failed to load existing config: %w", err)
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
			if cmd.Flags().Changed("source") {
				cfg.Source = config.Source(source)
			}
			if cmd.Flags().Changed("devtools-url") {
				cfg.DevToolsURL = devtoolsURL
			}
			if cmd.Flags().Changed("poll-interval") {
				cfg.PollInterval = pollInterval
			}
			if cmd.Flags().Changed("account") {
				cfg.Account = account
			}
			if cmd.Flags().Changed("space") {
				cfg.Spaces = spaces
			}

			if err := store.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("Configuration saved to %s\n", store.Path())

			// Settings are saved even when incomplete; delivery stays off
			// until validation passes.
			result := config.Validate(cfg)
			if !result.Valid {
				fmt.Println("\nDelivery is disabled until the configuration is complete:")
				for _, msg := range result.Errors {
					fmt.Printf("  - %s\n", msg)
				}
				return nil
			}

			fmt.Println("Configuration is valid. Run 'meetpresence test' to verify connectivity.")
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Delivery method: api or webhook")
	cmd.Flags().StringVar(&host, "host", "", "Home Assistant base URL, e.g. http://homeassistant.local:8123")
	cmd.Flags().StringVar(&token, "token", "", "Home Assistant long-lived access token (api method)")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "Entity to toggle, e.g. input_boolean.in_meeting (api method)")
	cmd.Flags().StringVar(&webhookURL, "webhook-url", "", "Full webhook URL (webhook method)")
	cmd.Flags().StringVar(&source, "source", "", "Presence source: browser or meet-api")
	cmd.Flags().StringVar(&devtoolsURL, "devtools-url", "", "Chrome DevTools base URL for the browser source")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "Interval between presence observations")
	cmd.Flags().StringVar(&account, "account", "", "Google account name for the meet-api source")
	cmd.Flags().StringSliceVar(&spaces, "space", nil, "Meet space to watch with the meet-api source; repeatable")

	return cmd
}
