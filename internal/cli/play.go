package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"tg-quiz-webapp/internal/client"
	"tg-quiz-webapp/internal/config"
	"tg-quiz-webapp/internal/miniapp"
	"tg-quiz-webapp/internal/transport/terminal"
)

// NewPlayCmd runs the mini-app in the terminal against a running backend.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		baseURL string
		userID  int64
		locale  string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.Client.BaseURL
			}
			if baseURL == "" {
				baseURL = "http://localhost:8000"
			}
			if userID == 0 {
				userID = cfg.Client.UserID
			}
			if locale == "" {
				locale = cfg.Client.Locale
			}

			msgs := miniapp.MessagesFor(locale)
			term := terminal.New(os.Stdout, msgs, userID)
			api := client.NewAPIClient(baseURL, config.TTLDuration(cfg.Client.Timeout, 15*time.Second))
			ctrl := miniapp.NewController(api, term, term, msgs)
			return terminal.Run(cmd.Context(), ctrl, term, os.Stdin)
		},
	}
	cmd.Flags().StringVar(&baseURL, "api", "", "quiz API base URL (overrides config)")
	cmd.Flags().Int64Var(&userID, "user", 0, "user id to answer as")
	cmd.Flags().StringVar(&locale, "locale", "", "message locale (ru, en)")
	return cmd
}
