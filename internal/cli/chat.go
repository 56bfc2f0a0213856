package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"VizChat/internal/chatbot"
	"VizChat/internal/server"
)

func (a *App) newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session in the terminal.

Examples:
  # Start a new session
  vizchat chat

  # Resume a saved session
  vizchat chat --session-id 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := chatbot.NewChatBot(a.cfg, chatbot.WithIO(a.stdin, a.stdout))
			if err != nil {
				return fmt.Errorf("failed to initialize chatbot: %w", err)
			}
			runErr := bot.Run(cmd.Context())
			if err := bot.Close(); err != nil && runErr == nil {
				runErr = err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&a.cfg.SessionID, "session-id", "", "Load existing session by ID")
	cmd.Flags().BoolVar(&a.cfg.AutoDetect, "auto-detect", a.cfg.AutoDetect, "Answer chart requests with sample charts")

	return cmd
}

func (a *App) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat over HTTP",
		Long: `Serve the chat API and rendered charts over HTTP.

Routes:
  GET  /health            Liveness and current session
  GET  /api/messages      Conversation so far
  POST /api/messages      Send {"content": "..."}
  POST /api/files         Upload a data file (multipart field "file")
  GET  /api/columns       Schema and quick charts of the upload
  POST /api/quick/:type   Chart the upload
  GET  /api/history       Charts created in this session
  POST /api/reset         Start a new session
  GET  /charts/*          Rendered chart pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bot, err := chatbot.NewChatBot(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize chatbot: %w", err)
			}
			defer bot.Close()

			fmt.Fprintf(a.stdout, "Serving on %s (session %s)\n", a.cfg.Addr, bot.SessionID())
			return server.New(a.cfg, bot, slog.Default()).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&a.cfg.Addr, "addr", a.cfg.Addr, "HTTP listen address")
	cmd.Flags().StringVar(&a.cfg.SessionID, "session-id", "", "Load existing session by ID")
	cmd.Flags().BoolVar(&a.cfg.AutoDetect, "auto-detect", a.cfg.AutoDetect, "Answer chart requests with sample charts")
	cmd.Flags().IntVar(&a.cfg.MaxUploadMB, "max-upload-mb", a.cfg.MaxUploadMB, "Upload size limit in MB")

	return cmd
}
