package main

import (
	"fmt"
	"os"
	"time"

	"rich-notes-be/internal/config"
	"rich-notes-be/pkg/notesclient"
	"rich-notes-be/pkg/render"
	"rich-notes-be/pkg/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiURL   string
	apiToken string
	timeout  time.Duration
	verbose  bool
	noColor  bool

	clientCfg *config.ClientConfig
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Read and edit rich-text notes on a notes server",
	Long: `notes talks to a rich-notes server. Notes are stored as draft-js
documents; plain text and Lexical content are read transparently.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l
		}

		clientCfg = config.LoadClient()
		flags := cmd.Flags()
		if flags.Changed("url") {
			clientCfg.BaseURL = apiURL
		}
		if flags.Changed("token") {
			clientCfg.Token = apiToken
		}
		if flags.Changed("timeout") {
			clientCfg.Timeout = timeout
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "Notes server base URL (default $NOTES_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (default $NOTES_API_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func newClient() (*notesclient.Client, error) {
	return notesclient.New(notesclient.Options{
		BaseURL: clientCfg.BaseURL,
		Token:   clientCfg.Token,
		Timeout: clientCfg.Timeout,
	})
}

func newRenderer(cmd *cobra.Command) *render.Renderer {
	if noColor {
		return render.New(cmd.OutOrStdout(), render.WithoutColor())
	}
	return render.New(cmd.OutOrStdout())
}

// newMachine builds a session machine whose notices go to stderr.
func newMachine(cmd *cobra.Command, opts ...session.Option) (*session.Machine, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}

	notices := render.New(cmd.ErrOrStderr(), render.WithoutColor())
	if !noColor {
		notices = render.New(cmd.ErrOrStderr())
	}

	opts = append([]session.Option{
		session.WithLogger(logger),
		session.WithNotifier(session.NotifyFunc(func(n session.Notice) {
			_ = notices.Notice(n)
		})),
	}, opts...)
	return session.NewMachine(client, opts...), nil
}
