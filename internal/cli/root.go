package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cmdprobe/internal/client"
	"cmdprobe/internal/shared/config"
	"cmdprobe/internal/shared/logger"
)

const iniName = "cmdprobe.ini"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configDir string
		host      string
		port      int
		command   string
	)

	cmd := &cobra.Command{
		Use:           "cmdprobe",
		Short:         "Send one command to a TCP server and print the reply",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			iniPath := filepath.Join(configDir, iniName)

			cfg := config.Default()
			if err := config.LoadIni(cfg, iniPath); err != nil {
				// Use standard fmt before logger is initialized.
				fmt.Fprintf(cmd.ErrOrStderr(), "Fatal: Failed to load config file '%s': %v\n", iniPath, err)
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.ClientConf.Host = host
			}
			if flags.Changed("port") {
				cfg.ClientConf.Port = port
			}
			if flags.Changed("command") {
				cfg.ClientConf.Command = command
			}
			if err := config.Validate(cfg); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Fatal: Invalid configuration: %v\n", err)
				return err
			}

			if err := logger.Init(cfg.LogConf, cmd.ErrOrStderr()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Fatal: Failed to initialize logger: %v\n", err)
				return err
			}

			c, err := client.New(cfg.ClientConf)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to build client.")
				return err
			}

			res, err := c.Exchange(cmd.Context())
			if err != nil {
				logger.Error().Err(err).Str("target", c.Address()).Msg("Exchange failed.")
				return err
			}
			logger.Debug().
				Str("session", res.SessionID).
				Uint64("sent", res.Traffic.Uplink).
				Uint64("received", res.Traffic.Downlink).
				Msg("Exchange complete.")

			fmt.Fprintln(cmd.OutOrStdout(), client.Format(res.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&configDir, "configdir", "configs", "directory containing "+iniName)
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "server host")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "server port")
	cmd.Flags().StringVar(&command, "command", config.DefaultCommand, "command to send, a newline is appended")
	return cmd
}
