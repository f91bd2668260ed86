package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ntt-parser/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.load(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				e.cfg.Server.Addr = addr
			}

			st, err := e.openStore()
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(e.cfg, e.log, st).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
