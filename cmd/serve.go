package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Leochin1206/GeraApp/internal/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var servePort int
var requireAuth bool
var bindAll bool
var useTailscale bool
var tailscaleIP string

func detectTailscaleIP() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return ""
	}

	for _, iface := range interfaces {
		if !strings.Contains(strings.ToLower(iface.Name), "tailscale") {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok {
				ip := ipnet.IP
				if ip.To4() != nil && !ip.IsLoopback() {
					return ip.String()
				}
			}
		}
	}

	return ""
}

func resolveBindHost() string {
	switch {
	case bindAll:
		return "0.0.0.0"
	case useTailscale:
		if tailscaleIP != "" {
			return tailscaleIP
		}
		if detected := detectTailscaleIP(); detected != "" {
			logger.WithField("ip", detected).Info("detected Tailscale interface")
			return detected
		}
		logger.Warn("Tailscale interface not detected, use --tailscale-ip to specify it; binding to 127.0.0.1")
		return "127.0.0.1"
	default:
		return "127.0.0.1"
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		var tokens []string
		if requireAuth || bindAll || useTailscale {
			tokens = cfg.AuthTokens
			if len(tokens) == 0 {
				return fmt.Errorf("external access requires authentication; set GERAAPP_AUTH_TOKENS or use 'geraapp token generate --save'")
			}
		}

		svc, closeDB, err := newDashboardService()
		if err != nil {
			return err
		}
		defer closeDB()

		accessLog := logger.WriterLevel(logrus.InfoLevel)
		defer accessLog.Close()

		server := web.NewServer(svc, tokens, accessLog, logger)

		addr := fmt.Sprintf("%s:%d", resolveBindHost(), servePort)
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", addr)
		if len(tokens) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Authentication enabled with %d token(s)\n", len(tokens))
			fmt.Fprintln(cmd.OutOrStdout(), "External requests require X-Auth-Token header or token query parameter")
		}

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&requireAuth, "auth", false, "Require token authentication (reads from GERAAPP_AUTH_TOKENS env or ~/.geraapp/serve_tokens)")
	serveCmd.Flags().BoolVar(&bindAll, "bind-all", false, "Bind to all interfaces (0.0.0.0) - requires auth token")
	serveCmd.Flags().BoolVar(&useTailscale, "tailscale", false, "Bind to Tailscale interface")
	serveCmd.Flags().StringVar(&tailscaleIP, "tailscale-ip", "", "Tailscale IP address (auto-detected if not specified)")
	rootCmd.AddCommand(serveCmd)
}
