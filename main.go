package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nstehr/blitz/blitz-core/agent"
	"github.com/nstehr/blitz/blitz-core/config"
	"github.com/nstehr/blitz/blitz-core/ipc"
	"github.com/nstehr/blitz/blitz-core/rules"
)

const banner = `
██████╗ ██╗     ██╗████████╗███████╗
██╔══██╗██║     ██║╚══██╔══╝╚══███╔╝
██████╔╝██║     ██║   ██║     ███╔╝
██╔══██╗██║     ██║   ██║    ███╔╝
██████╔╝███████╗██║   ██║   ███████╗
╚═════╝ ╚══════╝╚═╝   ╚═╝   ╚══════╝

Rule-Driven Mining Crew`

func main() {
	socketPath := flag.String("socket", "/tmp/blitz.sock", "unix socket the game runner connects to")
	tuningPath := flag.String("tuning", "", "YAML tuning file (defaults apply when empty)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "bad -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	if err := run(*socketPath, *tuningPath); err != nil {
		slog.Error("blitz exited", "error", err)
		os.Exit(1)
	}
}

func run(socketPath, tuningPath string) error {
	tuning := config.Default()
	if tuningPath != "" {
		t, err := config.Load(tuningPath)
		if err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		tuning = t
	}
	slog.Info("starting blitz", "tuning", tuningPath, "corridor_prefix", tuning.CorridorPrefix, "enemy_base_buffer", tuning.EnemyBaseBuffer)

	engine, err := rules.NewEngine(rules.CompileRoles(tuning), tuning)
	if err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		return fmt.Errorf("clean up socket %s: %w", socketPath, err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		return listener.Close()
	})
	if tuningPath != "" {
		eg.Go(func() error {
			reloadOnHangup(ctx, tuningPath, engine)
			return nil
		})
	}
	eg.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
			eg.Go(func() error {
				handleConn(ctx, conn, engine)
				return nil
			})
		}
	})

	return eg.Wait()
}

// reloadOnHangup re-reads the tuning file on every SIGHUP. A bad file is
// logged and the running tuning stays in place.
func reloadOnHangup(ctx context.Context, path string, engine *rules.Engine) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			t, err := config.Load(path)
			if err != nil {
				slog.Error("tuning reload failed", "path", path, "error", err)
				continue
			}
			if err := engine.Retune(t); err != nil {
				slog.Error("tuning reload rejected", "path", path, "error", err)
			}
		}
	}
}

func handleConn(ctx context.Context, conn net.Conn, engine *rules.Engine) {
	c := ipc.NewConnection(conn, nil)
	slog.Info("new connection accepted", "conn", c.ID)

	release := context.AfterFunc(ctx, func() { c.Close() })
	defer release()

	a := agent.New(c, engine)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeTurn, a.HandleTurn)
	c.ReadLoop()
}
