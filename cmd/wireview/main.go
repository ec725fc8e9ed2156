package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/wiremaze/internal/logger"
	"github.com/lawnchairsociety/wiremaze/internal/watch"
)

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "WebSocket address of a wiremaze -watch server")
	origin := flag.String("origin", "", "Origin header to send (default: none)")
	loggingConfig := flag.String("logging", "logging.yaml", "Path to logging config YAML file")
	clearScreen := flag.Bool("clear", true, "Clear the screen before each frame")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	viewer, err := watch.DialViewer(*url, *origin)
	if err != nil {
		logger.Error("Failed to connect to watch server", "url", *url, "error", err)
		os.Exit(1)
	}
	defer viewer.Close()
	logger.Info("Connected to watch server", "url", *url)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	for {
		select {
		case <-viewer.Updated():
			if *clearScreen {
				out.WriteString("\033[2J\033[H")
			}
			out.WriteString(viewer.LastFrame())
			out.Flush()
		case <-viewer.Done():
			select {
			case <-viewer.Updated():
				out.WriteString(viewer.LastFrame())
				out.Flush()
			default:
			}
			if err := viewer.Err(); err != nil && !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Error("Watch connection lost", "error", err)
				os.Exit(1)
			}
			logger.Info("Watch server closed the stream", "frames", len(viewer.Frames()))
			return
		case <-ctx.Done():
			return
		}
	}
}
