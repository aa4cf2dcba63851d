package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"go-seaport/service"
)

// handleSignals restores a Portfile left patched by an interrupted update.
// The returned function stops the handler.
func handleSignals(svc *service.Service) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, unix.SIGTERM, unix.SIGHUP)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			fmt.Fprintf(os.Stderr, "\nReceived signal %v, cleaning up...\n", sig)
			if err := svc.RestoreActive(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to restore Portfile: %v\n", err)
			}
			svc.Close()
			os.Exit(1)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
