package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tantaind/videodigest/internal/output"
	"github.com/tantaind/videodigest/internal/transcript"
	"github.com/tantaind/videodigest/internal/watcher"
)

func newWatchCmd(configPath *string) *cobra.Command {
	var (
		style  string
		asDocx bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory and digest every new media file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			if a.cfg.Paths.Input == "" {
				return fmt.Errorf("watch mode needs paths.input in the config")
			}
			if err := os.MkdirAll(a.cfg.Paths.Input, 0755); err != nil {
				return err
			}

			format := output.FormatMarkdown
			if asDocx {
				format = output.FormatDocx
			}

			handler := func(ctx context.Context, filePath string) error {
				ref := transcript.SourceRef{
					Kind:     transcript.KindLocalFile,
					Locator:  filePath,
					Language: a.cfg.Transcription.Language,
				}
				doc, err := a.runner.Run(ctx, ref, a.cfg.Job(style, false))
				if err != nil {
					return err
				}
				_, err = a.writer.Write(ctx, doc, a.cfg.Paths.Output, format)
				return err
			}

			w, err := watcher.New(a.cfg.Paths.Input, handler, a.log, a.cfg.Processing.MaxParallelCalls)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			errChan := make(chan error, 1)
			go func() {
				errChan <- w.Start(ctx)
			}()

			a.log.Info(ctx, "Watching %s, writing digests to %s", a.cfg.Paths.Input, a.cfg.Paths.Output)

			select {
			case sig := <-sigChan:
				a.log.Info(ctx, "Received %v, shutting down...", sig)
				cancel()
				// Start drains in-flight handlers before returning.
				<-errChan
				return nil
			case err := <-errChan:
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "digest style for every file")
	cmd.Flags().BoolVar(&asDocx, "docx", false, "write .docx files instead of markdown")
	return cmd
}
