package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tantaind/videodigest/internal/captions"
	"github.com/tantaind/videodigest/internal/completion"
	"github.com/tantaind/videodigest/internal/config"
	"github.com/tantaind/videodigest/internal/dispatch"
	"github.com/tantaind/videodigest/internal/download"
	"github.com/tantaind/videodigest/internal/job"
	"github.com/tantaind/videodigest/internal/logger"
	"github.com/tantaind/videodigest/internal/output"
	"github.com/tantaind/videodigest/internal/prompts"
	"github.com/tantaind/videodigest/internal/source"
	"github.com/tantaind/videodigest/internal/transcribe"
	"github.com/tantaind/videodigest/pkg/executor"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "videodigest",
		Short:         "Turn videos and audio into structured text digests",
		Long:          "videodigest acquires a transcript for a video or audio source\n(captions, or download plus speech-to-text) and condenses it with\nparallel LLM calls into a single document.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	cmd.AddCommand(newRunCmd(&configPath))
	cmd.AddCommand(newWatchCmd(&configPath))
	cmd.AddCommand(newStylesCmd(&configPath))
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// app is the fully wired pipeline plus the pieces commands need directly.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	runner job.Runner
	store  prompts.Store
	writer output.Writer
}

func buildApp(configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level)

	store, err := prompts.New(cfg.Prompts.File)
	if err != nil {
		return nil, err
	}

	client, err := buildCompletionClient(cfg, log)
	if err != nil {
		return nil, err
	}

	exec := executor.New()
	downloader := download.New(cfg.Download, exec, log)

	transcribers := map[config.TranscriptionMode]source.Transcriber{
		config.ModeCloudRemote: transcribe.NewGroq(os.Getenv(cfg.Transcription.GroqAPIKeyEnv), log),
		config.ModeLocalOnDevice: transcribe.NewWhisper(
			cfg.Transcription.WhisperBinary,
			cfg.Transcription.WhisperModel,
			cfg.Transcription.Language,
			exec,
			log,
		),
	}

	resolver := source.New(captions.New(log), downloader, transcribers, log)
	runner := job.New(resolver, dispatch.New(client, log), store, log)

	return &app{
		cfg:    cfg,
		log:    log,
		runner: runner,
		store:  store,
		writer: output.New(log),
	}, nil
}

func buildCompletionClient(cfg *config.Config, log logger.Logger) (completion.Client, error) {
	switch cfg.Provider.Backend {
	case "gemini":
		keys, err := cfg.Provider.ResolveAPIKeys()
		if err != nil {
			return nil, err
		}
		return completion.NewGemini(keys, cfg.Provider.Model, log)
	default:
		key, err := cfg.Provider.ResolveAPIKey()
		if err != nil {
			return nil, err
		}
		return completion.NewOpenAI(completion.ProviderConfig{
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  key,
			Model:   cfg.Provider.Model,
		}, log)
	}
}

func newStylesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available digest styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := prompts.New(cfg.Prompts.File)
			if err != nil {
				return err
			}
			for _, name := range store.Names() {
				marker := "  "
				if name == cfg.Prompts.DefaultStyle {
					marker = "* "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, name)
			}
			return nil
		},
	}
}
