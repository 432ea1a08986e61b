package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tantaind/videodigest/internal/output"
	"github.com/tantaind/videodigest/internal/transcript"
)

func newRunCmd(configPath *string) *cobra.Command {
	var (
		style         string
		kind          string
		language      string
		outDir        string
		forceDownload bool
		asDocx        bool
	)

	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Digest a single video, audio file, or URL",
		Long: "Digest one source: a YouTube URL, a direct video URL, a Google Drive\n" +
			"or Dropbox share link, or a local media file path.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*configPath)
			if err != nil {
				return err
			}

			locator := args[0]
			ref := transcript.SourceRef{
				Kind:     transcript.SourceKind(kind),
				Locator:  locator,
				Language: language,
			}
			if kind == "" {
				ref.Kind = transcript.DetectKind(locator)
			}
			if language == "" {
				ref.Language = a.cfg.Transcription.Language
			}

			jobCfg := a.cfg.Job(style, forceDownload)
			doc, err := a.runner.Run(cmd.Context(), ref, jobCfg)
			if err != nil {
				return err
			}

			format := output.FormatMarkdown
			if asDocx {
				format = output.FormatDocx
			}
			dir := outDir
			if dir == "" {
				dir = a.cfg.Paths.Output
			}
			path, err := a.writer.Write(cmd.Context(), doc, dir, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "digest style (see 'videodigest styles')")
	cmd.Flags().StringVar(&kind, "kind", "", "force the source kind instead of detecting it")
	cmd.Flags().StringVarP(&language, "language", "l", "", "transcript language (default from config)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&forceDownload, "force-download", false, "skip captions and always transcribe the audio")
	cmd.Flags().BoolVar(&asDocx, "docx", false, "write a .docx file instead of markdown")
	return cmd
}
