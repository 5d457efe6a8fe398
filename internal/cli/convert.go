package cli

import (
	"fmt"

	"github.com/nconklindev/gridloc/internal/converter"
	"github.com/nconklindev/gridloc/internal/logger"
	"github.com/nconklindev/gridloc/internal/metrics"
	"github.com/nconklindev/gridloc/internal/ui"

	"github.com/spf13/cobra"
)

func (a *app) runConvert(cmd *cobra.Command) error {
	log := a.logger(cmd)

	input := a.flags.input
	if input == "" {
		found, err := converter.FindLatestInput(a.flags.inputDir, a.cfg.Extensions)
		if err != nil {
			return a.fail(log, fmt.Errorf("discover: %w", err))
		}
		input = found
		log.Info().Str("dir", a.flags.inputDir).Str("file", input).Msg("input spreadsheet discovered")
	}

	recorder := metrics.New()
	result, err := converter.Convert(converter.Options{
		InputFile:     input,
		OutputFile:    a.flags.output,
		VersionFile:   a.flags.versionFile,
		Sheet:         a.flags.sheet,
		Columns:       converter.DefaultColumns,
		NormalizeText: a.cfg.NormalizeText,
		SkipLogLimit:  a.cfg.SkipLogLimit,
		Logger:        logger.Named(log, "converter"),
		Metrics:       recorder,
	})
	if err != nil {
		return a.fail(log, err)
	}

	if a.flags.metricsFile != "" {
		if err := recorder.WriteTextfile(a.flags.metricsFile); err != nil {
			return a.fail(log, fmt.Errorf("write metrics %s: %w", a.flags.metricsFile, err))
		}
		log.Debug().Str("file", a.flags.metricsFile).Msg("metrics written")
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("✓ Conversion completed!"))
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary(result, 80))
	return nil
}
