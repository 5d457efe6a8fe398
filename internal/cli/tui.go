package cli

import (
	"fmt"
	"os"

	"github.com/nconklindev/gridloc/internal/converter"
	"github.com/nconklindev/gridloc/internal/logger"
	"github.com/nconklindev/gridloc/internal/metrics"
	"github.com/nconklindev/gridloc/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (a *app) runTUI(cmd *cobra.Command) error {
	log := a.logger(cmd)

	info, err := os.Stat(a.flags.inputDir)
	if err != nil || !info.IsDir() {
		return a.fail(log, fmt.Errorf("%w: %s", converter.ErrInputDirMissing, a.flags.inputDir))
	}

	recorder := metrics.New()
	model := ui.InitialModel(ui.Options{
		InputDir:   a.flags.inputDir,
		Extensions: a.cfg.Extensions,
		Convert: converter.Options{
			OutputFile:    a.flags.output,
			VersionFile:   a.flags.versionFile,
			Sheet:         a.flags.sheet,
			Columns:       converter.DefaultColumns,
			NormalizeText: a.cfg.NormalizeText,
			// The alt screen owns the terminal while the program runs.
			Logger:  logger.Nop(),
			Metrics: recorder,
		},
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(ui.Model)
	if !ok {
		return nil
	}
	if err := m.Err(); err != nil {
		return a.fail(log, err)
	}
	if result := m.Result(); result != nil {
		if a.flags.metricsFile != "" {
			if err := recorder.WriteTextfile(a.flags.metricsFile); err != nil {
				return a.fail(log, fmt.Errorf("write metrics %s: %w", a.flags.metricsFile, err))
			}
		}
		log.Info().Str("version", result.Version).Int("records", result.Records).Int("skipped", result.Skipped).Msg("conversion completed")
	}
	return nil
}
