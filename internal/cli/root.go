package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/evdal/timeliste/internal/store"
	"github.com/evdal/timeliste/internal/tui"
)

// App holds the shared dependencies for CLI commands.
type App struct {
	Store *store.Store
}

// NewRootCmd creates the top-level "timeliste" command and registers
// all subcommands against the provided App. Running it without a
// subcommand launches the interactive interface.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timeliste",
		Short: "Time tracking with a calendar-aware activity view",
		RunE: func(cmd *cobra.Command, args []string) error {
			program := tea.NewProgram(tui.NewApp(app.Store), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}

	root.AddCommand(
		newReportCmd(app),
		newExportCmd(app),
	)

	return root
}
