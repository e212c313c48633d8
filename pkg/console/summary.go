package console

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/systemstart/eject-blocks/pkg/api"
)

const logo = `  ______ _           _     ____  _            _
 |  ____(_)         | |   |  _ \| |          | |
 | |__   _  ___  ___| |_  | |_) | | ___   ___| | _____
 |  __| | |/ _ \/ __| __| |  _ <| |/ _ \ / __| |/ / __|
 | |____| |  __/ (__| |_  | |_) | | (_) | (__|   <\__ \
 |______| |\___|\___|\__| |____/|_|\___/ \___|_|\_\___/
       _/ |
      |__/`

var (
	logoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true)

	sizePrinter = message.NewPrinter(language.English)
)

// Logo prints the banner followed by the version.
func (c *Console) Logo(version string) {
	_, _ = fmt.Fprintf(c.out, "%s%s\n\n", logoStyle.Render(logo), versionStyle.Render("                                      "+version))
}

// FormatSize renders a size in KiB with two decimals and grouped thousands.
func FormatSize(kib float64) string {
	return sizePrinter.Sprintf("%.2f KiB", kib)
}

// Summary prints the table of ejected files and the double-enqueue note.
func (c *Console) Summary(path, pluginName, themeName string, files []api.FileReport) error {
	rows := pterm.TableData{{"File", "Size", "Type"}}
	for _, f := range files {
		rows = append(rows, []string{f.Name, FormatSize(f.SizeKiB), f.Type})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return fmt.Errorf("rendering summary table: %w", err)
	}

	c.Line("")
	c.Line("%s", pterm.Bold.Sprint("Your blocks have been ejected."))
	c.Line("✨  The following files have been created in %s:", infoStyle.Sprint(path))
	c.Line("")
	c.Line("%s", table)
	c.Line("")
	c.Line("⚠️  %s %s will not enqueue assets if it detects the same assets are being ran by %s.",
		pterm.Bold.Sprint("Please Note:"), infoStyle.Sprint(pluginName), infoStyle.Sprint(themeName))
	return nil
}
