package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dogdash/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and levels",
	Long:  `Shows the registered game modes and the fixed courses of the levels mode.`,
	RunE:  runList,
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e8a43a")).Padding(0, 1)

func listTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func runList(_ *cobra.Command, _ []string) error {
	modes := listTable("Mode", "Title")
	for _, g := range registry.List() {
		modes.Row(g.ID, g.Title)
	}
	fmt.Println(modes)

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	if levels := loadLevels(logger); len(levels) > 0 {
		courses := listTable("Level", "Name", "Columns")
		for _, l := range levels {
			courses.Row(l.ID, l.Name, strconv.Itoa(len([]rune(l.Layout))))
		}
		fmt.Println(courses)
	}

	fmt.Println("Run 'dogdash play' or 'dogdash play --level <id>' to start.")
	return nil
}
