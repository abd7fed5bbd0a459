package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/pedigree"
)

// individualsCommand creates the individuals command.
func (c *CLI) individualsCommand() *cobra.Command {
	var (
		filter  string
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:     "individuals [file.ged]",
		Aliases: []string{"ls"},
		Short:   "List the individuals of a GEDCOM file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIndividuals(cmd.Context(), args[0], filter, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only list names or ids containing this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runIndividuals(ctx context.Context, input, filter string, asJSON, noCache bool) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	list, err := runner.Individuals(ctx, data)
	if err != nil {
		return err
	}
	list = filterIndividuals(list, filter)

	if asJSON {
		out, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	}

	fmt.Fprintln(stdout, individualsTable(list))
	printDetail("%d individuals", len(list))
	return nil
}

// filterIndividuals keeps individuals whose id or name contains query,
// ignoring case.
func filterIndividuals(list []pedigree.Individual, query string) []pedigree.Individual {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	var out []pedigree.Individual
	for _, ind := range list {
		if strings.Contains(strings.ToLower(ind.ID+" "+fullName(ind)), query) {
			out = append(out, ind)
		}
	}
	return out
}

func fullName(ind pedigree.Individual) string {
	return strings.TrimSpace(ind.GivenName + " " + ind.FamilyName)
}

func individualRow(ind pedigree.Individual) []string {
	return []string{ind.ID, fullName(ind), ind.Sex.String(), ind.Birth.Date.Display, ind.Death.Date.Display}
}

// individualsTable renders list as a bordered table.
func individualsTable(list []pedigree.Individual) string {
	rows := make([][]string, len(list))
	for i, ind := range list {
		rows[i] = individualRow(ind)
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Sex", "Born", "Died").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 2 && row < len(rows):
				return lipgloss.NewStyle().Foreground(sexColor(rows[row][2]))
			case col >= 3:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
