package app

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/ui/output"
	"go.trai.ch/featcalc/internal/ui/style"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// missingCell is shown for values that could not be calculated.
const missingCell = "-"

type yamlTable struct {
	Columns []string  `yaml:"columns"`
	Rows    []yamlRow `yaml:"rows"`
}

type yamlRow struct {
	Name   string     `yaml:"name"`
	Values []*float64 `yaml:"values,flow"`
}

func render(w io.Writer, result *Result, format string) error {
	switch format {
	case FormatYAML:
		return renderYAML(w, result)
	case FormatTable:
		return renderTable(w, result)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "failed to render results"), "format", format)
	}
}

func renderTable(w io.Writer, result *Result) error {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(output.ColorProfile())
	header := renderer.NewStyle().Bold(true).Foreground(style.Iris).Padding(0, 1)
	cell := renderer.NewStyle().Padding(0, 1)
	missing := cell.Foreground(style.Slate)

	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Name)
		for _, v := range row.Values {
			cells = append(cells, formatValue(v))
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(renderer.NewStyle().Foreground(style.Slate)).
		Headers(append([]string{"input"}, result.Columns...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col > 0 && rows[row][col] == missingCell:
				return missing
			default:
				return cell
			}
		})

	_, err := io.WriteString(w, t.String()+"\n")
	return err
}

func renderYAML(w io.Writer, result *Result) error {
	doc := yamlTable{Columns: result.Columns, Rows: make([]yamlRow, len(result.Rows))}
	for i, row := range result.Rows {
		doc.Rows[i] = yamlRow{Name: row.Name, Values: row.Values}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func formatValue(v *float64) string {
	if v == nil {
		return missingCell
	}
	return strconv.FormatFloat(*v, 'g', 6, 64)
}

func renderKinds(w io.Writer, rows [][]string) error {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(output.ColorProfile())
	header := renderer.NewStyle().Bold(true).Foreground(style.Iris).PaddingRight(2)
	cell := renderer.NewStyle().PaddingRight(2)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("KIND", "INPUT", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	_, err := io.WriteString(w, t.String()+"\n")
	return err
}
