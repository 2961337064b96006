package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const tablePadding = 2

// table is a column-aligned listing. Separator lines are printed before the
// row they are keyed by and do not affect column widths.
type table struct {
	headers    []string
	rows       [][]string
	separators map[int]string
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// separate prints line before the next row added.
func (t *table) separate(line string) {
	if t.separators == nil {
		t.separators = make(map[int]string)
	}
	t.separators[len(t.rows)] = line
}

func (t *table) write(out io.Writer) error {
	colCount := len(t.headers)
	for _, row := range t.rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	measure := func(row []string) {
		for idx, cell := range row {
			if w := runewidth.StringWidth(stripANSI(cell)); w > widths[idx] {
				widths[idx] = w
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	writer := bufio.NewWriter(out)
	var writeErr error
	writeString := func(value string) {
		if writeErr != nil {
			return
		}
		_, writeErr = writer.WriteString(value)
	}
	writeRow := func(row []string) {
		for idx := 0; idx < colCount; idx++ {
			cell := ""
			if idx < len(row) {
				cell = row[idx]
			}
			writeString(cell)
			if idx < colCount-1 {
				padding := max(widths[idx]-runewidth.StringWidth(stripANSI(cell)), 0)
				writeString(strings.Repeat(" ", padding+tablePadding))
			}
		}
		writeString("\n")
	}

	if len(t.headers) > 0 {
		writeRow(t.headers)
	}
	for idx, row := range t.rows {
		if line, ok := t.separators[idx]; ok {
			writeString(line + "\n")
		}
		writeRow(row)
	}
	if writeErr != nil {
		return writeErr
	}
	return writer.Flush()
}

var (
	yesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	noStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func formatYesNo(value bool) string {
	if value {
		return yesStyle.Render("yes")
	}
	return noStyle.Render("no")
}

func stripANSI(value string) string {
	if value == "" {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != 0x1b || i+1 >= len(value) || value[i+1] != '[' {
			b.WriteByte(value[i])
			continue
		}
		i += 2
		for i < len(value) {
			ch := value[i]
			if ch >= 0x40 && ch <= 0x7e {
				break
			}
			i++
		}
	}
	return b.String()
}
