package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/roster/internal/domain/types"
)

// printer handles table or JSON output.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) *printer {
	return &printer{format: format, w: w}
}

// json marshals v as indented JSON.
func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes rows using tabwriter. header is the first row.
func (p *printer) table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// kv prints a key-value detail view.
func (p *printer) kv(pairs [][2]string) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, pair := range pairs {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", pair[0], pair[1])
	}
	_ = tw.Flush()
}

func playerRow(v types.PlayerView) []string {
	return []string{
		strconv.Itoa(v.ID),
		v.Name,
		v.DateOfBirth.String(),
		strconv.Itoa(v.Age),
		strings.Join(v.Leagues, ", "),
		string(v.Status),
		formatHeight(v.Height),
		string(v.Position),
	}
}

var playerHeader = []string{"ID", "NAME", "BORN", "AGE", "LEAGUES", "STATUS", "HEIGHT", "POSITION"}

func playerPairs(v types.PlayerView) [][2]string {
	return [][2]string{
		{"ID", strconv.Itoa(v.ID)},
		{"Name", v.Name},
		{"Born", v.DateOfBirth.String()},
		{"Age", strconv.Itoa(v.Age)},
		{"Leagues", strings.Join(v.Leagues, ", ")},
		{"Status", string(v.Status)},
		{"Height", formatHeight(v.Height)},
		{"Position", string(v.Position)},
	}
}

func formatHeight(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64) + " m"
}
