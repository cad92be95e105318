/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package report

import (
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/timelinize/lochist/history"
)

// Glyph returns the one-character symbol for an activity type
// used in calendar strips and the legend.
func Glyph(t history.ActivityType) string {
	if g, ok := glyphs[t]; ok {
		return g
	}
	return glyphs[history.Unknown]
}

var glyphs = map[history.ActivityType]string{
	history.Unknown:        "?",
	history.InVehicle:      "V",
	history.ExitingVehicle: "X",
	history.OnBicycle:      "B",
	history.OnFoot:         "F",
	history.Running:        "R",
	history.Still:          ".",
	history.Tilting:        "~",
	history.Walking:        "W",
}

// WriteCalendar writes the daily summaries as a calendar: a heading for
// each month, a line for each ISO week, and under it a line per day with
// the day's activity strip.
func WriteCalendar(w io.Writer, days []history.DaySummary) error {
	return calendarTemplate.Execute(w, calendarMonths(days))
}

// WriteLegend writes the activity labels in two columns, each with its glyph.
func WriteLegend(w io.Writer, labels []string) error {
	return legendTemplate.Execute(w, labels)
}

type monthView struct {
	Year  int
	Month time.Month
	Weeks []weekView
}

type weekView struct {
	Number int
	Days   []history.DaySummary
}

func calendarMonths(days []history.DaySummary) []monthView {
	var months []monthView
	for _, day := range days {
		y, m, _ := day.Date.Date()
		if len(months) == 0 || months[len(months)-1].Year != y || months[len(months)-1].Month != m {
			months = append(months, monthView{Year: y, Month: m})
		}
		month := &months[len(months)-1]

		_, week := day.Date.ISOWeek()
		if len(month.Weeks) == 0 || month.Weeks[len(month.Weeks)-1].Number != week {
			month.Weeks = append(month.Weeks, weekView{Number: week})
		}
		wk := &month.Weeks[len(month.Weeks)-1]
		wk.Days = append(wk.Days, day)
	}
	return months
}

func strip(seq []history.ActivityType) string {
	var sb strings.Builder
	for _, t := range seq {
		sb.WriteString(Glyph(t))
	}
	return sb.String()
}

func newTemplate(name, text string) *template.Template {
	tpl := template.New(name).Option("missingkey=zero")
	tpl.Funcs(sprig.TxtFuncMap())
	tpl.Funcs(template.FuncMap{
		"strip": strip,
		"glyph": func(label string) string { return Glyph(history.ParseActivityType(label)) },
	})
	return template.Must(tpl.Parse(text))
}

var calendarTemplate = newTemplate("calendar", `
{{- range .}}
{{.Year}} {{.Month.String | upper}}
{{- range .Weeks}}
{{printf "%6s %02d" "W" .Number}}
{{- range .Days}}
{{printf "%10s" .Date.Weekday.String}} {{strip .Sequence}}
{{- end}}
{{- end}}
{{end}}`)

var legendTemplate = newTemplate("legend", `LEGEND
{{- range $i, $label := .}}
{{- if eq (mod $i 2) 0}}
{{else}}  {{end}}
{{- glyph $label}} {{printf "%-20s" $label}}
{{- end}}
`)
