package renderer

import (
	"bytes"
	"fmt"

	"github.com/hfreitas/agendah"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the weekly KPI snapshot for the terminal.
func SummaryMarkdown(sum *agendah.WeeklySummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Resumo da semana")
	doc.PlainText(fmt.Sprintf("Período %s", sum.Window))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Indicador", "Valor"},
		Rows: [][]string{
			{"Âncoras registradas", fmt.Sprint(sum.AnchorCount)},
			{"Dias com registro", fmt.Sprint(sum.ActiveDays)},
			{"Arquivos anexados", fmt.Sprint(sum.FileCount)},
		},
	})

	doc.PlainText(sum.Hint)
	return doc.String()
}

// MonthMarkdown renders the month aggregation: one row per day that has an
// Entry, with its presence badges.
func MonthMarkdown(m *agendah.MonthSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(m.Title)
	if len(m.Days) == 0 {
		doc.PlainText("Sem registros neste mês.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignCenter, md.AlignCenter, md.AlignCenter, md.AlignCenter,
		},
		Header: []string{"Dia", "Âncora", "Tarefas", "Notas", "Arquivos"},
	}
	for _, d := range m.Days {
		table.Rows = append(table.Rows, []string{
			d.Date.String(),
			badge(d.HasAnchor),
			badge(d.HasTasks),
			badge(d.HasNotes),
			badge(d.HasFiles),
		})
	}
	doc.Table(table)
	return doc.String()
}

func badge(on bool) string {
	if on {
		return "●"
	}
	return ""
}

// DayMarkdown renders one day's full view: entry sections, attachments and
// cashbook. A nil entry renders the blank-day skeleton.
func DayMarkdown(day agendah.Date, e *agendah.Entry, atts []agendah.Attachment, cash []agendah.CashItem) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(day.LongLabel())

	doc.H2("Âncora")
	if e != nil && e.Anchor != "" {
		doc.PlainText(e.Anchor)
	} else {
		doc.PlainText("(sem âncora)")
	}

	doc.H2("Complementos")
	boxes := []md.CheckBoxSet{}
	if e != nil {
		for _, t := range e.Tasks {
			boxes = append(boxes, md.CheckBoxSet{Checked: t.Done, Text: t.Text})
		}
	}
	if len(boxes) == 0 {
		doc.PlainText("(sem tarefas)")
	} else {
		doc.CheckBox(boxes)
	}

	doc.H2("Notas")
	if e != nil && e.Notes != "" {
		doc.PlainText(e.Notes)
	} else {
		doc.PlainText("(sem notas)")
	}

	doc.H2("Arquivos")
	if len(atts) == 0 {
		doc.PlainText("Sem arquivos neste dia ainda.")
	} else {
		files := []string{}
		for _, a := range atts {
			files = append(files, fmt.Sprintf("%s (%s, %d bytes)", a.Name, a.Type, a.Size))
		}
		doc.BulletList(files...)
	}

	doc.H2("Livro-caixa")
	if len(cash) == 0 {
		doc.PlainText("Sem lançamentos neste dia.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Hora", "Descrição", "Entrada", "Saída"},
		}
		for _, c := range cash {
			desc := c.Desc
			if desc == "" {
				desc = "(sem descrição)"
			}
			table.Rows = append(table.Rows, []string{c.TimeOfDay(), desc, c.InVal.String(), c.OutVal.String()})
		}
		doc.Table(table)
	}

	if e != nil && len(e.Tags) > 0 {
		doc.PlainText("Tags: " + hashTags(e.Tags))
	}
	return doc.String()
}
