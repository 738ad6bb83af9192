package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/hfreitas/agendah"
)

func testReport() *agendah.JournalReport {
	return &agendah.JournalReport{
		Title:       "Agenda AH",
		Period:      agendah.MonthRange(2025, time.August),
		AnchorCount: 1,
		ActiveDays:  2,
		FileCount:   1,
		Keywords: []agendah.Keyword{
			{Word: "projeto", Count: 3},
			{Word: "reunião", Count: 2},
		},
		Days: []agendah.DayPage{{
			Date:   agendah.MustParseDate("2025-08-05"),
			Label:  "Terça-feira, 5 de agosto de 2025",
			Anchor: "fechar proposta",
			Tasks:  []agendah.Task{{Text: "ligar", Done: true}, {Text: "enviar"}},
			Notes:  "reunião **importante**",
			Thumbs: []agendah.Thumb{
				{Name: "foto.jpg", DataURL: "data:image/jpeg;base64,AAAA"},
				{Name: "recibo.pdf", Kind: "PDF"},
			},
			Cash: []agendah.CashRow{{Time: "09:15", Desc: "café", In: "", Out: "R$ 8,50"}},
			Tags: []string{"trabalho", "cliente"},
		}},
		GeneratedAt: time.Date(2025, 8, 29, 10, 30, 0, 0, time.UTC),
	}
}

func TestReportHTML(t *testing.T) {
	html, err := ReportHTML(testReport())
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Relatório • Agenda AH",
		"Período 2025-08-01 → 2025-08-31",
		"projeto • 3x",
		"reunião • 2x",
		"Terça-feira, 5 de agosto de 2025",
		"fechar proposta",
		`<li class="done">ligar</li>`,
		"<strong>importante</strong>", // notes pass through markdown
		`src="data:image/jpeg;base64,AAAA"`,
		`<div class="fileIcon">PDF</div>`,
		"R$ 8,50",
		"Tags: #trabalho #cliente",
		"Gerado em 29/08/2025 10:30:00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report is missing %q", want)
		}
	}

	if n := strings.Count(html, `<section class="page">`); n != 2 {
		t.Errorf("got %d page sections, want cover plus one day page", n)
	}
	if strings.Contains(html, "http://") || strings.Contains(html, "https://") {
		t.Error("the report must be self-contained, no external references")
	}
}

func TestReportHTMLNoKeywords(t *testing.T) {
	r := testReport()
	r.Keywords = nil
	html, err := ReportHTML(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, noKeywordsMsg) {
		t.Error("empty keyword list must show the placeholder message")
	}
}

func TestReportHTMLEscapesContent(t *testing.T) {
	r := testReport()
	r.Days[0].Anchor = "<script>alert(1)</script>"
	r.Days[0].Notes = "<script>alert(2)</script>"
	html, err := ReportHTML(r)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("user content must never reach the document unescaped")
	}
}

func TestSummaryMarkdown(t *testing.T) {
	sum := &agendah.WeeklySummary{
		Window:      agendah.TrailingWeek(agendah.MustParseDate("2025-08-29")),
		AnchorCount: 2,
		ActiveDays:  3,
		FileCount:   5,
		Hint:        "Você está construindo continuidade. O sistema está segurando a memória.",
	}
	out := SummaryMarkdown(sum)
	for _, want := range []string{
		"# Resumo da semana",
		"Âncoras registradas",
		"| 2 |",
		"| 3 |",
		"| 5 |",
		sum.Hint,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in:\n%s", want, out)
		}
	}
}

func TestMonthMarkdown(t *testing.T) {
	m := &agendah.MonthSummary{
		Year:  2025,
		Month: time.August,
		Title: "Agosto de 2025",
		Days: []agendah.DayBadges{
			{Date: agendah.MustParseDate("2025-08-05"), HasAnchor: true, HasNotes: true},
		},
	}
	out := MonthMarkdown(m)
	if !strings.Contains(out, "# Agosto de 2025") {
		t.Errorf("missing title in:\n%s", out)
	}
	if !strings.Contains(out, "2025-08-05") {
		t.Errorf("missing day row in:\n%s", out)
	}

	empty := MonthMarkdown(&agendah.MonthSummary{Title: "Julho de 2025"})
	if !strings.Contains(empty, "Sem registros neste mês.") {
		t.Errorf("missing empty-month message in:\n%s", empty)
	}
}

func TestDayMarkdown(t *testing.T) {
	day := agendah.MustParseDate("2025-08-29")
	e := &agendah.Entry{
		Date:   day,
		Anchor: "fechar proposta",
		Tasks:  []agendah.Task{{Text: "ligar", Done: true}},
		Notes:  "reunião às 10h",
		Tags:   []string{"trabalho"},
	}
	out := DayMarkdown(day, e, nil, nil)
	for _, want := range []string{
		"Sexta-feira, 29 de agosto de 2025",
		"fechar proposta",
		"[x] ligar",
		"reunião às 10h",
		"Sem arquivos neste dia ainda.",
		"Sem lançamentos neste dia.",
		"Tags: #trabalho",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("day view missing %q in:\n%s", want, out)
		}
	}
}

func TestDayMarkdownBlankDay(t *testing.T) {
	out := DayMarkdown(agendah.MustParseDate("2025-08-29"), nil, nil, nil)
	for _, want := range []string{"(sem âncora)", "(sem tarefas)", "(sem notas)"} {
		if !strings.Contains(out, want) {
			t.Errorf("blank day missing %q", want)
		}
	}
}

func TestHashTags(t *testing.T) {
	if got := hashTags([]string{"casa", "trabalho"}); got != "#casa #trabalho" {
		t.Errorf("hashTags() = %q", got)
	}
	if got := hashTags(nil); got != "" {
		t.Errorf("hashTags(nil) = %q", got)
	}
}
