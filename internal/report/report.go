// Package report renders analyses as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/lol-coach/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// leftTable is used for tables dominated by free text.
func leftTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// clock formats game seconds as m:ss.
func clock(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

func clockMs(ms int64) string { return clock(int(ms / 1000)) }

// PrintReport writes every section of a report.
func PrintReport(w io.Writer, rep *model.Report) {
	PrintSummary(w, rep)
	PrintCategoryScores(w, rep.CategoryScores, rep.OverallScore)
	PrintErrors(w, rep.Errors)
	PrintTips(w, rep.Tips)
	PrintClips(w, rep.Clips)
	PrintRanking(w, rep.Scores, rep.Ranking, rep.PUUID)
}

// PrintSummary prints a one-line header for the analysis.
func PrintSummary(w io.Writer, rep *model.Report) {
	result := "Loss"
	if rep.Win {
		result = "Win"
	}
	fmt.Fprintf(w, "\nMatch: %s  |  %s (%s)  |  %s  |  %s  |  Score: %d/100  |  Rank: %s\n\n",
		rep.MatchID, rep.Champion, positionLabel(rep.Position), result, clock(rep.DurationSec),
		rep.OverallScore, rankLabel(rep.Ranking, rep.PUUID))
}

// PrintCategoryScores prints the five category scores and their mean.
func PrintCategoryScores(w io.Writer, scores map[model.Category]int, overall int) {
	table := newTable(w)
	header := make([]any, 0, len(model.Categories)+1)
	row := make([]any, 0, len(model.Categories)+1)
	for _, cat := range model.Categories {
		header = append(header, strings.ToUpper(string(cat)))
		row = append(row, strconv.Itoa(scores[cat]))
	}
	header = append(header, "OVERALL")
	row = append(row, strconv.Itoa(overall))
	table.Header(header...)
	table.Append(row...)
	table.Render()
}

// PrintErrors prints detected mistakes in time order.
func PrintErrors(w io.Writer, errs []model.DetectedError) {
	if len(errs) == 0 {
		fmt.Fprintln(w, "No mistakes detected.")
		return
	}
	sorted := append([]model.DetectedError(nil), errs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	table := leftTable(w)
	table.Header("TIME", "TYPE", "SEVERITY", "MISTAKE", "DETAIL")
	for _, e := range sorted {
		table.Append(clock(e.Timestamp), string(e.Type), string(e.Severity), e.Title, e.Description)
	}
	table.Render()
}

// PrintTips prints the selected coaching tips in priority order.
func PrintTips(w io.Writer, tips []model.CoachingTip) {
	if len(tips) == 0 {
		return
	}
	table := leftTable(w)
	table.Header("#", "CATEGORY", "TIP", "RELATED")
	for _, t := range tips {
		table.Append(strconv.Itoa(t.Priority), string(t.Category), t.Title+": "+t.Description,
			strings.Join(t.RelatedErrors, ", "))
	}
	table.Render()
}

// PrintClips prints merged highlight clips.
func PrintClips(w io.Writer, clips []model.Clip) {
	if len(clips) == 0 {
		return
	}
	table := leftTable(w)
	table.Header("START", "END", "LEN", "SEVERITY", "WHAT")
	for _, c := range clips {
		table.Append(clockMs(c.StartMs), clockMs(c.EndMs), fmt.Sprintf("%ds", c.DurationMs()/1000),
			string(c.Severity), c.Description)
	}
	table.Render()
}

// PrintRanking prints every participant's composite score in the order given
// by ranking; unranked rows go last. The focused player's row is marked
// with ">".
func PrintRanking(w io.Writer, scores []model.PerformanceScore, ranking map[string]int, focusPUUID string) {
	if len(scores) == 0 {
		return
	}
	table := newTable(w)
	table.Header(" ", "RANK", "CHAMPION", "KDA", "DMG", "GOLD", "CS", "VISION", "KP", "SCORE")
	rows := append([]model.PerformanceScore(nil), scores...)
	sort.SliceStable(rows, func(a, b int) bool {
		ra, oka := ranking[rows[a].PUUID]
		rb, okb := ranking[rows[b].PUUID]
		if oka != okb {
			return oka
		}
		return ra < rb
	})
	for _, s := range rows {
		marker := " "
		if s.PUUID == focusPUUID {
			marker = ">"
		}
		score := fmt.Sprintf("%.1f", s.TotalScore)
		if s.WinBonusApplied {
			score += "*"
		}
		table.Append(
			marker,
			strconv.Itoa(ranking[s.PUUID]),
			s.ChampionName,
			fmt.Sprintf("%.0f", s.SubScores.KDA),
			fmt.Sprintf("%.0f", s.SubScores.Damage),
			fmt.Sprintf("%.0f", s.SubScores.Gold),
			fmt.Sprintf("%.0f", s.SubScores.CS),
			fmt.Sprintf("%.0f", s.SubScores.Vision),
			fmt.Sprintf("%.0f", s.SubScores.Participation),
			score,
		)
	}
	table.Render()
}

// PrintAnalysisList prints stored analyses, one per row.
func PrintAnalysisList(w io.Writer, list []model.AnalysisSummary) {
	table := newTable(w)
	table.Header("MATCH", "CHAMPION", "ROLE", "RESULT", "LENGTH", "SCORE", "ERRORS", "ANALYZED")
	for _, s := range list {
		result := "L"
		if s.Win {
			result = "W"
		}
		table.Append(s.MatchID, s.Champion, positionLabel(s.Position), result, clock(s.DurationSec),
			strconv.Itoa(s.OverallScore), strconv.Itoa(s.ErrorCount), s.AnalyzedAt)
	}
	table.Render()
}

// PrintTrendTable prints one row per stored match, oldest first.
func PrintTrendTable(w io.Writer, points []model.TrendPoint) {
	table := newTable(w)
	header := []any{"MATCH", "CHAMPION", "RESULT"}
	for _, cat := range model.Categories {
		header = append(header, strings.ToUpper(string(cat)))
	}
	header = append(header, "OVERALL", "ERRORS")
	table.Header(header...)
	for _, p := range points {
		result := "L"
		if p.Win {
			result = "W"
		}
		row := []any{p.MatchID, p.Champion, result}
		for _, cat := range model.Categories {
			v, ok := p.CategoryScores[cat]
			if !ok {
				row = append(row, "—")
				continue
			}
			row = append(row, strconv.Itoa(v))
		}
		row = append(row, strconv.Itoa(p.OverallScore), strconv.Itoa(p.ErrorCount))
		table.Append(row...)
	}
	table.Render()
}

// PrintErrorTypeCounts prints recurring mistakes, most frequent first.
func PrintErrorTypeCounts(w io.Writer, counts map[model.ErrorType]int, matches int) {
	types := make([]model.ErrorType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	table := newTable(w)
	table.Header("TYPE", "TOTAL", "PER MATCH")
	for _, t := range types {
		perMatch := "—"
		if matches > 0 {
			perMatch = fmt.Sprintf("%.1f", float64(counts[t])/float64(matches))
		}
		table.Append(string(t), strconv.Itoa(counts[t]), perMatch)
	}
	table.Render()
}

// PrintRaw prints an ad-hoc query result.
func PrintRaw(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

func rankLabel(ranking map[string]int, puuid string) string {
	r, ok := ranking[puuid]
	if !ok {
		return "—"
	}
	if r == 1 {
		return "MVP"
	}
	return fmt.Sprintf("%d/%d", r, len(ranking))
}

func positionLabel(pos string) string {
	switch pos {
	case model.PositionMiddle:
		return "MID"
	case model.PositionBottom:
		return "ADC"
	case model.PositionUtility:
		return "SUPPORT"
	case "":
		return "?"
	default:
		return pos
	}
}
