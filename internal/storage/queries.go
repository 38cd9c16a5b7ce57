package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pable/lol-coach/internal/model"
)

const summaryColumns = `match_id, puuid, champion, position, win, duration_sec,
	overall_score, error_count, analyzed_at`

// AnalysisExists reports whether the match was already analyzed for puuid.
func (db *DB) AnalysisExists(matchID, puuid string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM analyses WHERE match_id = ? AND puuid = ?",
		matchID, puuid).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertAnalysis stores a report with its errors and category scores in one
// transaction. Re-inserting the same match and player replaces the old rows.
func (db *DB) InsertAnalysis(rep *model.Report, analyzedAt string) error {
	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO analyses(`+summaryColumns+`, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.MatchID, rep.PUUID, rep.Champion, rep.Position, boolInt(rep.Win), rep.DurationSec,
		rep.OverallScore, len(rep.Errors), analyzedAt, string(body),
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", rep.MatchID, err)
	}
	for _, table := range []string{"analysis_errors", "category_scores"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_id = ? AND puuid = ?", rep.MatchID, rep.PUUID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	errStmt, err := tx.Prepare(`
		INSERT INTO analysis_errors(match_id, puuid, seq, type, severity, timestamp_sec, title, description, suggestion)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer errStmt.Close()
	for i, e := range rep.Errors {
		if _, err := errStmt.Exec(rep.MatchID, rep.PUUID, i, string(e.Type), string(e.Severity),
			e.Timestamp, e.Title, e.Description, e.Suggestion); err != nil {
			return fmt.Errorf("insert analysis_errors: %w", err)
		}
	}

	scoreStmt, err := tx.Prepare(`
		INSERT INTO category_scores(match_id, puuid, category, score) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer scoreStmt.Close()
	for _, cat := range model.Categories {
		score, ok := rep.CategoryScores[cat]
		if !ok {
			continue
		}
		if _, err := scoreStmt.Exec(rep.MatchID, rep.PUUID, string(cat), score); err != nil {
			return fmt.Errorf("insert category_scores: %w", err)
		}
	}
	return tx.Commit()
}

// ListAnalyses returns every stored analysis, newest first.
func (db *DB) ListAnalyses() ([]model.AnalysisSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + summaryColumns + `
		FROM analyses ORDER BY analyzed_at DESC, match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// GetAnalysisByPrefix finds the first analysis whose match id starts with
// prefix, compared literally and case-sensitively. It returns nil, nil when
// nothing matches.
func (db *DB) GetAnalysisByPrefix(prefix string) (*model.AnalysisSummary, error) {
	rows, err := db.conn.Query(`SELECT `+summaryColumns+`
		FROM analyses WHERE substr(match_id, 1, length(?1)) = ?1
		ORDER BY match_id LIMIT 1`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := scanSummaries(rows)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// GetReport loads the full stored report.
func (db *DB) GetReport(matchID, puuid string) (*model.Report, error) {
	var body string
	err := db.conn.QueryRow("SELECT report_json FROM analyses WHERE match_id = ? AND puuid = ?",
		matchID, puuid).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rep model.Report
	if err := json.Unmarshal([]byte(body), &rep); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", matchID, err)
	}
	return &rep, nil
}

// GetAnalysisErrors returns the stored errors of one analysis in report order.
func (db *DB) GetAnalysisErrors(matchID, puuid string) ([]model.DetectedError, error) {
	rows, err := db.conn.Query(`
		SELECT type, severity, timestamp_sec, title, description, suggestion
		FROM analysis_errors WHERE match_id = ? AND puuid = ?
		ORDER BY seq`, matchID, puuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DetectedError
	for rows.Next() {
		var e model.DetectedError
		var typ, sev string
		if err := rows.Scan(&typ, &sev, &e.Timestamp, &e.Title, &e.Description, &e.Suggestion); err != nil {
			return nil, err
		}
		e.Type, e.Severity = model.ErrorType(typ), model.Severity(sev)
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetPlayerTrend returns every analysis of puuid oldest first, each with its
// category scores.
func (db *DB) GetPlayerTrend(puuid string) ([]model.TrendPoint, error) {
	rows, err := db.conn.Query(`SELECT `+summaryColumns+`
		FROM analyses WHERE puuid = ? ORDER BY analyzed_at, match_id`, puuid)
	if err != nil {
		return nil, err
	}
	summaries, err := scanSummaries(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	points := make([]model.TrendPoint, len(summaries))
	index := make(map[string]int, len(summaries))
	for i, s := range summaries {
		points[i] = model.TrendPoint{AnalysisSummary: s, CategoryScores: map[model.Category]int{}}
		index[s.MatchID] = i
	}

	rows, err = db.conn.Query(`SELECT match_id, category, score FROM category_scores WHERE puuid = ?`, puuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var matchID, cat string
		var score int
		if err := rows.Scan(&matchID, &cat, &score); err != nil {
			return nil, err
		}
		if i, ok := index[matchID]; ok {
			points[i].CategoryScores[model.Category(cat)] = score
		}
	}
	return points, rows.Err()
}

// ErrorTypeCounts returns how often each error type was recorded for puuid.
func (db *DB) ErrorTypeCounts(puuid string) (map[model.ErrorType]int, error) {
	rows, err := db.conn.Query(`
		SELECT type, COUNT(*) FROM analysis_errors WHERE puuid = ? GROUP BY type`, puuid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.ErrorType]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		out[model.ErrorType(typ)] = n
	}
	return out, rows.Err()
}

// DeleteAnalysis removes an analysis and its child rows.
func (db *DB) DeleteAnalysis(matchID, puuid string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM analyses WHERE match_id = ? AND puuid = ?", matchID, puuid)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func scanSummaries(rows *sql.Rows) ([]model.AnalysisSummary, error) {
	var out []model.AnalysisSummary
	for rows.Next() {
		var s model.AnalysisSummary
		var win int
		if err := rows.Scan(&s.MatchID, &s.PUUID, &s.Champion, &s.Position, &win, &s.DurationSec,
			&s.OverallScore, &s.ErrorCount, &s.AnalyzedAt); err != nil {
			return nil, err
		}
		s.Win = win != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
