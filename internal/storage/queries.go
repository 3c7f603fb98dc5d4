package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pable/go-lol-insights/internal/model"
)

// MatchExists returns true if a report for the given match id is stored.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveReport stores a full match report in a transaction. Uses INSERT OR
// REPLACE for idempotency, so re-analyzing a match overwrites its reports.
func (db *DB) SaveReport(summary model.MatchSummary, report *model.MatchReport) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	champions := make([]string, 0, len(report.IndividualReports))
	for champion := range report.IndividualReports {
		champions = append(champions, champion)
	}
	sort.Strings(champions)

	analyzedAt := summary.AnalyzedAt
	if analyzedAt == "" {
		analyzedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(match_id, queue_id, game_version, game_duration_sec, champions, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		report.MatchID, summary.QueueID, summary.GameVersion,
		summary.GameDurationSec, strings.Join(champions, ", "), analyzedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_reports(match_id, champion_name, lane, kills, deaths, assists, win, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, champion := range champions {
		pr := report.IndividualReports[champion]
		blob, err := json.Marshal(pr)
		if err != nil {
			return fmt.Errorf("marshal report for %s: %w", champion, err)
		}
		s := pr.PlayerSummary
		_, err = stmt.Exec(report.MatchID, champion, s.Lane,
			s.Kills, s.Deaths, s.Assists, boolInt(s.Win), string(blob))
		if err != nil {
			return fmt.Errorf("insert player report for %s: %w", champion, err)
		}
	}

	if report.DuoReport != nil {
		blob, err := json.Marshal(report.DuoReport)
		if err != nil {
			return fmt.Errorf("marshal duo report: %w", err)
		}
		_, err = tx.Exec(`
			INSERT OR REPLACE INTO duo_reports(match_id, report_json)
			VALUES (?, ?)`, report.MatchID, string(blob))
		if err != nil {
			return fmt.Errorf("insert duo report: %w", err)
		}
	}

	return tx.Commit()
}

// GetMatchByPrefix resolves a match-id prefix to its stored summary.
// Returns (nil, nil) when no match is found and an error when the prefix
// is ambiguous.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, queue_id, game_version, game_duration_sec, champions, analyzed_at
		FROM matches WHERE match_id LIKE ? ORDER BY match_id`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.QueueID, &s.GameVersion,
			&s.GameDurationSec, &s.Champions, &s.AnalyzedAt); err != nil {
			return nil, err
		}
		found = append(found, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		ids := make([]string, len(found))
		for i, s := range found {
			ids[i] = s.MatchID
		}
		return nil, fmt.Errorf("prefix %q is ambiguous: %s", prefix, strings.Join(ids, ", "))
	}
}

// GetReport reconstructs the stored MatchReport for a match id.
func (db *DB) GetReport(matchID string) (*model.MatchReport, error) {
	rows, err := db.conn.Query(`
		SELECT champion_name, report_json FROM player_reports
		WHERE match_id = ? ORDER BY champion_name`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &model.MatchReport{
		MatchID:           matchID,
		IndividualReports: make(map[string]*model.PlayerReport),
	}
	for rows.Next() {
		var champion, blob string
		if err := rows.Scan(&champion, &blob); err != nil {
			return nil, err
		}
		var pr model.PlayerReport
		if err := json.Unmarshal([]byte(blob), &pr); err != nil {
			return nil, fmt.Errorf("unmarshal report for %s: %w", champion, err)
		}
		report.IndividualReports[champion] = &pr
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(report.IndividualReports) == 0 {
		return nil, fmt.Errorf("no reports stored for match %s", matchID)
	}

	var duoBlob string
	err = db.conn.QueryRow(`SELECT report_json FROM duo_reports WHERE match_id = ?`, matchID).Scan(&duoBlob)
	switch {
	case err == sql.ErrNoRows:
		// no duo report for this match
	case err != nil:
		return nil, err
	default:
		var duo model.DuoReport
		if err := json.Unmarshal([]byte(duoBlob), &duo); err != nil {
			return nil, fmt.Errorf("unmarshal duo report: %w", err)
		}
		report.DuoReport = &duo
	}

	return report, nil
}

// ListMatches returns stored match summaries, most recently analyzed first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, queue_id, game_version, game_duration_sec, champions, analyzed_at
		FROM matches ORDER BY analyzed_at DESC, match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.QueueID, &s.GameVersion,
			&s.GameDurationSec, &s.Champions, &s.AnalyzedAt); err != nil {
			return nil, err
		}
		matches = append(matches, s)
	}
	return matches, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
