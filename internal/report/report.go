package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-lol-insights/internal/model"
)

// PrintMatchSummary prints a one-line header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\nMatch: %s  |  Queue: %d  |  Version: %s  |  Duration: %dm%02ds  |  Analyzed: %s\n",
		s.MatchID, s.QueueID, s.GameVersion,
		s.GameDurationSec/60, s.GameDurationSec%60, s.AnalyzedAt)
}

// PrintMatchReport renders every section of a match report: per-player
// summaries, laning phase, engagements, objectives, death analysis, and
// the duo section when present.
func PrintMatchReport(w io.Writer, report *model.MatchReport) {
	champions := make([]string, 0, len(report.IndividualReports))
	for champion := range report.IndividualReports {
		champions = append(champions, champion)
	}
	sort.Strings(champions)

	for _, champion := range champions {
		pr := report.IndividualReports[champion]
		fmt.Fprintf(w, "\n--- Report for: %s ---\n\n", champion)
		printPlayerSummary(w, pr.PlayerSummary)

		if pr.LaningPhase != nil {
			printLaningPhase(w, pr.LaningPhase)
		}
		if len(pr.TeamFights) > 0 {
			printEngagements(w, pr.TeamFights, model.TeamOfParticipant(pr.PlayerSummary.ParticipantID))
		}
		if len(pr.Objectives) > 0 {
			printObjectives(w, pr.Objectives)
		}
		if len(pr.DeathAnalysis) > 0 {
			printDeathAnalysis(w, champion, pr.DeathAnalysis)
		}
	}

	if report.DuoReport != nil {
		PrintDuoReport(w, report.DuoReport)
	}
}

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

func printPlayerSummary(w io.Writer, s model.PlayerSummary) {
	table := newTable(w)
	table.Header("CHAMPION", "LANE", "K", "D", "A", "KDA", "KP%", "DMG", "VISION", "RESULT")

	result := "Loss"
	if s.Win {
		result = "Win"
	}
	table.Append(
		s.ChampionName,
		s.Lane,
		strconv.Itoa(s.Kills),
		strconv.Itoa(s.Deaths),
		strconv.Itoa(s.Assists),
		fmt.Sprintf("%.2f", s.KDA),
		fmt.Sprintf("%.0f%%", s.KillParticipation*100),
		strconv.Itoa(s.TotalDamageDealtToChampions),
		strconv.Itoa(s.VisionScore),
		result,
	)
	table.Render()
}

func printLaningPhase(w io.Writer, lp *model.LaningPhase) {
	fmt.Fprintln(w, "\nLaning phase (at 10:00):")
	if lp.Error != "" {
		fmt.Fprintf(w, "  unavailable: %s\n", lp.Error)
		return
	}
	table := newTable(w)
	table.Header("CS", "OPP_CS", "CS_LEAD", "GOLD", "OPP_GOLD", "GOLD_LEAD")
	table.Append(
		strconv.Itoa(lp.CSAt10),
		strconv.Itoa(lp.OpponentCSAt10),
		fmt.Sprintf("%+d", lp.CSLeadAt10),
		strconv.Itoa(lp.GoldAt10),
		strconv.Itoa(lp.OpponentGoldAt10),
		fmt.Sprintf("%+d", lp.GoldLeadAt10),
	)
	table.Render()
}

func printEngagements(w io.Writer, fights []model.Engagement, side model.Team) {
	fmt.Fprintln(w, "\nKey engagements:")
	table := newTable(w)
	table.Header("#", "TIME", "OUTCOME", "BLUE", "RED", "INVOLVEMENT")
	for i, fight := range fights {
		table.Append(
			strconv.Itoa(i+1),
			fmt.Sprintf("%.2fm", fight.StartTimeMinutes),
			fight.Outcome(side),
			strconv.Itoa(fight.BlueTeamKills),
			strconv.Itoa(fight.RedTeamKills),
			fight.PlayerInvolvement,
		)
	}
	table.Render()
}

func printObjectives(w io.Writer, objectives []model.Objective) {
	fmt.Fprintln(w, "\nObjective control:")
	table := newTable(w)
	table.Header("TIME", "TEAM", "OBJECTIVE")
	for _, obj := range objectives {
		table.Append(
			fmt.Sprintf("%.2fm", obj.TimeMinutes),
			obj.Team,
			obj.Type,
		)
	}
	table.Render()
}

func printDeathAnalysis(w io.Writer, champion string, deaths []model.DeathAnalysis) {
	fmt.Fprintln(w, "\nDeath analysis:")
	for _, d := range deaths {
		fmt.Fprintf(w, "  - [%.2fm] %s killed by %s\n", d.TimeMinutes, champion, d.KilledBy)
		for _, note := range d.Context {
			fmt.Fprintf(w, "      context: %s\n", note)
		}
		for _, note := range d.Outcome {
			fmt.Fprintf(w, "      outcome: %s\n", note)
		}
	}
}

// PrintDuoReport renders the duo dynamics section.
func PrintDuoReport(w io.Writer, duo *model.DuoReport) {
	fmt.Fprintf(w, "\n--- Duo Dynamics: %s & %s ---\n", duo.P1Champion, duo.P2Champion)

	collab := duo.KillCollaboration
	fmt.Fprintln(w, "\nKill collaboration:")
	fmt.Fprintf(w, "  - %s assisted on %d/%d of %s's kills (%s)\n",
		duo.P2Champion, collab.P2OnP1Kills, collab.TotalP1Kills, duo.P1Champion,
		assistPct(collab.P2OnP1Kills, collab.TotalP1Kills))
	fmt.Fprintf(w, "  - %s assisted on %d/%d of %s's kills (%s)\n",
		duo.P1Champion, collab.P1OnP2Kills, collab.TotalP2Kills, duo.P2Champion,
		assistPct(collab.P1OnP2Kills, collab.TotalP2Kills))

	if len(duo.JointObjectives) > 0 {
		fmt.Fprintln(w, "\nJoint objectives:")
		for _, obj := range duo.JointObjectives {
			fmt.Fprintf(w, "  - [%.2fm] %s\n", obj.TimeMinutes, obj.Type)
		}
	} else {
		fmt.Fprintln(w, "\nNo major objectives were taken with both players involved.")
	}

	if len(duo.DeathContext) > 0 {
		fmt.Fprintln(w, "\nShared deaths & trades:")
		for _, ctx := range duo.DeathContext {
			fmt.Fprintf(w, "  - [%.2fm] %s: %s\n", ctx.TimeMinutes, ctx.Event, ctx.Outcome)
		}
	}
}

func assistPct(assisted, total int) string {
	if total == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(assisted)/float64(total)*100)
}
