package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/initiative/internal/domain"
)

// timeLayout is used for every timestamp printed by the CLI.
const timeLayout = "2006-01-02 15:04"

// parseEncounterID parses an encounter ID from a string like "1" or "#1".
func parseEncounterID(s string) (int, error) {
	s = strings.TrimPrefix(s, "#")
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid encounter ID %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("encounter ID must be positive")
	}
	return id, nil
}

// parseAmount parses a non-negative hit point amount.
func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, domain.ErrInvalidAmount)
	}
	return n, nil
}

// printEncounterList prints encounters in a table format.
func printEncounterList(w io.Writer, encounters []*domain.Encounter) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tROUND\tCOMBATANTS\tCAMPAIGN\tNAME")

	for _, enc := range encounters {
		round := "-"
		if enc.IsStarted() {
			round = strconv.Itoa(enc.CurrentRound)
		}
		campaign := "-"
		if enc.CampaignID != "" {
			campaign = enc.CampaignID
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			enc.ID,
			enc.Status,
			round,
			len(enc.Combatants),
			campaign,
			enc.Name,
		)
	}
}

// printEncounterDetails prints the encounter header followed by the roster.
func printEncounterDetails(w io.Writer, enc *domain.Encounter) {
	_, _ = fmt.Fprintf(w, "# %d: %s\n\n", enc.ID, enc.Name)

	status := string(enc.Status)
	if enc.IsStarted() {
		status = fmt.Sprintf("%s (round %d)", enc.Status, enc.CurrentRound)
	}
	_, _ = fmt.Fprintf(w, "Status: %s\n", status)
	if enc.CampaignID != "" {
		_, _ = fmt.Fprintf(w, "Campaign: %s\n", enc.CampaignID)
	}
	_, _ = fmt.Fprintf(w, "Created: %s\n", enc.Created.Format(timeLayout))
	if !enc.StartedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Started: %s\n", enc.StartedAt.Format(timeLayout))
	}
	if !enc.EndedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Ended: %s\n", enc.EndedAt.Format(timeLayout))
	}
	if len(enc.EnvironmentEffects) > 0 {
		_, _ = fmt.Fprintf(w, "Environment: %s\n", strings.Join(enc.EnvironmentEffects, ", "))
	}

	_, _ = fmt.Fprintln(w)
	if len(enc.Combatants) == 0 {
		_, _ = fmt.Fprintln(w, "No combatants.")
		return
	}
	printRoster(w, enc)
}

// printRoster prints the combatants in initiative order. The combatant
// holding the turn is marked with ">" while the encounter is running.
func printRoster(w io.Writer, enc *domain.Encounter) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, " \tINIT\tNAME\tHP\tAC\tSIDE\tEFFECTS\tID")

	current := ""
	if enc.Status.IsRunning() {
		if cur, ok := enc.CurrentCombatant(); ok {
			current = cur.ID
		}
	}

	for _, c := range enc.Combatants {
		marker := " "
		if c.ID == current {
			marker = ">"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			marker,
			c.Initiative,
			c.Name,
			formatHP(c),
			c.AC,
			side(c),
			formatEffects(c.StatusEffects),
			domain.ShortID(c.ID),
		)
	}
}

func formatHP(c *domain.Combatant) string {
	hp := fmt.Sprintf("%d/%d", c.HP, c.MaxHP)
	if c.IsDown() {
		hp += " down"
	}
	return hp
}

func side(c *domain.Combatant) string {
	if c.IsPlayer {
		return "player"
	}
	return "enemy"
}

// formatEffects renders effects as "Bless(3), Prone".
func formatEffects(effects []domain.StatusEffect) string {
	if len(effects) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(effects))
	for _, se := range effects {
		if se.IsPermanent() {
			parts = append(parts, se.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s(%d)", se.Name, se.Duration))
	}
	return strings.Join(parts, ", ")
}

// printTurnResult reports a turn change and any effects that expired with it.
func printTurnResult(w io.Writer, res domain.TurnResult) {
	if res.NewRound {
		_, _ = fmt.Fprintf(w, "Round %d begins\n", res.Round)
	}
	for _, ex := range res.Expired {
		_, _ = fmt.Fprintf(w, "  %s on %s expired\n", ex.Effect.Name, ex.CombatantName)
	}
	if res.Current == nil {
		_, _ = fmt.Fprintln(w, "No combatants.")
		return
	}
	_, _ = fmt.Fprintf(w, "Round %d, turn %d: %s (%s)\n",
		res.Round, res.Turn+1, res.Current.Name, formatHP(res.Current))
}

// printSummary prints the summary projection of an encounter.
func printSummary(w io.Writer, enc *domain.Encounter, s domain.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	elapsed := "-"
	if s.ElapsedMinutes != nil {
		elapsed = fmt.Sprintf("%d min", *s.ElapsedMinutes)
	}
	current := "-"
	if s.CurrentCombatant != "" {
		current = s.CurrentCombatant
	}

	_, _ = fmt.Fprintf(tw, "Encounter:\t%d: %s\n", enc.ID, enc.Name)
	_, _ = fmt.Fprintf(tw, "Status:\t%s\n", s.Status.Display())
	_, _ = fmt.Fprintf(tw, "Round:\t%d\n", s.Round)
	_, _ = fmt.Fprintf(tw, "Current:\t%s\n", current)
	_, _ = fmt.Fprintf(tw, "Combatants:\t%d (%d players, %d enemies)\n", s.Total, s.Players, s.Enemies)
	_, _ = fmt.Fprintf(tw, "Health:\t%.1f%%\n", s.HealthPercent)
	_, _ = fmt.Fprintf(tw, "Elapsed:\t%s\n", elapsed)
}

// printHistory prints the saved versions of an encounter, oldest first.
func printHistory(w io.Writer, versions []domain.SnapshotInfo) {
	if len(versions) == 0 {
		_, _ = fmt.Fprintln(w, "No saved versions.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "VERSION\tSTATUS\tROUND\tTURN\tCOMBATANTS")
	for _, v := range versions {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", v.Version, v.Status, v.Round, v.Turn+1, v.Combatants)
	}
}
