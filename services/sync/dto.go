package sync

// ResyncReport summarizes one recovery sweep over a tournament's live
// matches.
type ResyncReport struct {
	TournamentID string   `json:"tournamentId"`
	Checked      int      `json:"checked"`
	Resubmitted  int      `json:"resubmitted"`
	Skipped      int      `json:"skipped"`
	Failed       []string `json:"failed,omitempty"`
}
