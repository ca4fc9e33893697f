package engine

// WinnerDraw is the winner label for a tied round or a tied match.
const WinnerDraw = "Draw"

// RoundResult is the outcome of one role matchup. Powers are post-jitter.
type RoundResult struct {
	Role   string `json:"role"`
	AName  string `json:"A_name"`
	BName  string `json:"B_name"`
	APower int    `json:"A_power"`
	BPower int    `json:"B_power"`
	Winner string `json:"winner"`
}

// Result is the full resolution: one round per role plus the match winner.
// Winners are player display names, or WinnerDraw.
type Result struct {
	Rounds      []RoundResult `json:"rounds"`
	FinalWinner string        `json:"final_winner"`
}

// resolve pits the two rosters against each other role by role. Each side's
// role power gets an independent uniform multiplier in [0.9, 1.1), truncated
// to int; the higher adjusted power takes the round, and the match goes to
// whoever takes strictly more rounds.
func (e *Engine) resolve(s State) *Result {
	rounds := make([]RoundResult, 0, NumSlots)
	scoreA, scoreB := 0, 0

	for i, role := range Roles {
		a := s.Rosters[TeamA][i]
		b := s.Rosters[TeamB][i]

		aPower := e.jitter(a.Roles[role])
		bPower := e.jitter(b.Roles[role])

		winner := WinnerDraw
		switch {
		case aPower > bPower:
			winner = s.Players[TeamA]
			scoreA++
		case bPower > aPower:
			winner = s.Players[TeamB]
			scoreB++
		}

		rounds = append(rounds, RoundResult{
			Role:   role,
			AName:  a.Name,
			BName:  b.Name,
			APower: aPower,
			BPower: bPower,
			Winner: winner,
		})
	}

	final := WinnerDraw
	switch {
	case scoreA > scoreB:
		final = s.Players[TeamA]
	case scoreB > scoreA:
		final = s.Players[TeamB]
	}

	return &Result{Rounds: rounds, FinalWinner: final}
}

func (e *Engine) jitter(power int) int {
	return int(float64(power) * (0.9 + e.rng.Float64()*0.2))
}
