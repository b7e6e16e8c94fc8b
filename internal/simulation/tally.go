package simulation

// Tally counts trial pairs and the wins of each strategy.
// The zero value is an empty tally. Tallies combine with Add, which is
// associative and commutative, so partial tallies from any partition of the
// trials sum to the same total.
type Tally struct {
	Trials     uint64
	StayWins   uint64
	SwitchWins uint64
}

// Record adds one trial pair.
func (t *Tally) Record(stayWon, switchWon bool) {
	t.Trials++
	t.StayWins += b2u(stayWon)
	t.SwitchWins += b2u(switchWon)
}

// Add returns the sum of two tallies.
func (t Tally) Add(o Tally) Tally {
	return Tally{
		Trials:     t.Trials + o.Trials,
		StayWins:   t.StayWins + o.StayWins,
		SwitchWins: t.SwitchWins + o.SwitchWins,
	}
}

// Wins returns the win count for a strategy.
func (t Tally) Wins(s Strategy) uint64 {
	if s.Switches() {
		return t.SwitchWins
	}
	return t.StayWins
}

// Percentage returns wins/trials*100 for a strategy, or 0 for an empty tally.
func (t Tally) Percentage(s Strategy) float64 {
	return Percentage(t.Wins(s), t.Trials)
}

// Percentage returns wins/trials*100, or 0 when trials is 0.
func Percentage(wins, trials uint64) float64 {
	if trials == 0 {
		return 0
	}
	return float64(wins) / float64(trials) * 100
}

// Sum reduces a slice of tallies.
func Sum(parts []Tally) Tally {
	var total Tally
	for _, p := range parts {
		total = total.Add(p)
	}
	return total
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
