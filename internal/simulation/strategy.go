package simulation

import "fmt"

// Strategy is the player's policy after the host opens a door.
type Strategy uint8

const (
	// Stay keeps the original pick.
	Stay Strategy = iota
	// Switch moves to the remaining closed door.
	Switch
)

// Strategies lists both strategies in reporting order.
var Strategies = [2]Strategy{Stay, Switch}

// Switches reports whether the strategy changes doors.
func (s Strategy) Switches() bool {
	return s == Switch
}

func (s Strategy) String() string {
	switch s {
	case Stay:
		return "stay"
	case Switch:
		return "switch"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}
