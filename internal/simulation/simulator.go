package simulation

import (
	"fmt"
	"math/rand/v2"
)

// Round is the full record of one trial.
type Round struct {
	Doors   Doors
	Initial Selection // player's first pick
	Opened  Selection // door opened by the host
	Final   Selection // pick after the strategy is applied
	Won     bool
}

// Simulator plays Monty Hall rounds using its own random generator.
// A Simulator must not be shared between goroutines.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator returns a Simulator backed by a PCG generator seeded from seed.
func NewSimulator(seed uint64) *Simulator {
	return NewSimulatorFromSource(rand.NewPCG(seed, mix64(seed^pcgStream)))
}

// NewSimulatorFromSource returns a Simulator drawing from src.
func NewSimulatorFromSource(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)}
}

// Play runs one round and reports whether the player won.
func (s *Simulator) Play(switchDoors bool) bool {
	return s.Round(switchDoors).Won
}

// PlayPair runs one round per strategy, each with fresh draws.
func (s *Simulator) PlayPair() (stayWon, switchWon bool) {
	return s.Play(false), s.Play(true)
}

// Round runs one trial and returns its trace.
func (s *Simulator) Round(switchDoors bool) Round {
	doors := NewDoors(s.drawDoor())
	pick := s.drawDoor()
	opened := HostOpens(doors, pick)

	final := pick
	if switchDoors {
		final = RemainingDoor(pick, opened)
	}
	return Round{
		Doors:   doors,
		Initial: pick,
		Opened:  opened,
		Final:   final,
		Won:     doors.At(final) == Prize,
	}
}

// drawDoor draws a door uniformly. IntN(NumDoors) bounds the index to [0,3).
func (s *Simulator) drawDoor() Selection {
	return SelectionFromIndex(s.rng.IntN(NumDoors))
}

// HostOpens returns the door the host opens given the player's pick.
//
// The host looks at a single reference door among the two the player did not
// pick and opens it if it hides a goat, otherwise the other one. When the
// player picked the prize both unpicked doors hide goats and the choice is a
// fixed tie-break (the reference door), not a random draw. Which goat is shown
// has no effect on either strategy's odds.
func HostOpens(doors Doors, pick Selection) Selection {
	switch pick {
	case Door1:
		if doors.At(Door2) == Goat {
			return Door2
		}
		return Door3
	case Door2:
		if doors.At(Door1) == Goat {
			return Door1
		}
		return Door3
	case Door3:
		if doors.At(Door1) == Goat {
			return Door1
		}
		return Door2
	}
	panic(InvariantError{Op: "host opening", Detail: fmt.Sprintf("unknown pick %d", uint8(pick))})
}

// RemainingDoor returns the door that is neither pick nor opened.
// The two arguments must be distinct doors.
func RemainingDoor(pick, opened Selection) Selection {
	switch pick {
	case Door1:
		switch opened {
		case Door2:
			return Door3
		case Door3:
			return Door2
		}
	case Door2:
		switch opened {
		case Door1:
			return Door3
		case Door3:
			return Door1
		}
	case Door3:
		switch opened {
		case Door1:
			return Door2
		case Door2:
			return Door1
		}
	}
	panic(InvariantError{Op: "switch", Detail: fmt.Sprintf("no remaining door for pick %v and opened %v", pick, opened)})
}
