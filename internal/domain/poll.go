package domain

import (
	"fmt"
	"math"
)

// Choice is a single up or down vote.
type Choice string

const (
	ChoiceUp   Choice = "up"
	ChoiceDown Choice = "down"
)

// ParseChoice validates a vote direction.
func ParseChoice(s string) (Choice, error) {
	switch Choice(s) {
	case ChoiceUp, ChoiceDown:
		return Choice(s), nil
	}
	return "", fmt.Errorf("%w: vote must be %q or %q", ErrValidation, ChoiceUp, ChoiceDown)
}

// Poll is the up/down tally of one detail entry. A user appears in Voters
// at most once.
type Poll struct {
	Up     int               `json:"up"`
	Down   int               `json:"down"`
	Voters map[string]Choice `json:"voters"`
}

// NewPoll returns an empty tally.
func NewPoll() Poll {
	return Poll{Voters: map[string]Choice{}}
}

// Cast records userID's vote. A second vote by the same user is rejected and
// leaves the tally unchanged.
func (p *Poll) Cast(userID string, c Choice) error {
	if _, ok := p.Voters[userID]; ok {
		return ErrAlreadyVoted
	}
	if p.Voters == nil {
		p.Voters = map[string]Choice{}
	}
	switch c {
	case ChoiceUp:
		p.Up++
	case ChoiceDown:
		p.Down++
	default:
		return fmt.Errorf("%w: unknown vote %q", ErrValidation, c)
	}
	p.Voters[userID] = c
	return nil
}

// Percentages returns the rounded share of up and down votes.
// An empty poll yields 0 and 0.
func (p Poll) Percentages() (up, down int) {
	total := p.Up + p.Down
	if total == 0 {
		return 0, 0
	}
	up = int(math.Round(float64(p.Up) / float64(total) * 100))
	down = int(math.Round(float64(p.Down) / float64(total) * 100))
	return up, down
}
