//go:build !audio

package audio

// Player stub for builds without audio output.
type Player struct{}

// NewPlayer always fails with ErrUnavailable.
func NewPlayer(source Provider) (*Player, error) {
	return nil, ErrUnavailable
}

// Close does nothing
func (p *Player) Close() error {
	return nil
}
