package audio

const (
	// SampleRate is the output rate in Hz for the beeper.
	SampleRate = 44100

	// DefaultToneHz is the pitch of the buzzer. The machine has a single
	// fixed-pitch tone, any audible frequency will do.
	DefaultToneHz = 440

	// amplitude keeps the square wave well below full scale.
	amplitude = 8000
)
