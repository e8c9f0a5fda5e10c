//go:build audio

package audio

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Provider to the default output device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	source Provider
	mu     sync.Mutex
}

// NewPlayer opens the audio device and starts streaming source.
func NewPlayer(source Provider) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx, source: source}
	p.player = ctx.NewPlayer(p)
	p.player.Play()

	slog.Info("Audio output started", "sample_rate", SampleRate)
	return p, nil
}

// Read implements io.Reader for oto.
func (p *Player) Read(buf []byte) (int, error) {
	samples := p.source.GetSamples(len(buf) / 2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return len(samples) * 2, nil
}

// Close stops playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
