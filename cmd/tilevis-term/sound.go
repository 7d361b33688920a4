package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// sound plays short cues. A nil *sound is silent.
type sound struct{}

func newSound() (*sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &sound{}, nil
}

// chime signals newly revealed tiles.
func (s *sound) chime() {
	if s == nil {
		return
	}
	tone, err := generators.SineTone(sampleRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), tone))
}

func (s *sound) close() {
	if s != nil {
		speaker.Close()
	}
}
