package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note is one step of a melody. Freq 0 is a rest.
type Note struct {
	Freq  float64
	Beats float64
}

// Pitches used by the party tune (Hz).
const (
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteF4 = 349.23
	noteG4 = 392.00
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
)

// PartyMelody is the looping background tune.
var PartyMelody = []Note{
	{noteC4, 0.5}, {noteE4, 0.5}, {noteG4, 0.5}, {noteC5, 0.5},
	{noteG4, 0.5}, {noteE4, 0.5}, {noteG4, 1},
	{noteD4, 0.5}, {noteF4, 0.5}, {noteA4, 0.5}, {noteD4, 0.5},
	{noteB4, 0.5}, {noteG4, 0.5}, {0, 1},
	{noteE4, 0.5}, {noteG4, 0.5}, {noteC5, 0.5}, {noteE5, 0.5},
	{noteG5, 0.5}, {noteE5, 0.5}, {noteC5, 1},
	{noteG4, 0.5}, {noteE4, 0.5}, {noteD4, 0.5}, {noteE4, 0.5},
	{noteC4, 1.5}, {0, 0.5},
}

// tuneLevel keeps the music under the effect blips.
const tuneLevel = 0.12

// Tune is an endless streamer that plays a melody as soft square-ish tones
// and starts over at the end.
type Tune struct {
	rate  beep.SampleRate
	notes []Note
	lens  []int // Samples per note

	idx   int
	pos   int
	phase float64
}

// NewTune creates a looping tune at the given tempo in beats per minute.
func NewTune(rate beep.SampleRate, tempo int, notes []Note) *Tune {
	if tempo <= 0 {
		tempo = 120
	}
	beat := time.Minute / time.Duration(tempo)
	t := &Tune{rate: rate, notes: notes, lens: make([]int, len(notes))}
	for i, n := range notes {
		t.lens[i] = max(1, rate.N(time.Duration(float64(beat)*n.Beats)))
	}
	return t
}

// Len returns the length of one pass of the melody in samples.
func (t *Tune) Len() int {
	total := 0
	for _, n := range t.lens {
		total += n
	}
	return total
}

// Stream fills samples; it never drains.
func (t *Tune) Stream(samples [][2]float64) (n int, ok bool) {
	if len(t.notes) == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	for i := range samples {
		note := t.notes[t.idx]
		length := t.lens[t.idx]

		val := 0.0
		if note.Freq > 0 {
			// Odd harmonics give a chiptune edge without a hard square.
			val = math.Sin(2*math.Pi*t.phase) + math.Sin(6*math.Pi*t.phase)/3
			val *= tuneLevel * pluck(t.pos, length)
			t.phase += note.Freq / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		t.pos++
		if t.pos >= length {
			t.pos = 0
			t.phase = 0
			t.idx = (t.idx + 1) % len(t.notes)
		}
	}
	return len(samples), true
}

// Err always returns nil.
func (t *Tune) Err() error { return nil }

// pluck is a short attack and a linear release over the note.
func pluck(pos, length int) float64 {
	const attack = 0.05
	p := float64(pos) / float64(length)
	if p < attack {
		return p / attack
	}
	return 1 - (p-attack)/(1-attack)
}
