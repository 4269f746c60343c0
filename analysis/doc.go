// Package analysis turns the raw signals of one speaking session (timed
// transcript segments, a pitch track and an amplitude track) into pacing,
// pause, filler and voice-stability metrics plus a 0-100 quality score.
//
// Everything here is a pure function of its arguments: no I/O, no logging,
// no shared mutable state. Calls for different sessions can run in parallel.
//
// Jitter and shimmer are relative average perturbation over consecutive
// frames, a simplified coaching signal. They are not the clinical
// PPQ5/APQ formulas and should not be read as diagnostic measurements.
package analysis
