// Package engine implements the real-time core shared by every mini-game:
// a deadline event queue, the frame clock, the countdown timer, the live
// entity set with motion and collision, the collision debounce ledger, the
// spawner, and the session state machine that gates all of them.
//
// Everything in this package runs on one logical thread. The host calls
// into it once per display refresh with the current wall-clock time; no
// goroutines are started and no call blocks.
package engine
