// meta/meta.go
package meta

// NAMES are the player call signs, handed out in order.
var NAMES = []string{"ALPHA", "BRAVO", "CHARLIE", "DELTA", "ECHO", "FOXTROT"}

// DEFAULT_PLAYERS is the lineup used when none is given.
var DEFAULT_PLAYERS = []string{"DeterministicAI*2"}

// MIN_PLAYERS is the smallest game the engine accepts.
const MIN_PLAYERS = 2

// DEFAULT_SEED means "draw a fresh seed".
const DEFAULT_SEED = 0

// MAX_TURNS of zero lets a game run until someone wins.
const MAX_TURNS = 0

// METRICS_DIR is the default parent of the per-run CSV folders.
const METRICS_DIR = "experiments/runs"
