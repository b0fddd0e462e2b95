//go:build !race

package factor

// raceEnabled reports whether the race detector instruments this build.
const raceEnabled = false
