//go:build race

package factor

// raceEnabled reports whether the race detector instruments this build.
// The parallel sweep's relaxed neighbor reads are intentional (see
// Sweep); tests consult this to pin Workers=1 where the detector would
// flag them.
const raceEnabled = true
