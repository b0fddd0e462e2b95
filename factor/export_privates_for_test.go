package factor

// RaceEnabled mirrors the build's race-detector flag for external tests.
var RaceEnabled = raceEnabled
