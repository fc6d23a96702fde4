package dedupe

// Package dedupe provides shared singleflight groups. When both players
// mark themselves ready at the same moment, or the draft timeout scanner
// fires while a ready request is in flight, only one battle resolution
// runs for a match and the other callers receive its result.

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates battle resolution keyed by keys.MatchupKey.
var BattleGroup singleflight.Group
