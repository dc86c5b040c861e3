// Package match scores how well types and names fit each other.
//
// Key functions:
//   - ScoreTypeCompatibility: identical > assignable > incompatible tiers
//   - MostSpecific: picks the narrowest of several applicable signatures
//   - RankNames: "did you mean" suggestions ordered by normalized edit distance
package match
