package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Player identifies a skater inside a free-text provider field
type Player struct {
	Jersey     string `json:"jersey"`
	FirstName  string `json:"first_name"`
	FamilyName string `json:"family_name"`
}

// ParsePlayer parses the provider's embedded player string, e.g.
// "1 Johan Johansson Olsson" -> jersey "1", first name "Johan",
// family name "Johansson Olsson".
//
// The family name is whatever remains after stripping the literal
// "<jersey> <first name>" substring, not a positional slice. A name that
// repeats that substring later in the string gets mangled; downstream
// identity matching depends on this exact behavior, so don't change the
// heuristic without confirming the upstream format.
func ParsePlayer(s string) (Player, bool) {
	parts := strings.Split(s, " ")
	if len(parts) < 2 {
		return Player{}, false
	}
	jersey := parts[0]
	firstName := parts[1]
	familyName := strings.TrimSpace(strings.ReplaceAll(s, fmt.Sprintf("%s %s", jersey, firstName), ""))
	return Player{Jersey: jersey, FirstName: firstName, FamilyName: familyName}, true
}

// ParseTimeOnIce converts the provider's "MM:SS" time string to seconds.
// Missing or non-numeric parts count as zero.
func ParseTimeOnIce(s string) int {
	minStr, secStr, found := strings.Cut(s, ":")
	if !found {
		minStr, secStr = "0", "0"
	}
	min, _ := strconv.Atoi(minStr)
	sec, _ := strconv.Atoi(secStr)
	return min*60 + sec
}
