package models

// League identifies which of the provider's leagues a game belongs to
type League string

const (
	LeagueSHL League = "SHL"
	LeagueHA  League = "HA"
)
