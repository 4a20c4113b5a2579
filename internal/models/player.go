package models

// PlayerStats is a player's season performance line. All fields come from the
// external stats backend; the service never computes or mutates them.
type PlayerStats struct {
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	Kr        float64 `json:"kr"`
	Adr       float64 `json:"adr"`
	Kast      float64 `json:"kast"`
	Impact    float64 `json:"impact"`
	GameCount int     `json:"gameCount"`
	Rounds    int     `json:"rounds"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Assists   int     `json:"assists"`
}

type Tier struct {
	Name string `json:"name"`
}

type Franchise struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

type Team struct {
	Name      string    `json:"name"`
	Franchise Franchise `json:"franchise"`
}

// Player is an immutable snapshot fetched from the players collaborator.
// Stats is nil for players without competitive history; such players are not
// eligible to appear in packs.
type Player struct {
	Id        string       `json:"id"`
	Name      string       `json:"name"`
	AvatarUrl string       `json:"avatarUrl"`
	Tier      Tier         `json:"tier"`
	Team      *Team        `json:"team,omitempty"`
	Stats     *PlayerStats `json:"stats,omitempty"`
}

// Eligible reports whether the player can be drawn in a pack: a stats line
// must exist and at least one game must have been played.
func (p *Player) Eligible() bool {
	return p.Stats != nil && p.Stats.GameCount > 0
}
