package models

import "time"

// Card is a single owned card instance. Identity, player reference and rarity
// never change after minting; only ownership moves (via trading), which the
// store handles. ObtainedAt is a millisecond epoch.
type Card struct {
	Id         string `json:"id"`
	Player     Player `json:"player"`
	Rarity     Rarity `json:"rarity"`
	ObtainedAt int64  `json:"obtainedAt"`
	// SnapshotId links server-backed cards to the point-in-time stat
	// snapshot they were minted from. Empty for locally minted cards.
	SnapshotId string `json:"snapshotId,omitempty"`
	Season     int    `json:"season,omitempty"`
	StatType   string `json:"statType,omitempty"`
}

// GroupKey identifies the underlying player/season snapshot for duplicate
// detection: two cards are duplicates when they depict the same snapshot.
func (c *Card) GroupKey() string {
	if c.SnapshotId != "" {
		return c.SnapshotId
	}
	return c.Player.Id
}

// CardSnapshot is the server-authoritative wire form of a point-in-time
// player stat line referenced by owned cards.
type CardSnapshot struct {
	Id              string  `json:"id"`
	CscPlayerId     string  `json:"cscPlayerId"`
	PlayerName      string  `json:"playerName"`
	AvatarUrl       string  `json:"avatarUrl"`
	Season          int     `json:"season"`
	StatType        string  `json:"statType"`
	Tier            string  `json:"tier"`
	TeamName        string  `json:"teamName,omitempty"`
	FranchiseName   string  `json:"franchiseName,omitempty"`
	FranchisePrefix string  `json:"franchisePrefix,omitempty"`
	Rating          float64 `json:"rating"`
	Kr              float64 `json:"kr"`
	Adr             float64 `json:"adr"`
	Kast            float64 `json:"kast"`
	Impact          float64 `json:"impact"`
	GameCount       int     `json:"gameCount"`
	Kills           int     `json:"kills"`
	Deaths          int     `json:"deaths"`
	Assists         int     `json:"assists"`
	CreatedAt       string  `json:"createdAt"`
}

// OwnedCard is the wire shape a remote collection backend serves. The core
// only ever sees the internal Card form; ToCard is the single adapter.
type OwnedCard struct {
	Id             string       `json:"id"`
	DiscordUserId  string       `json:"discordUserId"`
	CardSnapshotId string       `json:"cardSnapshotId"`
	Rarity         Rarity       `json:"rarity"`
	ObtainedAt     string       `json:"obtainedAt"`
	Snapshot       CardSnapshot `json:"snapshot"`
}

// ToCard converts the server wire shape into the internal Card form.
// Unparseable timestamps map to 0 rather than failing: a card with a broken
// timestamp still exists, it just sorts as oldest.
func (oc *OwnedCard) ToCard() Card {
	s := oc.Snapshot

	var team *Team
	if s.TeamName != "" {
		team = &Team{
			Name: s.TeamName,
			Franchise: Franchise{
				Name:   s.FranchiseName,
				Prefix: s.FranchisePrefix,
			},
		}
	}

	var obtained int64
	if t, err := time.Parse(time.RFC3339, oc.ObtainedAt); err == nil {
		obtained = t.UnixMilli()
	}

	snapshotId := oc.CardSnapshotId
	if snapshotId == "" {
		snapshotId = s.Id
	}

	return Card{
		Id: oc.Id,
		Player: Player{
			Id:        s.CscPlayerId,
			Name:      s.PlayerName,
			AvatarUrl: s.AvatarUrl,
			Tier:      Tier{Name: s.Tier},
			Team:      team,
			Stats: &PlayerStats{
				Name:      s.PlayerName,
				Rating:    s.Rating,
				Kr:        s.Kr,
				Adr:       s.Adr,
				Kast:      s.Kast,
				Impact:    s.Impact,
				GameCount: s.GameCount,
				Kills:     s.Kills,
				Deaths:    s.Deaths,
				Assists:   s.Assists,
			},
		},
		Rarity:     oc.Rarity,
		ObtainedAt: obtained,
		SnapshotId: snapshotId,
		Season:     s.Season,
		StatType:   s.StatType,
	}
}
