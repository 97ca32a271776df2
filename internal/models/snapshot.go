package models

import (
	"time"
)

// Snapshot is one upload event: every player's stats for one kingdom at
// one capture instant. Created once at the start of ingestion, never
// mutated afterwards (RowCount is filled in before the upload is
// reported complete).
type Snapshot struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"not null;index"`
	Kingdom   string    `gorm:"type:varchar(16);not null;index"`
	Filename  string    `gorm:"type:varchar(255);not null"`
	SeasonID  *uint     `gorm:"index"`
	RowCount  int       `gorm:"default:0;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name
func (Snapshot) TableName() string {
	return "snapshots"
}

// PlayerSnapshot is one player's full metric row within one Snapshot.
// Large cumulative counters are stored as cleaned decimal strings:
// lifetime kill and resource totals overflow what a float64-backed
// consumer can represent, so they are never parsed into fixed-width
// integers on the way in.
type PlayerSnapshot struct {
	ID         uint   `gorm:"primaryKey"`
	PlayerID   string `gorm:"type:varchar(32);not null;uniqueIndex:idx_player_snapshot,priority:1"`
	SnapshotID uint   `gorm:"not null;uniqueIndex:idx_player_snapshot,priority:2;index"`

	// Identity as written in this upload
	Name        string `gorm:"type:varchar(255);not null"`
	Division    int    `gorm:"default:0;not null"`
	AllianceID  string `gorm:"type:varchar(32)"`
	AllianceTag string `gorm:"type:varchar(16)"`
	Faction     string `gorm:"type:varchar(32)"`
	CityLevel   int    `gorm:"default:0;not null"`

	// Power components (decimal strings)
	CurrentPower  string `gorm:"type:varchar(32);default:'0';not null"`
	HighestPower  string `gorm:"type:varchar(32);default:'0';not null"`
	HeroPower     string `gorm:"type:varchar(32);default:'0';not null"`
	LegionPower   string `gorm:"type:varchar(32);default:'0';not null"`
	TechPower     string `gorm:"type:varchar(32);default:'0';not null"`
	BuildingPower string `gorm:"type:varchar(32);default:'0';not null"`

	// Combat totals (decimal strings)
	UnitsKilled string `gorm:"type:varchar(32);default:'0';not null"`
	UnitsDead   string `gorm:"type:varchar(32);default:'0';not null"`
	UnitsHealed string `gorm:"type:varchar(32);default:'0';not null"`
	T1Kills     string `gorm:"type:varchar(32);default:'0';not null"`
	T2Kills     string `gorm:"type:varchar(32);default:'0';not null"`
	T3Kills     string `gorm:"type:varchar(32);default:'0';not null"`
	T4Kills     string `gorm:"type:varchar(32);default:'0';not null"`
	T5Kills     string `gorm:"type:varchar(32);default:'0';not null"`

	// Bounded counters
	Merits     int64 `gorm:"default:0;not null"`
	Victories  int64 `gorm:"default:0;not null"`
	Defeats    int64 `gorm:"default:0;not null"`
	CitySieges int64 `gorm:"default:0;not null"`
	Scouted    int64 `gorm:"default:0;not null"`
	HelpsGiven int64 `gorm:"default:0;not null"`

	// Resources current/spent (decimal strings)
	Gold      string `gorm:"type:varchar(32);default:'0';not null"`
	GoldSpent string `gorm:"type:varchar(32);default:'0';not null"`
	Wood      string `gorm:"type:varchar(32);default:'0';not null"`
	WoodSpent string `gorm:"type:varchar(32);default:'0';not null"`
	Ore       string `gorm:"type:varchar(32);default:'0';not null"`
	OreSpent  string `gorm:"type:varchar(32);default:'0';not null"`
	Mana      string `gorm:"type:varchar(32);default:'0';not null"`
	ManaSpent string `gorm:"type:varchar(32);default:'0';not null"`
	Gems      string `gorm:"type:varchar(32);default:'0';not null"`
	GemsSpent string `gorm:"type:varchar(32);default:'0';not null"`

	ResourcesGiven      string `gorm:"type:varchar(32);default:'0';not null"`
	ResourcesGivenCount int64  `gorm:"default:0;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name
func (PlayerSnapshot) TableName() string {
	return "player_snapshots"
}
