package models

import (
	"testing"
	"time"
)

func TestPlayer_BeforeCreate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		player  Player
		wantErr bool
	}{
		{
			name:   "Active player",
			player: Player{LordID: "10001", CurrentName: "Lord Kaveh"},
		},
		{
			name: "Departed with timestamp",
			player: Player{
				LordID:       "10001",
				CurrentName:  "Lord Kaveh",
				HasLeftRealm: true,
				LeftRealmAt:  &now,
			},
		},
		{
			name: "Departed without timestamp",
			player: Player{
				LordID:       "10001",
				CurrentName:  "Lord Kaveh",
				HasLeftRealm: true,
			},
			wantErr: true,
		},
		{
			name:    "Missing lord id",
			player:  Player{CurrentName: "Lord Kaveh"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.player.BeforeCreate(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpload_BeforeSave_ValidStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{"Pending", UploadStatusPending, false},
		{"Processing", UploadStatusProcessing, false},
		{"Completed", UploadStatusCompleted, false},
		{"Failed", UploadStatusFailed, false},
		{"Invalid", "exploded", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upload := &Upload{
				Filename: "671_20250810_2040utc.xlsx",
				Status:   tt.status,
			}

			err := upload.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeason_Contains(t *testing.T) {
	season := Season{
		StartsAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"Inside window", time.Date(2025, 8, 10, 20, 40, 0, 0, time.UTC), true},
		{"At start", season.StartsAt, true},
		{"At end is exclusive", season.EndsAt, false},
		{"Before window", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := season.Contains(tt.ts); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestTableNames(t *testing.T) {
	if got := (Player{}).TableName(); got != "players" {
		t.Errorf("Player.TableName() = %q, want %q", got, "players")
	}
	if got := (Snapshot{}).TableName(); got != "snapshots" {
		t.Errorf("Snapshot.TableName() = %q, want %q", got, "snapshots")
	}
	if got := (PlayerSnapshot{}).TableName(); got != "player_snapshots" {
		t.Errorf("PlayerSnapshot.TableName() = %q, want %q", got, "player_snapshots")
	}
	if got := (NameChange{}).TableName(); got != "name_changes" {
		t.Errorf("NameChange.TableName() = %q, want %q", got, "name_changes")
	}
	if got := (AllianceChange{}).TableName(); got != "alliance_changes" {
		t.Errorf("AllianceChange.TableName() = %q, want %q", got, "alliance_changes")
	}
	if got := (Upload{}).TableName(); got != "uploads" {
		t.Errorf("Upload.TableName() = %q, want %q", got, "uploads")
	}
}
