package ingest

import (
	"testing"
	"time"

	"github.com/kavehz/realmstats/internal/models"
	"github.com/shopspring/decimal"
)

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		ID:        7,
		Timestamp: time.Date(2025, 8, 10, 20, 40, 0, 0, time.UTC),
		Kingdom:   "671",
	}
}

func TestDiffName(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name      string
		priorName string
		newName   string
		wantEvent bool
	}{
		{"Unchanged", "Lord Kaveh", "Lord Kaveh", false},
		{"Changed", "Lord Kaveh", "Dark Kaveh", true},
		{"Changed to empty", "Lord Kaveh", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior := &models.PlayerSnapshot{PlayerID: "10001", Name: tt.priorName}
			row := PlayerRow{LordID: "10001", Name: tt.newName}

			nc := diffName(prior, row, snap)
			if (nc != nil) != tt.wantEvent {
				t.Fatalf("diffName() event = %v, want %v", nc != nil, tt.wantEvent)
			}
			if nc == nil {
				return
			}
			if nc.OldName != tt.priorName || nc.NewName != tt.newName {
				t.Errorf("event = %q -> %q, want %q -> %q", nc.OldName, nc.NewName, tt.priorName, tt.newName)
			}
			if !nc.DetectedAt.Equal(snap.Timestamp) {
				t.Errorf("DetectedAt = %v, want snapshot timestamp %v", nc.DetectedAt, snap.Timestamp)
			}
			if nc.SnapshotID != snap.ID {
				t.Errorf("SnapshotID = %d, want %d", nc.SnapshotID, snap.ID)
			}
		})
	}
}

func TestDiffAlliance(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name      string
		priorTag  string
		priorID   string
		newTag    string
		newID     string
		wantEvent bool
		wantOld   *string
		wantNew   *string
	}{
		{
			name:      "Unchanged",
			priorTag:  "PLAC",
			priorID:   "A100",
			newTag:    "PLAC",
			newID:     "A100",
			wantEvent: false,
		},
		{
			name:      "Alliance to alliance",
			priorTag:  "PLAC",
			priorID:   "A100",
			newTag:    "WOLF",
			newID:     "A200",
			wantEvent: true,
			wantOld:   strPtr("PLAC"),
			wantNew:   strPtr("WOLF"),
		},
		{
			name:      "Left to no alliance",
			priorTag:  "PLAC",
			priorID:   "A100",
			newTag:    "",
			newID:     "",
			wantEvent: true,
			wantOld:   strPtr("PLAC"),
			wantNew:   nil,
		},
		{
			name:      "Joined from no alliance",
			priorTag:  "",
			newTag:    "WOLF",
			newID:     "A200",
			wantEvent: true,
			wantOld:   nil,
			wantNew:   strPtr("WOLF"),
		},
		{
			name:      "Still no alliance is not a transition",
			priorTag:  "",
			newTag:    "",
			wantEvent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior := &models.PlayerSnapshot{
				PlayerID:    "10001",
				AllianceTag: tt.priorTag,
				AllianceID:  tt.priorID,
			}
			row := PlayerRow{LordID: "10001", AllianceTag: tt.newTag, AllianceID: tt.newID}

			ac := diffAlliance(prior, row, snap)
			if (ac != nil) != tt.wantEvent {
				t.Fatalf("diffAlliance() event = %v, want %v", ac != nil, tt.wantEvent)
			}
			if ac == nil {
				return
			}
			if !strPtrEqual(ac.OldTag, tt.wantOld) {
				t.Errorf("OldTag = %v, want %v", strPtrVal(ac.OldTag), strPtrVal(tt.wantOld))
			}
			if !strPtrEqual(ac.NewTag, tt.wantNew) {
				t.Errorf("NewTag = %v, want %v", strPtrVal(ac.NewTag), strPtrVal(tt.wantNew))
			}
			if !ac.DetectedAt.Equal(snap.Timestamp) {
				t.Errorf("DetectedAt = %v, want %v", ac.DetectedAt, snap.Timestamp)
			}
		})
	}
}

func TestIsDepartureCandidate(t *testing.T) {
	asOf := time.Date(2025, 8, 10, 20, 40, 0, 0, time.UTC)
	cutoff := 7 * 24 * time.Hour

	seen := func(daysAgo int) *time.Time {
		ts := asOf.AddDate(0, 0, -daysAgo)
		return &ts
	}

	tests := []struct {
		name    string
		player  models.Player
		present bool
		want    bool
	}{
		{
			name:   "Absent past cutoff",
			player: models.Player{LordID: "10001", LastSeenAt: seen(10)},
			want:   true,
		},
		{
			name:    "Present in upload",
			player:  models.Player{LordID: "10001", LastSeenAt: seen(10)},
			present: true,
			want:    false,
		},
		{
			name:   "Absent within cutoff",
			player: models.Player{LordID: "10001", LastSeenAt: seen(3)},
			want:   false,
		},
		{
			name:   "Exactly at cutoff is not past it",
			player: models.Player{LordID: "10001", LastSeenAt: seen(7)},
			want:   false,
		},
		{
			name:   "Already flagged",
			player: models.Player{LordID: "10001", LastSeenAt: seen(10), HasLeftRealm: true},
			want:   false,
		},
		{
			name:   "Never seen",
			player: models.Player{LordID: "10001"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			present := map[string]struct{}{}
			if tt.present {
				present[tt.player.LordID] = struct{}{}
			}

			got := IsDepartureCandidate(&tt.player, present, asOf, cutoff)
			if got != tt.want {
				t.Errorf("IsDepartureCandidate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeetsPowerFloor(t *testing.T) {
	floor := decimal.NewFromInt(10_000_000)

	tests := []struct {
		name  string
		power string
		want  bool
	}{
		{"Well above floor", "50000000", true},
		{"Exactly at floor", "10000000", true},
		{"Just below floor", "9999999", false},
		{"Beyond int64 range", "92233720368547758080", true},
		{"Unparseable", "abc", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeetsPowerFloor(tt.power, floor); got != tt.want {
				t.Errorf("MeetsPowerFloor(%q) = %v, want %v", tt.power, got, tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrVal(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
