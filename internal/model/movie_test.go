package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewSeats(t *testing.T) {
	seats := NewSeats(3)
	if len(seats) != 3 {
		t.Fatalf("len = %d, want 3", len(seats))
	}
	for i, s := range seats {
		if s.IsBooked || s.BookedBy != "" {
			t.Errorf("seat %d = %+v, want free and unowned", i, s)
		}
	}
	if got := NewSeats(0); len(got) != 0 {
		t.Errorf("NewSeats(0) = %d seats, want 0", len(got))
	}
}

func TestFindTheaterReturnsMutablePointer(t *testing.T) {
	m := &Movie{Theaters: []Theater{{Name: "T1"}, {Name: "T2"}}}

	th := m.FindTheater("T2")
	if th == nil {
		t.Fatal("FindTheater returned nil for an existing theater")
	}
	th.Showtimes = append(th.Showtimes, Showtime{Time: "18:00", Screen: "S1"})
	if len(m.Theaters[1].Showtimes) != 1 {
		t.Error("mutation through the returned pointer did not reach the aggregate")
	}

	if m.FindTheater("missing") != nil {
		t.Error("FindTheater returned non-nil for an unknown name")
	}
}

func TestHasScreen(t *testing.T) {
	th := Theater{Showtimes: []Showtime{{Screen: "S1"}, {Screen: "S2"}}}
	if !th.HasScreen("S2") {
		t.Error("HasScreen(S2) = false, want true")
	}
	if th.HasScreen("S3") {
		t.Error("HasScreen(S3) = true, want false")
	}
}

// The document field names are part of the public API and of the
// persisted representation; this pins the ones clients depend on.
func TestMovieWireFormat(t *testing.T) {
	m := Movie{
		MovieID:     7,
		Title:       "X",
		ReleaseDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Theaters: []Theater{{
			Name: "T1",
			Showtimes: []Showtime{{
				Time:   "18:00",
				Screen: "S1",
				Seats:  NewSeats(1),
			}},
		}},
	}
	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc["id"] != float64(7) {
		t.Errorf(`doc["id"] = %v, want 7`, doc["id"])
	}
	seat := doc["theaters"].([]any)[0].(map[string]any)["showtimes"].([]any)[0].(map[string]any)["seats"].([]any)[0].(map[string]any)
	if _, ok := seat["isBooked"]; !ok {
		t.Error(`seat missing "isBooked" key`)
	}
	if _, ok := seat["bookedBy"]; !ok {
		t.Error(`seat missing "bookedBy" key`)
	}
}
