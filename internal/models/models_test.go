package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestArtist(t *testing.T) {
	t.Run("NewArtist", func(t *testing.T) {
		a, err := NewArtist("Daft Punk", "http://img", 12345678)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if a.Name != "Daft Punk" || a.ImageURL != "http://img" || a.Followers != 12345678 {
			t.Errorf("unexpected artist %+v", a)
		}
	})

	t.Run("NewArtist rejects empty name", func(t *testing.T) {
		if _, err := NewArtist("", "", 0); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("NewArtist rejects negative followers", func(t *testing.T) {
		if _, err := NewArtist("X", "", -1); err == nil {
			t.Error("expected error for negative followers")
		}
	})

	t.Run("MarshalJSON uses catalog shape", func(t *testing.T) {
		data, err := json.Marshal(Artist{Name: "Daft Punk", ImageURL: "http://img", Followers: 7})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := `{"name":"Daft Punk","images":[{"url":"http://img"}],"followers":{"total":7}}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("MarshalJSON without image", func(t *testing.T) {
		data, err := json.Marshal(Artist{Name: "Unknown"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := `{"name":"Unknown","images":[],"followers":{"total":0}}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("JSON round trip", func(t *testing.T) {
		artists := []Artist{
			{Name: "Daft Punk", ImageURL: "http://img", Followers: 12345678},
			{Name: "Unknown", Followers: 0},
		}

		data, err := json.Marshal(artists)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var got []Artist
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != len(artists) {
			t.Fatalf("expected %d artists, got %d", len(artists), len(got))
		}
		for i := range artists {
			if got[i] != artists[i] {
				t.Errorf("artist %d: got %+v, want %+v", i, got[i], artists[i])
			}
		}
	})

	t.Run("UnmarshalJSON rejects invalid items", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"missing name", `{"images":[],"followers":{"total":1}}`},
			{"missing followers", `{"name":"X","images":[]}`},
			{"missing total", `{"name":"X","followers":{}}`},
			{"empty name", `{"name":"","followers":{"total":1}}`},
			{"negative followers", `{"name":"X","followers":{"total":-1}}`},
			{"not an object", `"Daft Punk"`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var a Artist
				if err := json.Unmarshal([]byte(tt.body), &a); err == nil {
					t.Errorf("expected error, got %+v", a)
				}
			})
		}
	})
}

func TestSearchRecord(t *testing.T) {
	t.Run("successful search", func(t *testing.T) {
		artists := []Artist{{Name: "Daft Punk"}, {Name: "Daft Punk Tribute"}}
		r := NewSearchRecord("daft punk", SourceCLI, artists, nil)

		if r.Status() != SearchOK {
			t.Errorf("expected ok status, got %s", r.Status())
		}
		if r.ResultCount() != 2 {
			t.Errorf("expected 2 results, got %d", r.ResultCount())
		}
		if r.TopArtist() != "Daft Punk" {
			t.Errorf("expected top artist Daft Punk, got %s", r.TopArtist())
		}
		if r.Failed() {
			t.Error("expected record not to be failed")
		}
		if err := r.Validate(); err != nil {
			t.Errorf("expected valid record, got %v", err)
		}
	})

	t.Run("failed search", func(t *testing.T) {
		r := NewSearchRecord("daft punk", SourceTUI, nil, errors.New("request failed: status 401"))

		if !r.Failed() {
			t.Error("expected failed record")
		}
		if r.Error() != "request failed: status 401" {
			t.Errorf("unexpected error message %q", r.Error())
		}
		if r.ResultCount() != 0 {
			t.Errorf("expected 0 results, got %d", r.ResultCount())
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := NewSearchRecord("  ", SourceCLI, nil, nil).Validate(); err == nil {
			t.Error("expected error for blank query")
		}

		bad := RestoreSearchRecord("id", "q", SearchStatus("maybe"), 0, "", "", SourceCLI, NewSearchRecord("q", SourceCLI, nil, nil).CreatedAt())
		if err := bad.Validate(); err == nil {
			t.Error("expected error for unknown status")
		}
	})

	t.Run("Export", func(t *testing.T) {
		r := NewSearchRecord("daft punk", SourceServer, []Artist{{Name: "Daft Punk"}}, nil)
		r.SetID("abc")

		data, err := json.Marshal(r.Export())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("expected valid JSON, got %v", err)
		}
		if decoded["id"] != "abc" || decoded["source"] != "server" || decoded["top_artist"] != "Daft Punk" {
			t.Errorf("unexpected export %v", decoded)
		}
		if _, ok := decoded["error"]; ok {
			t.Error("expected error to be omitted for successful search")
		}
	})
}
