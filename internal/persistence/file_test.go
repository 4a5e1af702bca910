package persistence

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beneli93/kvs-backend/internal/models"
	"github.com/Beneli93/kvs-backend/internal/store"
)

func TestLoadMissingFile(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "kunden.json"))
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0", st.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "definitely { not json"},
		{name: "wrong top-level type", content: `["list", "not", "object"]`},
		{name: "wrong value type", content: `{"abc": {"Alter": "dreißig"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kunden.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			st, err := Load(path)
			if err == nil {
				t.Fatal("Load on corrupt file returned no error")
			}
			var perr *PersistenceError
			if !errors.As(err, &perr) {
				t.Errorf("error type = %T, want *PersistenceError", err)
			}
			if st == nil || st.Len() != 0 {
				t.Errorf("corrupt load must still yield an empty store, got %v", st)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kunden.json")

	c := models.NewCustomer("Frau", "Anna", "Müller", "Weiblich", 35, "anna@example.com", []string{"Berlin"}, "10115", "0301234567", "")
	c.Appointments = append(c.Appointments, "01.06.2025 um 10:00 - Checkup")

	st := store.New()
	st.Add(c)
	if err := Save(st, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", loaded.Len())
	}

	got, ok := loaded.Get(c.ID)
	if !ok {
		t.Fatalf("customer %s missing after round trip", c.ID)
	}
	if len(got.Appointments) != 1 || got.Appointments[0] != "01.06.2025 um 10:00 - Checkup" {
		t.Errorf("Appointments = %v, want the original entry", got.Appointments)
	}
	if got.LastName != "Müller" || got.PostalCode != "10115" {
		t.Errorf("fields lost in round trip: %+v", got)
	}
}

func TestSaveFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kunden.json")

	c := models.NewCustomer("Herr", "Max", "Müller", "Männlich", 42, "", []string{"Berlin"}, "10115", "030123", "")
	st := store.New()
	st.Add(c)
	if err := Save(st, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// The file is an object keyed by ID whose values carry the exact
	// record keys.
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	rec, ok := raw[c.ID]
	if !ok {
		t.Fatalf("file not keyed by customer ID, got keys %v", raw)
	}
	for _, key := range []string{"ID", "Anrede", "Vorname", "Nachname", "Geschlecht", "Alter", "E-Mail", "PLZ", "Telefon", "Mobil", "Wohnorte", "Termine"} {
		if _, ok := rec[key]; !ok {
			t.Errorf("record missing key %q", key)
		}
	}
	if rec["Wohnorte"] != "Berlin" {
		t.Errorf("Wohnorte = %v, want Berlin", rec["Wohnorte"])
	}
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kunden.json")

	first := models.NewCustomer("Herr", "Max", "Müller", "Männlich", 42, "", []string{"Berlin"}, "10115", "030123", "")
	st := store.New()
	st.Add(first)
	if err := Save(st, path); err != nil {
		t.Fatal(err)
	}

	st.Remove(first.ID)
	if err := Save(st, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("Len() = %d after saving empty store, want 0", loaded.Len())
	}
}

func TestSavePropagatesWriteErrors(t *testing.T) {
	// A directory path cannot be written as a file.
	if err := Save(store.New(), t.TempDir()); err == nil {
		t.Error("Save to unwritable path returned no error")
	}
}

func TestLoadOrderIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kunden.json")

	st := store.New()
	st.Add(&models.Customer{ID: "bbb", LastName: "Zwei", Residences: []string{}, Appointments: []string{}})
	st.Add(&models.Customer{ID: "aaa", LastName: "Eins", Residences: []string{}, Appointments: []string{}})
	if err := Save(st, path); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		loaded, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		all := loaded.All()
		if len(all) != 2 || all[0].ID != "aaa" || all[1].ID != "bbb" {
			t.Fatalf("load %d order = %v, want [aaa bbb]", i, all)
		}
	}
}
