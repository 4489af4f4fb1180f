package session

import (
	"encoding/json"
	"testing"
)

func TestStatePredicates(t *testing.T) {
	var nilState *State
	if nilState.Authenticated() || nilState.HasPending() {
		t.Fatal("nil state should report false for all predicates")
	}

	state := &State{ID: "sid"}
	if state.Authenticated() {
		t.Fatal("state without credentials reported authenticated")
	}

	state.Credentials = &Credentials{}
	if state.Authenticated() {
		t.Fatal("empty access token reported authenticated")
	}

	state.Credentials.AccessToken = "tok"
	if !state.Authenticated() {
		t.Fatal("state with access token not authenticated")
	}

	state.InstallPending(CandidateEvent{Title: "x"}, []Conflict{{ID: "1"}})
	if !state.HasPending() {
		t.Fatal("HasPending false after InstallPending")
	}

	state.ClearPending()
	if state.HasPending() {
		t.Fatal("HasPending true after ClearPending")
	}
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	state := &State{
		ID:          "sid",
		Credentials: &Credentials{AccessToken: "tok", RefreshToken: "ref"},
	}
	state.InstallPending(
		CandidateEvent{Title: "Sync", Start: "2025-06-12T10:00:00Z", End: "2025-06-12T11:00:00Z"},
		[]Conflict{{ID: "ev-1", Title: "Old", Start: "2025-06-12T10:30:00Z", End: "2025-06-12T11:30:00Z"}},
	)

	raw, err := json.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}

	var restored State
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatal(err)
	}

	if !restored.Authenticated() || !restored.HasPending() {
		t.Fatal("restored state lost credentials or pending resolution")
	}
	if restored.Pending.Candidate.Title != "Sync" {
		t.Fatalf("candidate = %+v", restored.Pending.Candidate)
	}
	if len(restored.Pending.Conflicts) != 1 || restored.Pending.Conflicts[0].ID != "ev-1" {
		t.Fatalf("conflicts = %+v", restored.Pending.Conflicts)
	}
}
