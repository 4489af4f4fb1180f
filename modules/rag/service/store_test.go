package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ridhima028/ai-calendar-assistant/core/config"
)

func corpus() []Document {
	return []Document{
		{ID: "scheduling", Title: "Scheduling", Text: "Events are created on your primary calendar. Overlapping events trigger a conflict prompt."},
		{ID: "deleting", Title: "Deleting events", Text: "Ask to delete an event by title, time or day. Ambiguous requests list the candidates."},
		{ID: "auth", Title: "Authentication", Text: "Login uses your Google account. Sessions expire after a day."},
	}
}

func TestRetrieve(t *testing.T) {
	store := NewStore(config.RAGConfig{})
	store.SetDocuments(corpus())

	tests := []struct {
		name  string
		query string
		k     int
		want  []string
	}{
		{"conflict question", "what happens on a conflict?", 3, []string{"scheduling"}},
		{"delete question ranks delete doc first", "how do I delete an event", 2, []string{"deleting", "scheduling"}},
		{"no overlap", "weather forecast", 3, nil},
		{"k truncates", "event", 1, []string{"scheduling"}},
		{"short words ignored", "a on by", 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Retrieve(tt.query, tt.k)
			if len(got) != len(tt.want) {
				t.Fatalf("retrieved %d docs, want %d (%+v)", len(got), len(tt.want), got)
			}
			for i, doc := range got {
				if doc.ID != tt.want[i] {
					t.Fatalf("doc[%d] = %s, want %s", i, doc.ID, tt.want[i])
				}
			}
		})
	}
}

func TestRetrieveEmptyStore(t *testing.T) {
	store := NewStore(config.RAGConfig{})
	if got := store.Retrieve("anything", 3); got != nil {
		t.Fatalf("empty store retrieved %+v", got)
	}
}

func TestReloadFromDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"faq.md":       "# FAQ\nHow conflicts are handled.",
		"notes.txt":    "Assistant usage notes.",
		"ignored.json": `{"not": "corpus"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store := NewStore(config.RAGConfig{DocsDir: dir})
	if err := store.Reload(t.Context()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.Size() != 2 {
		t.Fatalf("loaded %d documents, want 2", store.Size())
	}
}

func TestReloadMissingDirIsEmpty(t *testing.T) {
	store := NewStore(config.RAGConfig{DocsDir: filepath.Join(t.TempDir(), "absent")})
	if err := store.Reload(t.Context()); err != nil {
		t.Fatalf("Reload on missing dir: %v", err)
	}
	if store.Size() != 0 {
		t.Fatalf("size = %d, want 0", store.Size())
	}
}
