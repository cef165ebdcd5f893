package export

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/sandevgo/campusrag/internal/core"
)

type fakeStore struct {
	sessions []core.Session
	history  map[string][]core.Message
}

func (f *fakeStore) CreateSession(context.Context) (core.Session, error) {
	return core.Session{}, nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (core.Session, error) {
	return core.Session{ID: id}, nil
}

func (f *fakeStore) ListSessions(context.Context) ([]core.Session, error) {
	return f.sessions, nil
}

func (f *fakeStore) AddMessage(context.Context, string, string, string) error {
	return nil
}

func (f *fakeStore) GetHistory(_ context.Context, sessionID string) ([]core.Message, error) {
	return f.history[sessionID], nil
}

func testStore() *fakeStore {
	return &fakeStore{
		sessions: []core.Session{{ID: "full"}, {ID: "short"}, {ID: "blank"}},
		history: map[string][]core.Message{
			"full": {
				{Sender: core.RoleUser, Content: "when is the exam?"},
				{Sender: core.RoleAssistant, Content: "May 5."},
				{Sender: core.RoleUser, Content: "where?"},
				{Sender: core.RoleAssistant, Content: "Room 12."},
			},
			"short": {
				{Sender: core.RoleUser, Content: "hello?"},
			},
			"blank": {
				{Sender: core.RoleUser, Content: "   "},
				{Sender: core.RoleAssistant, Content: "ignored"},
			},
		},
	}
}

func TestRunOpenAIFormat(t *testing.T) {
	svc := NewService(testStore(), t.TempDir())

	path, err := svc.Run(context.Background(), ProviderOpenAI)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasSuffix(path, ".jsonl") {
		t.Errorf("expected jsonl file, got %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open training file: %v", err)
	}
	defer f.Close()

	var examples []openAIExample
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ex openAIExample
		if err := json.Unmarshal(scanner.Bytes(), &ex); err != nil {
			t.Fatalf("invalid jsonl line: %v", err)
		}
		examples = append(examples, ex)
	}

	// Two usable pairs from "full"; "short" and "blank" contribute nothing.
	if len(examples) != 2 {
		t.Fatalf("got %d examples, want 2", len(examples))
	}
	first := examples[0]
	if len(first.Messages) != 3 || first.Messages[0].Role != "system" {
		t.Fatalf("unexpected message layout: %+v", first.Messages)
	}
	if first.Messages[1].Content != "when is the exam?" || first.Messages[2].Content != "May 5." {
		t.Errorf("pair content mismatch: %+v", first.Messages)
	}
}

func TestRunLocalFormat(t *testing.T) {
	svc := NewService(testStore(), t.TempDir())

	path, err := svc.Run(context.Background(), ProviderLocal)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read training file: %v", err)
	}

	var examples []localExample
	if err := json.Unmarshal(data, &examples); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("got %d examples, want 2", len(examples))
	}
	if examples[1].Instruction != "where?" || examples[1].Response != "Room 12." {
		t.Errorf("pair content mismatch: %+v", examples[1])
	}
}

func TestRunNoData(t *testing.T) {
	store := &fakeStore{sessions: []core.Session{{ID: "short"}}, history: map[string][]core.Message{
		"short": {{Sender: core.RoleUser, Content: "hello?"}},
	}}

	if _, err := NewService(store, t.TempDir()).Run(context.Background(), ProviderLocal); err == nil {
		t.Fatal("expected error when no pairs exist")
	}
}

func TestRunUnknownProvider(t *testing.T) {
	if _, err := NewService(testStore(), t.TempDir()).Run(context.Background(), "huggingface"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
