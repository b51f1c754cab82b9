package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hitoshi/taskman/internal/model"
)

func TestFileStore_Load_MissingCollection_InitializesEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	var tasks []model.Task
	if err := s.Load(context.Background(), "tasks", &tasks); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}

	// 空配列が即座に永続化されること
	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("expected tasks.json to be created: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("tasks.json = %q, want %q", string(data), "[]\n")
	}
}

func TestFileStore_SaveAndLoad_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	written := []model.Task{
		{ID: 1704067200000, Email: "a@x.com", Title: "t", Content: "c", Category: "cat", Priority: "hi", Tags: "x", Status: "pending", Date: "2024-01-01"},
		{ID: 1704067200001, Email: "b@x.com", Title: "t2", Content: "c2", Category: "cat", Priority: "lo", Tags: "y", Status: "done", Date: "2024-01-02"},
	}
	if err := s.Save(ctx, "tasks", written); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var loaded []model.Task
	if err := s.Load(ctx, "tasks", &loaded); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	if loaded[0] != written[0] {
		t.Errorf("loaded[0] = %+v, want %+v", loaded[0], written[0])
	}
	if loaded[1] != written[1] {
		t.Errorf("loaded[1] = %+v, want %+v", loaded[1], written[1])
	}
}

func TestFileStore_Save_ReplacesWholeCollection(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "users", []model.User{{Email: "a@x.com"}, {Email: "b@x.com"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "users", []model.User{{Email: "c@x.com"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var users []model.User
	if err := s.Load(ctx, "users", &users); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if users[0].Email != "c@x.com" {
		t.Errorf("users[0].Email = %q, want %q", users[0].Email, "c@x.com")
	}
}

func TestFileStore_Load_CorruptFile_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var tasks []model.Task
	if err := s.Load(context.Background(), "tasks", &tasks); err == nil {
		t.Error("expected error for corrupt collection file")
	}
}

func TestFileStore_CollectionsAreIndependent(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "users", []model.User{{Email: "a@x.com"}}); err != nil {
		t.Fatalf("Save users: %v", err)
	}
	if err := s.Save(ctx, "tasks", []model.Task{{ID: 1, Email: "a@x.com"}}); err != nil {
		t.Fatalf("Save tasks: %v", err)
	}

	var users []model.User
	if err := s.Load(ctx, "users", &users); err != nil {
		t.Fatalf("Load users: %v", err)
	}
	var tasks []model.Task
	if err := s.Load(ctx, "tasks", &tasks); err != nil {
		t.Fatalf("Load tasks: %v", err)
	}

	if len(users) != 1 || len(tasks) != 1 {
		t.Errorf("len(users) = %d, len(tasks) = %d, want 1 and 1", len(users), len(tasks))
	}
}

func TestMemoryStore_Load_MissingCollection_ReturnsEmpty(t *testing.T) {
	s := NewMemoryStore()

	var tasks []model.Task
	if err := s.Load(context.Background(), "tasks", &tasks); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(tasks))
	}
}

func TestMemoryStore_SaveAndLoad_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Save(ctx, "users", []model.User{{Name: "A", Email: "a@x.com", Age: 30}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var users []model.User
	if err := s.Load(ctx, "users", &users); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if users[0].Name != "A" || users[0].Email != "a@x.com" || users[0].Age != 30 {
		t.Errorf("users[0] = %+v, want Name=A Email=a@x.com Age=30", users[0])
	}
}
