package repository_test

import (
	"errors"
	"testing"

	"github.com/naomimt/TravelMate/internal/repository"
)

func TestContactCreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewContactRepo(db)

	first, err := repo.Create(ctx, "Alice", "alice@test.com", "How do I rebook?")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if first.Read {
		t.Error("new contact should be unread")
	}
	second, err := repo.Create(ctx, "Bob", "bob@test.com", "Group discounts?")
	if err != nil {
		t.Fatalf("create second contact: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("first item id = %d, want newest %d", list[0].ID, second.ID)
	}
}

// MarkRead is idempotent: flagging an already-read message succeeds.
func TestContactMarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewContactRepo(db)

	m, err := repo.Create(ctx, "Alice", "alice@test.com", "hi")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	for i := 0; i < 2; i++ {
		got, err := repo.MarkRead(ctx, m.ID)
		if err != nil {
			t.Fatalf("mark read (call %d): %v", i+1, err)
		}
		if !got.Read {
			t.Errorf("read = false after call %d, want true", i+1)
		}
	}
	if _, err := repo.MarkRead(ctx, 9999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("mark read missing err = %v, want ErrNotFound", err)
	}
}

func TestContactDelete(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewContactRepo(db)

	m, err := repo.Create(ctx, "Alice", "alice@test.com", "hi")
	if err != nil {
		t.Fatalf("create contact: %v", err)
	}
	if err := repo.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, m.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get deleted err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, m.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("double delete err = %v, want ErrNotFound", err)
	}
}
