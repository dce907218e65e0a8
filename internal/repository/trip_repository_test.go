package repository_test

import (
	"errors"
	"testing"

	"github.com/naomimt/TravelMate/internal/repository"
)

func TestTripCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTripRepo(db)

	created, err := repo.Create(ctx, "Bali Escape", 1299.00, "10 days", "Beaches and temples.", 12)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if got.Title != "Bali Escape" || got.Price != 1299.00 || got.AvailableSlots != 12 {
		t.Errorf("got %+v, want title/price/slots back as stored", got)
	}
	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing trip err = %v, want ErrNotFound", err)
	}
}

func TestTripUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTripRepo(db)

	created, err := repo.Create(ctx, "Bali Escape", 1299.00, "10 days", "Beaches.", 12)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	price := 999.00
	slots := 20
	got, err := repo.Update(ctx, created.ID, repository.TripUpdate{Price: &price, AvailableSlots: &slots})
	if err != nil {
		t.Fatalf("update trip: %v", err)
	}
	if got.Price != 999.00 || got.AvailableSlots != 20 {
		t.Errorf("updated price/slots = %v/%d, want 999/20", got.Price, got.AvailableSlots)
	}
	// Untouched fields survive a partial update.
	if got.Title != "Bali Escape" || got.Duration != "10 days" {
		t.Errorf("unchanged fields clobbered: %+v", got)
	}

	if _, err := repo.Update(ctx, 9999, repository.TripUpdate{Price: &price}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update missing err = %v, want ErrNotFound", err)
	}
}

func TestTripDelete(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewTripRepo(db)

	created, err := repo.Create(ctx, "Bali Escape", 1299.00, "10 days", "Beaches.", 12)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete trip: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("double delete err = %v, want ErrNotFound", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len(list) = %d, want 0", len(list))
	}
}
