package models

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"coach-crm/utils"
)

func testRepo(t *testing.T) *ClientRepository {
	t.Helper()

	now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	ids := utils.NewIDGeneratorWith(now, rand.New(rand.NewSource(7)))
	return NewClientRepositoryWith(NewMemoryStorage(), ids, now)
}

func sampleInput() ClientInput {
	return ClientInput{
		FullName:  "Alice Carter",
		Age:       30,
		Gender:    "Female",
		Email:     "alice@example.com",
		Phone:     "123-456-7890",
		Goal:      "Weight Loss",
		StartDate: "2025-01-01",
	}
}

func TestAddThenGetByID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, err := repo.Add(ctx, sampleInput())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Add did not assign an id")
	}
	if created.CreatedAt == "" {
		t.Error("Add did not stamp createdAt")
	}
	if len(created.ExerciseHistory) != 0 {
		t.Errorf("new client history length = %d, want 0", len(created.ExerciseHistory))
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Errorf("GetByID = %+v, want %+v", got, created)
	}

	other, err := repo.Add(ctx, sampleInput())
	if err != nil {
		t.Fatalf("second Add failed: %v", err)
	}
	if other.ID == created.ID {
		t.Errorf("two Adds produced the same id %q", other.ID)
	}
}

func TestUpdateShallowMerge(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, _ := repo.Add(ctx, sampleInput())

	name := "Alicia Carter"
	updated, err := repo.Update(ctx, created.ID, ClientUpdate{FullName: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.FullName != name {
		t.Errorf("FullName = %q, want %q", updated.FullName, name)
	}
	if updated.Email != created.Email || updated.Age != created.Age {
		t.Error("Update changed fields that were not supplied")
	}
	if updated.UpdatedAt == "" {
		t.Error("Update did not stamp updatedAt")
	}
}

func TestUpdateEmptyChangesOnlyTimestamp(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, _ := repo.Add(ctx, sampleInput())

	updated, err := repo.Update(ctx, created.ID, ClientUpdate{})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := *created
	want.UpdatedAt = updated.UpdatedAt
	if !reflect.DeepEqual(*updated, want) {
		t.Errorf("empty update changed fields: got %+v, want %+v", *updated, want)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Update(context.Background(), "client_0_missing", ClientUpdate{})
	if err != ErrNotFound {
		t.Errorf("Update on missing id err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, _ := repo.Add(ctx, sampleInput())
	repo.Add(ctx, sampleInput())

	removed, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Error("Delete returned false for an existing id")
	}

	if _, err := repo.GetByID(ctx, created.ID); err != ErrNotFound {
		t.Errorf("GetByID after delete err = %v, want ErrNotFound", err)
	}

	removed, err = repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if removed {
		t.Error("Delete returned true for a missing id")
	}

	clients, _ := repo.List(ctx)
	if len(clients) != 1 {
		t.Errorf("collection size after deletes = %d, want 1", len(clients))
	}
}

func TestSearch(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	in := sampleInput()
	repo.Add(ctx, in)

	in.FullName = "Bob Stone"
	repo.Add(ctx, in)

	all, err := repo.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("blank query returned %d clients, want 2", len(all))
	}

	matched, _ := repo.Search(ctx, "CART")
	if len(matched) != 1 || matched[0].FullName != "Alice Carter" {
		t.Errorf("Search(CART) = %+v, want only Alice Carter", matched)
	}

	matched, _ = repo.Search(ctx, "  stone ")
	if len(matched) != 1 || matched[0].FullName != "Bob Stone" {
		t.Errorf("Search(stone) = %+v, want only Bob Stone", matched)
	}
}

func TestAddHistoryEntry(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	created, _ := repo.Add(ctx, sampleInput())

	first := EntryInput{Date: "2025-06-01", Title: "Squats", Notes: "3x5", Tags: []string{"legs"}}
	second := EntryInput{Date: "2025-05-01", Title: "Bench", Notes: "5x5"}

	if _, err := repo.AddHistoryEntry(ctx, created.ID, first); err != nil {
		t.Fatalf("AddHistoryEntry failed: %v", err)
	}
	updated, err := repo.AddHistoryEntry(ctx, created.ID, second)
	if err != nil {
		t.Fatalf("AddHistoryEntry failed: %v", err)
	}

	if len(updated.ExerciseHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(updated.ExerciseHistory))
	}
	// Insertion order, not date order.
	if updated.ExerciseHistory[0].Title != "Squats" || updated.ExerciseHistory[1].Title != "Bench" {
		t.Errorf("history order = %q,%q, want Squats,Bench",
			updated.ExerciseHistory[0].Title, updated.ExerciseHistory[1].Title)
	}
	if updated.ExerciseHistory[0].ID == updated.ExerciseHistory[1].ID {
		t.Error("history entries share an id")
	}
	if updated.ExerciseHistory[1].Tags == nil {
		t.Error("entry tags should default to an empty slice")
	}

	if _, err := repo.AddHistoryEntry(ctx, "client_0_missing", first); err != ErrNotFound {
		t.Errorf("AddHistoryEntry on missing id err = %v, want ErrNotFound", err)
	}
}

// fakeRedis implements utils.RedisClient over a map.
type fakeRedis struct {
	data map[string]string
}

func (f *fakeRedis) Load(ctx context.Context, key string) (string, error) {
	val, ok := f.data[key]
	if !ok {
		return "", utils.ErrNoState
	}
	return val, nil
}

func (f *fakeRedis) Save(ctx context.Context, key string, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }
func (f *fakeRedis) Close() error                   { return nil }

func TestRedisStorageRoundTrip(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}}
	storage := NewRedisStorage(fake, "test_clients")
	ctx := context.Background()

	clients := []Client{
		{
			ID: "client_1_aaaaaaaaa", FullName: "Alice Carter", Age: 30,
			Gender: "Female", Email: "alice@example.com", Phone: "1234567",
			Goal: "Weight Loss", StartDate: "2025-01-01", CreatedAt: "2025-01-01T00:00:00Z",
			ExerciseHistory: []ExerciseEntry{
				{ID: "entry_1_bbbbbbbbb", Date: "2025-02-01", Title: "Squats", Notes: "3x5", Tags: []string{"legs", "strength"}},
			},
		},
		{
			ID: "client_2_ccccccccc", FullName: "Bob Stone", Age: 41,
			Gender: "Male", Email: "bob@example.com", Phone: "7654321",
			Goal: "Muscle Gain", StartDate: "2025-03-01", CreatedAt: "2025-03-01T00:00:00Z",
			ExerciseHistory: []ExerciseEntry{},
		},
	}

	if err := storage.SaveAll(ctx, clients); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	loaded, err := storage.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, clients) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", loaded, clients)
	}
}

func TestRedisStorageSoftFailures(t *testing.T) {
	ctx := context.Background()

	empty := NewRedisStorage(&fakeRedis{data: map[string]string{}}, "test_clients")
	clients, err := empty.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll on empty slot failed: %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("empty slot yielded %d clients, want 0", len(clients))
	}

	corrupt := NewRedisStorage(&fakeRedis{data: map[string]string{"test_clients": "{not json"}}, "test_clients")
	clients, err = corrupt.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll on corrupt slot failed: %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("corrupt slot yielded %d clients, want 0", len(clients))
	}
}
