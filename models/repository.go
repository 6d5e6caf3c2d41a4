package models

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"coach-crm/utils"
)

var ErrNotFound = errors.New("record not found")

// Repository is the CRUD surface over the client collection. Every
// mutation is a full read-modify-write of the stored blob: there is no
// partial update, and the last writer wins across processes.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Add(ctx context.Context, input ClientInput) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, id string, upd ClientUpdate) (*Client, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string) ([]Client, error)
	AddHistoryEntry(ctx context.Context, clientID string, input EntryInput) (*Client, error)
}

// ClientInput carries the validated fields for a new client.
type ClientInput struct {
	FullName  string
	Age       int
	Gender    string
	Email     string
	Phone     string
	Goal      string
	GoalText  string
	StartDate string
}

// ClientUpdate is a sparse update: nil means "leave unchanged", a
// pointer to the zero value clears the field.
type ClientUpdate struct {
	FullName  *string
	Age       *int
	Gender    *string
	Email     *string
	Phone     *string
	Goal      *string
	GoalText  *string
	StartDate *string
}

// EntryInput carries the fields for a new exercise history entry.
type EntryInput struct {
	Date  string
	Title string
	Notes string
	Tags  []string
}

type ClientRepository struct {
	storage Storage
	ids     *utils.IDGenerator
	now     func() time.Time

	// Serializes read-modify-write cycles within this process. Writers
	// in other processes are not coordinated.
	mu sync.Mutex
}

func NewClientRepository(storage Storage) *ClientRepository {
	return &ClientRepository{
		storage: storage,
		ids:     utils.NewIDGenerator(),
		now:     time.Now,
	}
}

// NewClientRepositoryWith lets tests pin the id generator and the clock.
func NewClientRepositoryWith(storage Storage, ids *utils.IDGenerator, now func() time.Time) *ClientRepository {
	return &ClientRepository{storage: storage, ids: ids, now: now}
}

func (r *ClientRepository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

func (r *ClientRepository) List(ctx context.Context) ([]Client, error) {
	return r.storage.LoadAll(ctx)
}

func (r *ClientRepository) Add(ctx context.Context, input ClientInput) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.storage.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	client := Client{
		ID:              r.ids.Generate("client"),
		FullName:        input.FullName,
		Age:             input.Age,
		Gender:          input.Gender,
		Email:           input.Email,
		Phone:           input.Phone,
		Goal:            input.Goal,
		GoalText:        input.GoalText,
		StartDate:       input.StartDate,
		CreatedAt:       r.timestamp(),
		ExerciseHistory: []ExerciseEntry{},
	}

	clients = append(clients, client)
	if err := r.storage.SaveAll(ctx, clients); err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	clients, err := r.storage.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *ClientRepository) Update(ctx context.Context, id string, upd ClientUpdate) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(ctx, id, func(c *Client) {
		applyUpdate(c, upd)
	})
}

// update locates a client, applies mutate, stamps updatedAt and rewrites
// the whole collection. Callers must hold r.mu.
func (r *ClientRepository) update(ctx context.Context, id string, mutate func(*Client)) (*Client, error) {
	clients, err := r.storage.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range clients {
		if clients[i].ID != id {
			continue
		}

		mutate(&clients[i])
		clients[i].UpdatedAt = r.timestamp()

		if err := r.storage.SaveAll(ctx, clients); err != nil {
			return nil, err
		}
		return &clients[i], nil
	}

	return nil, ErrNotFound
}

func applyUpdate(c *Client, upd ClientUpdate) {
	if upd.FullName != nil {
		c.FullName = *upd.FullName
	}
	if upd.Age != nil {
		c.Age = *upd.Age
	}
	if upd.Gender != nil {
		c.Gender = *upd.Gender
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Goal != nil {
		c.Goal = *upd.Goal
	}
	if upd.GoalText != nil {
		c.GoalText = *upd.GoalText
	}
	if upd.StartDate != nil {
		c.StartDate = *upd.StartDate
	}
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clients, err := r.storage.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	for i := range clients {
		if clients[i].ID == id {
			clients = append(clients[:i], clients[i+1:]...)
			if err := r.storage.SaveAll(ctx, clients); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

func (r *ClientRepository) Search(ctx context.Context, query string) ([]Client, error) {
	clients, err := r.storage.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return clients, nil
	}

	matched := make([]Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.FullName), query) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *ClientRepository) AddHistoryEntry(ctx context.Context, clientID string, input EntryInput) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	entry := ExerciseEntry{
		ID:    r.ids.Generate("entry"),
		Date:  input.Date,
		Title: input.Title,
		Notes: input.Notes,
		Tags:  tags,
	}

	return r.update(ctx, clientID, func(c *Client) {
		c.ExerciseHistory = append(c.ExerciseHistory, entry)
	})
}
