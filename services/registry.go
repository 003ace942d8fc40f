package services

import (
	"sync"

	"github.com/google/uuid"

	"planejaplus/models"
	"planejaplus/storage"
)

// Registry hands out the per-user store and calendar services. Each user's
// dataset is loaded lazily on first access and kept for the lifetime of the
// process; switching identity simply resolves a different pair.
type Registry struct {
	mu        sync.Mutex
	store     *storage.Store
	namespace string
	auth      *AuthService
	stores    map[uuid.UUID]*StoreService
	calendars map[uuid.UUID]*CalendarService
}

func NewRegistry(store *storage.Store, namespace string, auth *AuthService) *Registry {
	return &Registry{
		store:     store,
		namespace: namespace,
		auth:      auth,
		stores:    make(map[uuid.UUID]*StoreService),
		calendars: make(map[uuid.UUID]*CalendarService),
	}
}

// Store returns the dataset store for userID, creating it on first use.
func (r *Registry) Store(userID uuid.UUID) *StoreService {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		return s
	}
	owner, ok := r.auth.User(userID)
	if !ok {
		owner = models.User{ID: userID, Name: "Unknown", Role: "member"}
	}
	s := NewStoreService(r.store, r.namespace, owner)
	r.stores[userID] = s
	return s
}

// Calendar returns the calendar store for userID, creating it on first use.
func (r *Registry) Calendar(userID uuid.UUID) *CalendarService {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.calendars[userID]; ok {
		return c
	}
	c := NewCalendarService(r.store, r.namespace, userID)
	r.calendars[userID] = c
	return c
}
