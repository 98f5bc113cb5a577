package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/aradsms/users_phonebook/internal/users_service/domain"
)

// UsersStore keeps users in insertion order and resolves IDs by linear scan.
// A single RWMutex guards the slice, the user counter and every phone book.
type UsersStore struct {
	mu         sync.RWMutex
	lastUserID int64
	users      []*domain.User
}

var _ domain.UsersStore = (*UsersStore)(nil)

func NewUsersStore() *UsersStore {
	return &UsersStore{users: []*domain.User{}}
}

// indexOf must be called with s.mu held.
func (s *UsersStore) indexOf(id int64) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// userLocked returns the stored user or a not-found error. Callers hold s.mu.
func (s *UsersStore) userLocked(id int64) (*domain.User, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.UserNotFound(id)
	}
	return s.users[i], nil
}

func (s *UsersStore) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.Clone())
	}
	return users, nil
}

// AddUser stores a copy of user under the next user ID. Records carried by
// user are added to a fresh phone book, so they are numbered from 1.
func (s *UsersStore) AddUser(_ context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrNilUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUserID++
	stored := &domain.User{ID: s.lastUserID, Name: user.Name, PhoneBook: domain.NewPhoneBook()}
	for _, rec := range user.PhoneBook.Records {
		stored.PhoneBook.Add(rec)
	}
	s.users = append(s.users, stored)

	*user = *stored.Clone()
	return stored.ID, nil
}

func (s *UsersStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, err := s.userLocked(id)
	if err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

func (s *UsersStore) DeleteUser(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return 0, domain.UserNotFound(id)
	}
	s.users = slices.Delete(s.users, i, i+1)
	return id, nil
}

// UpdateUser replaces the user with the same ID in place. The stored phone
// book keeps its counter; see domain.PhoneBook.Replace.
func (s *UsersStore) UpdateUser(_ context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrNilUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.userLocked(user.ID)
	if err != nil {
		return 0, err
	}
	book := current.PhoneBook.Clone()
	book.Replace(user.PhoneBook.Records)
	s.users[s.indexOf(user.ID)] = &domain.User{ID: user.ID, Name: user.Name, PhoneBook: book}
	return user.ID, nil
}

func (s *UsersStore) FindUsersByName(_ context.Context, partName string) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := []*domain.User{}
	for _, u := range s.users {
		if strings.Contains(u.Name, partName) {
			found = append(found, u.Clone())
		}
	}
	return found, nil
}

func (s *UsersStore) ListPhoneRecords(_ context.Context, userID int64) ([]domain.PhoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, err := s.userLocked(userID)
	if err != nil {
		return nil, err
	}
	return u.PhoneBook.Clone().Records, nil
}

func (s *UsersStore) AddPhoneRecord(_ context.Context, userID int64, record *domain.PhoneRecord) (int64, error) {
	if record == nil {
		return 0, domain.ErrNilPhoneRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.userLocked(userID)
	if err != nil {
		return 0, err
	}
	record.ID = u.PhoneBook.Add(*record)
	return record.ID, nil
}

func (s *UsersStore) GetPhoneRecord(_ context.Context, userID, recordID int64) (*domain.PhoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, err := s.userLocked(userID)
	if err != nil {
		return nil, err
	}
	rec, ok := u.PhoneBook.Get(recordID)
	if !ok {
		return nil, domain.PhoneRecordNotFound(recordID)
	}
	return &rec, nil
}

func (s *UsersStore) DeletePhoneRecord(_ context.Context, userID, recordID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.userLocked(userID)
	if err != nil {
		return 0, err
	}
	if !u.PhoneBook.Delete(recordID) {
		return 0, domain.PhoneRecordNotFound(recordID)
	}
	return recordID, nil
}

func (s *UsersStore) UpdatePhoneRecord(_ context.Context, userID int64, record *domain.PhoneRecord) (int64, error) {
	if record == nil {
		return 0, domain.ErrNilPhoneRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.userLocked(userID)
	if err != nil {
		return 0, err
	}
	if !u.PhoneBook.Update(*record) {
		return 0, domain.PhoneRecordNotFound(record.ID)
	}
	return record.ID, nil
}

func (s *UsersStore) FindPhoneRecordsByNumber(_ context.Context, userID int64, number string) ([]domain.PhoneRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, err := s.userLocked(userID)
	if err != nil {
		return nil, err
	}
	return u.PhoneBook.FindByNumber(number), nil
}
