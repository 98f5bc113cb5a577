package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aradsms/users_phonebook/internal/users_service/domain"
)

// Application provides user and phone book operations on top of a domain.UsersStore.
type Application struct {
	store  domain.UsersStore
	logger *slog.Logger
}

// NewApplication creates a new Application instance.
func NewApplication(store domain.UsersStore, logger *slog.Logger) *Application {
	return &Application{
		store:  store,
		logger: logger,
	}
}

// finish records metrics for operation and logs err at a level matching its kind.
func (a *Application) finish(ctx context.Context, operation string, start time.Time, err error, attrs ...any) {
	observe(operation, start, err)
	if err == nil {
		return
	}
	attrs = append(attrs, "operation", operation, "error", err)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		a.logger.DebugContext(ctx, "Users operation rejected", attrs...)
	default:
		a.logger.ErrorContext(ctx, "Users operation failed", attrs...)
	}
}

// --- User Methods ---

func (a *Application) ListUsers(ctx context.Context) (users []*domain.User, err error) {
	defer func(start time.Time) { a.finish(ctx, "list_users", start, err) }(time.Now())
	return a.store.ListUsers(ctx)
}

// CreateUser stores user and returns it with its assigned IDs.
func (a *Application) CreateUser(ctx context.Context, user *domain.User) (created *domain.User, err error) {
	defer func(start time.Time) { a.finish(ctx, "create_user", start, err) }(time.Now())

	id, err := a.store.AddUser(ctx, user)
	if err != nil {
		return nil, err
	}
	a.logger.InfoContext(ctx, "User created", "user_id", id)
	return user, nil
}

func (a *Application) GetUser(ctx context.Context, id int64) (user *domain.User, err error) {
	defer func(start time.Time) { a.finish(ctx, "get_user", start, err, "user_id", id) }(time.Now())
	return a.store.GetUser(ctx, id)
}

// DeleteUser removes the user and returns the value it had before removal.
// The read and the removal are separate store calls; a concurrent delete in
// between surfaces as not found.
func (a *Application) DeleteUser(ctx context.Context, id int64) (deleted *domain.User, err error) {
	defer func(start time.Time) { a.finish(ctx, "delete_user", start, err, "user_id", id) }(time.Now())

	user, err := a.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err = a.store.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	a.logger.InfoContext(ctx, "User deleted", "user_id", id)
	return user, nil
}

// UpdateUser fully replaces the stored user with the same ID. Partial updates
// are not supported: omitted fields are stored as their zero values.
func (a *Application) UpdateUser(ctx context.Context, user *domain.User) (updated *domain.User, err error) {
	defer func(start time.Time) { a.finish(ctx, "update_user", start, err) }(time.Now())

	id, err := a.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return a.store.GetUser(ctx, id)
}

func (a *Application) FindUsersByName(ctx context.Context, partName string) (users []*domain.User, err error) {
	defer func(start time.Time) { a.finish(ctx, "find_users_by_name", start, err) }(time.Now())
	return a.store.FindUsersByName(ctx, partName)
}

// --- Phone Record Methods ---

func (a *Application) ListPhoneRecords(ctx context.Context, userID int64) (records []domain.PhoneRecord, err error) {
	defer func(start time.Time) { a.finish(ctx, "list_phone_records", start, err, "user_id", userID) }(time.Now())
	return a.store.ListPhoneRecords(ctx, userID)
}

// CreatePhoneRecord adds record to the user's phone book and returns it with its new ID.
func (a *Application) CreatePhoneRecord(ctx context.Context, userID int64, record *domain.PhoneRecord) (created *domain.PhoneRecord, err error) {
	defer func(start time.Time) { a.finish(ctx, "create_phone_record", start, err, "user_id", userID) }(time.Now())

	id, err := a.store.AddPhoneRecord(ctx, userID, record)
	if err != nil {
		return nil, err
	}
	a.logger.InfoContext(ctx, "Phone record created", "user_id", userID, "phone_record_id", id)
	return record, nil
}

func (a *Application) GetPhoneRecord(ctx context.Context, userID, recordID int64) (record *domain.PhoneRecord, err error) {
	defer func(start time.Time) {
		a.finish(ctx, "get_phone_record", start, err, "user_id", userID, "phone_record_id", recordID)
	}(time.Now())
	return a.store.GetPhoneRecord(ctx, userID, recordID)
}

func (a *Application) DeletePhoneRecord(ctx context.Context, userID, recordID int64) (deleted *domain.PhoneRecord, err error) {
	defer func(start time.Time) {
		a.finish(ctx, "delete_phone_record", start, err, "user_id", userID, "phone_record_id", recordID)
	}(time.Now())

	record, err := a.store.GetPhoneRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	if _, err = a.store.DeletePhoneRecord(ctx, userID, recordID); err != nil {
		return nil, err
	}
	return record, nil
}

func (a *Application) UpdatePhoneRecord(ctx context.Context, userID int64, record *domain.PhoneRecord) (updated *domain.PhoneRecord, err error) {
	defer func(start time.Time) { a.finish(ctx, "update_phone_record", start, err, "user_id", userID) }(time.Now())

	id, err := a.store.UpdatePhoneRecord(ctx, userID, record)
	if err != nil {
		return nil, err
	}
	return a.store.GetPhoneRecord(ctx, userID, id)
}

func (a *Application) FindPhoneRecordsByNumber(ctx context.Context, userID int64, number string) (records []domain.PhoneRecord, err error) {
	defer func(start time.Time) {
		a.finish(ctx, "find_phone_records_by_number", start, err, "user_id", userID)
	}(time.Now())
	return a.store.FindPhoneRecordsByNumber(ctx, userID, number)
}
