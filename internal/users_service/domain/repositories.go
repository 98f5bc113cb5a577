package domain

import "context"

// UsersStore defines the interface for managing users and their phone books.
// Implementations return owned copies; lookups by ID that miss return a *NotFoundError.
type UsersStore interface {
	ListUsers(ctx context.Context) ([]*User, error)
	AddUser(ctx context.Context, user *User) (int64, error) // sets the assigned IDs on user
	GetUser(ctx context.Context, id int64) (*User, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
	UpdateUser(ctx context.Context, user *User) (int64, error) // full replacement, matched by user.ID
	FindUsersByName(ctx context.Context, partName string) ([]*User, error)

	ListPhoneRecords(ctx context.Context, userID int64) ([]PhoneRecord, error)
	AddPhoneRecord(ctx context.Context, userID int64, record *PhoneRecord) (int64, error) // sets record.ID
	GetPhoneRecord(ctx context.Context, userID, recordID int64) (*PhoneRecord, error)
	DeletePhoneRecord(ctx context.Context, userID, recordID int64) (int64, error)
	UpdatePhoneRecord(ctx context.Context, userID int64, record *PhoneRecord) (int64, error)
	FindPhoneRecordsByNumber(ctx context.Context, userID int64, number string) ([]PhoneRecord, error)
}
