package http

import "github.com/aradsms/users_phonebook/internal/users_service/domain"

// PhoneRecordDTO is the wire form of a phone record.
type PhoneRecordDTO struct {
	ID          int64  `json:"phoneRecordId" validate:"gte=0"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// PhoneBookDTO is the wire form of a phone book.
type PhoneBookDTO struct {
	Records []PhoneRecordDTO `json:"listPhoneRecords" validate:"dive"`
}

// UserDTO is the wire form of a user. On create the userId is ignored.
type UserDTO struct {
	ID        int64        `json:"userId" validate:"gte=0"`
	Name      string       `json:"userName"`
	PhoneBook PhoneBookDTO `json:"phoneBook"`
}

// Query parameter DTOs. Pointers distinguish a missing parameter from an empty one.

type findUsersByNameQuery struct {
	PartName *string `validate:"required"`
}

type phoneRecordIDQuery struct {
	ID *int64 `validate:"required,gte=0"`
}

type phoneNumberQuery struct {
	PhoneNumber *string `validate:"required"`
}

// --- Conversions ---

func toPhoneRecordDTO(rec domain.PhoneRecord) PhoneRecordDTO {
	return PhoneRecordDTO{ID: rec.ID, Name: rec.Name, PhoneNumber: rec.PhoneNumber}
}

func toPhoneRecordDTOs(records []domain.PhoneRecord) []PhoneRecordDTO {
	dtos := make([]PhoneRecordDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toPhoneRecordDTO(rec))
	}
	return dtos
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		PhoneBook: PhoneBookDTO{Records: toPhoneRecordDTOs(u.PhoneBook.Records)},
	}
}

func toUserDTOs(users []*domain.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toUserDTO(u))
	}
	return dtos
}

// toDomain returns nil for a nil DTO, the decoded form of a JSON null body.
func (d *PhoneRecordDTO) toDomain() *domain.PhoneRecord {
	if d == nil {
		return nil
	}
	return &domain.PhoneRecord{ID: d.ID, Name: d.Name, PhoneNumber: d.PhoneNumber}
}

func (d *UserDTO) toDomain() *domain.User {
	if d == nil {
		return nil
	}
	records := make([]domain.PhoneRecord, 0, len(d.PhoneBook.Records))
	for i := range d.PhoneBook.Records {
		records = append(records, *d.PhoneBook.Records[i].toDomain())
	}
	return &domain.User{ID: d.ID, Name: d.Name, PhoneBook: domain.PhoneBook{Records: records}}
}
