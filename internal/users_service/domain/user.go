package domain

import "slices"

// PhoneRecord is a single contact entry inside a user's phone book.
type PhoneRecord struct {
	ID          int64
	Name        string
	PhoneNumber string
}

// PhoneBook holds the ordered records of one user together with the counter
// used to hand out record IDs. IDs are unique within the book only.
type PhoneBook struct {
	Records []PhoneRecord
	lastID  int64
}

// NewPhoneBook returns an empty phone book whose first record will get ID 1.
func NewPhoneBook() PhoneBook {
	return PhoneBook{Records: []PhoneRecord{}}
}

// Add assigns the next record ID to rec, appends it and returns the ID.
func (pb *PhoneBook) Add(rec PhoneRecord) int64 {
	pb.lastID++
	rec.ID = pb.lastID
	pb.Records = append(pb.Records, rec)
	return rec.ID
}

// Index returns the position of the record with the given ID, or -1.
func (pb *PhoneBook) Index(id int64) int {
	for i := range pb.Records {
		if pb.Records[i].ID == id {
			return i
		}
	}
	return -1
}

func (pb *PhoneBook) Get(id int64) (PhoneRecord, bool) {
	i := pb.Index(id)
	if i < 0 {
		return PhoneRecord{}, false
	}
	return pb.Records[i], true
}

func (pb *PhoneBook) Delete(id int64) bool {
	i := pb.Index(id)
	if i < 0 {
		return false
	}
	pb.Records = slices.Delete(pb.Records, i, i+1)
	return true
}

// Update replaces the record carrying rec.ID in place.
func (pb *PhoneBook) Update(rec PhoneRecord) bool {
	i := pb.Index(rec.ID)
	if i < 0 {
		return false
	}
	pb.Records[i] = rec
	return true
}

// FindByNumber returns the records whose phone number equals number exactly.
func (pb *PhoneBook) FindByNumber(number string) []PhoneRecord {
	found := []PhoneRecord{}
	for _, rec := range pb.Records {
		if rec.PhoneNumber == number {
			found = append(found, rec)
		}
	}
	return found
}

// Replace swaps the whole record list for records. An incoming ID is kept only
// if it names a record currently in the book and has not appeared earlier in
// records; every other record gets a fresh ID. IDs stay unique within the book
// and deleted IDs stay retired.
func (pb *PhoneBook) Replace(records []PhoneRecord) {
	current := make(map[int64]struct{}, len(pb.Records))
	for _, rec := range pb.Records {
		current[rec.ID] = struct{}{}
	}
	pb.Records = make([]PhoneRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := current[rec.ID]; ok {
			delete(current, rec.ID)
		} else {
			pb.lastID++
			rec.ID = pb.lastID
		}
		pb.Records = append(pb.Records, rec)
	}
}

// Equal compares the record sequences; the ID counter is not part of equality.
func (pb PhoneBook) Equal(other PhoneBook) bool {
	return slices.Equal(pb.Records, other.Records)
}

func (pb PhoneBook) Clone() PhoneBook {
	records := make([]PhoneRecord, len(pb.Records))
	copy(records, pb.Records)
	return PhoneBook{Records: records, lastID: pb.lastID}
}

// User owns exactly one phone book; the book is dropped together with the user.
type User struct {
	ID        int64
	Name      string
	PhoneBook PhoneBook
}

// NewUser builds a user with an empty phone book. The ID is assigned by the store.
func NewUser(name string) *User {
	return &User{Name: name, PhoneBook: NewPhoneBook()}
}

// Equal reports whether both users have the same ID, name and phone book contents.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID && u.Name == other.Name && u.PhoneBook.Equal(other.PhoneBook)
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Name: u.Name, PhoneBook: u.PhoneBook.Clone()}
}
