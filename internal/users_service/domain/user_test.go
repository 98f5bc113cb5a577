package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneBook_AddAssignsSequentialIDs(t *testing.T) {
	pb := NewPhoneBook()

	assert.Equal(t, int64(1), pb.Add(PhoneRecord{Name: "Bob", PhoneNumber: "555"}))
	assert.Equal(t, int64(2), pb.Add(PhoneRecord{Name: "Eve", PhoneNumber: "556"}))
	require.Len(t, pb.Records, 2)
	assert.Equal(t, PhoneRecord{ID: 1, Name: "Bob", PhoneNumber: "555"}, pb.Records[0])
}

func TestPhoneBook_DeletedIDsAreNotReused(t *testing.T) {
	pb := NewPhoneBook()
	pb.Add(PhoneRecord{Name: "a"})
	id := pb.Add(PhoneRecord{Name: "b"})

	require.True(t, pb.Delete(id))
	assert.False(t, pb.Delete(id))
	assert.Equal(t, int64(3), pb.Add(PhoneRecord{Name: "c"}))
}

func TestPhoneBook_UpdateKeepsPosition(t *testing.T) {
	pb := NewPhoneBook()
	pb.Add(PhoneRecord{Name: "a"})
	pb.Add(PhoneRecord{Name: "b"})
	pb.Add(PhoneRecord{Name: "c"})

	require.True(t, pb.Update(PhoneRecord{ID: 2, Name: "B", PhoneNumber: "1"}))
	assert.Equal(t, PhoneRecord{ID: 2, Name: "B", PhoneNumber: "1"}, pb.Records[1])
	assert.False(t, pb.Update(PhoneRecord{ID: 9}))
}

func TestPhoneBook_FindByNumberIsExact(t *testing.T) {
	pb := NewPhoneBook()
	pb.Add(PhoneRecord{Name: "1", PhoneNumber: "TEST"})
	pb.Add(PhoneRecord{Name: "2", PhoneNumber: "TEST_NUMBER"})

	found := pb.FindByNumber("TEST_NUMBER")
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ID)

	none := pb.FindByNumber("NUMBER")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPhoneBook_Replace(t *testing.T) {
	pb := NewPhoneBook()
	pb.Add(PhoneRecord{Name: "a"})
	pb.Add(PhoneRecord{Name: "b"})
	pb.Add(PhoneRecord{Name: "c"})

	pb.Replace([]PhoneRecord{{ID: 2, Name: "b2"}, {Name: "new"}})

	require.Len(t, pb.Records, 2)
	assert.Equal(t, PhoneRecord{ID: 2, Name: "b2"}, pb.Records[0])
	assert.Equal(t, int64(4), pb.Records[1].ID, "counter must not move backwards")
	assert.Equal(t, int64(5), pb.Add(PhoneRecord{Name: "d"}))

	pb.Replace([]PhoneRecord{{ID: 10, Name: "far"}})
	require.Len(t, pb.Records, 1)
	assert.Equal(t, int64(6), pb.Records[0].ID, "unknown IDs are renumbered")
	assert.Equal(t, int64(7), pb.Add(PhoneRecord{Name: "next"}))
}

func TestPhoneBook_ReplaceRenumbersDuplicateIDs(t *testing.T) {
	pb := NewPhoneBook()
	pb.Add(PhoneRecord{Name: "a"})

	pb.Replace([]PhoneRecord{{ID: 1, Name: "first"}, {ID: 1, Name: "second"}, {ID: 7, Name: "third"}})

	require.Len(t, pb.Records, 3)
	assert.Equal(t, PhoneRecord{ID: 1, Name: "first"}, pb.Records[0])
	assert.Equal(t, int64(2), pb.Records[1].ID)
	assert.Equal(t, int64(3), pb.Records[2].ID)

	assert.True(t, pb.Delete(1))
	_, ok := pb.Get(1)
	assert.False(t, ok, "no second record shares the deleted ID")
}

func TestPhoneBook_ReplaceDoesNotReviveDeletedIDs(t *testing.T) {
	pb := NewPhoneBook()
	id := pb.Add(PhoneRecord{Name: "gone"})
	require.True(t, pb.Delete(id))

	pb.Replace([]PhoneRecord{{ID: id, Name: "Zed"}})

	require.Len(t, pb.Records, 1)
	assert.Equal(t, int64(2), pb.Records[0].ID)
	_, ok := pb.Get(id)
	assert.False(t, ok)
}

func TestPhoneBook_CloneIsIndependent(t *testing.T) {
	pb := NewPhoneBook()
	pb.Add(PhoneRecord{Name: "a"})

	clone := pb.Clone()
	clone.Records[0].Name = "changed"
	clone.Add(PhoneRecord{Name: "b"})

	assert.Equal(t, "a", pb.Records[0].Name)
	assert.Len(t, pb.Records, 1)
	assert.Equal(t, int64(2), pb.Add(PhoneRecord{Name: "c"}))
}

func TestUser_Equal(t *testing.T) {
	a := NewUser("Alice")
	a.ID = 1
	a.PhoneBook.Add(PhoneRecord{Name: "Bob", PhoneNumber: "555"})

	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.PhoneBook.Records[0].PhoneNumber = "556"
	assert.False(t, a.Equal(b))

	c := a.Clone()
	c.Name = "Alicia"
	assert.False(t, a.Equal(c))

	var nilUser *User
	assert.True(t, nilUser.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestNotFoundError(t *testing.T) {
	err := UserNotFound(7)
	assert.EqualError(t, err, "user id-7 not found")
	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	require.ErrorAs(t, PhoneRecordNotFound(3), &nf)
	assert.Equal(t, EntityPhoneRecord, nf.Entity)
	assert.Equal(t, int64(3), nf.ID)

	assert.ErrorIs(t, ErrNilUser, ErrInvalidInput)
	assert.NotErrorIs(t, ErrNilPhoneRecord, ErrNotFound)
}
