package students

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/adeebkhans/StudentManagementExe/app/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	mu      sync.Mutex
	files   map[string]string
	saves   int
	deletes []string
	saveErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{files: make(map[string]string)}
}

func (s *fakeImageStore) Save(folder, filename string, content io.Reader) (*storage.SavedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saves++
	id := fmt.Sprintf("%s/file-%d", folder, s.saves)
	s.files[id] = filename
	return &storage.SavedImage{ID: id, URL: "/uploads/" + id}, nil
}

func (s *fakeImageStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	delete(s.files, id)
	return nil
}

func TestAttachAadharImage(t *testing.T) {
	store := newFakeImageStore()
	student := &models.Student{ID: "s1", Name: "A"}

	saved, updated, err := attachAadharImage(store, "s1", "card.png", strings.NewReader("img"),
		func(string) (*models.Student, error) { return student, nil },
		func(id, imageID, imageURL string) (*models.Student, error) {
			student.AadharImageID = imageID
			student.AadharImageURL = imageURL
			return student, nil
		})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.AadharImageID)
	assert.Len(t, store.files, 1)
}

func TestAttachAadharImageRejectsSecondUpload(t *testing.T) {
	store := newFakeImageStore()
	student := &models.Student{ID: "s1", AadharImageID: "aadhaar/existing"}

	_, _, err := attachAadharImage(store, "s1", "card.png", strings.NewReader("img"),
		func(string) (*models.Student, error) { return student, nil },
		func(string, string, string) (*models.Student, error) {
			t.Fatal("record must not run when a reference exists")
			return nil, nil
		})
	assert.ErrorIs(t, err, errImageExists)
	assert.Zero(t, store.saves)
}

func TestAttachAadharImageUnknownStudent(t *testing.T) {
	store := newFakeImageStore()

	_, _, err := attachAadharImage(store, "nope", "card.png", strings.NewReader("img"),
		func(string) (*models.Student, error) { return nil, nil },
		func(string, string, string) (*models.Student, error) { return nil, nil })
	assert.ErrorIs(t, err, errStudentNotFound)
	assert.Zero(t, store.saves)
}

func TestAttachAadharImageRollsBackOnRecordFailure(t *testing.T) {
	store := newFakeImageStore()
	student := &models.Student{ID: "s1"}

	_, _, err := attachAadharImage(store, "s1", "card.png", strings.NewReader("img"),
		func(string) (*models.Student, error) { return student, nil },
		func(string, string, string) (*models.Student, error) {
			return nil, errors.New("db down")
		})
	assert.Error(t, err)
	assert.Empty(t, store.files)
	assert.Len(t, store.deletes, 1)
}

// Concurrent uploads for one student serialize on the student's lock, so the
// write-once check holds: exactly one wins, the rest see the conflict, and no
// loser's file survives.
func TestAttachAadharImageConcurrentWriteOnce(t *testing.T) {
	store := newFakeImageStore()
	student := &models.Student{ID: "s1"}

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = attachAadharImage(store, "s1", "card.png", strings.NewReader("img"),
				func(string) (*models.Student, error) { return student, nil },
				func(id, imageID, imageURL string) (*models.Student, error) {
					student.AadharImageID = imageID
					student.AadharImageURL = imageURL
					return student, nil
				})
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errImageExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 9, conflicts)
	assert.Len(t, store.files, 1)
}

func TestDeleteStudentRecordImageGoesAfterRow(t *testing.T) {
	student := &models.Student{ID: "s1", AadharImageID: "aadhaar/x"}

	removed := []string{}
	deleted, err := deleteStudentRecord(student,
		func(id string) (bool, error) { return true, nil },
		func(id string) error {
			removed = append(removed, id)
			return nil
		})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"aadhaar/x"}, removed)
}

// A failed row delete must leave the stored image alone so the surviving
// record never points at a removed file.
func TestDeleteStudentRecordKeepsImageOnRowFailure(t *testing.T) {
	student := &models.Student{ID: "s1", AadharImageID: "aadhaar/x"}

	_, err := deleteStudentRecord(student,
		func(string) (bool, error) { return false, errors.New("db down") },
		func(string) error {
			t.Fatal("image must not be removed when the row delete fails")
			return nil
		})
	assert.Error(t, err)
}

func TestDeleteStudentRecordMissingRow(t *testing.T) {
	student := &models.Student{ID: "s1", AadharImageID: "aadhaar/x"}

	deleted, err := deleteStudentRecord(student,
		func(string) (bool, error) { return false, nil },
		func(string) error {
			t.Fatal("image must not be removed for a missing row")
			return nil
		})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteStudentRecordNoImage(t *testing.T) {
	student := &models.Student{ID: "s1"}

	deleted, err := deleteStudentRecord(student,
		func(string) (bool, error) { return true, nil },
		func(string) error {
			t.Fatal("no image to remove")
			return nil
		})
	require.NoError(t, err)
	assert.True(t, deleted)
}
