package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
)

var testLimits = config.LimitsConfig{
	MaxFilenameLength:      120,
	MaxFileSize:            1024,
	MaxFileSourceURLLength: 8192,
}

func newFileServiceFixture() (*fakeStore, IFileService) {
	store := newFakeStore()
	svc := NewFileService(newFakeFactory(store), testLimits, nopLogger{})
	return store, svc
}

func TestCreateFile_Success(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)

	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "data.csv"}
	res, err := svc.Create(context.Background(), authUser(owner), meta, []byte("x,y\n1,2\n"))

	assert.NoError(t, err)
	assert.Equal(t, "data.csv", res.Filename)
	assert.Equal(t, notebook.Id, res.NotebookId)
	assert.Equal(t, 8, res.Size)
	assert.Len(t, store.files, 1)
}

func TestCreateFile_NonOwnerRejected(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	other := store.seedUser("mallory")
	notebook := store.seedNotebook(owner)

	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "data.csv"}
	_, err := svc.Create(context.Background(), authUser(other), meta, []byte("1"))

	assert.True(t, serverutils.IsPermissionDenied(err))
	assert.Empty(t, store.files)
}

func TestCreateFile_AnonymousRejected(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)

	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "data.csv"}
	_, err := svc.Create(context.Background(), nil, meta, []byte("1"))

	assert.True(t, serverutils.IsPermissionDenied(err))
}

func TestCreateFile_UnknownNotebook(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")

	meta := &dto.FileUploadMetadata{NotebookId: 999, Filename: "data.csv"}
	_, err := svc.Create(context.Background(), authUser(owner), meta, []byte("1"))

	assert.True(t, serverutils.IsNotFound(err))
}

func TestCreateFile_LimitViolations(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)

	longName := strings.Repeat("a", testLimits.MaxFilenameLength+1)
	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: longName}
	_, err := svc.Create(context.Background(), authUser(owner), meta, []byte("1"))
	assert.True(t, serverutils.IsValidation(err))

	meta = &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "big.bin"}
	tooBig := make([]byte, testLimits.MaxFileSize+1)
	_, err = svc.Create(context.Background(), authUser(owner), meta, tooBig)
	assert.True(t, serverutils.IsValidation(err))
}

func TestUpdateFile_TrimsFilenameAndKeepsContent(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)
	before := time.Now().Add(-time.Hour)
	file := store.seedFile(notebook.Id, "old.csv", []byte("payload"), before)

	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "  renamed.csv  "}
	res, err := svc.Update(context.Background(), authUser(owner), file.Id, meta, nil)

	assert.NoError(t, err)
	assert.Equal(t, "renamed.csv", res.Filename)

	stored := store.files[file.Id]
	assert.Equal(t, []byte("payload"), stored.Content)
	assert.True(t, stored.LastUpdated.After(before))
}

func TestUpdateFile_ReplacesContent(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)
	file := store.seedFile(notebook.Id, "data.csv", []byte("old"), time.Now())

	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "data.csv"}
	res, err := svc.Update(context.Background(), authUser(owner), file.Id, meta, []byte("new bytes"))

	assert.NoError(t, err)
	assert.Equal(t, len("new bytes"), res.Size)
	assert.Equal(t, []byte("new bytes"), store.files[file.Id].Content)
}

func TestUpdateFile_RejectsForeignFile(t *testing.T) {
	store, svc := newFileServiceFixture()
	alice := store.seedUser("alice")
	mallory := store.seedUser("mallory")
	aliceNotebook := store.seedNotebook(alice)
	malloryNotebook := store.seedNotebook(mallory)
	aliceFile := store.seedFile(aliceNotebook.Id, "secret.csv", []byte("x"), time.Now())

	// Mallory declares a notebook they do own, pointing at Alice's file.
	meta := &dto.FileUploadMetadata{NotebookId: malloryNotebook.Id, Filename: "stolen.csv"}
	_, err := svc.Update(context.Background(), authUser(mallory), aliceFile.Id, meta, nil)

	assert.True(t, serverutils.IsPermissionDenied(err))
	assert.Equal(t, "secret.csv", store.files[aliceFile.Id].Filename)
}

func TestUpdateFile_NotFound(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)

	meta := &dto.FileUploadMetadata{NotebookId: notebook.Id, Filename: "data.csv"}
	_, err := svc.Update(context.Background(), authUser(owner), 999, meta, nil)

	assert.True(t, serverutils.IsNotFound(err))
}

func TestDeleteFile_CrossUserRejected(t *testing.T) {
	store, svc := newFileServiceFixture()
	alice := store.seedUser("alice")
	mallory := store.seedUser("mallory")
	notebook := store.seedNotebook(alice)
	file := store.seedFile(notebook.Id, "data.csv", []byte("x"), time.Now())

	err := svc.Delete(context.Background(), authUser(mallory), file.Id)
	assert.True(t, serverutils.IsPermissionDenied(err))
	assert.Len(t, store.files, 1)

	err = svc.Delete(context.Background(), authUser(alice), file.Id)
	assert.NoError(t, err)
	assert.Empty(t, store.files)
}

func TestListFiles_RecentlyUpdatedFirst(t *testing.T) {
	store, svc := newFileServiceFixture()
	owner := store.seedUser("alice")
	notebook := store.seedNotebook(owner)
	other := store.seedNotebook(owner)

	now := time.Now()
	store.seedFile(notebook.Id, "oldest.csv", []byte("1"), now.Add(-2*time.Hour))
	store.seedFile(notebook.Id, "newest.csv", []byte("22"), now)
	store.seedFile(notebook.Id, "middle.csv", []byte("333"), now.Add(-time.Hour))
	store.seedFile(other.Id, "elsewhere.csv", []byte("x"), now)

	files, err := svc.List(context.Background(), notebook.Id)

	assert.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Equal(t, "newest.csv", files[0].Filename)
	assert.Equal(t, "middle.csv", files[1].Filename)
	assert.Equal(t, "oldest.csv", files[2].Filename)
	assert.Equal(t, 2, files[0].Size)
}
