package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"iomd-notebook-be/internal/entity"
	"iomd-notebook-be/internal/repository/contract"
	"iomd-notebook-be/internal/repository/specification"
	"iomd-notebook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// fakeStore is a single in-memory dataset shared by all fake repositories.
// Specifications are interpreted by type-switching on the concrete
// specification structs.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]entity.User
	notebooks map[int64]entity.Notebook
	revisions map[int64]entity.NotebookRevision
	files     map[int64]entity.File
	sources   map[int64]entity.FileSource
	ops       map[int64]entity.FileUpdateOperation
	nextId    int64

	failRevisionCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]entity.User{},
		notebooks: map[int64]entity.Notebook{},
		revisions: map[int64]entity.NotebookRevision{},
		files:     map[int64]entity.File{},
		sources:   map[int64]entity.FileSource{},
		ops:       map[int64]entity.FileUpdateOperation{},
	}
}

func (s *fakeStore) newId() int64 {
	s.nextId++
	return s.nextId
}

func (s *fakeStore) snapshot() *fakeStore {
	clone := newFakeStore()
	clone.nextId = s.nextId
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.notebooks {
		clone.notebooks[k] = v
	}
	for k, v := range s.revisions {
		clone.revisions[k] = v
	}
	for k, v := range s.files {
		clone.files[k] = v
	}
	for k, v := range s.sources {
		clone.sources[k] = v
	}
	for k, v := range s.ops {
		clone.ops[k] = v
	}
	return clone
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.users = snap.users
	s.notebooks = snap.notebooks
	s.revisions = snap.revisions
	s.files = snap.files
	s.sources = snap.sources
	s.ops = snap.ops
	s.nextId = snap.nextId
}

// Seed helpers

func (s *fakeStore) seedUser(username string) *entity.User {
	u := entity.User{Id: uuid.New(), Username: username, FullName: username + " user"}
	s.users[u.Id] = u
	return &u
}

func (s *fakeStore) seedNotebook(owner *entity.User) *entity.Notebook {
	n := entity.Notebook{Id: s.newId(), OwnerId: owner.Id, CreatedAt: time.Now()}
	s.notebooks[n.Id] = n
	return &n
}

func (s *fakeStore) seedRevision(notebookId int64, title, content string, createdAt time.Time) *entity.NotebookRevision {
	r := entity.NotebookRevision{
		Id:         s.newId(),
		NotebookId: notebookId,
		Title:      title,
		Content:    content,
		IsDraft:    true,
		CreatedAt:  createdAt,
	}
	s.revisions[r.Id] = r
	return &r
}

func (s *fakeStore) seedFile(notebookId int64, filename string, content []byte, lastUpdated time.Time) *entity.File {
	f := entity.File{
		Id:          s.newId(),
		NotebookId:  notebookId,
		Filename:    filename,
		Content:     content,
		LastUpdated: lastUpdated,
	}
	s.files[f.Id] = f
	return &f
}

func (s *fakeStore) seedSource(notebookId int64, filename, url string, interval *time.Duration) *entity.FileSource {
	src := entity.FileSource{
		Id:             s.newId(),
		NotebookId:     notebookId,
		Filename:       filename,
		URL:            url,
		UpdateInterval: interval,
	}
	s.sources[src.Id] = src
	return &src
}

func (s *fakeStore) seedOperation(sourceId int64, started time.Time, status entity.OperationStatus) *entity.FileUpdateOperation {
	op := entity.FileUpdateOperation{
		Id:           s.newId(),
		FileSourceId: sourceId,
		Started:      started,
		Status:       status,
	}
	s.ops[op.Id] = op
	return &op
}

// authUser returns an authenticated identity snapshot for a seeded user.
func authUser(u *entity.User) *entity.User {
	return &entity.User{
		Id:            u.Id,
		Username:      u.Username,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		Authenticated: true,
	}
}

// Unit of work

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

func newFakeFactory(store *fakeStore) unitofwork.RepositoryFactory {
	return &fakeFactory{store: store}
}

type fakeUnitOfWork struct {
	store *fakeStore
	snap  *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.snap = u.store.snapshot()
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.snap = nil
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.snap != nil {
		u.store.restore(u.snap)
		u.snap = nil
	}
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) NotebookRepository() contract.NotebookRepository {
	return &fakeNotebookRepo{store: u.store}
}

func (u *fakeUnitOfWork) RevisionRepository() contract.RevisionRepository {
	return &fakeRevisionRepo{store: u.store}
}

func (u *fakeUnitOfWork) FileRepository() contract.FileRepository {
	return &fakeFileRepo{store: u.store}
}

func (u *fakeUnitOfWork) FileSourceRepository() contract.FileSourceRepository {
	return &fakeFileSourceRepo{store: u.store}
}

func (u *fakeUnitOfWork) FileUpdateOperationRepository() contract.FileUpdateOperationRepository {
	return &fakeOperationRepo{store: u.store}
}

// Users

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		for _, u := range r.store.users {
		if matchUser(&u, specs) {
			match := u
			return &match, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, u := range r.store.users {
		if matchUser(&u, specs) {
			n++
		}
	}
	return n, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByUserID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		}
	}
	return true
}

// Notebooks

type fakeNotebookRepo struct {
	store *fakeStore
}

func (r *fakeNotebookRepo) Create(ctx context.Context, notebook *entity.Notebook) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		notebook.Id = r.store.newId()
	if notebook.CreatedAt.IsZero() {
		notebook.CreatedAt = time.Now()
	}
	r.store.notebooks[notebook.Id] = *notebook
	return nil
}

func (r *fakeNotebookRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		delete(r.store.notebooks, id)
	return nil
}

func (r *fakeNotebookRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeNotebookRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		var out []*entity.Notebook
	for _, n := range r.store.notebooks {
		if matchNotebook(&n, specs) {
			match := n
			out = append(out, &match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (r *fakeNotebookRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchNotebook(n *entity.Notebook, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.OwnerId != s.UserID {
				return false
			}
		}
	}
	return true
}

// Revisions

type fakeRevisionRepo struct {
	store *fakeStore
}

func (r *fakeRevisionRepo) Create(ctx context.Context, revision *entity.NotebookRevision) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		if r.store.failRevisionCreate {
		return errors.New("injected revision failure")
	}
	revision.Id = r.store.newId()
	if revision.CreatedAt.IsZero() {
		revision.CreatedAt = time.Now()
	}
	r.store.revisions[revision.Id] = *revision
	return nil
}

func (r *fakeRevisionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NotebookRevision, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeRevisionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotebookRevision, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		var out []*entity.NotebookRevision
	for _, rev := range r.store.revisions {
		if matchRevision(&rev, specs) {
			match := rev
			out = append(out, &match)
		}
	}
	if hasSpec(specs, specification.LatestRevisionFirst{}) {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].Id > out[j].Id
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	}
	return out, nil
}

func (r *fakeRevisionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchRevision(rev *entity.NotebookRevision, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if rev.Id != s.ID {
				return false
			}
		case specification.ByNotebookID:
			if rev.NotebookId != s.NotebookID {
				return false
			}
		}
	}
	return true
}

// Files

type fakeFileRepo struct {
	store *fakeStore
}

func (r *fakeFileRepo) Create(ctx context.Context, file *entity.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		file.Id = r.store.newId()
	r.store.files[file.Id] = *file
	return nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *entity.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		r.store.files[file.Id] = *file
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		delete(r.store.files, id)
	return nil
}

func (r *fakeFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		var out []*entity.File
	for _, f := range r.store.files {
		if matchFile(&f, specs) {
			match := f
			out = append(out, &match)
		}
	}
	if hasSpec(specs, specification.RecentlyUpdatedFirst{}) {
		sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	}
	return out, nil
}

func (r *fakeFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchFile(f *entity.File, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if f.Id != s.ID {
				return false
			}
		case specification.ByNotebookID:
			if f.NotebookId != s.NotebookID {
				return false
			}
		case specification.ByFilename:
			if f.Filename != s.Filename {
				return false
			}
		}
	}
	return true
}

// File sources

type fakeFileSourceRepo struct {
	store *fakeStore
}

func (r *fakeFileSourceRepo) Create(ctx context.Context, source *entity.FileSource) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		source.Id = r.store.newId()
	r.store.sources[source.Id] = *source
	return nil
}

func (r *fakeFileSourceRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		delete(r.store.sources, id)
	return nil
}

func (r *fakeFileSourceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileSource, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeFileSourceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileSource, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		var out []*entity.FileSource
	for _, src := range r.store.sources {
		if matchSource(&src, specs) {
			match := src
			out = append(out, &match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (r *fakeFileSourceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchSource(src *entity.FileSource, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if src.Id != s.ID {
				return false
			}
		case specification.ByNotebookID:
			if src.NotebookId != s.NotebookID {
				return false
			}
		}
	}
	return true
}

// File update operations

type fakeOperationRepo struct {
	store *fakeStore
}

func (r *fakeOperationRepo) Create(ctx context.Context, op *entity.FileUpdateOperation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		op.Id = r.store.newId()
	r.store.ops[op.Id] = *op
	return nil
}

func (r *fakeOperationRepo) Update(ctx context.Context, op *entity.FileUpdateOperation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		r.store.ops[op.Id] = *op
	return nil
}

func (r *fakeOperationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileUpdateOperation, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeOperationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileUpdateOperation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
		var out []*entity.FileUpdateOperation
	for _, op := range r.store.ops {
		if matchOperation(&op, specs) {
			match := op
			out = append(out, &match)
		}
	}
	if hasSpec(specs, specification.RecentlyStartedFirst{}) {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Started.Equal(out[j].Started) {
				return out[i].Started.After(out[j].Started)
			}
			return out[i].Id > out[j].Id
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	}
	return out, nil
}

func (r *fakeOperationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchOperation(op *entity.FileUpdateOperation, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if op.Id != s.ID {
				return false
			}
		case specification.ByFileSourceID:
			if op.FileSourceId != s.FileSourceID {
				return false
			}
		}
	}
	return true
}

func hasSpec(specs []specification.Specification, want specification.Specification) bool {
	for _, s := range specs {
		if s == want {
			return true
		}
	}
	return false
}

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// capturePublisher records every payload put on the bus.
type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}
