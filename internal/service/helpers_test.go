package service

import (
	"context"
	"errors"

	"github.com/af-Athameem/gtruth/internal/entity"
	"github.com/af-Athameem/gtruth/pkg/blobstore"
	"github.com/af-Athameem/gtruth/pkg/graph"
)

// fakeGateway is a scriptable DocumentGateway for the service tests.
type fakeGateway struct {
	token    string
	tokenErr error

	siteID  string
	siteErr error

	driveID  string
	driveErr error

	items    []graph.DriveItem
	itemsErr error

	uploaded  map[string][]byte
	uploadErr error
}

func (g *fakeGateway) AcquireToken(ctx context.Context) (string, error) {
	return g.token, g.tokenErr
}

func (g *fakeGateway) ResolveSite(ctx context.Context, token string) (string, error) {
	return g.siteID, g.siteErr
}

func (g *fakeGateway) ResolveDocumentDrive(ctx context.Context, token, siteID string) (string, error) {
	return g.driveID, g.driveErr
}

func (g *fakeGateway) ListFolderChildren(ctx context.Context, token, driveID string) ([]graph.DriveItem, error) {
	return g.items, g.itemsErr
}

func (g *fakeGateway) Upload(ctx context.Context, token, siteID, name string, content []byte) error {
	if g.uploadErr != nil {
		return g.uploadErr
	}
	if g.uploaded == nil {
		g.uploaded = map[string][]byte{}
	}
	g.uploaded[name] = content
	return nil
}

// fakeBlobStore implements blobstore.Store in memory.
type fakeBlobStore struct {
	objects   []blobstore.ObjectInfo
	listErr   error
	uploaded  map[string][]byte
	uploadErr error
}

func (b *fakeBlobStore) ReadJSON(ctx context.Context, name string, v interface{}) error {
	return blobstore.ErrNotFound
}

func (b *fakeBlobStore) WriteJSON(ctx context.Context, name string, v interface{}) error {
	return errors.New("not implemented")
}

func (b *fakeBlobStore) Upload(ctx context.Context, name string, content []byte) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	if b.uploaded == nil {
		b.uploaded = map[string][]byte{}
	}
	b.uploaded[name] = content
	return nil
}

func (b *fakeBlobStore) List(ctx context.Context) ([]blobstore.ObjectInfo, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.objects, nil
}

func (b *fakeBlobStore) Exists(ctx context.Context, name string) (bool, error) {
	for _, o := range b.objects {
		if o.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// fakeQuestionRepo records saves and optionally serves scripted snapshots so
// tests can interleave two read-modify-write cycles.
type fakeQuestionRepo struct {
	collection entity.QuestionCollection
	snapshots  []entity.QuestionCollection
	saved      []entity.QuestionCollection
	saveErr    error
}

func (r *fakeQuestionRepo) GetAll(ctx context.Context) entity.QuestionCollection {
	if len(r.snapshots) > 0 {
		next := r.snapshots[0]
		r.snapshots = r.snapshots[1:]
		return next
	}
	out := entity.QuestionCollection{}
	for k, v := range r.collection {
		out[k] = v
	}
	return out
}

func (r *fakeQuestionRepo) SaveAll(ctx context.Context, questions entity.QuestionCollection) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.collection = questions
	r.saved = append(r.saved, questions)
	return nil
}

// fakeUserRepo serves bcrypt credentials from a map.
type fakeUserRepo struct {
	users map[string]*entity.Credential
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) *entity.Credential {
	return r.users[username]
}

func spItem(name, modified, createdBy string) graph.DriveItem {
	item := graph.DriveItem{
		Name:                 name,
		LastModifiedDateTime: modified,
	}
	item.CreatedBy.User.DisplayName = createdBy
	return item
}

func spFolder(name string) graph.DriveItem {
	return graph.DriveItem{Name: name, Folder: []byte(`{}`)}
}
