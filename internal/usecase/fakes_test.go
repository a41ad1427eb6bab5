package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/izthiaka/loumaa/internal/model"
	"github.com/izthiaka/loumaa/internal/repository"
)

var errDuplicateKey = mongo.CommandError{Code: 11000, Message: "duplicate key error"}

type fakeUserRepo struct {
	byID     map[string]*model.User
	sessions *fakeSessionRepo
}

func newFakeUserRepo(sessions *fakeSessionRepo) *fakeUserRepo {
	return &fakeUserRepo{
		byID:     make(map[string]*model.User),
		sessions: sessions,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	for _, existing := range f.byID {
		if existing.Matricule == user.Matricule ||
			existing.Phone == user.Phone ||
			(user.Email != "" && existing.Email == user.Email) {
			return nil, errDuplicateKey
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.byID[user.ID.Hex()] = user

	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id bson.ObjectID) (*model.User, error) {
	if user, ok := f.byID[id.Hex()]; ok {
		return user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetByMatricule(_ context.Context, matricule string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Matricule == matricule })
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Email != "" && u.Email == email })
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Phone == phone })
}

func (f *fakeUserRepo) GetByEmailOrPhone(_ context.Context, identifier string) (*model.User, error) {
	return f.find(func(u *model.User) bool {
		return (u.Email != "" && u.Email == identifier) || u.Phone == identifier
	})
}

func (f *fakeUserRepo) GetByActiveSessionToken(_ context.Context, token string) (*model.User, error) {
	for _, session := range f.sessions.byUser {
		if session.Token == token {
			if user, ok := f.byID[session.User.Hex()]; ok {
				return user, nil
			}
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id bson.ObjectID, hash string) error {
	user, ok := f.byID[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.Password = hash
	user.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id bson.ObjectID, status model.Status) error {
	user, ok := f.byID[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.Status = status
	return nil
}

func (f *fakeUserRepo) UpdateResetCode(
	_ context.Context,
	id bson.ObjectID,
	code string,
	expiresAt time.Time,
) error {
	user, ok := f.byID[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.IdentifierToken = code
	user.IdentifierTokenExpiresAt = expiresAt
	return nil
}

func (f *fakeUserRepo) ClearResetCode(_ context.Context, id bson.ObjectID) error {
	user, ok := f.byID[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.IdentifierToken = ""
	user.IdentifierTokenExpiresAt = time.Time{}
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id bson.ObjectID) error {
	if _, ok := f.byID[id.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.byID, id.Hex())
	return nil
}

func (f *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	for _, user := range f.byID {
		if match(user) {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeRoleRepo struct {
	byName map[string]*model.Role
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	repo := &fakeRoleRepo{byName: make(map[string]*model.Role)}
	for _, name := range names {
		repo.byName[name] = &model.Role{
			ID:   bson.NewObjectID(),
			Name: name,
			Code: "ROL-" + name,
		}
	}
	return repo
}

func (f *fakeRoleRepo) Create(_ context.Context, role *model.Role) (*model.Role, error) {
	if _, ok := f.byName[role.Name]; ok {
		return nil, errDuplicateKey
	}
	role.ID = bson.NewObjectID()
	f.byName[role.Name] = role
	return role, nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id bson.ObjectID) (*model.Role, error) {
	for _, role := range f.byName {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	if role, ok := f.byName[name]; ok {
		return role, nil
	}
	return nil, mongo.ErrNoDocuments
}

type fakeSessionRepo struct {
	byUser  map[string]*model.Session
	upserts int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byUser: make(map[string]*model.Session)}
}

func (f *fakeSessionRepo) Upsert(
	_ context.Context,
	userID bson.ObjectID,
	params repository.UpsertSessionParams,
) error {
	f.upserts++
	f.byUser[userID.Hex()] = &model.Session{
		ID:           bson.NewObjectID(),
		User:         userID,
		Token:        params.Token,
		RefreshToken: params.RefreshToken,
		Device:       params.Device,
		UpdatedAt:    time.Now(),
	}
	return nil
}

func (f *fakeSessionRepo) GetByUser(_ context.Context, userID bson.ObjectID) (*model.Session, error) {
	if session, ok := f.byUser[userID.Hex()]; ok {
		return session, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) DeleteByUser(_ context.Context, userID bson.ObjectID) error {
	delete(f.byUser, userID.Hex())
	return nil
}

type fakeSender struct {
	calls int
	to    string
	name  string
	code  string
	err   error
}

func (f *fakeSender) SendResetCode(to, name, code string, _ time.Duration) error {
	f.calls++
	f.to = to
	f.name = name
	f.code = code
	return f.err
}
