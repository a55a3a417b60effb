package usecase

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/emmaworks/family-advisor-api/internal/model"
	"github.com/emmaworks/family-advisor-api/internal/repository"
)

// -------- test fakes --------

// errDuplicateKey mimics the server-side unique index violation so the
// usecases exercise the same mongo.IsDuplicateKeyError path as in production.
var errDuplicateKey = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]model.User
	createErr error
	updateErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]model.User)}
}

func (r *memUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, errDuplicateKey
		}
	}

	user.ID = bson.NewObjectID()
	r.users[user.ID.Hex()] = *user

	stored := r.users[user.ID.Hex()]
	return &stored, nil
}

func (r *memUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &user, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return nil, r.updateErr
	}

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.FamilyID != nil {
		familyID := *params.FamilyID
		user.FamilyID = &familyID
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}

	r.users[id] = user
	return &user, nil
}

func (r *memUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.users, id)
	return &user, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}

type memFamilyRepo struct {
	mu        sync.Mutex
	families  map[string]model.Family
	createErr error
}

func newMemFamilyRepo() *memFamilyRepo {
	return &memFamilyRepo{families: make(map[string]model.Family)}
}

func (r *memFamilyRepo) CreateFamily(_ context.Context, family *model.Family) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	family.ID = bson.NewObjectID()
	r.families[family.ID.Hex()] = *family

	stored := r.families[family.ID.Hex()]
	return &stored, nil
}

func (r *memFamilyRepo) GetFamily(_ context.Context, id string) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	family, ok := r.families[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &family, nil
}

func (r *memFamilyRepo) GetFamilyByInviteToken(_ context.Context, token string) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, family := range r.families {
		if family.InviteToken != nil && *family.InviteToken == token {
			return &family, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *memFamilyRepo) SetInviteToken(_ context.Context, id string, token string) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	family, ok := r.families[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	family.InviteToken = &token
	r.families[id] = family

	return &family, nil
}

// LinkStudent mirrors the atomic conditional update of the Mongo repository:
// the whole check-and-set happens under one lock.
func (r *memFamilyRepo) LinkStudent(
	_ context.Context,
	id string,
	inviteToken string,
	studentID bson.ObjectID,
) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	family, ok := r.families[id]
	if !ok {
		return nil, repository.ErrLinkConflict
	}

	if family.InviteToken == nil || *family.InviteToken != inviteToken || family.StudentID != nil {
		return nil, repository.ErrLinkConflict
	}

	family.StudentID = &studentID
	family.InviteToken = nil
	r.families[id] = family

	return &family, nil
}

func (r *memFamilyRepo) DeleteFamily(_ context.Context, id string) (*model.Family, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	family, ok := r.families[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.families, id)
	return &family, nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []model.ChatMessage
}

func (r *memMessageRepo) CreateMessage(_ context.Context, message *model.ChatMessage) (*model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = bson.NewObjectID()
	r.messages = append(r.messages, *message)

	return message, nil
}

func (r *memMessageRepo) ListByFamily(_ context.Context, familyID string) ([]model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.ChatMessage
	for _, message := range r.messages {
		if message.FamilyID.Hex() == familyID {
			out = append(out, message)
		}
	}

	return out, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(secret string) (string, error) {
	return "hashed:" + secret, nil
}

func (fakeHasher) Verify(secret, encodedHash string) (bool, error) {
	return encodedHash == "hashed:"+secret, nil
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
}

func (m *fakeMailer) SendHTML(to []string, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	m.sent = append(m.sent, strings.Join(to, ","))
	return nil
}
