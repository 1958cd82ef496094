package cli

import (
	"context"

	"github.com/drydock-labs/drydock/internal/core/domain"
)

// --- Mock services shared across command tests ---

type mockIngestService struct {
	doc        *domain.Document
	events     []domain.ProgressEvent
	ingestErr  error
	deletedID  string
	deleteErr  error
	purgedUser string
}

func (m *mockIngestService) Ingest(
	_ context.Context, userID, filename string, _ []byte,
) (*domain.Document, <-chan domain.ProgressEvent, error) {
	if m.ingestErr != nil {
		return nil, nil, m.ingestErr
	}
	doc := m.doc
	if doc == nil {
		doc = &domain.Document{ID: "doc-1", UserID: userID, Filename: filename}
	}
	events := make(chan domain.ProgressEvent, len(m.events))
	for _, ev := range m.events {
		events <- ev
	}
	close(events)
	return doc, events, nil
}

func (m *mockIngestService) DeleteDocument(_ context.Context, documentID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = documentID
	return nil
}

func (m *mockIngestService) DeleteUserData(_ context.Context, userID string) error {
	m.purgedUser = userID
	return nil
}

type mockAskService struct {
	answer   *domain.Answer
	err      error
	question string
	mode     domain.AudienceMode
}

func (m *mockAskService) Ask(
	_ context.Context, _, question string, mode domain.AudienceMode,
) (*domain.Answer, error) {
	m.question = question
	m.mode = mode
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{Response: "mock answer"}, nil
}

type mockKeywordService struct {
	keywords    []domain.Keyword
	suggestions []domain.Keyword
	added       []domain.Keyword
	deletedID   string
	err         error
}

func (m *mockKeywordService) Add(_ context.Context, userID, term, instruction string) (*domain.Keyword, error) {
	if m.err != nil {
		return nil, m.err
	}
	kw := domain.Keyword{ID: "kw-1", UserID: userID, Term: term, Instruction: instruction}
	m.added = append(m.added, kw)
	return &kw, nil
}

func (m *mockKeywordService) List(_ context.Context, _ string) ([]domain.Keyword, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.keywords, nil
}

func (m *mockKeywordService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

func (m *mockKeywordService) Suggest(_ context.Context, _ string) ([]domain.Keyword, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.suggestions, nil
}

type mockDocumentStore struct {
	docs []domain.Document
	err  error
}

func (m *mockDocumentStore) SaveDocument(_ context.Context, _ *domain.Document) error { return nil }

func (m *mockDocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	for _, doc := range m.docs {
		if doc.ID == id {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentStore) ListDocuments(_ context.Context, userID string) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Document
	for _, doc := range m.docs {
		if doc.UserID == userID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *mockDocumentStore) DeleteDocument(_ context.Context, _ string) error { return nil }

// setupTestServices installs mocks and returns a cleanup restoring the
// previous services and flags.
func setupTestServices() (*mockIngestService, *mockAskService, *mockKeywordService, *mockDocumentStore, func()) {
	oldIngest := ingestService
	oldAsk := askService
	oldKeywords := keywordService
	oldDocs := documentStore
	oldUser := userID

	ingest := &mockIngestService{}
	ask := &mockAskService{}
	keywords := &mockKeywordService{}
	docs := &mockDocumentStore{}

	ingestService = ingest
	askService = ask
	keywordService = keywords
	documentStore = docs
	userID = "test-user"

	return ingest, ask, keywords, docs, func() {
		ingestService = oldIngest
		askService = oldAsk
		keywordService = oldKeywords
		documentStore = oldDocs
		userID = oldUser
	}
}
