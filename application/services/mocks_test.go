package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/validators"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	pkgerrors "keepsake-backend/pkg/errors"
)

// In-memory fakes for the repository ports. They keep real entities and
// preserve insertion order so ranked results are deterministic under test.

type fakeMediaRepo struct {
	items map[string]*entities.Media
	order []string
	owner map[string]string
	links map[string][]string

	saveErr     error
	linkErr     error
	appendErr   error
	appendCalls int
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{
		items: make(map[string]*entities.Media),
		owner: make(map[string]string),
		links: make(map[string][]string),
	}
}

func (r *fakeMediaRepo) Save(ctx context.Context, accountID string, media *entities.Media) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	id := media.ID().String()
	r.items[id] = media
	r.order = append(r.order, id)
	r.owner[id] = accountID
	return nil
}

func (r *fakeMediaRepo) GetByID(ctx context.Context, id valueobjects.VertexID) (*entities.Media, error) {
	media, ok := r.items[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("media")
	}
	return media, nil
}

func (r *fakeMediaRepo) GetByAccount(ctx context.Context, accountID string) ([]*entities.Media, error) {
	var result []*entities.Media
	for _, id := range r.order {
		if r.owner[id] == accountID {
			result = append(result, r.items[id])
		}
	}
	return result, nil
}

func (r *fakeMediaRepo) OwnedBy(ctx context.Context, accountID string, id valueobjects.VertexID) (bool, error) {
	return r.owner[id.String()] == accountID, nil
}

func (r *fakeMediaRepo) AppendEmotion(ctx context.Context, id valueobjects.VertexID, emotion valueobjects.EmotionTriple) error {
	r.appendCalls++
	return r.appendErr
}

func (r *fakeMediaRepo) Link(ctx context.Context, source, target valueobjects.VertexID) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	r.addLink(source.String(), target.String())
	r.addLink(target.String(), source.String())
	return nil
}

func (r *fakeMediaRepo) addLink(from, to string) {
	for _, existing := range r.links[from] {
		if existing == to {
			return
		}
	}
	r.links[from] = append(r.links[from], to)
}

func (r *fakeMediaRepo) GetLinked(ctx context.Context, id valueobjects.VertexID) ([]*entities.Media, error) {
	var result []*entities.Media
	for _, linkedID := range r.links[id.String()] {
		if media, ok := r.items[linkedID]; ok {
			result = append(result, media)
		}
	}
	return result, nil
}

func (r *fakeMediaRepo) Delete(ctx context.Context, id valueobjects.VertexID) error {
	key := id.String()
	delete(r.items, key)
	delete(r.owner, key)
	delete(r.links, key)
	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeDimensionRepo struct {
	vertices map[valueobjects.DimensionKind]map[string]valueobjects.VertexID
	byID     map[string]ports.DimensionValue
	attached map[string][]ports.DimensionValue
	order    []string

	// extraCandidates are returned from CandidatesSharingAny on top of the
	// derived set, letting tests inject zero-overlap candidates
	extraCandidates []valueobjects.VertexID

	getOrCreateErr error
	attachErr      error
	created        int
}

func newFakeDimensionRepo() *fakeDimensionRepo {
	return &fakeDimensionRepo{
		vertices: make(map[valueobjects.DimensionKind]map[string]valueobjects.VertexID),
		byID:     make(map[string]ports.DimensionValue),
		attached: make(map[string][]ports.DimensionValue),
	}
}

func (r *fakeDimensionRepo) GetOrCreate(ctx context.Context, accountID string, kind valueobjects.DimensionKind, value string) (valueobjects.VertexID, error) {
	if r.getOrCreateErr != nil {
		return valueobjects.VertexID{}, r.getOrCreateErr
	}
	if r.vertices[kind] == nil {
		r.vertices[kind] = make(map[string]valueobjects.VertexID)
	}
	if id, ok := r.vertices[kind][value]; ok {
		return id, nil
	}
	id := valueobjects.NewVertexID()
	r.vertices[kind][value] = id
	r.byID[id.String()] = ports.DimensionValue{ID: id, Kind: kind, Value: value}
	r.created++
	return id, nil
}

func (r *fakeDimensionRepo) Attach(ctx context.Context, mediaID, dimensionID valueobjects.VertexID, kind valueobjects.DimensionKind) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	key := mediaID.String()
	if _, seen := r.attached[key]; !seen {
		r.order = append(r.order, key)
	}
	r.attached[key] = append(r.attached[key], r.byID[dimensionID.String()])
	return nil
}

func (r *fakeDimensionRepo) ValuesFor(ctx context.Context, mediaID valueobjects.VertexID, kind valueobjects.DimensionKind) ([]ports.DimensionValue, error) {
	var result []ports.DimensionValue
	for _, v := range r.attached[mediaID.String()] {
		if v.Kind == kind {
			result = append(result, v)
		}
	}
	return result, nil
}

func (r *fakeDimensionRepo) CountShared(ctx context.Context, kind valueobjects.DimensionKind, a, b valueobjects.VertexID) (int, error) {
	bVertices := make(map[string]bool)
	for _, v := range r.attached[b.String()] {
		if v.Kind == kind {
			bVertices[v.ID.String()] = true
		}
	}
	count := 0
	for _, v := range r.attached[a.String()] {
		if v.Kind == kind && bVertices[v.ID.String()] {
			count++
		}
	}
	return count, nil
}

func (r *fakeDimensionRepo) CandidatesSharingAny(ctx context.Context, mediaID valueobjects.VertexID) ([]valueobjects.VertexID, error) {
	target := make(map[string]bool)
	for _, v := range r.attached[mediaID.String()] {
		target[v.ID.String()] = true
	}
	var result []valueobjects.VertexID
	for _, key := range r.order {
		if key == mediaID.String() {
			continue
		}
		for _, v := range r.attached[key] {
			if target[v.ID.String()] {
				id, _ := valueobjects.NewVertexIDFromString(key)
				result = append(result, id)
				break
			}
		}
	}
	return append(result, r.extraCandidates...), nil
}

type fakeCollectionRepo struct {
	media       *fakeMediaRepo
	collections map[string]*entities.Collection
	names       []string
	members     map[string][]string
}

func newFakeCollectionRepo(media *fakeMediaRepo) *fakeCollectionRepo {
	return &fakeCollectionRepo{
		media:       media,
		collections: make(map[string]*entities.Collection),
		members:     make(map[string][]string),
	}
}

func (r *fakeCollectionRepo) GetOrCreate(ctx context.Context, accountID string, name string) (*entities.Collection, error) {
	if c, ok := r.collections[name]; ok {
		return c, nil
	}
	c, err := entities.NewCollection(name)
	if err != nil {
		return nil, err
	}
	r.collections[name] = c
	r.names = append(r.names, name)
	return c, nil
}

func (r *fakeCollectionRepo) AttachMedia(ctx context.Context, collectionID, mediaID valueobjects.VertexID) error {
	key := collectionID.String()
	for _, existing := range r.members[key] {
		if existing == mediaID.String() {
			return nil
		}
	}
	r.members[key] = append(r.members[key], mediaID.String())
	return nil
}

func (r *fakeCollectionRepo) CollectionOf(ctx context.Context, mediaID valueobjects.VertexID) (*entities.Collection, error) {
	for _, name := range r.names {
		c := r.collections[name]
		for _, member := range r.members[c.ID().String()] {
			if member == mediaID.String() {
				return c, nil
			}
		}
	}
	return nil, pkgerrors.NewNotFoundError("collection")
}

func (r *fakeCollectionRepo) MediaIn(ctx context.Context, accountID string, name string) ([]*entities.Media, error) {
	c, ok := r.collections[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("collection")
	}
	var result []*entities.Media
	for _, member := range r.members[c.ID().String()] {
		if media, ok := r.media.items[member]; ok {
			result = append(result, media)
		}
	}
	return result, nil
}

func (r *fakeCollectionRepo) NewestIn(ctx context.Context, accountID string, name string) (*entities.Media, error) {
	media, err := r.MediaIn(ctx, accountID, name)
	if err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return nil, pkgerrors.NewNotFoundError("media")
	}
	return media[len(media)-1], nil
}

type fakeAccountRepo struct {
	accounts map[string]*entities.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entities.Account)}
}

func (r *fakeAccountRepo) Save(ctx context.Context, account *entities.Account) error {
	r.accounts[account.UUID()] = account
	return nil
}

func (r *fakeAccountRepo) GetByUUID(ctx context.Context, uuid string) (*entities.Account, error) {
	account, ok := r.accounts[uuid]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("account")
	}
	return account, nil
}

func (r *fakeAccountRepo) Exists(ctx context.Context, uuid string) (bool, error) {
	_, ok := r.accounts[uuid]
	return ok, nil
}

type fakeViewerStore struct {
	states map[string]ports.ViewerState
}

func newFakeViewerStore() *fakeViewerStore {
	return &fakeViewerStore{states: make(map[string]ports.ViewerState)}
}

func (s *fakeViewerStore) Get(viewerID string) (ports.ViewerState, bool) {
	state, ok := s.states[viewerID]
	return state, ok
}

func (s *fakeViewerStore) Set(viewerID string, state ports.ViewerState) {
	s.states[viewerID] = state
}

type fakePublisher struct {
	published []events.DomainEvent
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, batch...)
	return nil
}

type fakeSessionLog struct {
	recorded []*entities.Session
	err      error
}

func (l *fakeSessionLog) Record(ctx context.Context, session *entities.Session) error {
	if l.err != nil {
		return l.err
	}
	l.recorded = append(l.recorded, session)
	return nil
}

const testViewer = "viewer-1"

// fixture wires all services over the fakes for one test account
type fixture struct {
	mediaRepo   *fakeMediaRepo
	dimRepo     *fakeDimensionRepo
	collRepo    *fakeCollectionRepo
	accountRepo *fakeAccountRepo
	store       *fakeViewerStore
	publisher   *fakePublisher
	sessionLog  *fakeSessionLog
	cfg         *config.DomainConfig

	media     *MediaService
	relations *RelationService
	emotions  *EmotionService
	sessions  *SessionService
	accounts  *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		mediaRepo:   newFakeMediaRepo(),
		dimRepo:     newFakeDimensionRepo(),
		accountRepo: newFakeAccountRepo(),
		store:       newFakeViewerStore(),
		publisher:   &fakePublisher{},
		sessionLog:  &fakeSessionLog{},
		cfg:         config.DefaultDomainConfig(),
	}
	f.collRepo = newFakeCollectionRepo(f.mediaRepo)

	logger := zap.NewNop()
	validator := validators.NewMediaValidatorWithConfig(f.cfg)

	f.media = NewMediaService(f.mediaRepo, f.dimRepo, f.collRepo, f.accountRepo, validator, f.publisher, f.cfg, logger)
	f.relations = NewRelationService(f.mediaRepo, f.dimRepo, f.cfg, logger)
	f.emotions = NewEmotionService(f.media, f.mediaRepo, f.publisher, logger)
	f.sessions = NewSessionService(f.mediaRepo, f.sessionLog, f.publisher, logger)
	f.accounts = NewAccountService(f.accountRepo, logger)

	account, err := entities.NewAccount(testViewer)
	require.NoError(t, err)
	require.NoError(t, f.accountRepo.Save(context.Background(), account))

	return f
}

// sampler builds a sampler service over the fixture with an injected random
// source and clock
func (f *fixture) sampler(intn IntnFunc, now time.Time) *SamplerService {
	return NewSamplerService(
		f.media, f.relations, f.collRepo, f.mediaRepo, f.store, f.cfg,
		zap.NewNop(), nil, intn, func() time.Time { return now },
	)
}

// ingest stores a media item for the test account and fails the test on error
func (f *fixture) ingest(t *testing.T, cmd commands.IngestMediaCommand) *queries.MediaView {
	t.Helper()
	cmd.AccountID = testViewer
	view, err := f.media.Ingest(context.Background(), cmd)
	require.NoError(t, err)
	return view
}
