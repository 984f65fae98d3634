package service

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/simoamogit/school-timetable/backend/internal/model"
	"github.com/simoamogit/school-timetable/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint

	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) CreateWithSettings(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings map[uint]*model.UserSettings

	getErr error
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: make(map[uint]*model.UserSettings)}
}

func (m *mockSettingsRepo) GetByUser(_ context.Context, userID uint) (*model.UserSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.settings[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingsRepo) ensure(userID uint) *model.UserSettings {
	if s, ok := m.settings[userID]; ok {
		return s
	}
	s := &model.UserSettings{UserID: userID, HoursPerDay: model.DefaultHoursPerDay}
	m.settings[userID] = s
	return s
}

func (m *mockSettingsRepo) UpdateGrid(_ context.Context, userID uint, schoolDays []string, hoursPerDay int) error {
	s := m.ensure(userID)
	s.SchoolDays = model.StringArray(schoolDays)
	s.HoursPerDay = hoursPerDay
	s.SetupComplete = true
	return nil
}

func (m *mockSettingsRepo) Reset(_ context.Context, userID uint) error {
	s := m.ensure(userID)
	s.SchoolDays = model.StringArray{}
	s.HoursPerDay = model.DefaultHoursPerDay
	s.SetupComplete = false
	return nil
}

func (m *mockSettingsRepo) SetLocked(_ context.Context, userID uint, locked bool) error {
	m.ensure(userID).Locked = locked
	return nil
}

func (m *mockSettingsRepo) SetTheme(_ context.Context, userID uint, theme string) error {
	m.ensure(userID).Theme = theme
	return nil
}

func (m *mockSettingsRepo) SetHiddenHours(_ context.Context, userID uint, hiddenHours []int) error {
	m.ensure(userID).HiddenHours = model.IntArray(hiddenHours)
	return nil
}

func (m *mockSettingsRepo) SetAvatarColor(_ context.Context, userID uint, color string) error {
	m.ensure(userID).AvatarColor = color
	return nil
}

// ── Mock SlotRepository ──

type cellKey struct {
	userID uint
	day    string
	hour   int
}

type mockSlotRepo struct {
	slots  map[cellKey]*model.Slot
	nextID uint

	upsertErr error
	swapErr   error
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[cellKey]*model.Slot), nextID: 1}
}

func (m *mockSlotRepo) Upsert(_ context.Context, slot *model.Slot) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := cellKey{slot.UserID, slot.Day, slot.Hour}
	if existing, ok := m.slots[key]; ok {
		existing.Subject = slot.Subject
		existing.Color = slot.Color
		existing.SlotType = slot.SlotType
		slot.ID = existing.ID
		return nil
	}
	slot.ID = m.nextID
	m.nextID++
	cp := *slot
	m.slots[key] = &cp
	return nil
}

func (m *mockSlotRepo) GetByCell(_ context.Context, userID uint, cell repository.Cell) (*model.Slot, error) {
	if s, ok := m.slots[cellKey{userID, cell.Day, cell.Hour}]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByUser(_ context.Context, userID uint) ([]model.Slot, error) {
	var result []model.Slot
	for _, s := range m.slots {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) DeleteByCell(_ context.Context, userID uint, cell repository.Cell) error {
	delete(m.slots, cellKey{userID, cell.Day, cell.Hour})
	return nil
}

func (m *mockSlotRepo) SwapCells(_ context.Context, userID uint, from, to repository.Cell) (*model.Slot, *model.Slot, error) {
	if m.swapErr != nil {
		return nil, nil, m.swapErr
	}
	fromKey := cellKey{userID, from.Day, from.Hour}
	toKey := cellKey{userID, to.Day, to.Hour}

	prevFrom := m.slots[fromKey]
	prevTo := m.slots[toKey]

	write := func(key cellKey, day string, hour int, src *model.Slot) {
		if src == nil {
			delete(m.slots, key)
			return
		}
		cp := *src
		cp.Day = day
		cp.Hour = hour
		m.slots[key] = &cp
	}
	write(fromKey, from.Day, from.Hour, prevTo)
	write(toKey, to.Day, to.Hour, prevFrom)
	return prevFrom, prevTo, nil
}

// ── Mock NoteRepository ──

type mockNoteRepo struct {
	notes  map[uint]*model.Note
	nextID uint

	deleteExpiredErr error
	expiredCalls     []string
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[uint]*model.Note), nextID: 1}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.Note) error {
	note.ID = m.nextID
	m.nextID++
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) ListByUser(_ context.Context, userID uint) ([]model.Note, error) {
	var result []model.Note
	for _, n := range m.notes {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNoteRepo) DeleteByID(_ context.Context, userID, id uint) (*model.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.UserID != userID {
		return nil, nil
	}
	delete(m.notes, id)
	return n, nil
}

func (m *mockNoteRepo) DeleteExpired(_ context.Context, userID uint, today string) error {
	m.expiredCalls = append(m.expiredCalls, today)
	if m.deleteExpiredErr != nil {
		return m.deleteExpiredErr
	}
	for id, n := range m.notes {
		if n.UserID == userID && n.NoteDate != nil && *n.NoteDate < today {
			delete(m.notes, id)
		}
	}
	return nil
}

// ── Mock SubstitutionRepository ──

type mockSubstitutionRepo struct {
	subs   map[uint]*model.Substitution
	nextID uint

	deleteExpiredErr error
}

func newMockSubstitutionRepo() *mockSubstitutionRepo {
	return &mockSubstitutionRepo{subs: make(map[uint]*model.Substitution), nextID: 1}
}

func (m *mockSubstitutionRepo) Create(_ context.Context, sub *model.Substitution) error {
	sub.ID = m.nextID
	m.nextID++
	m.subs[sub.ID] = sub
	return nil
}

func (m *mockSubstitutionRepo) ListByUser(_ context.Context, userID uint) ([]model.Substitution, error) {
	var result []model.Substitution
	for _, s := range m.subs {
		if s.UserID == userID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubstitutionRepo) DeleteByID(_ context.Context, userID, id uint) error {
	if s, ok := m.subs[id]; ok && s.UserID == userID {
		delete(m.subs, id)
	}
	return nil
}

func (m *mockSubstitutionRepo) DeleteExpired(_ context.Context, userID uint, today string) error {
	if m.deleteExpiredErr != nil {
		return m.deleteExpiredErr
	}
	for id, s := range m.subs {
		if s.UserID == userID && s.SubDate < today {
			delete(m.subs, id)
		}
	}
	return nil
}

// ── Mock ChangeLogRepository ──

type mockChangeLogRepo struct {
	mu      sync.Mutex
	entries []model.ChangeLogEntry
	nextID  uint

	createErr error
}

func newMockChangeLogRepo() *mockChangeLogRepo {
	return &mockChangeLogRepo{nextID: 1}
}

func (m *mockChangeLogRepo) Create(_ context.Context, entry *model.ChangeLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockChangeLogRepo) ListRecent(_ context.Context, userID uint, limit int) ([]model.ChangeLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ChangeLogEntry
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if m.entries[i].UserID == userID {
			result = append(result, m.entries[i])
		}
	}
	return result, nil
}

func (m *mockChangeLogRepo) recorded() []model.ChangeLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ChangeLogEntry{}, m.entries...)
}

// ── Mock ShareRepository ──

type mockShareRepo struct {
	tokens map[string]*model.ShareToken

	createErr error
}

func newMockShareRepo() *mockShareRepo {
	return &mockShareRepo{tokens: make(map[string]*model.ShareToken)}
}

func (m *mockShareRepo) GetByUser(_ context.Context, userID uint) (*model.ShareToken, error) {
	for _, t := range m.tokens {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShareRepo) GetByToken(_ context.Context, token string) (*model.ShareToken, error) {
	if t, ok := m.tokens[token]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShareRepo) Create(_ context.Context, token *model.ShareToken) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *mockShareRepo) DeleteByUser(_ context.Context, userID uint) error {
	for k, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, k)
		}
	}
	return nil
}

// ── Mock DatasetRepository ──

type mockDatasetRepo struct {
	settingsRepo *mockSettingsRepo
	slotRepo     *mockSlotRepo
	noteRepo     *mockNoteRepo
	subRepo      *mockSubstitutionRepo

	replaceErr error
}

func (m *mockDatasetRepo) ReplaceAll(
	ctx context.Context,
	userID uint,
	schoolDays []string,
	hoursPerDay int,
	slots []model.Slot,
	notes []model.Note,
	subs []model.Substitution,
) error {
	// 事务语义：失败时什么都不改
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if err := m.settingsRepo.UpdateGrid(ctx, userID, schoolDays, hoursPerDay); err != nil {
		return err
	}
	for key, s := range m.slotRepo.slots {
		if s.UserID == userID {
			delete(m.slotRepo.slots, key)
		}
	}
	for id, n := range m.noteRepo.notes {
		if n.UserID == userID {
			delete(m.noteRepo.notes, id)
		}
	}
	for id, s := range m.subRepo.subs {
		if s.UserID == userID {
			delete(m.subRepo.subs, id)
		}
	}
	for i := range slots {
		if err := m.slotRepo.Upsert(ctx, &slots[i]); err != nil {
			return err
		}
	}
	for i := range notes {
		if err := m.noteRepo.Create(ctx, &notes[i]); err != nil {
			return err
		}
	}
	for i := range subs {
		if err := m.subRepo.Create(ctx, &subs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ── 组装辅助 ──

type testRepos struct {
	user     *mockUserRepo
	settings *mockSettingsRepo
	slot     *mockSlotRepo
	note     *mockNoteRepo
	sub      *mockSubstitutionRepo
	change   *mockChangeLogRepo
	share    *mockShareRepo
	dataset  *mockDatasetRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		user:     newMockUserRepo(),
		settings: newMockSettingsRepo(),
		slot:     newMockSlotRepo(),
		note:     newMockNoteRepo(),
		sub:      newMockSubstitutionRepo(),
		change:   newMockChangeLogRepo(),
		share:    newMockShareRepo(),
	}
	mocks.dataset = &mockDatasetRepo{
		settingsRepo: mocks.settings,
		slotRepo:     mocks.slot,
		noteRepo:     mocks.note,
		subRepo:      mocks.sub,
	}
	repo := &repository.Repository{
		User:         mocks.user,
		Settings:     mocks.settings,
		Slot:         mocks.slot,
		Note:         mocks.note,
		Substitution: mocks.sub,
		ChangeLog:    mocks.change,
		Share:        mocks.share,
		Dataset:      mocks.dataset,
	}
	return repo, mocks
}
