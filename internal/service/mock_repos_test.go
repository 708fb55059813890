package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"fantaprof/backend/internal/model"
	"fantaprof/backend/internal/repository"
	pkgerrors "fantaprof/backend/pkg/errors"
)

// ── Mock Publisher ──

type publishedEvent struct {
	scope    string // "user" | "league" | "global"
	targetID uint
	event    string
	data     interface{}
}

type mockPublisher struct {
	events []publishedEvent
}

func (m *mockPublisher) PublishToUser(userID uint, event string, data interface{}) {
	m.events = append(m.events, publishedEvent{scope: "user", targetID: userID, event: event, data: data})
}

func (m *mockPublisher) PublishToLeague(leagueID uint, event string, data interface{}) {
	m.events = append(m.events, publishedEvent{scope: "league", targetID: leagueID, event: event, data: data})
}

func (m *mockPublisher) Broadcast(event string, data interface{}) {
	m.events = append(m.events, publishedEvent{scope: "global", event: event, data: data})
}

func (m *mockPublisher) byEvent(event string) []publishedEvent {
	var result []publishedEvent
	for _, e := range m.events {
		if e.event == event {
			result = append(result, e)
		}
	}
	return result
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	if user.Avatar == "" {
		user.Avatar = "🎓"
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var ids []uint
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var all []model.User
	for _, id := range ids {
		all = append(all, *m.users[id])
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) UpdateAvatar(_ context.Context, id uint, avatar string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Avatar = avatar
	return nil
}

// ── Mock ProfessorRepository ──

type mockProfessorRepo struct {
	profs    map[uint]*model.Professor
	events   []*model.ScoreEvent
	teamRefs map[uint]int64 // 由测试侧按需设置
	nextID   uint
}

func newMockProfessorRepo() *mockProfessorRepo {
	return &mockProfessorRepo{
		profs:    make(map[uint]*model.Professor),
		teamRefs: make(map[uint]int64),
		nextID:   1,
	}
}

func (m *mockProfessorRepo) Create(_ context.Context, prof *model.Professor) error {
	for _, p := range m.profs {
		if p.Name == prof.Name {
			return pkgerrors.ErrDuplicate
		}
	}
	prof.ID = m.nextID
	m.nextID++
	prof.CreatedAt = time.Now()
	if prof.Avatar == "" {
		prof.Avatar = "👨‍🏫"
	}
	m.profs[prof.ID] = prof
	return nil
}

func (m *mockProfessorRepo) GetByID(_ context.Context, id uint) (*model.Professor, error) {
	if p, ok := m.profs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) GetByIDs(_ context.Context, ids []uint) ([]model.Professor, error) {
	var result []model.Professor
	for _, id := range ids {
		if p, ok := m.profs[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProfessorRepo) GetByName(_ context.Context, name string) (*model.Professor, error) {
	for _, p := range m.profs {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) List(_ context.Context) ([]model.Professor, error) {
	var result []model.Professor
	for _, p := range m.profs {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Cost != result[j].Cost {
			return result[i].Cost > result[j].Cost
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockProfessorRepo) Update(_ context.Context, prof *model.Professor) error {
	if _, ok := m.profs[prof.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.profs[prof.ID] = prof
	return nil
}

func (m *mockProfessorRepo) Delete(_ context.Context, id uint) error {
	delete(m.profs, id)
	return nil
}

func (m *mockProfessorRepo) CountTeamRefs(_ context.Context, id uint) (int64, error) {
	return m.teamRefs[id], nil
}

func (m *mockProfessorRepo) ApplyScoreEvent(_ context.Context, profID uint, eventName string, points int, adminID uint) (*model.Professor, error) {
	p, ok := m.profs[profID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Score += points
	m.events = append(m.events, &model.ScoreEvent{
		ID:          uint(len(m.events) + 1),
		ProfessorID: profID,
		EventName:   eventName,
		Points:      points,
		AdminID:     adminID,
		CreatedAt:   time.Now(),
	})
	return p, nil
}

// ── Mock ScoreEventRepository ──

type mockScoreEventRepo struct {
	profRepo *mockProfessorRepo
}

func (m *mockScoreEventRepo) ListByProfessor(_ context.Context, profID uint, limit int) ([]model.ScoreEvent, error) {
	var result []model.ScoreEvent
	for i := len(m.profRepo.events) - 1; i >= 0; i-- {
		ev := m.profRepo.events[i]
		if ev.ProfessorID == profID {
			result = append(result, *ev)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct {
	teams    map[uint]*model.Team
	rosters  map[uint][]model.TeamProfessor
	profRepo *mockProfessorRepo
	nextID   uint
}

func newMockTeamRepo(profRepo *mockProfessorRepo) *mockTeamRepo {
	return &mockTeamRepo{
		teams:    make(map[uint]*model.Team),
		rosters:  make(map[uint][]model.TeamProfessor),
		profRepo: profRepo,
		nextID:   1,
	}
}

func (m *mockTeamRepo) CreateWithRoster(_ context.Context, team *model.Team, roster []model.TeamProfessor) error {
	if team.LeagueID != nil {
		for _, t := range m.teams {
			if t.UserID == team.UserID && t.LeagueID != nil && *t.LeagueID == *team.LeagueID {
				return pkgerrors.ErrDuplicate
			}
		}
	}
	team.ID = m.nextID
	m.nextID++
	team.CreatedAt = time.Now()
	m.teams[team.ID] = team
	for i := range roster {
		roster[i].TeamID = team.ID
	}
	m.rosters[team.ID] = roster
	return nil
}

func (m *mockTeamRepo) GetByID(_ context.Context, id uint) (*model.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *t
	out.Professors = nil
	for _, tp := range m.rosters[id] {
		tp := tp
		if p, ok := m.profRepo.profs[tp.ProfessorID]; ok {
			tp.Professor = p
		}
		out.Professors = append(out.Professors, tp)
	}
	return &out, nil
}

func (m *mockTeamRepo) ListByUser(ctx context.Context, userID uint) ([]model.Team, error) {
	var result []model.Team
	for id, t := range m.teams {
		if t.UserID == userID {
			full, _ := m.GetByID(ctx, id)
			result = append(result, *full)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTeamRepo) Delete(_ context.Context, id uint) error {
	delete(m.teams, id)
	delete(m.rosters, id)
	return nil
}

func (m *mockTeamRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, t := range m.teams {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockTeamRepo) HasTeamInLeague(_ context.Context, userID, leagueID uint) (bool, error) {
	for _, t := range m.teams {
		if t.UserID == userID && t.LeagueID != nil && *t.LeagueID == leagueID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeamRepo) ListOwnersByProfessor(_ context.Context, profID uint) ([]repository.TeamOwnership, error) {
	var result []repository.TeamOwnership
	var teamIDs []uint
	for id := range m.teams {
		teamIDs = append(teamIDs, id)
	}
	sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })
	for _, id := range teamIDs {
		t := m.teams[id]
		for _, tp := range m.rosters[id] {
			if tp.ProfessorID == profID {
				result = append(result, repository.TeamOwnership{
					TeamID:    t.ID,
					TeamName:  t.Name,
					UserID:    t.UserID,
					LeagueID:  t.LeagueID,
					IsCaptain: tp.IsCaptain,
				})
			}
		}
	}
	return result, nil
}

func (m *mockTeamRepo) TotalScore(_ context.Context, teamID uint) (int, error) {
	total := 0
	for _, tp := range m.rosters[teamID] {
		p, ok := m.profRepo.profs[tp.ProfessorID]
		if !ok {
			continue
		}
		if tp.IsCaptain {
			total += p.Score * 2
		} else {
			total += p.Score
		}
	}
	return total, nil
}

func (m *mockTeamRepo) UserTotalScore(ctx context.Context, userID uint) (int, error) {
	total := 0
	for id, t := range m.teams {
		if t.UserID == userID {
			score, _ := m.TotalScore(ctx, id)
			total += score
		}
	}
	return total, nil
}

func (m *mockTeamRepo) GlobalLeaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	var entries []repository.LeaderboardEntry
	for id, t := range m.teams {
		score, _ := m.TotalScore(ctx, id)
		entries = append(entries, repository.LeaderboardEntry{
			TeamID:     t.ID,
			TeamName:   t.Name,
			UserID:     t.UserID,
			TotalScore: score,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalScore > entries[j].TotalScore })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *mockTeamRepo) LeagueLeaderboard(ctx context.Context, leagueID uint) ([]repository.LeaderboardEntry, error) {
	var entries []repository.LeaderboardEntry
	for id, t := range m.teams {
		if t.LeagueID == nil || *t.LeagueID != leagueID {
			continue
		}
		score, _ := m.TotalScore(ctx, id)
		entries = append(entries, repository.LeaderboardEntry{
			TeamID:     t.ID,
			TeamName:   t.Name,
			UserID:     t.UserID,
			TotalScore: score,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalScore > entries[j].TotalScore })
	return entries, nil
}

func (m *mockTeamRepo) ClearLeagueForUser(_ context.Context, leagueID, userID uint) error {
	for _, t := range m.teams {
		if t.UserID == userID && t.LeagueID != nil && *t.LeagueID == leagueID {
			t.LeagueID = nil
		}
	}
	return nil
}

// ── Mock LeagueRepository ──

type mockLeagueRepo struct {
	leagues  map[uint]*model.League
	members  map[uint]map[uint]time.Time // leagueID → userID → joinedAt
	teamRepo *mockTeamRepo
	nextID   uint
}

func newMockLeagueRepo(teamRepo *mockTeamRepo) *mockLeagueRepo {
	return &mockLeagueRepo{
		leagues:  make(map[uint]*model.League),
		members:  make(map[uint]map[uint]time.Time),
		teamRepo: teamRepo,
		nextID:   1,
	}
}

func (m *mockLeagueRepo) CreateWithCreator(_ context.Context, league *model.League) error {
	for _, l := range m.leagues {
		if l.Code == league.Code {
			return pkgerrors.ErrDuplicate
		}
	}
	league.ID = m.nextID
	m.nextID++
	league.CreatedAt = time.Now()
	if league.MaxMembers == 0 {
		league.MaxMembers = 50
	}
	m.leagues[league.ID] = league
	m.members[league.ID] = map[uint]time.Time{league.CreatorID: time.Now()}
	return nil
}

func (m *mockLeagueRepo) GetByID(_ context.Context, id uint) (*model.League, error) {
	if l, ok := m.leagues[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueRepo) GetByCode(_ context.Context, code string) (*model.League, error) {
	for _, l := range m.leagues {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeagueRepo) ListPublic(_ context.Context) ([]repository.LeagueSummary, error) {
	var result []repository.LeagueSummary
	for id, l := range m.leagues {
		if !l.IsPublic {
			continue
		}
		result = append(result, repository.LeagueSummary{
			League:      *l,
			MemberCount: len(m.members[id]),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberCount > result[j].MemberCount })
	return result, nil
}

func (m *mockLeagueRepo) ListByUser(_ context.Context, userID uint) ([]repository.LeagueSummary, error) {
	var result []repository.LeagueSummary
	for id, l := range m.leagues {
		if joinedAt, ok := m.members[id][userID]; ok {
			t := joinedAt
			result = append(result, repository.LeagueSummary{
				League:      *l,
				MemberCount: len(m.members[id]),
				JoinedAt:    &t,
			})
		}
	}
	return result, nil
}

func (m *mockLeagueRepo) Delete(ctx context.Context, id uint) error {
	for _, t := range m.teamRepo.teams {
		if t.LeagueID != nil && *t.LeagueID == id {
			t.LeagueID = nil
		}
	}
	delete(m.leagues, id)
	delete(m.members, id)
	return nil
}

func (m *mockLeagueRepo) IsMember(_ context.Context, leagueID, userID uint) (bool, error) {
	_, ok := m.members[leagueID][userID]
	return ok, nil
}

func (m *mockLeagueRepo) MemberCount(_ context.Context, leagueID uint) (int64, error) {
	return int64(len(m.members[leagueID])), nil
}

func (m *mockLeagueRepo) AddMember(_ context.Context, leagueID, userID uint) error {
	if _, ok := m.members[leagueID][userID]; ok {
		return pkgerrors.ErrDuplicate
	}
	if m.members[leagueID] == nil {
		m.members[leagueID] = make(map[uint]time.Time)
	}
	m.members[leagueID][userID] = time.Now()
	return nil
}

func (m *mockLeagueRepo) RemoveMember(_ context.Context, leagueID, userID uint) error {
	delete(m.members[leagueID], userID)
	return nil
}

func (m *mockLeagueRepo) CountCreatedBy(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, l := range m.leagues {
		if l.CreatorID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockLeagueRepo) CountJoinedBy(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, members := range m.members {
		if _, ok := members[userID]; ok {
			count++
		}
	}
	return count, nil
}

// ── Mock AchievementRepository ──

type mockAchievementRepo struct {
	achievements map[uint]*model.Achievement
	unlocked     map[uint]map[uint]time.Time // userID → achievementID → unlockedAt
	nextID       uint
}

func newMockAchievementRepo() *mockAchievementRepo {
	return &mockAchievementRepo{
		achievements: make(map[uint]*model.Achievement),
		unlocked:     make(map[uint]map[uint]time.Time),
		nextID:       1,
	}
}

func (m *mockAchievementRepo) seed(a model.Achievement) *model.Achievement {
	a.ID = m.nextID
	m.nextID++
	m.achievements[a.ID] = &a
	return &a
}

func (m *mockAchievementRepo) ListAll(_ context.Context) ([]model.Achievement, error) {
	var result []model.Achievement
	for _, a := range m.achievements {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points < result[j].Points
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockAchievementRepo) GetByCode(_ context.Context, code string) (*model.Achievement, error) {
	for _, a := range m.achievements {
		if a.Code == code {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAchievementRepo) ListUnlockedByUser(_ context.Context, userID uint) ([]model.UserAchievement, error) {
	var result []model.UserAchievement
	for achvID, at := range m.unlocked[userID] {
		result = append(result, model.UserAchievement{
			UserID:        userID,
			AchievementID: achvID,
			UnlockedAt:    at,
			Achievement:   m.achievements[achvID],
		})
	}
	return result, nil
}

func (m *mockAchievementRepo) CountUnlockedByUser(_ context.Context, userID uint) (int64, error) {
	return int64(len(m.unlocked[userID])), nil
}

func (m *mockAchievementRepo) Unlock(_ context.Context, userID, achievementID uint) (bool, error) {
	if _, ok := m.unlocked[userID][achievementID]; ok {
		return false, nil
	}
	if m.unlocked[userID] == nil {
		m.unlocked[userID] = make(map[uint]time.Time)
	}
	m.unlocked[userID][achievementID] = time.Now()
	return true, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	nextID        uint
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{nextID: 1}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = time.Now()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID uint, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].UserID == userID {
			result = append(result, *m.notifications[i])
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID, notificationID uint) error {
	for _, n := range m.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, userID, notificationID uint) error {
	for i, n := range m.notifications {
		if n.ID == notificationID && n.UserID == userID {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) DeleteAll(_ context.Context, userID uint) error {
	var kept []*model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	return nil
}

func (m *mockNotificationRepo) forUser(userID uint) []*model.Notification {
	var result []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

// ── 测试装配 ──

type testEnv struct {
	repo     *repository.Repository
	userRepo *mockUserRepo
	profRepo *mockProfessorRepo
	teamRepo *mockTeamRepo
	lgRepo   *mockLeagueRepo
	achvRepo *mockAchievementRepo
	ntfRepo  *mockNotificationRepo
	pub      *mockPublisher
}

func newTestEnv() *testEnv {
	userRepo := newMockUserRepo()
	profRepo := newMockProfessorRepo()
	teamRepo := newMockTeamRepo(profRepo)
	lgRepo := newMockLeagueRepo(teamRepo)
	achvRepo := newMockAchievementRepo()
	ntfRepo := newMockNotificationRepo()

	return &testEnv{
		repo: &repository.Repository{
			User:         userRepo,
			Professor:    profRepo,
			ScoreEvent:   &mockScoreEventRepo{profRepo: profRepo},
			Team:         teamRepo,
			League:       lgRepo,
			Achievement:  achvRepo,
			Notification: ntfRepo,
		},
		userRepo: userRepo,
		profRepo: profRepo,
		teamRepo: teamRepo,
		lgRepo:   lgRepo,
		achvRepo: achvRepo,
		ntfRepo:  ntfRepo,
		pub:      &mockPublisher{},
	}
}
