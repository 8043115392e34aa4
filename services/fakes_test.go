package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"pubg-tournament-tracker/analysis"
	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/repositories"
	"pubg-tournament-tracker/storage"
)

// In-memory stand-ins for the postgres repositories and external clients.
// Error fields inject failures for the paths under test.

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	deleted     []int
	deleteErr   error
}

func newFakeTournamentRepo(ts ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, t := range ts {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = len(f.tournaments) + 1
	f.tournaments[t.ID] = t
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if _, ok := f.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	f.tournaments[t.ID] = t
	return nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.tournaments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, team := range teams {
		repo.teams[team.ID] = team
	}
	return repo
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = len(f.teams) + 1
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	cp := *team
	return &cp, nil
}

func (f *fakeTeamRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	out := make([]models.Team, 0)
	for _, team := range f.teams {
		if team.TournamentID == tournamentID {
			out = append(out, *team)
		}
	}
	// The SQL query orders by name; keep listings deterministic here too.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	team, ok := f.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

func (f *fakeTeamRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int64, error) {
	var n int64
	for id, team := range f.teams {
		if team.TournamentID == tournamentID {
			delete(f.teams, id)
			n++
		}
	}
	return n, nil
}

type fakeRecordRepo struct {
	records   []models.MatchRecord
	nextID    int
	createErr error
}

func (f *fakeRecordRepo) Create(ctx context.Context, record *models.MatchRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	record.ID = f.nextID
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeRecordRepo) CreateBatch(ctx context.Context, records []*models.MatchRecord) error {
	for _, rec := range records {
		if err := f.Create(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRecordRepo) ListByTeam(ctx context.Context, teamID int) ([]models.MatchRecord, error) {
	out := make([]models.MatchRecord, 0)
	for _, rec := range f.records {
		if rec.TeamID == teamID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByTeams(ctx context.Context, teamIDs []int) ([]models.MatchRecord, error) {
	wanted := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = true
	}
	out := make([]models.MatchRecord, 0)
	for _, rec := range f.records {
		if wanted[rec.TeamID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) CountPerMatchByTeam(ctx context.Context, teamID int) (int, error) {
	count := 0
	for _, rec := range f.records {
		if rec.TeamID == teamID && rec.MatchNumber >= 1 {
			count++
		}
	}
	return count, nil
}

func (f *fakeRecordRepo) DeleteByTeams(ctx context.Context, exec repositories.SQLExecutor, teamIDs []int) (int64, error) {
	wanted := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = true
	}
	kept := f.records[:0]
	var n int64
	for _, rec := range f.records {
		if wanted[rec.TeamID] {
			n++
			continue
		}
		kept = append(kept, rec)
	}
	f.records = kept
	return n, nil
}

type fakeStatRepo struct {
	stats  []models.PlayerStat
	nextID int
}

func (f *fakeStatRepo) CreateBatch(ctx context.Context, stats []*models.PlayerStat) error {
	for _, st := range stats {
		f.nextID++
		st.ID = f.nextID
		f.stats = append(f.stats, *st)
	}
	return nil
}

func (f *fakeStatRepo) ListByTeams(ctx context.Context, teamIDs []int) ([]models.PlayerStat, error) {
	wanted := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = true
	}
	out := make([]models.PlayerStat, 0)
	for _, st := range f.stats {
		if wanted[st.TeamID] {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStatRepo) DeleteByTeams(ctx context.Context, exec repositories.SQLExecutor, teamIDs []int) (int64, error) {
	wanted := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = true
	}
	kept := f.stats[:0]
	var n int64
	for _, st := range f.stats {
		if wanted[st.TeamID] {
			n++
			continue
		}
		kept = append(kept, st)
	}
	f.stats = kept
	return n, nil
}

type fakeHistoryRepo struct {
	entries   []models.TournamentHistory
	createErr error
}

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *models.TournamentHistory) error {
	if f.createErr != nil {
		return f.createErr
	}
	entry.ID = len(f.entries) + 1
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) GetByID(ctx context.Context, id int) (*models.TournamentHistory, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			cp := f.entries[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrHistoryNotFound
}

func (f *fakeHistoryRepo) GetByOriginalTournamentID(ctx context.Context, tournamentID int) (*models.TournamentHistory, error) {
	for i := range f.entries {
		if f.entries[i].OriginalTournamentID == tournamentID {
			cp := f.entries[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrHistoryNotFound
}

func (f *fakeHistoryRepo) List(ctx context.Context) ([]models.TournamentHistory, error) {
	return append([]models.TournamentHistory(nil), f.entries...), nil
}

type fakeAccessCodeRepo struct {
	codes []models.AccessCode
}

func (f *fakeAccessCodeRepo) Create(ctx context.Context, code *models.AccessCode) error {
	code.ID = len(f.codes) + 1
	f.codes = append(f.codes, *code)
	return nil
}

func (f *fakeAccessCodeRepo) List(ctx context.Context) ([]models.AccessCode, error) {
	return append([]models.AccessCode(nil), f.codes...), nil
}

func (f *fakeAccessCodeRepo) DeleteByTeams(ctx context.Context, exec repositories.SQLExecutor, teamIDs []int) (int64, error) {
	wanted := make(map[int]bool, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = true
	}
	kept := f.codes[:0]
	var n int64
	for _, code := range f.codes {
		if code.TeamID != nil && wanted[*code.TeamID] {
			n++
			continue
		}
		kept = append(kept, code)
	}
	f.codes = kept
	return n, nil
}

const fakePublicBase = "https://cdn.example.com"

type fakeUploader struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return nil, err
	}
	f.uploaded = append(f.uploaded, key)
	return &storage.UploadResult{
		Key:      key,
		Location: f.GetPublicURL(key),
	}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return fmt.Sprintf("%s/%s", fakePublicBase, key)
}

func (f *fakeUploader) KeyFromPublicURL(url string) string {
	if trimmed, ok := strings.CutPrefix(url, fakePublicBase+"/"); ok {
		return trimmed
	}
	return ""
}

type analyzerReply struct {
	result *analysis.MatchAnalysis
	err    error
}

// fakeAnalyzer replays canned replies in submission order, since the real
// object keys embed random UUIDs.
type fakeAnalyzer struct {
	replies []analyzerReply
	calls   []string
}

func (f *fakeAnalyzer) AnalyzeScreenshot(ctx context.Context, imageURL string) (*analysis.MatchAnalysis, error) {
	f.calls = append(f.calls, imageURL)
	if len(f.replies) == 0 {
		return &analysis.MatchAnalysis{}, nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply.result, reply.err
}

func intPtr(v int) *int { return &v }
