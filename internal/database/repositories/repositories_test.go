package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campus-vote/internal/database"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// In-memory sqlite is per connection; a pool would see empty databases
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

func seedElection(t *testing.T, db *sql.DB, status string) *database.Election {
	t.Helper()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	election := &database.Election{
		Title:               "Student Council 2026",
		Description:         "Annual council election",
		Status:              status,
		IsUniversal:         true,
		StartTime:           start,
		EndTime:             start.Add(48 * time.Hour),
		DefaultBallotType:   database.PositionTypeSingle,
		EligibleDepartments: database.StringList{},
		EligibleClassLevels: database.StringList{},
	}
	require.NoError(t, NewElectionRepository(db).CreateElection(election))
	return election
}

func TestBallotRepositoryUniqueConstraint(t *testing.T) {
	db := newTestDB(t)
	election := seedElection(t, db, database.ElectionStatusActive)
	repo := NewBallotRepository(db)
	ctx := context.Background()

	first := &database.Ballot{
		ElectionID: election.ID,
		VoterID:    7,
		VoteData:   []byte(`{"position_1": {"candidate_id": 10}}`),
	}
	require.NoError(t, repo.InsertBallot(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.VotedAt.IsZero())

	// Same voter, same election: the unique index rejects it
	duplicate := &database.Ballot{
		ElectionID: election.ID,
		VoterID:    7,
		VoteData:   []byte(`{"position_1": {"candidate_id": 11}}`),
	}
	err := repo.InsertBallot(ctx, duplicate)
	assert.ErrorIs(t, err, database.ErrDuplicateBallot)

	// Same voter in a different election is fine
	other := seedElection(t, db, database.ElectionStatusActive)
	again := &database.Ballot{
		ElectionID: other.ID,
		VoterID:    7,
		VoteData:   []byte(`{"position_1": {"candidate_id": 10}}`),
	}
	require.NoError(t, repo.InsertBallot(ctx, again))

	stored, err := repo.GetBallot(ctx, election.ID, 7)
	require.NoError(t, err)
	assert.JSONEq(t, string(first.VoteData), string(stored.VoteData))
}

func TestBallotRepositoryGetBallotNoRows(t *testing.T) {
	db := newTestDB(t)
	election := seedElection(t, db, database.ElectionStatusActive)

	_, err := NewBallotRepository(db).GetBallot(context.Background(), election.ID, 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBallotRepositoryCounts(t *testing.T) {
	db := newTestDB(t)
	election := seedElection(t, db, database.ElectionStatusActive)
	repo := NewBallotRepository(db)
	ctx := context.Background()

	for voterID := int64(1); voterID <= 3; voterID++ {
		require.NoError(t, repo.InsertBallot(ctx, &database.Ballot{
			ElectionID: election.ID,
			VoterID:    voterID,
			VoteData:   []byte(`{}`),
		}))
	}

	total, unique, err := repo.CountByElection(election.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, unique)

	counts, err := repo.CountByVoter()
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1}, counts)
}

func TestBallotRepositoryListParticipation(t *testing.T) {
	db := newTestDB(t)
	first := seedElection(t, db, database.ElectionStatusActive)
	second := seedElection(t, db, database.ElectionStatusActive)
	repo := NewBallotRepository(db)
	ctx := context.Background()

	earlier := first.StartTime.Add(time.Hour)
	later := second.StartTime.Add(26 * time.Hour)
	require.NoError(t, repo.InsertBallot(ctx, &database.Ballot{
		ElectionID: second.ID, VoterID: 7, VoteData: []byte(`{}`), VotedAt: later,
	}))
	require.NoError(t, repo.InsertBallot(ctx, &database.Ballot{
		ElectionID: first.ID, VoterID: 7, VoteData: []byte(`{}`), VotedAt: earlier,
	}))

	participation, err := repo.ListParticipation(7)
	require.NoError(t, err)
	require.Len(t, participation, 2)
	// Ordered by voted_at ascending regardless of insertion order
	assert.Equal(t, first.ID, participation[0].ElectionID)
	assert.Equal(t, second.ID, participation[1].ElectionID)
	assert.Equal(t, first.StartTime.Unix(), participation[0].StartTime.Unix())
}

func TestElectionRepositoryVisibility(t *testing.T) {
	db := newTestDB(t)
	seedElection(t, db, database.ElectionStatusDraft)
	active := seedElection(t, db, database.ElectionStatusActive)
	closed := seedElection(t, db, database.ElectionStatusClosed)

	repo := NewElectionRepository(db)
	visible, err := repo.ListVisibleElections(10, 0)
	require.NoError(t, err)

	require.Len(t, visible, 2)
	ids := []int64{visible[0].ID, visible[1].ID}
	assert.Contains(t, ids, active.ID)
	assert.Contains(t, ids, closed.ID)
}

func TestElectionRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewElectionRepository(db)

	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	election := &database.Election{
		Title:                 "Engineering Faculty Board",
		Status:                database.ElectionStatusActive,
		IsSpecial:             true,
		StartTime:             start,
		EndTime:               start.Add(24 * time.Hour),
		DefaultBallotType:     database.PositionTypeRanked,
		AllowAbstain:          true,
		EligibleDepartments:   database.StringList{"Mechanical", "Electrical"},
		EligibleClassLevels:   database.StringList{"300", "400"},
		EligibleOrganizations: database.Int64List{4},
		EligibleVoterIDs:      database.Int64List{1, 2},
	}
	require.NoError(t, repo.CreateElection(election))

	loaded, err := repo.GetElectionByID(election.ID)
	require.NoError(t, err)
	assert.Equal(t, election.Title, loaded.Title)
	assert.True(t, loaded.IsSpecial)
	assert.Equal(t, database.StringList{"Mechanical", "Electrical"}, loaded.EligibleDepartments)
	assert.Equal(t, database.Int64List{4}, loaded.EligibleOrganizations)
	assert.Equal(t, database.Int64List{1, 2}, loaded.EligibleVoterIDs)
}

func TestElectionRepositoryStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	election := seedElection(t, db, database.ElectionStatusDraft)
	repo := NewElectionRepository(db)

	// Draft elections stay hidden until published
	visible, err := repo.ListVisibleElections(10, 0)
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, repo.UpdateElectionStatus(election.ID, database.ElectionStatusActive))

	loaded, err := repo.GetElectionByID(election.ID)
	require.NoError(t, err)
	assert.Equal(t, database.ElectionStatusActive, loaded.Status)

	visible, err = repo.ListVisibleElections(10, 0)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, election.ID, visible[0].ID)
}

func TestCandidateRepositoryApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	election := seedElection(t, db, database.ElectionStatusActive)

	positions := NewPositionRepository(db)
	president := &database.Position{
		ElectionID: election.ID,
		Name:       "President",
		Type:       database.PositionTypeSingle,
	}
	require.NoError(t, positions.CreatePosition(president))

	candidates := NewCandidateRepository(db)
	approved := &database.Candidate{
		PositionID: president.ID, ElectionID: election.ID, UserID: 100,
		Name: "Ada Obi", Approved: true,
	}
	pending := &database.Candidate{
		PositionID: president.ID, ElectionID: election.ID, UserID: 101,
		Name: "Ben Eze", Approved: false,
	}
	require.NoError(t, candidates.CreateCandidate(approved))
	require.NoError(t, candidates.CreateCandidate(pending))

	byPosition, err := candidates.ListApprovedByElection(election.ID)
	require.NoError(t, err)
	require.Len(t, byPosition[president.ID], 1)
	assert.Equal(t, "Ada Obi", byPosition[president.ID][0].Name)
}

func TestStudentRepository(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO students (id, department, class_level, organizations, is_active)
		VALUES (7, 'Computer Science', '300', '[4,9]', TRUE),
		       (8, 'Law', '100', '[]', FALSE)`)
	require.NoError(t, err)

	repo := NewStudentRepository(db)
	student, err := repo.GetStudentByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", student.Department)
	assert.Equal(t, database.Int64List{4, 9}, student.Organizations)
	assert.True(t, student.IsActive)

	// Inactive students don't count toward the percentile denominator
	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAuditLogRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository(db)

	entry := &database.AuditLog{
		Action:     "ballot_cast",
		UserID:     "7",
		ElectionID: 1,
		Details:    "Ballot 1 recorded",
		IPAddress:  "10.0.0.1",
	}
	require.NoError(t, repo.InsertAuditLog(entry))
	assert.NotZero(t, entry.ID)

	logs, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "ballot_cast", logs[0].Action)
}
