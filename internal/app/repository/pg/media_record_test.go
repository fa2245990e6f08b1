package pg

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"video2broll/internal/app/model"
	"video2broll/internal/app/repository"
)

func TestMediaRecordDB_Interface(t *testing.T) {
	var _ repository.MediaRecordDAO = (*MediaRecordDB)(nil)
}

func newMockDB(t *testing.T) (*MediaRecordDB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMediaRecordDBFromConn(db), mock
}

func recordColumns() []string {
	return []string{"id", "owner", "file_name", "source_location", "storage_path",
		"transcription_job_id", "transcript", "keywords", "candidate_clips", "package_link",
		"created_at", "updated_at"}
}

func TestMediaRecordDB_Create(t *testing.T) {
	dao, mock := newMockDB(t)

	now := time.Now()
	record := &model.MediaRecord{
		ID:             "media-1",
		Owner:          "alice",
		FileName:       "talk.mp4",
		SourceLocation: "https://files.test/talk.mp4?dl=1",
		StoragePath:    "/media_uploads/media-1_talk.mp4",
		Keywords:       []string{"Office", "Teamwork"},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO media_records`)).
		WithArgs("media-1", "alice", "talk.mp4", "https://files.test/talk.mp4?dl=1",
			"/media_uploads/media-1_talk.mp4", "", "", "Office,Teamwork", sqlmock.AnyArg(), "",
			now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, dao.Create(record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_GetByID(t *testing.T) {
	dao, mock := newMockDB(t)

	clips, err := model.EncodeClips([]model.ClipCandidate{
		{Keyword: "Office", SourceID: 101, DurationSeconds: 14, PreviewURL: "https://videos.test/101-hd.mp4"},
	})
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows(recordColumns()).
		AddRow("media-1", "alice", "talk.mp4", "https://files.test/talk.mp4?dl=1",
			"/media_uploads/media-1_talk.mp4", "job-42", "Hello, world.",
			"Office,Teamwork", clips, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("media-1").
		WillReturnRows(rows)

	record, err := dao.GetByID("media-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", record.Owner)
	assert.Equal(t, "job-42", record.TranscriptionJobID)
	assert.Equal(t, []string{"Office", "Teamwork"}, record.Keywords)
	require.Len(t, record.CandidateClips, 1)
	assert.Equal(t, int64(101), record.CandidateClips[0].SourceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_GetByJobIDMissing(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("job-unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := dao.GetByJobID("job-unknown")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_ListByOwner(t *testing.T) {
	dao, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(recordColumns()).
		AddRow("media-2", "alice", "b.mp4", "", "", "", "", "", "", "", now, now).
		AddRow("media-1", "alice", "a.mp4", "", "", "", "", "", "", "", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("alice").
		WillReturnRows(rows)

	records, err := dao.ListByOwner("alice")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "media-2", records[0].ID)
	assert.Empty(t, records[0].Keywords)
	assert.Empty(t, records[0].CandidateClips)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_UpdatesRequireExistingRow(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE media_records SET keywords = $1`)).
		WithArgs("Office", sqlmock.AnyArg(), "media-unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := dao.SetKeywords("media-unknown", []string{"Office"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_SetCandidateClips(t *testing.T) {
	dao, mock := newMockDB(t)

	clips := []model.ClipCandidate{
		{Keyword: "Office", SourceID: 101, DurationSeconds: 14},
		{Keyword: "Teamwork", SourceID: 202, DurationSeconds: 9},
	}
	encoded, err := model.EncodeClips(clips)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE media_records SET candidate_clips = $1`)).
		WithArgs(encoded, sqlmock.AnyArg(), "media-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, dao.SetCandidateClips("media-1", clips))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_SetTranscriptByJobID(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE media_records SET transcript = $1`)).
		WithArgs("Hello, world.", sqlmock.AnyArg(), "job-42").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, dao.SetTranscript("job-42", "Hello, world."))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_Delete(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM media_records WHERE id = $1`)).
		WithArgs("media-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, dao.Delete("media-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRecordDB_QueryErrorPropagates(t *testing.T) {
	dao, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("alice").
		WillReturnError(errors.New("connection reset"))

	_, err := dao.ListByOwner("alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
