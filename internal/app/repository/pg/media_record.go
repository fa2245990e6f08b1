package pg

import (
	"database/sql"
	"time"

	"video2broll/internal/app/model"
	"video2broll/internal/app/repository"
)

// MediaRecordDB implements repository.MediaRecordDAO on PostgreSQL.
type MediaRecordDB struct {
	db *sql.DB
}

// NewMediaRecordDB connects to PostgreSQL with the given DSN.
func NewMediaRecordDB(dsn string) (*MediaRecordDB, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	return &MediaRecordDB{db: db}, nil
}

// NewMediaRecordDBFromConn wraps an existing connection, used by tests.
func NewMediaRecordDBFromConn(db *sql.DB) *MediaRecordDB {
	return &MediaRecordDB{db: db}
}

func (m *MediaRecordDB) Close() error {
	return m.db.Close()
}

const selectColumns = `id, owner, file_name, source_location, storage_path,
	transcription_job_id, transcript, keywords, candidate_clips, package_link,
	created_at, updated_at`

func (m *MediaRecordDB) Create(record *model.MediaRecord) error {
	clips, err := model.EncodeClips(record.CandidateClips)
	if err != nil {
		return err
	}
	_, err = m.db.Exec(`INSERT INTO media_records
		(id, owner, file_name, source_location, storage_path, transcription_job_id,
		 transcript, keywords, candidate_clips, package_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		record.ID, record.Owner, record.FileName, record.SourceLocation, record.StoragePath,
		record.TranscriptionJobID, record.Transcript, model.JoinKeywords(record.Keywords),
		clips, record.PackageLink, record.CreatedAt, record.UpdatedAt)
	return err
}

func scanRecord(row interface{ Scan(...interface{}) error }) (*model.MediaRecord, error) {
	var record model.MediaRecord
	var keywords, clips string
	err := row.Scan(&record.ID, &record.Owner, &record.FileName, &record.SourceLocation,
		&record.StoragePath, &record.TranscriptionJobID, &record.Transcript,
		&keywords, &clips, &record.PackageLink, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.Keywords = model.SplitKeywords(keywords)
	record.CandidateClips, err = model.DecodeClips(clips)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (m *MediaRecordDB) GetByID(id string) (*model.MediaRecord, error) {
	row := m.db.QueryRow(`SELECT `+selectColumns+` FROM media_records WHERE id = $1`, id)
	return scanRecord(row)
}

func (m *MediaRecordDB) GetByJobID(jobID string) (*model.MediaRecord, error) {
	row := m.db.QueryRow(`SELECT `+selectColumns+` FROM media_records WHERE transcription_job_id = $1`, jobID)
	return scanRecord(row)
}

func (m *MediaRecordDB) ListByOwner(owner string) ([]model.MediaRecord, error) {
	rows, err := m.db.Query(`SELECT `+selectColumns+` FROM media_records WHERE owner = $1 ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.MediaRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (m *MediaRecordDB) SetTranscriptionJob(id string, jobID string) error {
	return m.update(`UPDATE media_records SET transcription_job_id = $1, updated_at = $2 WHERE id = $3`, jobID, time.Now(), id)
}

func (m *MediaRecordDB) SetTranscript(jobID string, transcript string) error {
	return m.update(`UPDATE media_records SET transcript = $1, updated_at = $2 WHERE transcription_job_id = $3`, transcript, time.Now(), jobID)
}

func (m *MediaRecordDB) SetKeywords(id string, keywords []string) error {
	return m.update(`UPDATE media_records SET keywords = $1, updated_at = $2 WHERE id = $3`, model.JoinKeywords(keywords), time.Now(), id)
}

func (m *MediaRecordDB) SetCandidateClips(id string, clips []model.ClipCandidate) error {
	encoded, err := model.EncodeClips(clips)
	if err != nil {
		return err
	}
	return m.update(`UPDATE media_records SET candidate_clips = $1, updated_at = $2 WHERE id = $3`, encoded, time.Now(), id)
}

func (m *MediaRecordDB) SetPackageLink(id string, link string) error {
	return m.update(`UPDATE media_records SET package_link = $1, updated_at = $2 WHERE id = $3`, link, time.Now(), id)
}

func (m *MediaRecordDB) Delete(id string) error {
	_, err := m.db.Exec(`DELETE FROM media_records WHERE id = $1`, id)
	return err
}

func (m *MediaRecordDB) update(query string, args ...interface{}) error {
	result, err := m.db.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ repository.MediaRecordDAO = (*MediaRecordDB)(nil)
