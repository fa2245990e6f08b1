package testutil

import (
	"database/sql"
	"sort"
	"sync"
	"time"

	"video2broll/internal/app/model"
)

// MockMediaRecordDAO is an in-memory implementation of
// repository.MediaRecordDAO with configurable per-method failures.
type MockMediaRecordDAO struct {
	mu      sync.RWMutex
	records map[string]*model.MediaRecord

	// ErrorMap forces a method to fail: method name -> error.
	ErrorMap map[string]error
	// Calls records method names in invocation order.
	Calls []string
}

// NewMockMediaRecordDAO creates an empty in-memory DAO.
func NewMockMediaRecordDAO() *MockMediaRecordDAO {
	return &MockMediaRecordDAO{
		records:  make(map[string]*model.MediaRecord),
		ErrorMap: make(map[string]error),
	}
}

// Seed inserts a record directly, bypassing Create bookkeeping.
func (m *MockMediaRecordDAO) Seed(record model.MediaRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := record
	m.records[record.ID] = &clone
}

func (m *MockMediaRecordDAO) fail(method string) error {
	m.Calls = append(m.Calls, method)
	if err, ok := m.ErrorMap[method]; ok {
		return err
	}
	return nil
}

func (m *MockMediaRecordDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fail("Close")
}

func (m *MockMediaRecordDAO) Create(record *model.MediaRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Create"); err != nil {
		return err
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

func (m *MockMediaRecordDAO) GetByID(id string) (*model.MediaRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetByID"); err != nil {
		return nil, err
	}
	record, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *record
	return &clone, nil
}

func (m *MockMediaRecordDAO) GetByJobID(jobID string) (*model.MediaRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetByJobID"); err != nil {
		return nil, err
	}
	for _, record := range m.records {
		if record.TranscriptionJobID == jobID {
			clone := *record
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockMediaRecordDAO) ListByOwner(owner string) ([]model.MediaRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListByOwner"); err != nil {
		return nil, err
	}
	var result []model.MediaRecord
	for _, record := range m.records {
		if record.Owner == owner {
			result = append(result, *record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockMediaRecordDAO) SetTranscriptionJob(id, jobID string) error {
	return m.update("SetTranscriptionJob", id, func(r *model.MediaRecord) {
		r.TranscriptionJobID = jobID
	})
}

func (m *MockMediaRecordDAO) SetTranscript(jobID, transcript string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetTranscript"); err != nil {
		return err
	}
	for _, record := range m.records {
		if record.TranscriptionJobID == jobID {
			record.Transcript = transcript
			record.UpdatedAt = time.Now()
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockMediaRecordDAO) SetKeywords(id string, keywords []string) error {
	return m.update("SetKeywords", id, func(r *model.MediaRecord) {
		r.Keywords = append([]string(nil), keywords...)
	})
}

func (m *MockMediaRecordDAO) SetCandidateClips(id string, clips []model.ClipCandidate) error {
	return m.update("SetCandidateClips", id, func(r *model.MediaRecord) {
		r.CandidateClips = append([]model.ClipCandidate(nil), clips...)
	})
}

func (m *MockMediaRecordDAO) SetPackageLink(id, link string) error {
	return m.update("SetPackageLink", id, func(r *model.MediaRecord) {
		r.PackageLink = link
	})
}

func (m *MockMediaRecordDAO) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("Delete"); err != nil {
		return err
	}
	if _, ok := m.records[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.records, id)
	return nil
}

func (m *MockMediaRecordDAO) update(method, id string, apply func(*model.MediaRecord)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(method); err != nil {
		return err
	}
	record, ok := m.records[id]
	if !ok {
		return sql.ErrNoRows
	}
	apply(record)
	record.UpdatedAt = time.Now()
	return nil
}
