package service

import (
	"context"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/engagement-dashboard/internal/models"
)

type searchReply struct {
	msgs []models.Message
	err  error
}

type classifyReply struct {
	result *models.ClassificationResult
	err    error
}

// fakeMessageAPI answers immediately from canned values unless a gate is installed for a
// query or message id, in which case the call blocks until the test releases it.
type fakeMessageAPI struct {
	mu sync.Mutex

	dateRange *models.DateRange
	dateErr   error
	dateCalls int
	dateGate  chan struct{}

	messages  []models.Message
	searchErr error
	queries   []string

	results     map[int64]*models.ClassificationResult
	classifyErr error
	classified  []int64

	searchGates   map[string]chan searchReply
	classifyGates map[int64]chan classifyReply
	started       chan string
}

func newFakeMessageAPI() *fakeMessageAPI {
	return &fakeMessageAPI{
		results:       make(map[int64]*models.ClassificationResult),
		searchGates:   make(map[string]chan searchReply),
		classifyGates: make(map[int64]chan classifyReply),
		started:       make(chan string, 16),
	}
}

func (f *fakeMessageAPI) gateSearch(query string) chan searchReply {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan searchReply, 1)
	f.searchGates[query] = ch
	return ch
}

func (f *fakeMessageAPI) gateClassify(id int64) chan classifyReply {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan classifyReply, 1)
	f.classifyGates[id] = ch
	return ch
}

func (f *fakeMessageAPI) DateRange(ctx context.Context) (*models.DateRange, error) {
	f.mu.Lock()
	f.dateCalls++
	gate := f.dateGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dateErr != nil {
		return nil, f.dateErr
	}
	if f.dateRange == nil {
		return &models.DateRange{}, nil
	}
	return f.dateRange, nil
}

func (f *fakeMessageAPI) dateCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dateCalls
}

func (f *fakeMessageAPI) SearchMessages(ctx context.Context, query string) ([]models.Message, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	gate, gated := f.searchGates[query]
	msgs, err := f.messages, f.searchErr
	f.mu.Unlock()

	if !gated {
		return msgs, err
	}
	f.started <- query
	select {
	case reply := <-gate:
		return reply.msgs, reply.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeMessageAPI) Classify(ctx context.Context, messageID int64) (*models.ClassificationResult, error) {
	f.mu.Lock()
	f.classified = append(f.classified, messageID)
	gate, gated := f.classifyGates[messageID]
	res, err := f.results[messageID], f.classifyErr
	f.mu.Unlock()

	if !gated {
		return res, err
	}
	f.started <- "classify"
	select {
	case reply := <-gate:
		return reply.result, reply.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeMessageAPI) recordedQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func strPtr(s string) *string { return &s }

func lastQuery(e *QueryExecutor) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastQuery
}

func classifyPending(s *ClassificationSession) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.inFlight()
}

func sampleMessages() []models.Message {
	return []models.Message{
		{
			MessageID:     42,
			PhysicianID:   1001,
			PhysicianName: "Dr. Ada Reyes",
			Specialty:     "Cardiology",
			State:         "MA",
			Timestamp:     "2024-03-15T10:30:00",
			Topic:         "dosing",
			Sentiment:     "negative",
			MessageText:   "Can the dose be doubled for elderly patients?",
		},
		{
			MessageID:     43,
			PhysicianID:   1002,
			PhysicianName: "Dr. Omar Lind",
			Specialty:     "Oncology",
			State:         "NY",
			Timestamp:     "2024-04-02T08:00:00",
			Topic:         "dosing",
			Sentiment:     "negative",
			MessageText:   "Patients report nausea at the starting dose.",
		},
	}
}

// counterValue reads one labelled counter from the metrics registry.
func counterValue(t *testing.T, m *MetricsService, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelsMatch(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok {
			if v != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(want)
}
