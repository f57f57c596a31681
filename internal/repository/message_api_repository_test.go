package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *MessageAPIRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewMessageAPIRepository(server.URL+"/", time.Second).WithHTTPClient(server.Client())
}

func TestDateRange(t *testing.T) {
	repo := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/messages/date-range", r.URL.Path)
		_, _ = w.Write([]byte(`{"min_date":"2024-01-01","max_date":"2024-06-30"}`))
	})

	out, err := repo.DateRange(context.Background())
	require.NoError(t, err)
	bounds := out.Bounds()
	require.NotNil(t, bounds)
	assert.Equal(t, "2024-01-01", bounds.Min)
	assert.Equal(t, "2024-06-30", bounds.Max)
}

func TestSearchMessagesSendsRawQuery(t *testing.T) {
	var rawQuery string
	repo := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[
			{"message_id":2,"physician_id":7,"physician_name":"Ana Ruiz","specialty":"Oncology","state":"NY","timestamp":"2024-03-02T09:30:00","topic":"dosing","sentiment":"negative","message_text":"Second","channel":"email"},
			{"message_id":1,"physician_id":7,"physician_name":"Ana Ruiz","specialty":"Oncology","state":"NY","timestamp":"2024-03-01T09:30:00","topic":"dosing","sentiment":"negative","message_text":"First","response_latency_sec":null}
		]`))
	})

	msgs, err := repo.SearchMessages(context.Background(), "topic=dosing&message_text=a%20b")
	require.NoError(t, err)
	assert.Equal(t, "topic=dosing&message_text=a%20b", rawQuery)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[0].MessageID)
	assert.Equal(t, "Ana Ruiz", msgs[0].PhysicianName)
	assert.Equal(t, "2024-03-02T09:30:00", msgs[0].Timestamp)
	assert.Equal(t, "email", msgs[0].Channel)
	assert.Nil(t, msgs[1].ResponseLatencySec)
}

func TestSearchMessagesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"detail":"Invalid date format"}`, http.StatusBadRequest)
			},
		},
		{
			name: "non-json body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway</html>"))
			},
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("null"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newBackend(t, tt.handler)
			msgs, err := repo.SearchMessages(context.Background(), "")
			assert.Error(t, err)
			assert.Nil(t, msgs)
		})
	}
}

func TestSearchMessagesStatusError(t *testing.T) {
	repo := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := repo.SearchMessages(context.Background(), "")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestClassifyPostsToMessagePath(t *testing.T) {
	repo := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/classify/42", r.URL.Path)
		assert.Equal(t, int64(0), r.ContentLength)
		_, _ = w.Write([]byte(`{"message_id":42,"message_text":"Try it off-label","matched_rules":[{"rule_id":"R1","rule_name":"Off-label claim"}],"action_required":"Remove claim","modified_text":null}`))
	})

	res, err := repo.Classify(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.MessageID)
	require.Len(t, res.MatchedRules, 1)
	assert.Equal(t, "R1", res.MatchedRules[0].RuleID)
	require.NotNil(t, res.ActionRequired)
	assert.Equal(t, "Remove claim", *res.ActionRequired)
	assert.Nil(t, res.ModifiedText)
}

func TestRequestHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	repo := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := repo.Classify(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInfo(t *testing.T) {
	repo := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Healthcare Engagement Dashboard API","version":"1.0"}`))
	})

	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0", info.Version)
}

func TestUnconfiguredBaseURL(t *testing.T) {
	repo := NewMessageAPIRepository("", time.Second)
	_, err := repo.Info(context.Background())
	assert.Error(t, err)
}
