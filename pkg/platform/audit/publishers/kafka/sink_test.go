package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	id "enrolsight/pkg/domain"
	audit "enrolsight/pkg/platform/audit"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() { f.closed = true }

func TestSink_Publish(t *testing.T) {
	producer := &fakeProducer{}
	sink := NewSink(producer, "enrolsight.audit")

	userID := id.UserID(uuid.New())
	event := audit.Event{
		ID:        id.NewEventID(),
		Category:  audit.CategoryOperations,
		Timestamp: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		UserID:    userID,
		Action:    audit.ActionViewComputed,
		Subject:   "overview",
	}
	require.NoError(t, sink.Publish(context.Background(), event))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, "enrolsight.audit", rec.Topic)
	assert.Equal(t, userID.String(), string(rec.Key))
	assert.Equal(t, event.Timestamp, rec.Timestamp)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, "view_computed", decoded["action"])
	assert.Equal(t, "overview", decoded["subject"])

	sink.Close()
	assert.True(t, producer.closed)
}

func TestSink_PublishError(t *testing.T) {
	sink := NewSink(&fakeProducer{err: errors.New("broker down")}, "t")
	err := sink.Publish(context.Background(), audit.Event{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

type fakeAdmin struct {
	err     error
	respErr error
}

func (f fakeAdmin) CreateTopics(_ context.Context, _ int32, _ int16, _ map[string]*string, topics ...string) (kadm.CreateTopicResponses, error) {
	if f.err != nil {
		return nil, f.err
	}
	resp := kadm.CreateTopicResponses{}
	for _, topic := range topics {
		resp[topic] = kadm.CreateTopicResponse{Topic: topic, Err: f.respErr}
	}
	return resp, nil
}

func TestEnsureTopic(t *testing.T) {
	assert.NoError(t, EnsureTopic(context.Background(), fakeAdmin{}, "audit"))
	assert.NoError(t, EnsureTopic(context.Background(), fakeAdmin{respErr: kerr.TopicAlreadyExists}, "audit"))
	assert.Error(t, EnsureTopic(context.Background(), fakeAdmin{respErr: kerr.TopicAuthorizationFailed}, "audit"))
	assert.Error(t, EnsureTopic(context.Background(), fakeAdmin{err: errors.New("no brokers")}, "audit"))
}
