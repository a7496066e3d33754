package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-backend/internal/domains/profile/model"
	"profile-backend/internal/domains/profile/service"
	"profile-backend/internal/shared"
)

// stubService implements only the publish methods; the rest panic if called.
type stubService struct {
	service.ServiceInterface
	publishErr error
	published  []int64
	publishAll int
	allErr     error
}

func (s *stubService) Publish(ctx context.Context, id int64) (*model.PublishResponse, error) {
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	s.published = append(s.published, id)
	return &model.PublishResponse{ProfileID: id, Key: "profiles/x.txt", URL: "http://objects.local/x"}, nil
}

func (s *stubService) PublishAll(ctx context.Context) (int, error) {
	return s.publishAll, s.allErr
}

func publishTask(t *testing.T, id int64) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(shared.PublishProfilePayload{ProfileID: id})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypePublishProfile, payload)
}

func TestPublishProfileHandler(t *testing.T) {
	svc := &stubService{}
	h := NewPublishProfileHandler(svc)

	require.NoError(t, h.ProcessTask(context.Background(), publishTask(t, 3)))
	assert.Equal(t, []int64{3}, svc.published)
}

func TestPublishProfileHandler_BadPayloadSkipsRetry(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	h := NewPublishProfileHandler(&stubService{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypePublishProfile, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, shared.TypePublishProfile, entry["task_type"])
	assert.Equal(t, "Invalid publish payload", entry["message"])
	assert.NotEmpty(t, entry["error"])
}

func TestPublishProfileHandler_PermanentFailuresSkipRetry(t *testing.T) {
	for _, cause := range []error{model.ErrProfileNotFound, model.ErrPublishUnavailable} {
		h := NewPublishProfileHandler(&stubService{publishErr: cause})

		err := h.ProcessTask(context.Background(), publishTask(t, 1))

		assert.ErrorIs(t, err, asynq.SkipRetry)
	}
}

func TestPublishProfileHandler_TransientFailureRetries(t *testing.T) {
	h := NewPublishProfileHandler(&stubService{publishErr: errors.New("minio timeout")})

	err := h.ProcessTask(context.Background(), publishTask(t, 1))

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestPublishAllProfilesHandler(t *testing.T) {
	h := NewPublishAllProfilesHandler(&stubService{publishAll: 2})
	assert.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypePublishAllProfiles, nil)))

	h = NewPublishAllProfilesHandler(&stubService{allErr: model.ErrPublishUnavailable})
	assert.ErrorIs(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypePublishAllProfiles, nil)), asynq.SkipRetry)
}
