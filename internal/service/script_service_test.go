package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rickhouse-server/internal/models"
	repomocks "rickhouse-server/internal/repository/mocks"
	"rickhouse-server/internal/service"
	svcmocks "rickhouse-server/internal/service/mocks"
)

const scriptTestTTL = 168 * time.Hour

const validAIResponse = `{
  "phases": [
    {"key": "intro", "title": "Welcome", "guidance": "Pour a dram and settle in."},
    {"key": "nose", "title": "The Nose", "guidance": "Bring the glass up slowly."},
    {"key": "mouthfeel", "title": "Texture", "guidance": "Notice the weight on your tongue."},
    {"key": "taste", "title": "The Palate", "guidance": "Take a small sip."},
    {"key": "finish", "title": "The Finish", "guidance": "Notice how long it lingers."},
    {"key": "value", "title": "Value", "guidance": "Weigh the price against the pour."},
    {"key": "summary", "title": "Wrapping Up", "guidance": "Reflect on the whole experience."}
  ],
  "closing": "Enjoy the rest of your evening."
}`

func scriptTestBottle() *models.Bottle {
	return &models.Bottle{
		ID:          uuid.New(),
		Name:        "Lagavulin 16",
		Distillery:  "Lagavulin",
		WhiskeyType: "single malt scotch",
		AgeYears:    16,
		ABV:         43,
		ReviewCount: 42,
	}
}

func freshScriptFor(bottle *models.Bottle) *models.TastingScript {
	expiresAt := time.Now().UTC().Add(time.Hour)
	return &models.TastingScript{
		BottleID:                bottle.ID,
		Phases:                  []models.ScriptPhase{{Key: models.PhaseIntro, Title: "Welcome", Guidance: "Hello."}},
		Closing:                 "Cheers.",
		ReviewCountAtGeneration: bottle.ReviewCount,
		GeneratedAt:             time.Now().UTC().Add(-time.Hour),
		ExpiresAt:               &expiresAt,
	}
}

func newScriptService(cache *repomocks.ScriptCacheRepository, quota *svcmocks.MockQuotaService, ai service.AIClient) service.ScriptService {
	return service.NewScriptService(cache, quota, ai, 30*time.Second, scriptTestTTL, zap.NewNop())
}

func TestGetOrGenerateCacheHit(t *testing.T) {
	bottle := scriptTestBottle()
	cached := freshScriptFor(bottle)

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)
	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(cached, nil)

	svc := newScriptService(cache, quota, ai)
	script, err := svc.GetOrGenerate(context.Background(), bottle, uuid.New())

	require.NoError(t, err)
	assert.Same(t, cached, script)
	// A cache hit must not touch the quota or the AI collaborator.
	quota.AssertNotCalled(t, "CheckAndReserve", mock.Anything, mock.Anything)
	ai.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetOrGenerateStaleReviewCount(t *testing.T) {
	bottle := scriptTestBottle()
	stale := freshScriptFor(bottle)
	stale.ReviewCountAtGeneration = bottle.ReviewCount - 1
	userID := uuid.New()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)

	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(stale, nil)
	quota.On("CheckAndReserve", mock.Anything, userID).Return(true, 2, nil)
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return(validAIResponse, service.UsageInfo{TotalTokens: 500}, nil)
	cache.On("Upsert", mock.Anything, mock.AnythingOfType("*models.TastingScript")).Return(nil)

	svc := newScriptService(cache, quota, ai)
	script, err := svc.GetOrGenerate(context.Background(), bottle, userID)

	require.NoError(t, err)
	assert.Equal(t, bottle.ID, script.BottleID)
	assert.Equal(t, bottle.ReviewCount, script.ReviewCountAtGeneration)
	assert.Len(t, script.Phases, 7)
	require.NotNil(t, script.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().Add(scriptTestTTL), *script.ExpiresAt, time.Minute)

	cache.AssertExpectations(t)
	quota.AssertExpectations(t)
	ai.AssertExpectations(t)
}

func TestGetOrGenerateCacheMiss(t *testing.T) {
	bottle := scriptTestBottle()
	userID := uuid.New()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)

	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(nil, models.ErrNotFound)
	quota.On("CheckAndReserve", mock.Anything, userID).Return(true, 0, nil)
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return(validAIResponse, service.UsageInfo{}, nil)
	cache.On("Upsert", mock.Anything, mock.AnythingOfType("*models.TastingScript")).Return(nil)

	svc := newScriptService(cache, quota, ai)
	script, err := svc.GetOrGenerate(context.Background(), bottle, userID)

	require.NoError(t, err)
	assert.Equal(t, "Enjoy the rest of your evening.", script.Closing)
	cache.AssertExpectations(t)
}

func TestGetOrGenerateQuotaExceeded(t *testing.T) {
	bottle := scriptTestBottle()
	userID := uuid.New()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)

	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(nil, models.ErrNotFound)
	quota.On("CheckAndReserve", mock.Anything, userID).Return(false, 0, nil)

	svc := newScriptService(cache, quota, ai)
	_, err := svc.GetOrGenerate(context.Background(), bottle, userID)

	assert.ErrorIs(t, err, models.ErrQuotaExceeded)
	ai.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetOrGenerateUnavailableWithoutClient(t *testing.T) {
	bottle := scriptTestBottle()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(nil, models.ErrNotFound)

	svc := newScriptService(cache, quota, nil)
	_, err := svc.GetOrGenerate(context.Background(), bottle, uuid.New())

	assert.ErrorIs(t, err, models.ErrGenerationUnavailable)
	// No quota slot is burned when generation cannot even be attempted.
	quota.AssertNotCalled(t, "CheckAndReserve", mock.Anything, mock.Anything)
}

func TestGetOrGenerateServesFreshCacheWithoutClient(t *testing.T) {
	bottle := scriptTestBottle()
	cached := freshScriptFor(bottle)

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(cached, nil)

	svc := newScriptService(cache, quota, nil)
	script, err := svc.GetOrGenerate(context.Background(), bottle, uuid.New())

	require.NoError(t, err)
	assert.Same(t, cached, script)
}

func TestGetOrGenerateAIFailureLeavesCacheUntouched(t *testing.T) {
	bottle := scriptTestBottle()
	stale := freshScriptFor(bottle)
	stale.ReviewCountAtGeneration = bottle.ReviewCount - 3
	userID := uuid.New()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)

	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(stale, nil)
	quota.On("CheckAndReserve", mock.Anything, userID).Return(true, 1, nil)
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", service.UsageInfo{}, fmt.Errorf("%w: upstream 500", models.ErrGenerationFailed))

	svc := newScriptService(cache, quota, ai)
	_, err := svc.GetOrGenerate(context.Background(), bottle, userID)

	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	cache.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetOrGenerateUnparseableAIResponse(t *testing.T) {
	bottle := scriptTestBottle()
	userID := uuid.New()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)

	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(nil, models.ErrNotFound)
	quota.On("CheckAndReserve", mock.Anything, userID).Return(true, 2, nil)
	ai.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("Sure! Here is a tasting script for you:", service.UsageInfo{}, nil)

	svc := newScriptService(cache, quota, ai)
	_, err := svc.GetOrGenerate(context.Background(), bottle, userID)

	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	cache.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetOrGenerateCacheLookupError(t *testing.T) {
	bottle := scriptTestBottle()

	cache := new(repomocks.ScriptCacheRepository)
	quota := new(svcmocks.MockQuotaService)
	ai := new(svcmocks.MockAIClient)

	cache.On("GetByBottle", mock.Anything, bottle.ID).Return(nil, errors.New("connection refused"))

	svc := newScriptService(cache, quota, ai)
	_, err := svc.GetOrGenerate(context.Background(), bottle, uuid.New())

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	quota.AssertNotCalled(t, "CheckAndReserve", mock.Anything, mock.Anything)
}
