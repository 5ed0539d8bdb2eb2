package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/domain/entity"
	repomocks "github.com/bnema/sitestyle/internal/domain/repository/mocks"
	"github.com/bnema/sitestyle/internal/infrastructure/persistence/memory"
	"github.com/bnema/sitestyle/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newStore() *usecase.ManageDisplaySettingsUseCase {
	return usecase.NewManageDisplaySettingsUseCase(memory.NewDisplaySettingsRepository())
}

func TestManageDisplaySettings_GetAbsentDomainIsEmpty(t *testing.T) {
	cfg, err := newStore().Get(testContext(), "a.com")
	require.NoError(t, err)
	assert.Equal(t, "a.com", cfg.Domain)
	assert.True(t, cfg.IsEmpty())
}

func TestManageDisplaySettings_SetFieldKeepsOtherFields(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	_, err := uc.SetField(ctx, "a.com", entity.FieldFont, "Arial")
	require.NoError(t, err)
	_, err = uc.SetField(ctx, "a.com", entity.FieldFontSizeDelta, "3")
	require.NoError(t, err)

	cfg, err := uc.Get(ctx, "a.com")
	require.NoError(t, err)
	require.NotNil(t, cfg.Font)
	require.NotNil(t, cfg.FontSizeDelta)
	assert.Equal(t, "Arial", *cfg.Font)
	assert.Equal(t, 3, *cfg.FontSizeDelta)
	assert.Nil(t, cfg.ScaleFactor)
}

func TestManageDisplaySettings_SetFieldClampsDelta(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	cfg, err := uc.SetField(ctx, "a.com", entity.FieldFontSizeDelta, "12")
	require.NoError(t, err)
	assert.Equal(t, entity.FontSizeDeltaMax, *cfg.FontSizeDelta)

	cfg, err = uc.SetFontSizeDelta(ctx, "a.com", -40)
	require.NoError(t, err)
	assert.Equal(t, entity.FontSizeDeltaMin, *cfg.FontSizeDelta)
}

func TestManageDisplaySettings_SentinelInputClearsField(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	_, err := uc.SetFont(ctx, "a.com", "Arial")
	require.NoError(t, err)
	_, err = uc.SetScaleFactor(ctx, "a.com", 1.5)
	require.NoError(t, err)

	_, err = uc.SetField(ctx, "a.com", entity.FieldScaleFactor, "1")
	require.NoError(t, err)

	cfg, err := uc.Get(ctx, "a.com")
	require.NoError(t, err)
	assert.Nil(t, cfg.ScaleFactor)
	assert.NotNil(t, cfg.Font)
}

func TestManageDisplaySettings_ClearLastFieldDeletesDomain(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	_, err := uc.SetFont(ctx, "a.com", "Arial")
	require.NoError(t, err)
	_, err = uc.SetFontSizeDelta(ctx, "a.com", 2)
	require.NoError(t, err)

	_, err = uc.ClearField(ctx, "a.com", entity.FieldFont)
	require.NoError(t, err)
	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = uc.ClearField(ctx, "a.com", entity.FieldFontSizeDelta)
	require.NoError(t, err)
	all, err = uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "domain without fields must disappear")
}

func TestManageDisplaySettings_ClearAbsentFieldIsNoop(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	cfg, err := uc.ClearField(ctx, "nowhere.example", entity.FieldScaleFactor)
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
}

func TestManageDisplaySettings_InvalidInput(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	_, err := uc.SetFont(ctx, "  ", "Arial")
	assert.ErrorIs(t, err, entity.ErrInvalidDomain)

	_, err = uc.SetField(ctx, "a.com", entity.FieldScaleFactor, "big")
	assert.ErrorIs(t, err, entity.ErrInvalidScale)

	_, err = uc.SetScaleFactor(ctx, "a.com", -1)
	assert.ErrorIs(t, err, entity.ErrInvalidScale)

	_, err = uc.ClearField(ctx, "a.com", entity.SettingField("color"))
	assert.ErrorIs(t, err, entity.ErrUnknownField)
}

func TestManageDisplaySettings_DomainIsCaseInsensitive(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	_, err := uc.SetFont(ctx, "A.Com", "Arial")
	require.NoError(t, err)

	cfg, err := uc.Get(ctx, "a.com")
	require.NoError(t, err)
	assert.Equal(t, "Arial", *cfg.Font)
}

func TestManageDisplaySettings_ConcurrentFieldWritesAreNotLost(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); _, _ = uc.SetFont(ctx, "a.com", "Arial") }()
	go func() { defer wg.Done(); _, _ = uc.SetFontSizeDelta(ctx, "a.com", 2) }()
	go func() { defer wg.Done(); _, _ = uc.SetScaleFactor(ctx, "a.com", 1.5) }()
	wg.Wait()

	cfg, err := uc.Get(ctx, "a.com")
	require.NoError(t, err)
	assert.NotNil(t, cfg.Font)
	assert.NotNil(t, cfg.FontSizeDelta)
	assert.NotNil(t, cfg.ScaleFactor)
}

func TestManageDisplaySettings_SummaryListsEveryField(t *testing.T) {
	ctx := testContext()
	uc := newStore()

	_, err := uc.SetFont(ctx, "b.com", "Georgia")
	require.NoError(t, err)
	_, err = uc.SetFontSizeDelta(ctx, "a.com", -2)
	require.NoError(t, err)
	_, err = uc.SetScaleFactor(ctx, "a.com", 1.25)
	require.NoError(t, err)

	lines, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Domain: a.com, Font Size delta: -2px",
		"Domain: a.com, Scaling Factor: 1.25",
		"Domain: b.com, Font: Georgia",
	}, lines)
}

func TestManageDisplaySettings_RepositoryErrorsAreWrapped(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockDisplaySettingsRepository(t)
	boom := errors.New("disk full")

	repo.EXPECT().Get(mock.Anything, "a.com").Return(nil, nil)
	repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*entity.DomainConfig")).Return(boom)

	uc := usecase.NewManageDisplaySettingsUseCase(repo)
	_, err := uc.SetFont(ctx, "a.com", "Arial")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to save display settings")
}

func TestManageDisplaySettings_ClearFieldDeletesThroughRepository(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockDisplaySettingsRepository(t)

	existing := entity.NewDomainConfig("a.com")
	existing.SetFont("Arial")
	repo.EXPECT().Get(mock.Anything, "a.com").Return(existing, nil)
	repo.EXPECT().Delete(mock.Anything, "a.com").Return(nil)

	uc := usecase.NewManageDisplaySettingsUseCase(repo)
	cfg, err := uc.ClearField(ctx, "a.com", entity.FieldFont)
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
}

func TestManageDisplaySettings_ListAllSkipsEmptyRows(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockDisplaySettingsRepository(t)

	withFont := entity.NewDomainConfig("a.com")
	withFont.SetFont("Arial")
	repo.EXPECT().GetAll(mock.Anything).Return([]*entity.DomainConfig{
		withFont,
		entity.NewDomainConfig("empty.com"),
	}, nil)

	all, err := usecase.NewManageDisplaySettingsUseCase(repo).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a.com", all[0].Domain)
}
