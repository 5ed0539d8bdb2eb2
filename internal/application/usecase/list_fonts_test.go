package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/bnema/sitestyle/internal/application/port/mocks"
	"github.com/bnema/sitestyle/internal/application/usecase"
)

func TestListFontsUsesDetector(t *testing.T) {
	ctrl := gomock.NewController(t)
	detector := mocks.NewMockFontDetector(ctrl)
	detector.EXPECT().IsAvailable(gomock.Any()).Return(true)
	detector.EXPECT().AvailableFonts(gomock.Any()).Return([]string{"Arial", "Georgia"}, nil)

	got := usecase.NewListFontsUseCase(detector, []string{"serif"}).Execute(testContext())

	assert.Equal(t, usecase.FontList{Fonts: []string{"Arial", "Georgia"}}, got)
}

func TestListFontsFallsBack(t *testing.T) {
	fallback := []string{"serif", "Georgia", "Arial", "Georgia"}

	t.Run("unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		detector := mocks.NewMockFontDetector(ctrl)
		detector.EXPECT().IsAvailable(gomock.Any()).Return(false)

		got := usecase.NewListFontsUseCase(detector, fallback).Execute(testContext())
		assert.True(t, got.Fallback)
		assert.Equal(t, []string{"Arial", "Georgia", "serif"}, got.Fonts)
	})

	t.Run("error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		detector := mocks.NewMockFontDetector(ctrl)
		detector.EXPECT().IsAvailable(gomock.Any()).Return(true)
		detector.EXPECT().AvailableFonts(gomock.Any()).Return(nil, errors.New("exit status 1"))

		got := usecase.NewListFontsUseCase(detector, fallback).Execute(testContext())
		assert.True(t, got.Fallback)
	})

	t.Run("no detector", func(t *testing.T) {
		got := usecase.NewListFontsUseCase(nil, fallback).Execute(testContext())
		assert.Len(t, got.Fonts, 3)
	})

	assert.Equal(t, []string{"serif", "Georgia", "Arial", "Georgia"}, fallback, "input untouched")
}
