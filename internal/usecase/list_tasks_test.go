package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
	"github.com/runoshun/duelist/internal/usecase"
)

func TestListTasks_Execute(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	_, _ = store.Add(ctx, "late", testNow.Add(-time.Hour))
	later, _ := store.Add(ctx, "later", testNow.Add(time.Hour))
	_, _ = store.ToggleComplete(ctx, later.ID)

	uc := usecase.NewListTasks(store, clock())

	t.Run("all", func(t *testing.T) {
		out, err := uc.Execute(ctx, usecase.ListTasksInput{})
		require.NoError(t, err)
		require.Len(t, out.Rows, 2)
		assert.Equal(t, "late", out.Rows[0].Text)
		assert.True(t, out.Rows[0].Overdue)
		assert.Equal(t, "2025-01-01 11:00", out.Rows[0].Due)
		assert.Equal(t, presenter.Counts{Total: 2, Completed: 1, Overdue: 1}, out.Counts)
		assert.Equal(t, testNow, out.Now)
	})

	t.Run("overdue", func(t *testing.T) {
		out, err := uc.Execute(ctx, usecase.ListTasksInput{Filter: domain.FilterOverdue})
		require.NoError(t, err)
		require.Len(t, out.Tasks, 1)
		assert.Equal(t, "late", out.Tasks[0].Text)
		assert.Equal(t, 2, out.Counts.Total, "counts cover the whole list")
	})

	t.Run("completed with layout", func(t *testing.T) {
		out, err := uc.Execute(ctx, usecase.ListTasksInput{Filter: domain.FilterCompleted, TimeFormat: "15:04"})
		require.NoError(t, err)
		require.Len(t, out.Rows, 1)
		assert.Equal(t, "13:00", out.Rows[0].Due)
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := uc.Execute(ctx, usecase.ListTasksInput{Filter: "someday"})
		assert.ErrorIs(t, err, domain.ErrUnknownFilter)
	})
}

func TestListTasks_Execute_Empty(t *testing.T) {
	store, _ := newStore()

	out, err := usecase.NewListTasks(store, clock()).Execute(context.Background(), usecase.ListTasksInput{})

	require.NoError(t, err)
	assert.Empty(t, out.Rows)
	assert.Zero(t, out.Counts.Total)
}
