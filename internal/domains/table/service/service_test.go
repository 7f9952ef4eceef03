package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/otel/mocks"
	tableMocks "resto/internal/domains/table/mocks"
	"resto/internal/domains/table/model"
	"resto/internal/domains/table/model/dto"
	"resto/internal/domains/table/service"
	"resto/internal/realtime/event"
	"resto/internal/realtime/hub"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
)

type fixture struct {
	repo *tableMocks.MockTable
	hub  *hub.Hub
	conn *hub.LocalConn
	svc  service.Table
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := hub.New(mocks.NewOtel())
	conn := hub.NewLocalConn("waiter", 16)
	require.NoError(t, h.Subscribe(conn, event.TopicTables))

	repo := tableMocks.NewMockTable(ctrl)

	return fixture{
		repo: repo,
		hub:  h,
		conn: conn,
		svc:  service.New(repo, &config.Config{}, mocks.NewOtel(), h),
	}
}

func (f fixture) drain() []hub.Message {
	var out []hub.Message

	for {
		select {
		case msg := <-f.conn.Messages():
			out = append(out, msg)
		default:
			return out
		}
	}
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
}

func TestTableService_Create(t *testing.T) {
	t.Run("inserts and broadcasts", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, table model.Table) error {
			assert.Equal(t, "T5", table.Label)
			assert.True(t, table.Available)
			assert.Equal(t, "admin", table.CreatedBy)

			return nil
		})

		res, err := f.svc.Create(userCtx(), dto.CreateTableRequest{Label: " T5 ", Capacity: 4})
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)

		msgs := f.drain()
		require.Len(t, msgs, 1)
		assert.Equal(t, event.TableUpdate, msgs[0].Event)

		change, ok := msgs[0].Payload.(event.TableChange)
		require.True(t, ok)
		assert.Equal(t, event.TableCreated, change.Type)
		assert.Equal(t, res.ID, change.TableID)
	})

	t.Run("duplicate label conflicts", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(userCtx(), dto.CreateTableRequest{Label: "T5", Capacity: 4})
		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
		assert.Empty(t, f.drain())
	})

	t.Run("insert failure does not broadcast", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Create(userCtx(), dto.CreateTableRequest{Label: "T5", Capacity: 4})
		require.Error(t, err)
		assert.Empty(t, f.drain())
	})
}

func TestTableService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 2}
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Table{
		{ID: "1", Label: "T1"},
		{ID: "2", Label: "T2"},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Len(t, res.Tables, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestTableService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestTableService_Update(t *testing.T) {
	f := newFixture(t)

	label := "Patio 1"
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t1", Label: "T1", Capacity: 2}, nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "Patio 1", fields[model.FieldLabel])
			assert.NotContains(t, fields, model.FieldCapacity)

			return nil
		})

	res, err := f.svc.Update(userCtx(), dto.UpdateTableRequest{Label: &label}, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Patio 1", res.Label)
	assert.Equal(t, 2, res.Capacity)

	msgs := f.drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, event.TableUpdated, msgs[0].Payload.(event.TableChange).Type)
}

func TestTableService_SetAvailability(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t1", Label: "T1", Available: true}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[model.FieldAvailable])

			return nil
		})

	res, err := f.svc.SetAvailability(userCtx(), "t1", false)
	require.NoError(t, err)
	assert.False(t, res.Available)

	msgs := f.drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, event.TableAvailabilityChanged, msgs[0].Payload.(event.TableChange).Type)
}

func TestTableService_Delete(t *testing.T) {
	t.Run("deletes and broadcasts the id", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(userCtx(), "t1"))

		msgs := f.drain()
		require.Len(t, msgs, 1)

		change := msgs[0].Payload.(event.TableChange)
		assert.Equal(t, event.TableDeleted, change.Type)
		assert.Equal(t, "t1", change.TableID)
		assert.Nil(t, change.Table)
	})

	t.Run("missing table", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(userCtx(), "t1")
		assert.Equal(t, 404, failure.GetCode(err))
		assert.Empty(t, f.drain())
	})
}

func TestTableService_Signal(t *testing.T) {
	tests := []event.Name{event.BellRequest, event.BillRequest, event.TableBlocked, event.TableReleased}

	for _, name := range tests {
		t.Run(string(name), func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t5", Label: "5"}, nil)

			signal, err := f.svc.Signal(context.Background(), "t5", name)
			require.NoError(t, err)
			assert.Equal(t, "5", signal.TableLabel)
			assert.NotEmpty(t, signal.Timestamp)

			msgs := f.drain()
			require.Len(t, msgs, 1)
			assert.Equal(t, name, msgs[0].Event)
			assert.Equal(t, event.TopicTables, msgs[0].Topic)
		})
	}

	t.Run("unknown table", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		_, err := f.svc.Signal(context.Background(), "nope", event.BellRequest)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.Empty(t, f.drain())
	})

	t.Run("not a signal", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{ID: "t5", Label: "5"}, nil)

		_, err := f.svc.Signal(context.Background(), "t5", event.TableUpdate)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
