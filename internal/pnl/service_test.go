package pnl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/plsync/internal/grid"
	"github.com/MrJamesThe3rd/plsync/internal/pnl"
)

var errDB = errors.New("db down")

func syncGrid() grid.Grid {
	return grid.Grid{
		header(),
		{"1.", "", "Gross Sales", "", "", "1000000", "950000"},
		{"2", "", "COGS"},
		{"2.1", "", "Food", "", "", "300000", "310000"},
	}
}

func noPins(m *pnl.MockRepository) {
	m.EXPECT().ListLocks(gomock.Any()).Return(nil, nil)
	m.EXPECT().ListOverrides(gomock.Any()).Return(nil, nil)
}

func TestService_Sync(t *testing.T) {
	type args struct {
		grid grid.Grid
		opts pnl.SyncOptions
	}

	type testCase struct {
		name         string
		args         args
		setupMock    func(m *pnl.MockRepository)
		wantErr      error
		wantDebug    bool
		wantStatus   pnl.Status
		wantWritten  int
		wantLocked   []pnl.Key
		wantErrCount int
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{grid: syncGrid()},
			setupMock: func(m *pnl.MockRepository) {
				noPins(m)
				m.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			},
			wantStatus:  pnl.StatusSuccess,
			wantWritten: 2,
		},
		{
			name: "StoredLockSkipsRecord",
			args: args{grid: syncGrid()},
			setupMock: func(m *pnl.MockRepository) {
				m.EXPECT().ListLocks(gomock.Any()).Return([]pnl.Lock{{ID: uuid.New(), Key: jan25Budget}}, nil)
				m.EXPECT().ListOverrides(gomock.Any()).Return(nil, nil)
				m.EXPECT().
					UpsertRecord(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *pnl.Record) error {
						assert.Equal(t, jan25Actual, rec.Key)
						assert.False(t, rec.SyncedAt.IsZero())
						return nil
					})
			},
			wantStatus:  pnl.StatusSuccess,
			wantWritten: 1,
			wantLocked:  []pnl.Key{jan25Budget},
		},
		{
			name: "RunLockFromOptions",
			args: args{grid: syncGrid(), opts: pnl.SyncOptions{Locks: []pnl.Lock{{Key: jan25Actual}}}},
			setupMock: func(m *pnl.MockRepository) {
				noPins(m)
				m.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus:  pnl.StatusSuccess,
			wantWritten: 1,
			wantLocked:  []pnl.Key{jan25Actual},
		},
		{
			name: "PartialWriteFailure",
			args: args{grid: syncGrid()},
			setupMock: func(m *pnl.MockRepository) {
				noPins(m)
				gomock.InOrder(
					m.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(errors.New("db error")),
					m.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			wantStatus:   pnl.StatusPartial,
			wantWritten:  1,
			wantErrCount: 1,
		},
		{
			name: "AllWritesFail",
			args: args{grid: syncGrid()},
			setupMock: func(m *pnl.MockRepository) {
				noPins(m)
				m.EXPECT().UpsertRecord(gomock.Any(), gomock.Any()).Return(errors.New("db error")).Times(2)
			},
			wantStatus:   pnl.StatusFailed,
			wantErrCount: 2,
		},
		{
			name: "DryRunWritesNothing",
			args: args{grid: syncGrid(), opts: pnl.SyncOptions{DryRun: true}},
			setupMock: func(m *pnl.MockRepository) {
				noPins(m)
			},
			wantStatus:  pnl.StatusSuccess,
			wantWritten: 2,
		},
		{
			name: "NoHeader",
			args: args{grid: grid.Grid{{"nothing here"}}},
			setupMock: func(m *pnl.MockRepository) {
				noPins(m)
			},
			wantErr:    pnl.ErrNoHeaderFound,
			wantDebug:  true,
			wantStatus: pnl.StatusFailed,
		},
		{
			name: "LocksUnavailable",
			args: args{grid: syncGrid()},
			setupMock: func(m *pnl.MockRepository) {
				m.EXPECT().ListLocks(gomock.Any()).Return(nil, errDB)
			},
			wantErr:    errDB,
			wantStatus: pnl.StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := pnl.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := pnl.NewService(repo)
			got, err := svc.Sync(context.Background(), tt.args.grid, tt.args.opts)

			require.NotNil(t, got)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantStatus != pnl.StatusFailed, got.Success)
			assert.NotEqual(t, uuid.Nil, got.RunID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotEmpty(t, got.Error)

				if tt.wantDebug {
					require.NotNil(t, got.Debug)
					assert.NotNil(t, got.Debug.ScannedCells)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantWritten, got.RecordsProcessed)
			assert.Equal(t, tt.wantLocked, got.Locked)
			assert.Equal(t, tt.wantErrCount, got.ErrorCount)
			assert.Len(t, got.Errors, tt.wantErrCount)
			assert.Equal(t, 2, got.MonthsFound)
			assert.Contains(t, got.Categories, pnl.FieldGrossSales)
			assert.Contains(t, got.Categories, pnl.FieldCOGSFood)
			assert.NotContains(t, got.Categories, pnl.FieldCOGSPct)
		})
	}
}

func TestService_Lock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pnl.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateLock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *pnl.Lock) error {
			assert.Equal(t, jan25Budget, l.Key)
			return nil
		})

	svc := pnl.NewService(repo)

	got, err := svc.Lock(context.Background(), jan25Budget, "closed month")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "closed month", got.Reason)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestService_Override(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := pnl.NewMockRepository(ctrl)
	repo.EXPECT().CreateOverride(gomock.Any(), gomock.Any()).Return(errors.New("duplicate"))

	svc := pnl.NewService(repo)

	o, err := pnl.NewOverride(2025, 1, "budget", "ebit", "100")
	require.NoError(t, err)

	_, err = svc.Override(context.Background(), o)
	assert.Error(t, err)
}
