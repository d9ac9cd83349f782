//go:build integration

package tx_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"voltid/pkg/platform/tx"
	"voltid/pkg/testutil/containers"
)

type ManagerSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
}

func TestManagerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
}

func (s *ManagerSuite) isolationInside(m *tx.Manager) string {
	var level string
	err := m.RunInTx(context.Background(), func(ctx context.Context) error {
		return tx.Exec(ctx, s.postgres.DB).GetContext(ctx, &level, `SHOW transaction_isolation`)
	})
	s.Require().NoError(err)
	return level
}

func (s *ManagerSuite) TestIsolationLevel() {
	manager := tx.NewManager(s.postgres.DB)

	s.Equal("serializable", s.isolationInside(manager.WithIsolation(sql.LevelSerializable)))
	s.Equal("repeatable read", s.isolationInside(manager.WithIsolation(sql.LevelRepeatableRead)))
	s.Equal("read committed", s.isolationInside(manager.WithIsolation(sql.LevelReadCommitted)))
}
