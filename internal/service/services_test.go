package service_test

import (
	"testing"

	"github.com/dom/dungeon-deck/internal/repository/postgres"
	"github.com/dom/dungeon-deck/internal/service"
	"github.com/dom/dungeon-deck/internal/testutil"
)

// newTestServices wires every service against a fresh database, publishing
// into a recorder instead of the websocket hub
func newTestServices(t *testing.T) (*testutil.TestDB, *service.Services, *testutil.EventRecorder) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	events := &testutil.EventRecorder{}
	return testDB, service.NewServices(repos, testutil.TestConfig(), events), events
}
