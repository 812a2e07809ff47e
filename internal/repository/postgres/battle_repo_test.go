package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository/postgres"
	"github.com/dom/dungeon-deck/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// newBattle builds an unsaved single-clash battle for game
func newBattle(game *domain.Game, deck *domain.Deck, dungeon *domain.Dungeon, outcome battle.Outcome) *domain.Battle {
	id := uuid.New()
	winner := battle.SidePlayer
	playerWins, dungeonWins := 1, 0
	if outcome == battle.OutcomeLost {
		winner = battle.SideDungeon
		playerWins, dungeonWins = 0, 1
	}

	return &domain.Battle{
		ID:           id,
		GameID:       game.ID,
		DeckID:       deck.ID,
		DungeonID:    dungeon.ID,
		DeckSnapshot: datatypes.JSON(`[]`),
		PlayerWins:   playerWins,
		DungeonWins:  dungeonWins,
		Outcome:      outcome,
		CreatedAt:    time.Now(),
		Clashes: []domain.Clash{
			{BattleID: id, Order: 0, Winner: winner, Reason: battle.ReasonDamage, PlayerCardName: "Ember", DungeonCardName: "Pebble"},
		},
	}
}

func TestBattleRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBattleRepository(testDB.DB)
	ctx := context.Background()

	world := testutil.SeedWorld(t, testDB.DB)
	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game, cards := testutil.BuildGame(t, testDB.DB, user, world.Env, world.CardList())
	deck := testutil.BuildDeck(t, testDB.DB, game, cards[0])
	dungeon := world.Dungeons[battle.CategorySimpleEncounter]

	first := newBattle(game, deck, dungeon, battle.OutcomeWon)
	first.CreatedAt = time.Now().Add(-time.Minute)
	first.Clashes = append(first.Clashes, domain.Clash{BattleID: first.ID, Order: 1, Winner: battle.SideDungeon, Reason: battle.ReasonDefault})
	require.NoError(t, repo.Create(ctx, first))

	second := newBattle(game, deck, dungeon, battle.OutcomeLost)
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Dungeon)
	assert.Equal(t, dungeon.Name, got.Dungeon.Name)
	require.Len(t, got.Clashes, 2)
	assert.Equal(t, 0, got.Clashes[0].Order)
	assert.Equal(t, 1, got.Clashes[1].Order)

	history, err := repo.GetByGameID(ctx, game.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "newest first")

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBattleRepository_CreateIsAtomic(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewBattleRepository(testDB.DB)
	ctx := context.Background()

	world := testutil.SeedWorld(t, testDB.DB)
	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game, cards := testutil.BuildGame(t, testDB.DB, user, world.Env, world.CardList())
	deck := testutil.BuildDeck(t, testDB.DB, game, cards[0])

	b := newBattle(game, deck, world.Dungeons[battle.CategorySimpleEncounter], battle.OutcomeWon)
	// Two clashes with the same ID make the second insert fail
	dup := b.Clashes[0]
	dup.ID = uuid.New()
	b.Clashes[0].ID = dup.ID
	b.Clashes = append(b.Clashes, dup)

	require.Error(t, repo.Create(ctx, b))

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBattleRepository_ClaimReward(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	world := testutil.SeedWorld(t, testDB.DB)
	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	game, cards := testutil.BuildGame(t, testDB.DB, user, world.Env, world.CardList())
	_, otherCards := testutil.BuildGame(t, testDB.DB, user, world.Env, world.CardList())
	deck := testutil.BuildDeck(t, testDB.DB, game, cards[0])
	dungeon := world.Dungeons[battle.CategorySimpleEncounter]
	reward := battle.Reward{DamageBoost: 1, HealthBoost: 2}

	t.Run("lost battle", func(t *testing.T) {
		lost := newBattle(game, deck, dungeon, battle.OutcomeLost)
		require.NoError(t, repos.Battle.Create(ctx, lost))

		_, err := repos.Battle.ClaimReward(ctx, lost.ID, cards[0].ID, reward)
		assert.ErrorIs(t, err, domain.ErrRewardUnavailable)
	})

	t.Run("card from another game", func(t *testing.T) {
		won := newBattle(game, deck, dungeon, battle.OutcomeWon)
		require.NoError(t, repos.Battle.Create(ctx, won))

		_, err := repos.Battle.ClaimReward(ctx, won.ID, otherCards[0].ID, reward)
		assert.ErrorIs(t, err, domain.ErrCardNotOwned)

		stored, err := repos.Battle.GetByID(ctx, won.ID)
		require.NoError(t, err)
		assert.False(t, stored.RewardClaimed)
	})

	t.Run("unknown battle", func(t *testing.T) {
		_, err := repos.Battle.ClaimReward(ctx, uuid.New(), cards[0].ID, reward)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("applies once", func(t *testing.T) {
		won := newBattle(game, deck, dungeon, battle.OutcomeWon)
		require.NoError(t, repos.Battle.Create(ctx, won))

		card, err := repos.Battle.ClaimReward(ctx, won.ID, cards[1].ID, reward)
		require.NoError(t, err)
		assert.Equal(t, 1, card.DamageBoost)
		assert.Equal(t, 2, card.HealthBoost)
		require.NotNil(t, card.Card)

		_, err = repos.Battle.ClaimReward(ctx, won.ID, cards[1].ID, reward)
		assert.ErrorIs(t, err, domain.ErrRewardUnavailable)

		stored, err := repos.PlayerCard.GetByID(ctx, cards[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.DamageBoost)
		assert.Equal(t, 2, stored.HealthBoost)
	})

	t.Run("concurrent claims", func(t *testing.T) {
		won := newBattle(game, deck, dungeon, battle.OutcomeWon)
		require.NoError(t, repos.Battle.Create(ctx, won))

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repos.Battle.ClaimReward(ctx, won.ID, cards[2].ID, reward)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		successes := 0
		for err := range errs {
			if err == nil {
				successes++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrRewardUnavailable)
		}
		assert.Equal(t, 1, successes)

		stored, err := repos.PlayerCard.GetByID(ctx, cards[2].ID)
		require.NoError(t, err)
		assert.Equal(t, reward.DamageBoost, stored.DamageBoost)
		assert.Equal(t, reward.HealthBoost, stored.HealthBoost)
	})
}
