package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/dom/dungeon-deck/internal/websocket"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
)

const tracerName = "github.com/dom/dungeon-deck/internal/service"

type BattleService struct {
	gameRepo    repository.GameRepository
	deckRepo    repository.DeckRepository
	dungeonRepo repository.DungeonRepository
	battleRepo  repository.BattleRepository
	publisher   Publisher
}

func NewBattleService(gameRepo repository.GameRepository, deckRepo repository.DeckRepository, dungeonRepo repository.DungeonRepository, battleRepo repository.BattleRepository, publisher Publisher) *BattleService {
	return &BattleService{
		gameRepo:    gameRepo,
		deckRepo:    deckRepo,
		dungeonRepo: dungeonRepo,
		battleRepo:  battleRepo,
		publisher:   publisher,
	}
}

type FightInput struct {
	DeckID    uuid.UUID
	DungeonID uuid.UUID
}

type ClaimRewardInput struct {
	PlayerCardID uuid.UUID
}

type ClaimResult struct {
	BattleID   uuid.UUID          `json:"battleId"`
	Reward     battle.Reward      `json:"reward"`
	PlayerCard *domain.PlayerCard `json:"playerCard"`
}

// Fight resolves the deck against the dungeon and records the battle. Both
// must belong to the game's environment. The battle is stored with every
// clash or not at all.
func (s *BattleService) Fight(ctx context.Context, userID, gameID uuid.UUID, input FightInput) (_ *domain.Battle, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "battle.fight",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("game.id", gameID.String()),
			attribute.String("deck.id", input.DeckID.String()),
			attribute.String("dungeon.id", input.DungeonID.String()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	game, err := ownedGame(ctx, s.gameRepo, userID, gameID)
	if err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.GetByID(ctx, input.DeckID)
	if err != nil {
		return nil, translate(err)
	}
	if deck.GameID != game.ID {
		return nil, domain.ErrNotFound
	}

	dungeon, err := s.dungeonRepo.GetByID(ctx, input.DungeonID)
	if err != nil {
		return nil, translate(err)
	}
	if dungeon.EnvironmentID != game.EnvironmentID {
		return nil, domain.ErrNotFound
	}
	span.SetAttributes(attribute.String("dungeon.category", string(dungeon.Category)))

	combatants := make([]battle.PlayerCard, 0, len(deck.Cards))
	snapshot := make([]domain.DeckSnapshotCard, 0, len(deck.Cards))
	for _, dc := range deck.Cards {
		if dc.PlayerCard == nil || dc.PlayerCard.Card == nil {
			return nil, fmt.Errorf("deck %s: player card %s not loaded", deck.ID, dc.PlayerCardID)
		}
		c := dc.PlayerCard.Combatant()
		combatants = append(combatants, c)

		eff := c.Effective()
		snapshot = append(snapshot, domain.DeckSnapshotCard{
			PlayerCardID: dc.PlayerCardID,
			Name:         eff.Name,
			Damage:       eff.Damage,
			Health:       eff.Health,
			Element:      eff.Element,
		})
	}

	slots := make([]battle.Slot, 0, len(dungeon.Slots))
	for i := range dungeon.Slots {
		slot, err := toBattleSlot(&dungeon.Slots[i])
		if err != nil {
			return nil, fmt.Errorf("dungeon %s: %w", dungeon.ID, err)
		}
		slots = append(slots, slot)
	}

	result, err := battle.ResolveBattle(combatants, slots)
	if err != nil {
		return nil, err
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	b := &domain.Battle{
		ID:           uuid.New(),
		GameID:       game.ID,
		DeckID:       deck.ID,
		DungeonID:    dungeon.ID,
		DeckSnapshot: datatypes.JSON(snapshotJSON),
		PlayerWins:   result.PlayerWins,
		DungeonWins:  result.DungeonWins,
		Outcome:      result.Outcome,
		CreatedAt:    time.Now(),
		Clashes:      make([]domain.Clash, 0, len(result.Clashes)),
	}
	for _, c := range result.Clashes {
		b.Clashes = append(b.Clashes, domain.NewClash(b.ID, c))
	}

	if err := s.battleRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Dungeon = dungeon

	span.SetAttributes(
		attribute.String("battle.id", b.ID.String()),
		attribute.String("battle.outcome", string(b.Outcome)),
		attribute.Int("battle.player_wins", b.PlayerWins),
		attribute.Int("battle.dungeon_wins", b.DungeonWins),
	)

	s.publish(userID, websocket.MessageTypeBattleResolved, websocket.BattleResolvedPayload{
		BattleID:    b.ID.String(),
		GameID:      b.GameID.String(),
		DungeonID:   dungeon.ID.String(),
		DungeonName: dungeon.Name,
		Outcome:     string(b.Outcome),
		PlayerWins:  b.PlayerWins,
		DungeonWins: b.DungeonWins,
	})

	return b, nil
}

// ClaimReward grants the dungeon category's reward to one of the game's
// player cards. A won battle pays out at most once.
func (s *BattleService) ClaimReward(ctx context.Context, userID, gameID, battleID uuid.UUID, input ClaimRewardInput) (*ClaimResult, error) {
	b, err := s.Get(ctx, userID, gameID, battleID)
	if err != nil {
		return nil, err
	}
	if b.Outcome != battle.OutcomeWon || b.RewardClaimed {
		return nil, domain.ErrRewardUnavailable
	}
	if b.Dungeon == nil {
		return nil, fmt.Errorf("battle %s: dungeon not loaded", b.ID)
	}

	reward := battle.ComputeReward(b.Dungeon.Category)

	card, err := s.battleRepo.ClaimReward(ctx, b.ID, input.PlayerCardID, reward)
	if err != nil {
		return nil, translate(err)
	}

	payload := websocket.RewardGrantedPayload{
		BattleID:     b.ID.String(),
		PlayerCardID: card.ID.String(),
		DamageBoost:  reward.DamageBoost,
		HealthBoost:  reward.HealthBoost,
	}
	if card.Card != nil {
		eff := card.Combatant().Effective()
		payload.CardName = eff.Name
		payload.TotalDamage = eff.Damage
		payload.TotalHealth = eff.Health
	}
	s.publish(userID, websocket.MessageTypeRewardGranted, payload)

	return &ClaimResult{
		BattleID:   b.ID,
		Reward:     reward,
		PlayerCard: card,
	}, nil
}

// Get returns a battle with its clashes in order.
func (s *BattleService) Get(ctx context.Context, userID, gameID, battleID uuid.UUID) (*domain.Battle, error) {
	if _, err := ownedGame(ctx, s.gameRepo, userID, gameID); err != nil {
		return nil, err
	}

	b, err := s.battleRepo.GetByID(ctx, battleID)
	if err != nil {
		return nil, translate(err)
	}
	if b.GameID != gameID {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// List returns the game's battles, newest first.
func (s *BattleService) List(ctx context.Context, userID, gameID uuid.UUID, limit, offset int) ([]*domain.Battle, error) {
	if _, err := ownedGame(ctx, s.gameRepo, userID, gameID); err != nil {
		return nil, err
	}
	limit, offset = page(limit, offset)
	return s.battleRepo.GetByGameID(ctx, gameID, limit, offset)
}

func (s *BattleService) publish(userID uuid.UUID, msgType websocket.MessageType, payload interface{}) {
	if s.publisher == nil {
		return
	}
	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("ERROR [BattleService.publish] failed to build %s: %v", msgType, err)
		return
	}
	s.publisher.Publish(userID, msg)
}

// toBattleSlot converts a stored slot into its battle form. A slot naming
// neither or both kinds of card, or missing its loaded card, is malformed.
func toBattleSlot(slot *domain.DungeonSlot) (battle.Slot, error) {
	if (slot.CardID == nil) == (slot.LeaderCardID == nil) {
		return nil, fmt.Errorf("%w: slot %d must hold exactly one card or leader", battle.ErrConfiguration, slot.Position)
	}

	if slot.LeaderCardID != nil {
		if slot.LeaderCard == nil || slot.LeaderCard.Card == nil {
			return nil, fmt.Errorf("%w: slot %d leader card missing", battle.ErrConfiguration, slot.Position)
		}
		base := slot.LeaderCard.Card.Stats()
		base.Name = slot.LeaderCard.Name
		return battle.LeaderSlot{Base: base, Boost: slot.LeaderCard.BoostType}, nil
	}

	if slot.Card == nil {
		return nil, fmt.Errorf("%w: slot %d card missing", battle.ErrConfiguration, slot.Position)
	}
	return battle.PlainSlot{Card: slot.Card.Stats()}, nil
}
