package service

import (
	"context"
	"strings"
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/repository"
	"github.com/google/uuid"
)

type DeckService struct {
	gameRepo       repository.GameRepository
	playerCardRepo repository.PlayerCardRepository
	deckRepo       repository.DeckRepository
}

func NewDeckService(gameRepo repository.GameRepository, playerCardRepo repository.PlayerCardRepository, deckRepo repository.DeckRepository) *DeckService {
	return &DeckService{
		gameRepo:       gameRepo,
		playerCardRepo: playerCardRepo,
		deckRepo:       deckRepo,
	}
}

// DeckInput lists player card IDs in fighting order.
type DeckInput struct {
	Name          string
	PlayerCardIDs []uuid.UUID
}

func (s *DeckService) Create(ctx context.Context, userID, gameID uuid.UUID, input DeckInput) (*domain.Deck, error) {
	if _, err := ownedGame(ctx, s.gameRepo, userID, gameID); err != nil {
		return nil, err
	}

	deck := &domain.Deck{
		ID:        uuid.New(),
		GameID:    gameID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.fill(ctx, deck, input); err != nil {
		return nil, err
	}

	if err := s.deckRepo.Create(ctx, deck); err != nil {
		return nil, translate(err)
	}
	return deck, nil
}

// Update replaces the deck's name and cards.
func (s *DeckService) Update(ctx context.Context, userID, gameID, deckID uuid.UUID, input DeckInput) (*domain.Deck, error) {
	deck, err := s.Get(ctx, userID, gameID, deckID)
	if err != nil {
		return nil, err
	}
	if err := s.fill(ctx, deck, input); err != nil {
		return nil, err
	}

	deck.UpdatedAt = time.Now()
	if err := s.deckRepo.ReplaceCards(ctx, deck); err != nil {
		return nil, translate(err)
	}
	return deck, nil
}

func (s *DeckService) Get(ctx context.Context, userID, gameID, deckID uuid.UUID) (*domain.Deck, error) {
	if _, err := ownedGame(ctx, s.gameRepo, userID, gameID); err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		return nil, translate(err)
	}
	if deck.GameID != gameID {
		return nil, domain.ErrNotFound
	}
	return deck, nil
}

func (s *DeckService) List(ctx context.Context, userID, gameID uuid.UUID) ([]*domain.Deck, error) {
	if _, err := ownedGame(ctx, s.gameRepo, userID, gameID); err != nil {
		return nil, err
	}
	return s.deckRepo.GetByGameID(ctx, gameID)
}

func (s *DeckService) Delete(ctx context.Context, userID, gameID, deckID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, gameID, deckID); err != nil {
		return err
	}
	return translate(s.deckRepo.Delete(ctx, deckID))
}

// fill validates input and sets the deck's name and ordered cards.
func (s *DeckService) fill(ctx context.Context, deck *domain.Deck, input DeckInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.ErrNameRequired
	}
	if len(input.PlayerCardIDs) == 0 || len(input.PlayerCardIDs) > battle.MaxDeckSize {
		return domain.ErrDeckSize
	}

	seen := make(map[uuid.UUID]bool, len(input.PlayerCardIDs))
	for _, id := range input.PlayerCardIDs {
		if seen[id] {
			return domain.ErrDuplicateDeckCard
		}
		seen[id] = true
	}

	cards, err := s.playerCardRepo.GetByIDs(ctx, input.PlayerCardIDs)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*domain.PlayerCard, len(cards))
	for _, c := range cards {
		if c.GameID == deck.GameID {
			byID[c.ID] = c
		}
	}

	deck.Name = name
	deck.Cards = make([]domain.DeckCard, 0, len(input.PlayerCardIDs))
	for i, id := range input.PlayerCardIDs {
		card, ok := byID[id]
		if !ok {
			return domain.ErrCardNotOwned
		}
		deck.Cards = append(deck.Cards, domain.DeckCard{
			DeckID:       deck.ID,
			PlayerCardID: id,
			Position:     i,
			PlayerCard:   card,
		})
	}
	return nil
}
