package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/dom/dungeon-deck/internal/battle"
	"github.com/dom/dungeon-deck/internal/domain"
	"github.com/dom/dungeon-deck/internal/websocket"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
	role        domain.UserRole
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
		role:        domain.UserRolePlayer,
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.UserRole) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Role        string `json:"role"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate registers the user via the API and returns the user
// and access token. Roles other than player are granted directly in the
// database after registration.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
		Role:        domain.UserRole(authResp.User.Role),
	}

	if b.role != domain.UserRolePlayer && user.Role != b.role {
		err := ts.DB.DB.Model(&domain.User{}).Where("id = ?", userID).Update("role", b.role).Error
		if err != nil {
			t.Fatalf("failed to set role: %v", err)
		}
		user.Role = b.role
	}

	return user, authResp.AccessToken
}

// EnvironmentBuilder creates test environments
type EnvironmentBuilder struct {
	name    string
	creator *domain.User
}

// NewEnvironmentBuilder creates a new EnvironmentBuilder with a unique name
func NewEnvironmentBuilder() *EnvironmentBuilder {
	return &EnvironmentBuilder{
		name: fmt.Sprintf("realm_%s", uuid.New().String()[:8]),
	}
}

// WithName sets the environment name
func (b *EnvironmentBuilder) WithName(name string) *EnvironmentBuilder {
	b.name = name
	return b
}

// WithCreator sets the admin who created the environment
func (b *EnvironmentBuilder) WithCreator(user *domain.User) *EnvironmentBuilder {
	b.creator = user
	return b
}

// Build creates the environment in the database
func (b *EnvironmentBuilder) Build(t *testing.T, db *gorm.DB) *domain.Environment {
	t.Helper()

	if b.creator == nil {
		user, _ := NewUserBuilder().WithRole(domain.UserRoleAdmin).Build(t, db)
		b.creator = user
	}

	env := &domain.Environment{
		ID:          uuid.New(),
		Name:        b.name,
		Description: "A realm for tests",
		CreatedBy:   b.creator.ID,
	}
	if err := db.Create(env).Error; err != nil {
		t.Fatalf("failed to create environment: %v", err)
	}
	return env
}

// CardBuilder creates test cards
type CardBuilder struct {
	env     *domain.Environment
	name    string
	damage  int
	health  int
	element battle.Element
}

// NewCardBuilder creates a 1/1 fire card in env
func NewCardBuilder(env *domain.Environment) *CardBuilder {
	return &CardBuilder{
		env:     env,
		name:    fmt.Sprintf("card_%s", uuid.New().String()[:8]),
		damage:  1,
		health:  1,
		element: battle.ElementFire,
	}
}

// WithName sets the card name
func (b *CardBuilder) WithName(name string) *CardBuilder {
	b.name = name
	return b
}

// WithStats sets damage and health
func (b *CardBuilder) WithStats(damage, health int) *CardBuilder {
	b.damage = damage
	b.health = health
	return b
}

// WithElement sets the element
func (b *CardBuilder) WithElement(element battle.Element) *CardBuilder {
	b.element = element
	return b
}

// Build creates the card in the database
func (b *CardBuilder) Build(t *testing.T, db *gorm.DB) *domain.Card {
	t.Helper()

	card := &domain.Card{
		ID:            uuid.New(),
		EnvironmentID: b.env.ID,
		Name:          b.name,
		Damage:        b.damage,
		Health:        b.health,
		Element:       b.element,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create card: %v", err)
	}
	return card
}

// BuildLeader wraps a card as a leader with the given boost
func BuildLeader(t *testing.T, db *gorm.DB, card *domain.Card, name string, boost battle.BoostType) *domain.LeaderCard {
	t.Helper()

	leader := &domain.LeaderCard{
		ID:            uuid.New(),
		EnvironmentID: card.EnvironmentID,
		CardID:        card.ID,
		Name:          name,
		BoostType:     boost,
	}
	if err := db.Omit("Card").Create(leader).Error; err != nil {
		t.Fatalf("failed to create leader card: %v", err)
	}
	leader.Card = card
	return leader
}

// BuildDungeon stores a dungeon with the cards in order followed by the
// leader, if any. It does not check the category's composition.
func BuildDungeon(t *testing.T, db *gorm.DB, env *domain.Environment, category battle.Category, cards []*domain.Card, leader *domain.LeaderCard) *domain.Dungeon {
	t.Helper()

	dungeon := &domain.Dungeon{
		ID:            uuid.New(),
		EnvironmentID: env.ID,
		Name:          fmt.Sprintf("%s_%s", category, uuid.New().String()[:8]),
		Category:      category,
	}
	if err := db.Omit("Slots").Create(dungeon).Error; err != nil {
		t.Fatalf("failed to create dungeon: %v", err)
	}

	for i, card := range cards {
		slot := &domain.DungeonSlot{DungeonID: dungeon.ID, Position: i, CardID: &card.ID}
		if err := db.Omit("Card", "LeaderCard").Create(slot).Error; err != nil {
			t.Fatalf("failed to create dungeon slot: %v", err)
		}
		slot.Card = card
		dungeon.Slots = append(dungeon.Slots, *slot)
	}
	if leader != nil {
		slot := &domain.DungeonSlot{DungeonID: dungeon.ID, Position: len(cards), LeaderCardID: &leader.ID}
		if err := db.Omit("Card", "LeaderCard").Create(slot).Error; err != nil {
			t.Fatalf("failed to create leader slot: %v", err)
		}
		slot.LeaderCard = leader
		dungeon.Slots = append(dungeon.Slots, *slot)
	}

	return dungeon
}

// BuildGame starts a game for user with one instance of each given card
func BuildGame(t *testing.T, db *gorm.DB, user *domain.User, env *domain.Environment, cards []*domain.Card) (*domain.Game, []*domain.PlayerCard) {
	t.Helper()

	game := &domain.Game{
		ID:            uuid.New(),
		UserID:        user.ID,
		EnvironmentID: env.ID,
		Name:          env.Name,
	}
	if err := db.Omit("Environment").Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	instances := make([]*domain.PlayerCard, 0, len(cards))
	for _, card := range cards {
		pc := &domain.PlayerCard{ID: uuid.New(), GameID: game.ID, CardID: card.ID}
		if err := db.Omit("Card").Create(pc).Error; err != nil {
			t.Fatalf("failed to create player card: %v", err)
		}
		pc.Card = card
		instances = append(instances, pc)
	}

	return game, instances
}

// BuildDeck stores a deck holding the player cards in order
func BuildDeck(t *testing.T, db *gorm.DB, game *domain.Game, cards ...*domain.PlayerCard) *domain.Deck {
	t.Helper()

	deck := &domain.Deck{
		ID:     uuid.New(),
		GameID: game.ID,
		Name:   fmt.Sprintf("deck_%s", uuid.New().String()[:8]),
	}
	if err := db.Omit("Cards").Create(deck).Error; err != nil {
		t.Fatalf("failed to create deck: %v", err)
	}

	for i, pc := range cards {
		dc := &domain.DeckCard{DeckID: deck.ID, PlayerCardID: pc.ID, Position: i}
		if err := db.Omit("PlayerCard").Create(dc).Error; err != nil {
			t.Fatalf("failed to create deck card: %v", err)
		}
		dc.PlayerCard = pc
		deck.Cards = append(deck.Cards, *dc)
	}

	return deck
}

// World is a small seeded environment with known outcomes:
//
//	Ember (5/5 fire) beats the simple encounter on damage;
//	Gale (2/3 air) loses it by default.
type World struct {
	Admin    *domain.User
	Env      *domain.Environment
	Cards    map[string]*domain.Card
	Leader   *domain.LeaderCard
	Dungeons map[battle.Category]*domain.Dungeon
}

// SeedWorld creates an environment with six cards, a leader and one dungeon
// per category
func SeedWorld(t *testing.T, db *gorm.DB) *World {
	t.Helper()

	admin, _ := NewUserBuilder().WithRole(domain.UserRoleAdmin).Build(t, db)
	env := NewEnvironmentBuilder().WithCreator(admin).Build(t, db)

	specs := []struct {
		name    string
		damage  int
		health  int
		element battle.Element
	}{
		{"Ember", 5, 5, battle.ElementFire},
		{"Boulder", 4, 6, battle.ElementEarth},
		{"Tide", 3, 4, battle.ElementWater},
		{"Gale", 2, 3, battle.ElementAir},
		{"Spark", 1, 1, battle.ElementFire},
		{"Pebble", 1, 2, battle.ElementEarth},
	}

	cards := make(map[string]*domain.Card, len(specs))
	for _, s := range specs {
		cards[s.name] = NewCardBuilder(env).
			WithName(s.name).
			WithStats(s.damage, s.health).
			WithElement(s.element).
			Build(t, db)
	}

	leader := BuildLeader(t, db, cards["Boulder"], "Mountain King", battle.BoostHealthDouble)

	dungeons := map[battle.Category]*domain.Dungeon{
		battle.CategorySimpleEncounter: BuildDungeon(t, db, env, battle.CategorySimpleEncounter,
			[]*domain.Card{cards["Pebble"]}, nil),
		battle.CategorySmallDungeon: BuildDungeon(t, db, env, battle.CategorySmallDungeon,
			[]*domain.Card{cards["Spark"], cards["Pebble"], cards["Gale"]}, leader),
		battle.CategoryLargeDungeon: BuildDungeon(t, db, env, battle.CategoryLargeDungeon,
			[]*domain.Card{cards["Ember"], cards["Boulder"], cards["Tide"], cards["Gale"], cards["Spark"]}, leader),
	}

	return &World{
		Admin:    admin,
		Env:      env,
		Cards:    cards,
		Leader:   leader,
		Dungeons: dungeons,
	}
}

// CardList returns the world's cards in a fixed order
func (w *World) CardList() []*domain.Card {
	names := []string{"Ember", "Boulder", "Tide", "Gale", "Spark", "Pebble"}
	out := make([]*domain.Card, 0, len(names))
	for _, n := range names {
		out = append(out, w.Cards[n])
	}
	return out
}

// PlayerCardByName finds the instance of a base card by its name
func PlayerCardByName(t *testing.T, cards []*domain.PlayerCard, name string) *domain.PlayerCard {
	t.Helper()
	for _, c := range cards {
		if c.Card != nil && c.Card.Name == name {
			return c
		}
	}
	t.Fatalf("player card %q not found", name)
	return nil
}

// EventRecorder is an in-memory service.Publisher
type EventRecorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

type RecordedEvent struct {
	UserID  uuid.UUID
	Message *websocket.Message
}

func (r *EventRecorder) Publish(userID uuid.UUID, msg *websocket.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{UserID: userID, Message: msg})
}

// Events returns a copy of everything published so far
func (r *EventRecorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.events))
	copy(out, r.events)
	return out
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// DoRequest sends an authenticated request and returns the response
func DoRequest(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(CreateAuthenticatedRequest(t, method, url, body, token))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
