package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Environment struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Card struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Damage  int    `json:"damage"`
	Health  int    `json:"health"`
	Element string `json:"element"`
}

type LeaderCard struct {
	ID        string `json:"id"`
	CardID    string `json:"cardId"`
	Name      string `json:"name"`
	BoostType string `json:"boostType"`
}

type Slot struct {
	CardID       *string `json:"cardId,omitempty"`
	LeaderCardID *string `json:"leaderCardId,omitempty"`
}

type Dungeon struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Slots    []Slot `json:"slots"`
}

type Game struct {
	ID            string `json:"id"`
	EnvironmentID string `json:"environmentId"`
	Name          string `json:"name"`
}

type PlayerCard struct {
	ID          string `json:"id"`
	DamageBoost int    `json:"damageBoost"`
	HealthBoost int    `json:"healthBoost"`
	Card        *Card  `json:"card"`
}

type Deck struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Clash struct {
	Order           int    `json:"order"`
	Winner          string `json:"winner"`
	Reason          string `json:"reason"`
	PlayerCardName  string `json:"playerCardName"`
	DungeonCardName string `json:"dungeonCardName"`
}

type Battle struct {
	ID          string  `json:"id"`
	Outcome     string  `json:"outcome"`
	PlayerWins  int     `json:"playerWins"`
	DungeonWins int     `json:"dungeonWins"`
	Clashes     []Clash `json:"clashes"`
}

type ClaimResult struct {
	BattleID string `json:"battleId"`
	Reward   struct {
		DamageBoost int `json:"damageBoost"`
		HealthBoost int `json:"healthBoost"`
	} `json:"reward"`
	PlayerCard PlayerCard `json:"playerCard"`
}

// RegisterUser creates a new account with a unique display name
func (c *APIClient) RegisterUser(baseName, password string) (*AuthResponse, error) {
	displayName := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)

	body := map[string]string{
		"displayName": displayName,
		"password":    password,
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", body, "", http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &result, nil
}

// Login authenticates an existing account
func (c *APIClient) Login(displayName, password string) (*AuthResponse, error) {
	body := map[string]string{
		"displayName": displayName,
		"password":    password,
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", body, "", http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

func (c *APIClient) CreateEnvironment(token, name, description string) (*Environment, error) {
	body := map[string]string{
		"name":        name,
		"description": description,
	}

	var env Environment
	if err := c.do(http.MethodPost, "/environments", body, token, http.StatusCreated, &env); err != nil {
		return nil, fmt.Errorf("create environment: %w", err)
	}
	return &env, nil
}

func (c *APIClient) ListEnvironments(token string) ([]Environment, error) {
	var envs []Environment
	if err := c.do(http.MethodGet, "/environments", nil, token, http.StatusOK, &envs); err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}
	return envs, nil
}

func (c *APIClient) CreateCard(token, envID string, card Card) (*Card, error) {
	var created Card
	if err := c.do(http.MethodPost, "/environments/"+envID+"/cards", card, token, http.StatusCreated, &created); err != nil {
		return nil, fmt.Errorf("create card %s: %w", card.Name, err)
	}
	return &created, nil
}

func (c *APIClient) CreateLeader(token, envID, cardID, name, boostType string) (*LeaderCard, error) {
	body := map[string]string{
		"cardId":    cardID,
		"name":      name,
		"boostType": boostType,
	}

	var leader LeaderCard
	if err := c.do(http.MethodPost, "/environments/"+envID+"/leaders", body, token, http.StatusCreated, &leader); err != nil {
		return nil, fmt.Errorf("create leader %s: %w", name, err)
	}
	return &leader, nil
}

func (c *APIClient) CreateDungeon(token, envID, name, category string, slots []Slot) (*Dungeon, error) {
	body := map[string]interface{}{
		"name":     name,
		"category": category,
		"slots":    slots,
	}

	var dungeon Dungeon
	if err := c.do(http.MethodPost, "/environments/"+envID+"/dungeons", body, token, http.StatusCreated, &dungeon); err != nil {
		return nil, fmt.Errorf("create dungeon %s: %w", name, err)
	}
	return &dungeon, nil
}

func (c *APIClient) ListDungeons(token, envID string) ([]Dungeon, error) {
	var dungeons []Dungeon
	if err := c.do(http.MethodGet, "/environments/"+envID+"/dungeons", nil, token, http.StatusOK, &dungeons); err != nil {
		return nil, fmt.Errorf("list dungeons: %w", err)
	}
	return dungeons, nil
}

func (c *APIClient) StartGame(token, envID, name string) (*Game, error) {
	body := map[string]string{
		"environmentId": envID,
		"name":          name,
	}

	var game Game
	if err := c.do(http.MethodPost, "/games", body, token, http.StatusCreated, &game); err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	return &game, nil
}

func (c *APIClient) ListPlayerCards(token, gameID string) ([]PlayerCard, error) {
	var cards []PlayerCard
	if err := c.do(http.MethodGet, "/games/"+gameID+"/cards", nil, token, http.StatusOK, &cards); err != nil {
		return nil, fmt.Errorf("list player cards: %w", err)
	}
	return cards, nil
}

func (c *APIClient) CreateDeck(token, gameID, name string, playerCardIDs []string) (*Deck, error) {
	body := map[string]interface{}{
		"name":          name,
		"playerCardIds": playerCardIDs,
	}

	var deck Deck
	if err := c.do(http.MethodPost, "/games/"+gameID+"/decks", body, token, http.StatusCreated, &deck); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}
	return &deck, nil
}

func (c *APIClient) Fight(token, gameID, deckID, dungeonID string) (*Battle, error) {
	body := map[string]string{
		"deckId":    deckID,
		"dungeonId": dungeonID,
	}

	var b Battle
	if err := c.do(http.MethodPost, "/games/"+gameID+"/battles", body, token, http.StatusCreated, &b); err != nil {
		return nil, fmt.Errorf("fight: %w", err)
	}
	return &b, nil
}

func (c *APIClient) ClaimReward(token, gameID, battleID, playerCardID string) (*ClaimResult, error) {
	body := map[string]string{
		"playerCardId": playerCardID,
	}

	var result ClaimResult
	path := "/games/" + gameID + "/battles/" + battleID + "/reward"
	if err := c.do(http.MethodPost, path, body, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("claim reward: %w", err)
	}
	return &result, nil
}

// HTTP helpers

func (c *APIClient) do(method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bytes.TrimSpace(bodyBytes)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
