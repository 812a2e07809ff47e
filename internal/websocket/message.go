package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypePing MessageType = "PING"

	// Server to Client
	MessageTypePong           MessageType = "PONG"
	MessageTypeBattleResolved MessageType = "BATTLE_RESOLVED"
	MessageTypeRewardGranted  MessageType = "REWARD_GRANTED"
	MessageTypeError          MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Server to Client payloads

type BattleResolvedPayload struct {
	BattleID    string `json:"battleId"`
	GameID      string `json:"gameId"`
	DungeonID   string `json:"dungeonId"`
	DungeonName string `json:"dungeonName"`
	Outcome     string `json:"outcome"`
	PlayerWins  int    `json:"playerWins"`
	DungeonWins int    `json:"dungeonWins"`
}

type RewardGrantedPayload struct {
	BattleID     string `json:"battleId"`
	PlayerCardID string `json:"playerCardId"`
	CardName     string `json:"cardName"`
	DamageBoost  int    `json:"damageBoost"` // granted by this reward
	HealthBoost  int    `json:"healthBoost"`
	TotalDamage  int    `json:"totalDamage"` // effective stats after the reward
	TotalHealth  int    `json:"totalHealth"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
