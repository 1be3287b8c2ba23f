package websocket

import "encoding/json"

type MessageType string

const (
	// Client -> server
	MessageTypeJoinCampaign MessageType = "join_campaign"

	// Server -> client
	MessageTypeJoinedCampaign   MessageType = "joined_campaign"
	MessageTypeCharacterUpdated MessageType = "character_updated"
	MessageTypeCharacterDeleted MessageType = "character_deleted"
	MessageTypeError            MessageType = "error"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Payload: data}, nil
}

type JoinCampaignPayload struct {
	CampaignID string `json:"campaignId"`
}

type JoinedCampaignPayload struct {
	CampaignID string `json:"campaignId"`
}

// CharacterUpdatedPayload carries the saved character's derived snapshot to
// everyone viewing the campaign.
type CharacterUpdatedPayload struct {
	CampaignID  string      `json:"campaignId"`
	CharacterID string      `json:"characterId"`
	Sheet       interface{} `json:"sheet,omitempty"`
}

type CharacterDeletedPayload struct {
	CampaignID  string `json:"campaignId"`
	CharacterID string `json:"characterId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
