package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/mparker/character-vault/internal/testutil"
	"github.com/mparker/character-vault/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, ts *testutil.TestServer, token string) *gorillaws.Conn {
	t.Helper()

	conn, _, err := gorillaws.DefaultDialer.Dial(ts.WebSocketURL(token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *gorillaws.Conn) websocket.Message {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	ts := testutil.NewTestServer(t, nil)

	_, resp, err := gorillaws.DefaultDialer.Dial(ts.WebSocketURL(""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocket_CampaignUpdatesFanOut(t *testing.T) {
	ts := testutil.NewTestServer(t, nil)
	userID := uuid.New()
	token := testutil.AuthToken(t, ts.Config.JWTSecret, userID)

	campaign := testutil.NewCampaignBuilder(userID).Build(t, ts.DB.DB)
	character := testutil.NewCharacterBuilder(userID, campaign.ID).Build(t, ts.DB.DB)

	conn := dialWS(t, ts, token)

	// Join the campaign room.
	join, err := websocket.NewMessage(websocket.MessageTypeJoinCampaign, websocket.JoinCampaignPayload{
		CampaignID: campaign.ID.String(),
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(join))

	msg := readMessage(t, conn)
	require.Equal(t, websocket.MessageTypeJoinedCampaign, msg.Type)

	// A save over HTTP fans out to the viewer.
	resp := authedRequest(t, http.MethodPut, ts.APIURL(fmt.Sprintf("/characters/%s", character.ID)), token,
		map[string]interface{}{"name": "Renamed", "level": 1})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	msg = readMessage(t, conn)
	require.Equal(t, websocket.MessageTypeCharacterUpdated, msg.Type)

	var payload websocket.CharacterUpdatedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, campaign.ID.String(), payload.CampaignID)
	assert.Equal(t, character.ID.String(), payload.CharacterID)

	// A delete fans out as well.
	resp = authedRequest(t, http.MethodDelete, ts.APIURL(fmt.Sprintf("/characters/%s", character.ID)), token, nil)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)
	resp.Body.Close()

	msg = readMessage(t, conn)
	assert.Equal(t, websocket.MessageTypeCharacterDeleted, msg.Type)
}

func TestWebSocket_InvalidJoinPayload(t *testing.T) {
	ts := testutil.NewTestServer(t, nil)
	token := testutil.AuthToken(t, ts.Config.JWTSecret, uuid.New())

	conn := dialWS(t, ts, token)

	join, err := websocket.NewMessage(websocket.MessageTypeJoinCampaign, websocket.JoinCampaignPayload{
		CampaignID: "not-a-uuid",
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(join))

	msg := readMessage(t, conn)
	require.Equal(t, websocket.MessageTypeError, msg.Type)

	var payload websocket.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "INVALID_CAMPAIGN_ID", payload.Code)
}
