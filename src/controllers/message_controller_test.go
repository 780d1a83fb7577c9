package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/hackmate-app/hackmate-backend/src/lib"
	"github.com/hackmate-app/hackmate-backend/src/models"
)

type messageResponse struct {
	ID      uint   `json:"_id"`
	Chat    uint   `json:"chat"`
	Content string `json:"content"`
	Sender  struct {
		ID   uint   `json:"_id"`
		Name string `json:"name"`
	} `json:"sender"`
}

func TestSendMessageValidation(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	_, tokenA := createTestUser(t, "Alice", "alice@test.dev")

	resp := doRequest(t, app, "POST", "/api/v1/messages", tokenA, map[string]interface{}{"chatId": 0, "content": ""})
	wantStatus(t, resp, http.StatusBadRequest)

	resp = doRequest(t, app, "POST", "/api/v1/messages", tokenA, map[string]interface{}{"chatId": 9999, "content": "hello"})
	wantStatus(t, resp, http.StatusNotFound)
}

func TestSendMessageMembersOnly(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	a, tokenA := createTestUser(t, "Alice", "alice@test.dev")
	b, _ := createTestUser(t, "Bob", "bob@test.dev")
	_, tokenC := createTestUser(t, "Cleo", "cleo@test.dev")
	connectUsers(t, a, b)

	resp := doRequest(t, app, "POST", "/api/v1/chats", tokenA, map[string]interface{}{"userId": b.ID})
	wantStatus(t, resp, http.StatusCreated)

	var chat chatResponse
	decodeBody(t, resp, &chat)

	resp = doRequest(t, app, "POST", "/api/v1/messages", tokenC, map[string]interface{}{
		"chatId":  chat.ID,
		"content": "let me in",
	})
	wantStatus(t, resp, http.StatusForbidden)
}

func TestSendMessageUpdatesLatestMessage(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	a, tokenA := createTestUser(t, "Alice", "alice@test.dev")
	b, tokenB := createTestUser(t, "Bob", "bob@test.dev")
	connectUsers(t, a, b)

	resp := doRequest(t, app, "POST", "/api/v1/chats", tokenA, map[string]interface{}{"userId": b.ID})
	wantStatus(t, resp, http.StatusCreated)

	var chat chatResponse
	decodeBody(t, resp, &chat)

	resp = doRequest(t, app, "POST", "/api/v1/messages", tokenA, map[string]interface{}{
		"chatId":  chat.ID,
		"content": "hello bob",
	})
	wantStatus(t, resp, http.StatusCreated)

	var message messageResponse
	decodeBody(t, resp, &message)

	if message.Chat != chat.ID {
		t.Errorf("got message chat %d, want %d", message.Chat, chat.ID)
	}
	if message.Sender.ID != a.ID {
		t.Errorf("got message sender %d, want %d", message.Sender.ID, a.ID)
	}

	var stored models.Chat
	if err := lib.DB.First(&stored, chat.ID).Error; err != nil {
		t.Fatalf("failed to load chat: %v", err)
	}
	if stored.LatestMessageID == nil || *stored.LatestMessageID != message.ID {
		t.Errorf("got latest message %v, want %d", stored.LatestMessageID, message.ID)
	}

	// The other member gets a message notification, the sender does not
	var count int64
	lib.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", b.ID, models.NotificationTypeMessage).
		Count(&count)
	if count != 1 {
		t.Errorf("got %d message notifications for recipient, want 1", count)
	}
	lib.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", a.ID, models.NotificationTypeMessage).
		Count(&count)
	if count != 0 {
		t.Errorf("got %d message notifications for sender, want 0", count)
	}

	// Both members see the latest message in their chat list
	for _, token := range []string{tokenA, tokenB} {
		resp = doRequest(t, app, "GET", "/api/v1/chats", token, nil)
		wantStatus(t, resp, http.StatusOK)

		var chats []chatResponse
		decodeBody(t, resp, &chats)

		if len(chats) != 1 {
			t.Fatalf("got %d chats, want 1", len(chats))
		}
		if chats[0].LatestMessage == nil {
			t.Fatal("latest message not resolved in chat list")
		}
		if chats[0].LatestMessage.Content != "hello bob" {
			t.Errorf("got latest message %q, want %q", chats[0].LatestMessage.Content, "hello bob")
		}
		if chats[0].LatestMessage.Sender.ID != a.ID {
			t.Errorf("got latest message sender %d, want %d", chats[0].LatestMessage.Sender.ID, a.ID)
		}
	}
}

func TestGetMessagesHistory(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(t)

	a, tokenA := createTestUser(t, "Alice", "alice@test.dev")
	b, tokenB := createTestUser(t, "Bob", "bob@test.dev")
	_, tokenC := createTestUser(t, "Cleo", "cleo@test.dev")
	connectUsers(t, a, b)

	resp := doRequest(t, app, "POST", "/api/v1/chats", tokenA, map[string]interface{}{"userId": b.ID})
	wantStatus(t, resp, http.StatusCreated)

	var chat chatResponse
	decodeBody(t, resp, &chat)

	for _, tc := range []struct {
		token   string
		content string
	}{
		{tokenA, "first"},
		{tokenB, "second"},
		{tokenA, "third"},
	} {
		resp = doRequest(t, app, "POST", "/api/v1/messages", tc.token, map[string]interface{}{
			"chatId":  chat.ID,
			"content": tc.content,
		})
		wantStatus(t, resp, http.StatusCreated)
	}

	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/v1/messages/%d", chat.ID), tokenB, nil)
	wantStatus(t, resp, http.StatusOK)

	var history []messageResponse
	decodeBody(t, resp, &history)

	if len(history) != 3 {
		t.Fatalf("got %d messages, want 3", len(history))
	}
	for i, want := range []string{"first", "second", "third"} {
		if history[i].Content != want {
			t.Errorf("message %d: got %q, want %q (history must be oldest first)", i, history[i].Content, want)
		}
	}

	// Non-members cannot read history
	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/v1/messages/%d", chat.ID), tokenC, nil)
	wantStatus(t, resp, http.StatusNotFound)
}
