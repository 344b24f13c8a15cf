// Package slack - Test client với httptest server giả lập Slack Web API.
package slack

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestServer dựng server giả lập Slack: map method -> response body.
func newTestServer(t *testing.T, handlers map[string]func(payload map[string]interface{}) interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[1:]
		handler, ok := handlers[method]
		if !ok {
			t.Errorf("method không mong đợi: %s", method)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("payload %s không phải JSON: %v", method, err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(handler(payload))
	}))
}

func TestCreateChannel_SanitizesName(t *testing.T) {
	var sentName string
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"conversations.create": func(payload map[string]interface{}) interface{} {
			sentName, _ = payload["name"].(string)
			return map[string]interface{}{
				"ok":      true,
				"channel": map[string]interface{}{"id": "C123", "name": sentName},
			}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	channel, err := client.CreateChannel(context.Background(), "Deal_Acme Corp", false)
	if err != nil {
		t.Fatalf("CreateChannel lỗi: %v", err)
	}
	// Sanitize ở gateway chặt hơn naming engine: underscore và space đều thành "-"
	if sentName != "deal-acme-corp" {
		t.Errorf("tên gửi lên Slack = %q, muốn %q", sentName, "deal-acme-corp")
	}
	if channel.ID != "C123" {
		t.Errorf("channel id = %q", channel.ID)
	}
}

func TestCreateChannel_NameTaken(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"conversations.create": func(map[string]interface{}) interface{} {
			return map[string]interface{}{"ok": false, "error": "name_taken"}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	_, err := client.CreateChannel(context.Background(), "deal-acme", false)
	if !errors.Is(err, ErrNameTaken) {
		t.Errorf("muốn ErrNameTaken, được %v", err)
	}
}

func TestInviteMembers_AlreadyInChannel(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"conversations.invite": func(map[string]interface{}) interface{} {
			return map[string]interface{}{"ok": false, "error": "already_in_channel"}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	err := client.InviteMembers(context.Background(), "C123", []string{"U1", "U2"})
	if !errors.Is(err, ErrAlreadyInChannel) {
		t.Errorf("muốn ErrAlreadyInChannel, được %v", err)
	}
}

func TestInviteMembers_EmptyListSkipsCall(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	if err := client.InviteMembers(context.Background(), "C123", nil); err != nil {
		t.Errorf("invite danh sách rỗng phải trả về nil, được %v", err)
	}
}

func TestCall_UnknownErrorBecomesAPIError(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"chat.postMessage": func(map[string]interface{}) interface{} {
			return map[string]interface{}{"ok": false, "error": "channel_not_found"}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	err := client.PostMessage(context.Background(), "C404", "hello")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("muốn *APIError, được %v", err)
	}
	if apiErr.Code != "channel_not_found" {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestSetTopic_SwallowsError(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"conversations.setTopic": func(map[string]interface{}) interface{} {
			return map[string]interface{}{"ok": false, "error": "not_in_channel"}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	if err := client.SetTopic(context.Background(), "C123", "topic"); err != nil {
		t.Errorf("SetTopic phải nuốt lỗi (best-effort), được %v", err)
	}
}

func TestListUsers_FiltersBots(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"users.list": func(map[string]interface{}) interface{} {
			return map[string]interface{}{
				"ok": true,
				"members": []map[string]interface{}{
					{"id": "U1", "profile": map[string]interface{}{"real_name": "Jane"}},
					{"id": "U2", "is_bot": true, "profile": map[string]interface{}{"real_name": "Bot"}},
					{"id": "USLACKBOT", "profile": map[string]interface{}{"real_name": "Slackbot"}},
					{"id": "U3", "deleted": true, "profile": map[string]interface{}{"real_name": "Gone"}},
				},
			}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	users, err := client.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers lỗi: %v", err)
	}
	// Bot và Slackbot bị loại; user deleted vẫn trả về (để sync đánh dấu inactive)
	if len(users) != 2 {
		t.Fatalf("số user = %d, muốn 2", len(users))
	}
	if users[0].ID != "U1" || users[1].ID != "U3" {
		t.Errorf("danh sách user sai: %+v", users)
	}
}

func TestListChannels(t *testing.T) {
	server := newTestServer(t, map[string]func(map[string]interface{}) interface{}{
		"conversations.list": func(payload map[string]interface{}) interface{} {
			if excl, _ := payload["exclude_archived"].(bool); !excl {
				t.Error("phải gửi exclude_archived=true")
			}
			return map[string]interface{}{
				"ok": true,
				"channels": []map[string]interface{}{
					{"id": "C1", "name": "deal-acme"},
					{"id": "C2", "name": "general"},
				},
			}
		},
	})
	defer server.Close()

	client := NewClientWithBaseURL("xoxb-test", server.URL)
	channels, err := client.ListChannels(context.Background(), true)
	if err != nil {
		t.Fatalf("ListChannels lỗi: %v", err)
	}
	if len(channels) != 2 || channels[0].Name != "deal-acme" {
		t.Errorf("danh sách channel sai: %+v", channels)
	}
}
