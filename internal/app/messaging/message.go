// Package messaging carries signals between the popup, the navigation watcher
// and the background listener that styles pages.
package messaging

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/bnema/sitestyle/internal/domain/entity"
)

// Action names a signal. The wire names match the browser extension messages.
type Action string

const (
	ActionResetFontOnTab         Action = "resetFontOnTab"
	ActionResetFontSizeOnTab     Action = "resetFontSizeOnTab"
	ActionResetScalingOnTab      Action = "resetScalingOnTab"
	ActionApplySettingsForDomain Action = "applySettingsForDomain"
	ActionNavigationCompleted    Action = "navigationCompleted"
)

// ErrInvalidMessage is returned for messages missing a required field or
// carrying an unknown action.
var ErrInvalidMessage = errors.New("invalid message")

// Message is one signal.
type Message struct {
	Action Action `json:"action"`
	TabID  string `json:"tabId,omitempty"`
	Domain string `json:"domain,omitempty"`
	URL    string `json:"url,omitempty"`
}

// ResetOnTab builds the reset signal for one aspect of a tab.
func ResetOnTab(field entity.SettingField, tabID string) (Message, error) {
	var action Action
	switch field {
	case entity.FieldFont:
		action = ActionResetFontOnTab
	case entity.FieldFontSizeDelta:
		action = ActionResetFontSizeOnTab
	case entity.FieldScaleFactor:
		action = ActionResetScalingOnTab
	default:
		return Message{}, fmt.Errorf("%w: %q", entity.ErrUnknownField, field)
	}
	return Message{Action: action, TabID: tabID}, nil
}

// ApplySettingsForDomain builds the broadcast signal for a domain.
func ApplySettingsForDomain(domain string) Message {
	return Message{Action: ActionApplySettingsForDomain, Domain: domain}
}

// NavigationCompleted builds the signal sent when a tab finished loading.
func NavigationCompleted(tabID, url string) Message {
	return Message{Action: ActionNavigationCompleted, TabID: tabID, URL: url}
}

// ResetField returns the aspect a reset action targets.
func (m Message) ResetField() (entity.SettingField, bool) {
	switch m.Action {
	case ActionResetFontOnTab:
		return entity.FieldFont, true
	case ActionResetFontSizeOnTab:
		return entity.FieldFontSizeDelta, true
	case ActionResetScalingOnTab:
		return entity.FieldScaleFactor, true
	}
	return "", false
}

// Validate checks the action and its required fields.
func (m Message) Validate() error {
	switch m.Action {
	case ActionResetFontOnTab, ActionResetFontSizeOnTab, ActionResetScalingOnTab:
		if m.TabID == "" {
			return fmt.Errorf("%w: %s requires tabId", ErrInvalidMessage, m.Action)
		}
	case ActionApplySettingsForDomain:
		if m.Domain == "" {
			return fmt.Errorf("%w: %s requires domain", ErrInvalidMessage, m.Action)
		}
	case ActionNavigationCompleted:
		if m.TabID == "" || m.URL == "" {
			return fmt.Errorf("%w: %s requires tabId and url", ErrInvalidMessage, m.Action)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidMessage, m.Action)
	}
	return nil
}

// Encode returns the JSON form of the message.
func (m Message) Encode() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseMessage decodes a JSON signal. Numeric tab ids are accepted and
// converted to their decimal string form.
func ParseMessage(payload string) (Message, error) {
	data := []byte(payload)
	var msg Message
	err := json.Unmarshal(data, &msg)
	if err != nil {
		normalized, normErr := normalizeTabIDPayload(data)
		if normErr != nil {
			return Message{}, err
		}
		if err := json.Unmarshal(normalized, &msg); err != nil {
			return Message{}, err
		}
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}

func normalizeTabIDPayload(data []byte) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	rawID, ok := raw["tabId"]
	if !ok {
		return nil, fmt.Errorf("tabId missing in payload")
	}

	normalizedID, err := parseTabIDRaw(rawID)
	if err != nil {
		return nil, err
	}

	raw["tabId"] = json.RawMessage(strconv.Quote(normalizedID))
	return json.Marshal(raw)
}

func parseTabIDRaw(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return "", err
		}
		return id, nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err == nil {
		return number.String(), nil
	}

	return "", fmt.Errorf("unsupported tabId format: %s", string(trimmed))
}
