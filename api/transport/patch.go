package transport

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/whiteboardhq/backend/domain"
)

var jsonNull = []byte("null")

// DecodeTaskChanges translates a PATCH body into typed change variants.
// Unknown fields and recognized fields carrying the wrong JSON type are
// silently dropped; that permissiveness is deliberate, matching the update
// contract. The one exception is text: when present it must be a string, and
// its content is validated downstream as a hard error.
func DecodeTaskChanges(body []byte) ([]domain.TaskChange, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.ErrInvalidPayload
	}

	var changes []domain.TaskChange

	if raw, ok := fields["done"]; ok && !isNull(raw) {
		var done bool
		if json.Unmarshal(raw, &done) == nil {
			changes = append(changes, domain.SetDone{Done: done})
		}
	}

	if raw, ok := fields["focus"]; ok && !isNull(raw) {
		var focus bool
		if json.Unmarshal(raw, &focus) == nil {
			changes = append(changes, domain.SetFocus{Focus: focus})
		}
	}

	if raw, ok := fields["priority"]; ok && !isNull(raw) {
		var priority string
		if json.Unmarshal(raw, &priority) == nil {
			// Unknown enum values are filtered out when the patch compiles.
			changes = append(changes, domain.SetPriority{Priority: domain.Priority(priority)})
		}
	}

	if raw, ok := fields["visibility"]; ok && !isNull(raw) {
		var visibility string
		if json.Unmarshal(raw, &visibility) == nil {
			changes = append(changes, domain.SetVisibility{Visibility: domain.Visibility(visibility)})
		}
	}

	if raw, ok := fields["assigneeActorId"]; ok {
		if isNull(raw) {
			changes = append(changes, domain.SetAssignee{ActorID: nil})
		} else {
			var actorID string
			if json.Unmarshal(raw, &actorID) == nil {
				changes = append(changes, domain.SetAssignee{ActorID: &actorID})
			}
		}
	}

	if raw, ok := fields["order"]; ok && !isNull(raw) {
		var order float64
		if json.Unmarshal(raw, &order) == nil {
			changes = append(changes, domain.SetOrder{Order: order})
		}
	}

	if raw, ok := fields["text"]; ok {
		var text string
		if isNull(raw) {
			return nil, domain.ErrTextNotString
		}
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, domain.ErrTextNotString
		}
		changes = append(changes, domain.SetText{Text: text})
	}

	if raw, ok := fields["dueDate"]; ok {
		if isNull(raw) {
			changes = append(changes, domain.SetDueDate{Date: nil})
		} else {
			var date string
			if json.Unmarshal(raw, &date) == nil {
				if parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC); err == nil {
					changes = append(changes, domain.SetDueDate{Date: &parsed})
				}
			}
		}
	}

	return changes, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
