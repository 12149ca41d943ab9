package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the fiber Locals key holding the authenticated user id.
const UserKey = "userID"

// RequestIDKey is where the requestid middleware leaves the id (its default ContextKey).
const RequestIDKey = "requestid"

const (
	levelAudit = "audit"
	levelWarn  = "warn"
	levelError = "error"
)

type event struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	UserID string         `json:"user_id,omitempty"`
	Action string         `json:"action"`
	Status int            `json:"status,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

func newEvent(level, action string, c *fiber.Ctx) event {
	ev := event{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action}
	if c == nil {
		return ev
	}
	ev.IP = c.IP()
	ev.Method = c.Method()
	ev.Path = c.Path()
	ev.Status = c.Response().StatusCode()
	ev.ReqID, _ = c.Locals(RequestIDKey).(string)
	ev.UserID, _ = c.Locals(UserKey).(string)
	return ev
}

func (ev event) emit() {
	b, err := json.Marshal(ev)
	if err != nil {
		// a field value json cannot encode; keep the event, lose the fields
		ev.Fields = map[string]any{"fields_error": err.Error()}
		b, _ = json.Marshal(ev)
	}
	log.Println(string(b))
}

// Audit records a cart or session change made on behalf of the request's user.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	ev := newEvent(levelAudit, action, c)
	ev.Fields = fields
	ev.emit()
}

// Security records a refused request, such as invalid input or a missing identity.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	ev := newEvent(levelWarn, action, c)
	ev.Fields = fields
	ev.emit()
}

// Error records a failure. c is nil for work outside a request, such as cache refills.
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	ev := newEvent(levelError, action, c)
	ev.Fields = fields
	if err != nil {
		ev.Err = err.Error()
	}
	ev.emit()
}
