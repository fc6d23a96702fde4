package api

import (
	"encoding/json"
	"math/rand"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 8
)

var joinCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

// generateJoinCode creates a short alphanumeric code for joining matches.
func generateJoinCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

func normalizeJoinCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// gorm.Model fields carry no json tags.
var timestampKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// walkJSON visits every object in a decoded JSON tree, children first.
func walkJSON(v interface{}, visit func(map[string]interface{})) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for _, child := range vv {
			walkJSON(child, visit)
		}
		visit(vv)
	case []interface{}:
		for _, child := range vv {
			walkJSON(child, visit)
		}
	}
}

func snakeTimestamps(obj map[string]interface{}) {
	for from, to := range timestampKeys {
		if val, ok := obj[from]; ok {
			if _, taken := obj[to]; !taken {
				obj[to] = val
			}
			delete(obj, from)
		}
	}
}

// MarshalIntoSnakeTimestamps round-trips v through JSON so the embedded
// gorm.Model keys come out in snake_case like every other field.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	walkJSON(out, snakeTimestamps)
	return out, nil
}

// MarshalForContext is MarshalIntoSnakeTimestamps plus removal of every
// email that is not the session user's own.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		return nil, err
	}
	current := ""
	if c != nil {
		current = sessionEmail(c)
	}
	redactEmails(out, current)
	return out, nil
}

// redactEmails deletes any key mentioning "email" whose value is not
// currentEmail. An empty currentEmail removes them all.
func redactEmails(v interface{}, currentEmail string) {
	walkJSON(v, func(obj map[string]interface{}) {
		for k, val := range obj {
			if !strings.Contains(strings.ToLower(k), "email") {
				continue
			}
			if s, ok := val.(string); ok && currentEmail != "" && s == currentEmail {
				continue
			}
			delete(obj, k)
		}
	})
}
