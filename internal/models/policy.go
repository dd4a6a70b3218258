package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// KnownTools lists the tool identifiers the console UI offers. The data
// layer stores allowed_tools as an open vocabulary and does not reject
// identifiers outside this list.
var KnownTools = []string{"code", "file", "search", "analysis", "execute"}

// Policy holds the per-user capability configuration consumed by the
// upstream gateway: permitted MCP endpoints, web search, and tools.
type Policy struct {
	UserID string `gorm:"column:user_id;type:uuid;primaryKey"` // Owning user ID.

	MCPWhitelist     datatypes.JSON `gorm:"column:mcp_whitelist;type:jsonb;not null;default:'[]'"` // Permitted MCP endpoints, JSON string array.
	WebSearchEnabled bool           `gorm:"not null;default:false"`                                // Whether web search is permitted.
	AllowedTools     datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`                      // Permitted tool identifiers, JSON string array.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// TableName overrides the default table name.
func (Policy) TableName() string {
	return "policies"
}

// DefaultPolicy returns the policy row assigned at provisioning time:
// empty whitelist, web search off, no tools.
func DefaultPolicy(userID string) Policy {
	return Policy{
		UserID:           userID,
		MCPWhitelist:     EmptyStringList(),
		WebSearchEnabled: false,
		AllowedTools:     EmptyStringList(),
	}
}

// EmptyStringList returns a JSON empty array value.
func EmptyStringList() datatypes.JSON {
	return datatypes.JSON([]byte("[]"))
}

// MarshalStringList encodes a string slice as a JSON column value. A nil
// slice encodes as an empty array rather than JSON null.
func MarshalStringList(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// ParseStringList decodes a JSON column value into a string slice.
// Unparseable or empty values decode to an empty slice.
func ParseStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}
