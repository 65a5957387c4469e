package logger

import "time"

// Common field constructors for structured logging

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field in milliseconds
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Milliseconds()}
}

// Any creates a field with any value
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// --- Domain-specific field helpers ---

// UserID creates a user_id field
func UserID(id int64) Field {
	return Field{Key: "user_id", Value: id}
}

// Component creates a component field
func Component(name string) Field {
	return Field{Key: "component", Value: name}
}

// Section creates a content section field
func Section(section string) Field {
	return Field{Key: "section", Value: section}
}

// ContentKey creates a content_key field
func ContentKey(key string) Field {
	return Field{Key: "content_key", Value: key}
}

// CacheKey creates a cache_key field
func CacheKey(key string) Field {
	return Field{Key: "cache_key", Value: key}
}

// Tag creates a cache tag field
func Tag(tag string) Field {
	return Field{Key: "tag", Value: tag}
}

// SucceededCount creates a succeeded_count field
func SucceededCount(count int) Field {
	return Field{Key: "succeeded_count", Value: count}
}

// FailedCount creates a failed_count field
func FailedCount(count int) Field {
	return Field{Key: "failed_count", Value: count}
}

// Status creates an HTTP status field
func Status(status int) Field {
	return Field{Key: "status", Value: status}
}

// Method creates an HTTP method field
func Method(method string) Field {
	return Field{Key: "method", Value: method}
}

// Path creates a request path field
func Path(path string) Field {
	return Field{Key: "path", Value: path}
}

// RemoteIP creates a remote_ip field
func RemoteIP(ip string) Field {
	return Field{Key: "remote_ip", Value: ip}
}

// Operation creates an operation field
func Operation(op string) Field {
	return Field{Key: "operation", Value: op}
}

// Count creates a count field
func Count(count int) Field {
	return Field{Key: "count", Value: count}
}
