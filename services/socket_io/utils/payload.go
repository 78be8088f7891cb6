package socketio_utils

import "errors"

// Socket.io delivers JSON object payloads as map[string]interface{}. These
// helpers pull the typed fields out of a command payload; a missing or
// mistyped field is the caller's cue to reject the command.

// ParsePayload extracts the object payload from handler args.
func ParsePayload(args []interface{}) (map[string]interface{}, error) {
	if len(args) < 1 {
		return nil, errors.New("missing payload")
	}
	payload, ok := args[0].(map[string]interface{})
	if !ok {
		return nil, errors.New("malformed payload")
	}
	return payload, nil
}

// GetString reads a required string field.
func GetString(payload map[string]interface{}, field string) (string, error) {
	value, ok := payload[field].(string)
	if !ok || value == "" {
		return "", errors.New("missing field: " + field)
	}
	return value, nil
}

// GetBool reads a required boolean field.
func GetBool(payload map[string]interface{}, field string) (bool, error) {
	value, ok := payload[field].(bool)
	if !ok {
		return false, errors.New("missing field: " + field)
	}
	return value, nil
}

// GetStringSlice reads a required array-of-strings field.
func GetStringSlice(payload map[string]interface{}, field string) ([]string, error) {
	raw, ok := payload[field].([]interface{})
	if !ok {
		return nil, errors.New("missing field: " + field)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		value, ok := item.(string)
		if !ok {
			return nil, errors.New("malformed field: " + field)
		}
		out = append(out, value)
	}
	return out, nil
}
