package object

import "fmt"

// FromGoValue converts a native Go value into the corresponding Scribe
// object. Objects pass through unchanged.
func FromGoValue(value interface{}) (Object, error) {
	switch value := value.(type) {
	case nil:
		return Nil, nil
	case Object:
		return value, nil
	case bool:
		return NewBool(value), nil
	case int:
		return NewInt(int64(value)), nil
	case int32:
		return NewInt(int64(value)), nil
	case int64:
		return NewInt(value), nil
	case float32:
		return NewFloat(float64(value)), nil
	case float64:
		return NewFloat(value), nil
	case string:
		return NewString(value), nil
	case BuiltinFunction:
		return NewBuiltin("", value), nil
	}
	return nil, fmt.Errorf("type error: cannot convert %T to a script value", value)
}

// AsObjects converts a map of native Go values into script objects.
func AsObjects(values map[string]interface{}) (map[string]Object, error) {
	result := make(map[string]Object, len(values))
	for name, value := range values {
		obj, err := FromGoValue(value)
		if err != nil {
			return nil, fmt.Errorf("%v (variable %q)", err, name)
		}
		result[name] = obj
	}
	return result, nil
}
