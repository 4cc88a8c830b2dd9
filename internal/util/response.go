package util

type Envelope map[string]any

func Error(code, message string) Envelope {
	return Envelope{"success": false, "error": message, "code": code}
}

func Success(message string) Envelope {
	return Envelope{"success": true, "message": message}
}

func Data(key string, value any) Envelope {
	return Envelope{"success": true, key: value}
}

// With returns a copy of e with key set.
func (e Envelope) With(key string, value any) Envelope {
	out := make(Envelope, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[key] = value
	return out
}
