package dashboard

import (
	"strings"
	"time"
)

const defaultUserName = "Usuário"

func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Bom dia"
	case h < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}

// FirstName returns the first word of name, or a generic placeholder when the
// name is blank.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return defaultUserName
	}
	return fields[0]
}
