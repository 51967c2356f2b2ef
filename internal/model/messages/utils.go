package messages

import (
	"strings"

	"github.com/pkg/errors"
)

const commandParts = 2

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", commandParts)

	if len(split) == commandParts {
		return split[0], split[1]
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

// parseFormArgs reads "name=value" words. A word without "=" continues the
// previous value, so "notes=lunch with Bob" keeps its spaces.
func parseFormArgs(arg string) (map[string]string, error) {
	fields := make(map[string]string)
	last := ""
	for _, word := range strings.Fields(arg) {
		name, value, ok := strings.Cut(word, "=")
		if ok && name != "" {
			fields[name] = value
			last = name
			continue
		}
		if last == "" {
			return nil, errors.Errorf("%q is not a name=value pair", word)
		}
		fields[last] += " " + word
	}
	return fields, nil
}

func formatRow(cells []string) string {
	return strings.Join(cells, " | ")
}
