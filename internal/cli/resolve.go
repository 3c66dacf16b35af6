package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/brieflist/internal/domain"
)

// resolveTodoID resolves a todo reference against the listed items. The
// reference can be:
//   - A 1-based position as printed by "todo list"
//   - A full id
//   - A unique id prefix
func resolveTodoID(items []domain.Todo, input string) (string, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "#")
	if input == "" {
		return "", fmt.Errorf("todo reference is required")
	}

	if n, err := strconv.Atoi(input); err == nil && n > 0 && n <= len(items) {
		return items[n-1].ID, nil
	}

	for _, t := range items {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range items {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("todo not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("todo id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func findTodo(items []domain.Todo, id string) (domain.Todo, bool) {
	for _, t := range items {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Todo{}, false
}
