package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/brieflist/internal/domain"
)

const todoTitleWidth = 48

// FormatTodoList renders todos as a numbered table. The numbers match the
// positional references accepted by the todo commands.
func FormatTodoList(todos []domain.Todo, now time.Time) string {
	if len(todos) == 0 {
		return Dim("No todos yet. Add one with: brieflist todo add <title>") + "\n"
	}

	rows := make([][]string, 0, len(todos))
	remaining := 0
	for i, t := range todos {
		title := Truncate(t.Title, todoTitleWidth)
		if t.Completed {
			title = StyleDone.Render(title)
		} else {
			remaining++
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			TodoCheckbox(t.Completed),
			title,
			Dim(ShortID(t.ID)),
			Dim(RelativeAge(t.CreatedAt, now)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"#", "", "TITLE", "ID", "ADDED"}, rows, 0))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s remaining, %s done\n",
		StyleBold.Render(strconv.Itoa(remaining)), StyleGreen.Render(strconv.Itoa(len(todos)-remaining))))
	return b.String()
}

// TodoCheckbox renders the completion marker.
func TodoCheckbox(completed bool) string {
	if completed {
		return StyleGreen.Render("[x]")
	}
	return StyleFg.Render("[ ]")
}

// FormatTodoLine renders a single todo for confirmation messages.
func FormatTodoLine(t domain.Todo) string {
	return fmt.Sprintf("%s %s %s", TodoCheckbox(t.Completed), t.Title, Dim("("+ShortID(t.ID)+")"))
}
