package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/cli/formatter"
	"github.com/alexanderramin/brieflist/internal/viewmodel"
	"github.com/spf13/cobra"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos"},
		Short:   "Manage the todo list",
	}

	cmd.AddCommand(
		newTodoListCmd(app),
		newTodoAddCmd(app),
		newTodoSetCmd(app, "done", "Mark a todo as completed", true),
		newTodoSetCmd(app, "undo", "Mark a todo as not completed", false),
		newTodoRemoveCmd(app),
	)

	return cmd
}

// loadTodoList returns a refreshed list view-model.
func loadTodoList(ctx context.Context, app *App) (*viewmodel.TodoList, error) {
	if err := app.requireTodos(); err != nil {
		return nil, err
	}
	list := viewmodel.NewTodoList(app.Todos)
	if err := list.Refresh(ctx); err != nil {
		return nil, err
	}
	return list, nil
}

func newTodoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := loadTodoList(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(list.Items(), app.Now()))
			return nil
		},
	}
}

func newTodoAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireTodos(); err != nil {
				return err
			}
			list := viewmodel.NewTodoList(app.Todos)
			todo, err := list.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatter.FormatTodoLine(todo))
			return nil
		},
	}
}

func newTodoSetCmd(app *App, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <ref>",
		Short: short,
		Long:  short + ". <ref> is a list position, a todo id or a unique id prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := loadTodoList(ctx, app)
			if err != nil {
				return err
			}
			id, err := resolveTodoID(list.Items(), args[0])
			if err != nil {
				return err
			}
			if todo, _ := findTodo(list.Items(), id); todo.Completed != completed {
				if err := list.Toggle(ctx, id); err != nil {
					return err
				}
			}
			todo, _ := findTodo(list.Items(), id)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTodoLine(todo))
			return nil
		},
	}
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := loadTodoList(ctx, app)
			if err != nil {
				return err
			}
			id, err := resolveTodoID(list.Items(), args[0])
			if err != nil {
				return err
			}
			todo, _ := findTodo(list.Items(), id)
			if err := list.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", todo.Title)
			return nil
		},
	}
}
