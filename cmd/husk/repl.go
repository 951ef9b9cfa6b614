package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/husklang/husk/pkg/husk"
	"github.com/husklang/husk/pkg/stdlib"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	welcomeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runREPL(ctx context.Context, cfg Config) error {
	env := husk.NewEnv()
	stdlib.Install(env, stdlib.WithOutput(os.Stdout))

	cwd, _ := os.Getwd()
	if err := preload(ctx, cwd, env); err != nil {
		return err
	}

	fmt.Println(welcomeStyle.Render("husk repl"))
	fmt.Println(dimStyle.Render("type :help for commands, ctrl-d to exit"))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := replCommand(line, env); quit {
				return nil
			}
			continue
		}

		val, err := husk.RunSource(ctx, "<repl>", line, env)
		if err != nil {
			// Fatal for the expression, not for the session.
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		fmt.Println(resultStyle.Render("=> " + val.String()))
	}
}

func replCommand(line string, env *husk.Env) (quit bool) {
	switch line {
	case ":quit", ":q":
		return true

	case ":env":
		type binding struct {
			name, val string
		}
		var bindings []binding
		for name, val := range env.Bindings() {
			bindings = append(bindings, binding{name.String(), val.String()})
		}
		sort.Slice(bindings, func(i, j int) bool {
			return bindings[i].name < bindings[j].name
		})
		for _, b := range bindings {
			fmt.Printf("%s = %s\n", b.name, dimStyle.Render(b.val))
		}

	case ":natives":
		stdlib.ForEach(func(def stdlib.Def) {
			fmt.Printf("%-8s %s\n", def.Name, dimStyle.Render(def.Doc))
		})

	case ":help":
		fmt.Println(":env      list current bindings")
		fmt.Println(":natives  list registered native functions")
		fmt.Println(":quit     exit the repl")

	default:
		fmt.Println(errorStyle.Render("unknown command " + line))
	}
	return false
}
