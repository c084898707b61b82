// Package cli implements the interactive todo command line: a small REPL
// that talks to the server through client.Client and renders todos with
// lipgloss.
//
// Commands
//
//	help                 show available commands
//	(l)ist [prefix]      list todos, optionally by title prefix
//	show <id>            show one todo
//	add                  create a todo (prompts for title and description)
//	edit <id>            change title/description (empty input keeps a value)
//	done <id>            mark complete
//	undo <id>            mark incomplete
//	(rm|delete) <id>     delete a todo
//	exit | quit          leave the program
package cli
