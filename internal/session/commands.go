package session

import (
	"strings"

	"golang.org/x/exp/maps"
)

type command string

const (
	cmdTree   command = "tree"
	cmdResult command = "result"
	cmdPGN    command = "pgn"
	cmdBoard  command = "board"
	cmdSVG    command = "svg"
	cmdPDF    command = "pdf"
	cmdHelp   command = "help"
	cmdQuit   command = "quit"
)

var spanishCommands = map[string]command{
	"arbol":     cmdTree,
	"árbol":     cmdTree,
	"resultado": cmdResult,
	"tablero":   cmdBoard,
	"ayuda":     cmdHelp,
	"salir":     cmdQuit,
}

var englishCommands = map[string]command{
	"tree":   cmdTree,
	"result": cmdResult,
	"pgn":    cmdPGN,
	"board":  cmdBoard,
	"svg":    cmdSVG,
	"pdf":    cmdPDF,
	"help":   cmdHelp,
	"quit":   cmdQuit,
}

var commands = func() map[string]command {
	all := make(map[string]command, len(spanishCommands)+len(englishCommands))
	maps.Copy(all, englishCommands)
	maps.Copy(all, spanishCommands)
	return all
}()

// parseCommand matches input case-insensitively. No command name is a SAN
// token in any case.
func parseCommand(input string) (command, bool) {
	cmd, ok := commands[strings.ToLower(input)]
	return cmd, ok
}

const helpText = `Comandos:
  arbol | tree        árbol de variantes de la partida
  resultado | result  lista de jugadas con casillas de origen y destino
  pgn                 partida en PGN
  tablero | board     tablero actual
  svg                 guarda el tablero como imagen SVG
  pdf                 guarda la planilla en PDF
  ayuda | help        esta ayuda
  salir | quit        termina la partida
`
