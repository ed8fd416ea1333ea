package main

import (
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"solver/engine"
	"solver/game"
	"solver/searcher"
	"solver/tictactoe"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	output := termenv.NewOutput(os.Stdout)
	fmt.Println("tictactoe self-play, 250ms per move")

	newAgent := func() engine.Agent[tictactoe.Position] {
		return searcher.NewMCTS[tictactoe.Position](
			searcher.WithDuration(250 * time.Millisecond),
		)
	}

	e := engine.NewLocal(newAgent(), newAgent(), tictactoe.New())
	e.OnMove = func(turn int, player game.Player, label string, state tictactoe.Position) {
		fmt.Printf("\nturn %d: %s plays %s\n", turn, player, label)
		printBoard(output, state)
	}

	value, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}

	switch {
	case value > 0:
		fmt.Println("\nX wins")
	case value < 0:
		fmt.Println("\nO wins")
	default:
		fmt.Println("\ndraw")
	}
}

func printBoard(output *termenv.Output, state tictactoe.Position) {
	profile := output.ColorProfile()
	styleX := func(s string) string {
		return termenv.String(s).Foreground(profile.Color("1")).Bold().String()
	}
	styleO := func(s string) string {
		return termenv.String(s).Foreground(profile.Color("4")).Bold().String()
	}

	for _, c := range state.String() {
		switch c {
		case 'X':
			fmt.Print(styleX("X"))
		case 'O':
			fmt.Print(styleO("O"))
		default:
			fmt.Print(string(c))
		}
	}
	fmt.Println()
}
