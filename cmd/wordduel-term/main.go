// Command wordduel-term plays a word duel (or a solo round) in the terminal.
// Both players share the keyboard: the setter types the secret masked, then
// hands over to the guesser.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordduel/internal/config"
	"github.com/robalobadob/wordduel/internal/daily"
	"github.com/robalobadob/wordduel/internal/game"
	"github.com/robalobadob/wordduel/internal/session"
	"github.com/robalobadob/wordduel/internal/telemetry"
	"github.com/robalobadob/wordduel/internal/term"
	"github.com/robalobadob/wordduel/internal/words"
)

func main() {
	playerA := flag.String("a", game.DefaultPlayerA, "name of the first player (sets the first secret)")
	playerB := flag.String("b", game.DefaultPlayerB, "name of the second player")
	length := flag.Int("length", game.DefaultLength, "word length (4-6)")
	logFile := flag.String("log", "", "write logs to this file (default: discard)")
	flag.Parse()

	if err := run(*playerA, *playerB, *length, *logFile); err != nil {
		fmt.Fprintln(os.Stderr, "wordduel-term:", err)
		os.Exit(1)
	}
}

func run(playerA, playerB string, length int, logFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to tcell, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(ctx, "wordduel-term")
		if err != nil {
			log.Warn().Err(err).Msg("tracing disabled")
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}
	dict := words.New(list)

	var picker game.Picker = words.RandomPicker{}
	if cfg.SoloPicker == config.PickerDaily {
		picker = daily.Picker{Salt: cfg.DailySalt}
	}

	round := game.NewRound(dict, picker, game.WithPlayers(playerA, playerB), game.WithLength(length))
	sess := session.New("local", round, session.Options{RevealStep: cfg.RevealStep})
	defer sess.Close()

	screen, err := term.NewScreen()
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Close()

	log.Info().Int("words", dict.Len()).Msg("terminal session started")
	return term.NewApp(screen, sess).Run(ctx)
}
