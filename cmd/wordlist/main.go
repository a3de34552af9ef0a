// Command wordlist turns a raw word dump into the list the game embeds:
// upper-cased, 4 to 6 letters A-Z, deduplicated and sorted.
//
//	go run ./cmd/wordlist -in raw.txt -out assets/words.txt
package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordduel/internal/words"
)

func main() {
	in := flag.String("in", "", "raw word list, one word per line (default: stdin)")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	src := os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatal().Err(err).Str("file", *in).Msg("open input")
		}
		defer f.Close()
		src = f
	}

	list, err := words.Prepare(src)
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}

	dst := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Str("file", *out).Msg("create output")
		}
		defer f.Close()
		dst = f
	}
	w := bufio.NewWriter(dst)
	if err := words.Write(w, list); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
	if err := w.Flush(); err != nil {
		log.Fatal().Err(err).Msg("flush output")
	}

	counts := map[int]int{}
	for _, wd := range list {
		counts[len(wd)]++
	}
	log.Info().Int("words", len(list)).Int("len4", counts[4]).Int("len5", counts[5]).Int("len6", counts[6]).Msg("word list written")
}
