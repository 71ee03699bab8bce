package main

import (
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/buchanae/gobblet"
)

var opts struct {
	Filename flags.Filename `short:"f" long:"filename" description:"game record file to parse" required:"true"`
}

func main() {
	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	file, err := os.ReadFile(string(opts.Filename))
	if err != nil {
		log.Panicf("%+v", err)
	}

	g, err := gobblet.ParseRecord(file)
	if err != nil {
		log.Panicf("%+v", err)
	}

	for _, tag := range g.Meta {
		log.Printf("%s", tag)
	}

	if winner, over := g.GameOver(); over {
		log.Printf("Winner: %s", winner.Name())
	} else {
		log.Printf("Next to move: %s", g.CurrentPlayer().Name())
	}

	for r, row := range g.Board.Cells() {
		for c, cell := range row {
			if top, ok := cell.Top(); ok {
				log.Printf("%s: %s (stack of %d)", gobblet.Coord{Row: r, Col: c}.Square(), top, len(cell))
			}
		}
	}
}
