// Command cotulenh is a line-oriented console driver over the cotulenh
// rule engine: a bufio.Scanner loop over stdin reading whitespace-split
// commands and speaking this game's own small protocol.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hailam/cotulenh/board"
	"github.com/hailam/cotulenh/cotulenh"
)

var (
	fenFlag     = flag.String("fen", "", "starting FEN (default: standard opening)")
	cacheFlag   = flag.String("cache", "", "optional badger directory for a persistent move cache")
	persistFlag = flag.Bool("persist-cache", false, "use the default per-OS cache directory when -cache is unset")
)

func main() {
	flag.Parse()

	game, err := cotulenh.New(*fenFlag)
	if err != nil {
		log.Fatalf("could not load starting position: %v", err)
	}

	cacheDir := *cacheFlag
	if cacheDir == "" && *persistFlag {
		dir, err := board.DefaultCacheDir()
		if err != nil {
			log.Printf("could not resolve default cache directory: %v", err)
		} else {
			cacheDir = dir
		}
	}
	if cacheDir != "" {
		pc, err := board.OpenPersistentMoveCache(cacheDir)
		if err != nil {
			log.Printf("persistent move cache disabled: %v", err)
		} else {
			defer pc.Close()
			game.SetCache(pc)
		}
	}

	repl{game: game}.run()
}

// repl is the command loop: each line is "<command> [args...]".
type repl struct {
	game *cotulenh.Game
}

func (r repl) run() {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(r.game.FEN())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "quit", "exit":
			return
		case "fen":
			fmt.Println(r.game.FEN())
		case "load":
			if len(args) == 0 {
				fmt.Println("error: load requires a FEN string")
				continue
			}
			if err := r.game.Load(strings.Join(args, " ")); err != nil {
				fmt.Println("error:", err)
			}
		case "move":
			r.move(args)
		case "undo":
			r.undo()
		case "moves":
			r.moves()
		case "deploy":
			r.deploy(args)
		case "commit":
			r.commit()
		case "cancel":
			if err := r.game.CancelSession(); err != nil {
				fmt.Println("error:", err)
			}
		case "history":
			r.history()
		case "status":
			r.status()
		default:
			fmt.Println("error: unknown command", cmd)
		}
	}
}

func (r repl) move(args []string) {
	if len(args) == 0 {
		fmt.Println("error: move requires SAN or LAN text")
		return
	}
	result, err := r.game.Move(strings.Join(args, " "), true, true)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.SAN)
}

func (r repl) undo() {
	result, err := r.game.Undo()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("undone:", result.SAN)
}

func (r repl) moves() {
	for _, mv := range r.game.Moves(cotulenh.DefaultMovesOptions()) {
		fmt.Println(board.RenderLAN(mv))
	}
}

func (r repl) deploy(args []string) {
	if len(args) == 0 {
		fmt.Println("error: deploy requires an origin square")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := r.game.OpenDeploySession(sq); err != nil {
		fmt.Println("error:", err)
	}
}

func (r repl) commit() {
	result := r.game.CommitSession()
	if !result.Success {
		fmt.Println("error:", result.Reason)
		return
	}
	fmt.Println(result.Result.SAN)
}

func (r repl) history() {
	for _, h := range r.game.History() {
		fmt.Println(h.SAN)
	}
}

func (r repl) status() {
	fmt.Printf("turn=%v check=%v checkmate=%v stalemate=%v draw=%v gameover=%v\n",
		r.game.Turn(), r.game.IsCheck(), r.game.IsCheckmate(), r.game.IsStalemate(),
		r.game.IsDraw(), r.game.IsGameOver())
}
