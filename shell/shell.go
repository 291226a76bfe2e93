/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package shell hosts an interactive readline REPL for inspecting
// completed DayResults: best-of-book queries, order lookups, and
// execution replay.
package shell

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sixmd/imibook/display"
	"github.com/sixmd/imibook/runner"
)

// Run starts a blocking REPL over results, keyed by date.
func Run(results []*runner.DayResult) {
	byDate := make(map[string]*runner.DayResult, len(results))
	for _, r := range results {
		byDate[r.Date] = r
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("book"),
		readline.PcItem("best"),
		readline.PcItem("depth"),
		readline.PcItem("use"),
		readline.PcItem("order"),
		readline.PcItem("executions"),
		readline.PcItem("errors"),
		readline.PcItem("days"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "imibook> ",
		HistoryFile:     "/tmp/imibook_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Printf("imibook: failed to create readline: %v", err)
		return
	}
	defer rl.Close()

	current := pickLatest(results)

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "days":
			for d := range byDate {
				fmt.Println(d)
			}
		case "use":
			if len(parts) < 2 {
				fmt.Println("usage: use <date>")
				continue
			}
			if r, ok := byDate[parts[1]]; ok {
				current = r
			} else {
				fmt.Println("unknown date")
			}
		case "book":
			handleBook(current, parts)
		case "best":
			handleBest(current, parts)
		case "depth":
			handleDepth(current, parts)
		case "order":
			handleOrder(current, parts)
		case "executions":
			handleExecutions(current, parts)
		case "errors":
			handleErrors(current)
		case "help":
			displayHelp()
		case "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for available commands.")
		}
	}
}

func pickLatest(results []*runner.DayResult) *runner.DayResult {
	if len(results) == 0 {
		return nil
	}
	return results[len(results)-1]
}

func parseBookID(parts []string) (uint32, bool) {
	if len(parts) < 2 {
		fmt.Println("usage: <cmd> <book-id>")
		return 0, false
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		fmt.Println("invalid book id:", parts[1])
		return 0, false
	}
	return uint32(id), true
}

func handleBook(res *runner.DayResult, parts []string) {
	if res == nil {
		fmt.Println("no day loaded")
		return
	}
	id, ok := parseBookID(parts)
	if !ok {
		return
	}
	bs, ok := res.Books[id]
	if !ok {
		fmt.Println("unknown book")
		return
	}
	meta, _ := res.Tables.Lookup(id)
	fmt.Print(display.BookSummary(meta, bs))
}

func handleBest(res *runner.DayResult, parts []string) {
	handleBook(res, parts)
}

func handleDepth(res *runner.DayResult, parts []string) {
	if res == nil {
		fmt.Println("no day loaded")
		return
	}
	id, ok := parseBookID(parts)
	if !ok {
		return
	}
	bs, ok := res.Books[id]
	if !ok {
		fmt.Println("unknown book")
		return
	}
	side := ""
	if len(parts) > 2 {
		side = strings.ToLower(parts[2])
	}
	if side == "" || side == "bid" || side == "b" {
		price, qty, ok := bs.Bid.Peek()
		fmt.Printf("bid  levels=%d", bs.Bid.Depth())
		if ok {
			fmt.Printf("  best=%d x %d", price, qty)
		}
		fmt.Println()
	}
	if side == "" || side == "ask" || side == "s" {
		price, qty, ok := bs.Ask.Peek()
		fmt.Printf("ask  levels=%d", bs.Ask.Depth())
		if ok {
			fmt.Printf("  best=%d x %d", price, qty)
		}
		fmt.Println()
	}
}

func handleOrder(res *runner.DayResult, parts []string) {
	if res == nil || len(parts) < 2 {
		fmt.Println("usage: order <order-id>")
		return
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		fmt.Println("invalid order id:", parts[1])
		return
	}
	for _, bs := range res.Books {
		for _, rec := range bs.OrderStats {
			if rec.OrderID == id {
				fmt.Printf("order %d: book=%d entry_price=%d filled=%d/%d\n",
					id, rec.Book, rec.EntryPrice, rec.QuantityFilled, rec.QuantityEntered)
				return
			}
		}
	}
	fmt.Println("order not found in completed lifecycle records")
}

func handleExecutions(res *runner.DayResult, parts []string) {
	id, ok := parseBookID(parts)
	if !ok || res == nil {
		return
	}
	bs, ok := res.Books[id]
	if !ok {
		fmt.Println("unknown book")
		return
	}
	limit := 20
	if len(parts) > 2 {
		if n, err := strconv.Atoi(parts[2]); err == nil {
			limit = n
		}
	}
	txs := bs.Transactions
	if len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}
	for _, ex := range txs {
		fmt.Printf("t=%d price=%d size=%d aggressor=%c\n", ex.Timestamp, ex.Price, ex.Size, ex.Aggressor)
	}
}

func handleErrors(res *runner.DayResult) {
	if res == nil {
		fmt.Println("no day loaded")
		return
	}
	fmt.Printf("framing=%d decoding=%d reference=%d invariant=%d system=%d\n",
		res.Errors.Framing, res.Errors.Decoding, res.Errors.Reference, res.Errors.Invariant, res.Errors.System)
	for book, reason := range res.PoisonedBooks {
		fmt.Printf("poisoned book=%d: %s\n", book, reason)
	}
}

func displayHelp() {
	fmt.Print(`
Commands:
  days                  list loaded day dates
  use <date>            switch the active day
  book <id>             show a book's current best bid/ask
  depth <id> [side]     show level counts and best level per side
  order <id>            show a completed order's lifecycle summary
  executions <id> [n]   show the last n executions for a book
  errors                show the active day's error tally and poisoned books
  help                  this text
  exit                  quit
`)
}
