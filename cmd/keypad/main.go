// The keypad command is the handheld-terminal client of the picking service.
//
// Usage:
//
//	keypad -server http://localhost:8080 list
//	keypad -server http://localhost:8080 pull 7
//	keypad -server http://localhost:8080 push 7
//	keypad -server http://localhost:8080 push -finish 7
//
// pull writes the picking to <dir>/picking_<id>.csv; the operator edits the
// picked_quantity and picked_at cells and push sends the file back.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"picking/internal/keypad"

	"github.com/labstack/gommon/log"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "picking service base URL")
	dir := flag.String("dir", "keypad_local", "directory for local picking files")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	client := keypad.NewClient(*serverURL)
	ctx := context.Background()

	switch args[0] {
	case "list":
		listPickings(ctx, client)
	case "pull":
		pullPicking(ctx, client, *dir, orderIDArg(args[1:]))
	case "push":
		finish := false
		rest := args[1:]
		if len(rest) > 0 && rest[0] == "-finish" {
			finish = true
			rest = rest[1:]
		}
		pushPicking(ctx, client, *dir, orderIDArg(rest), finish)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: keypad [-server URL] [-dir DIR] list | pull <id> | push [-finish] <id>")
	os.Exit(2)
}

func orderIDArg(args []string) int64 {
	if len(args) != 1 {
		usage()
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		log.Fatalf("Invalid picking id %q", args[0])
	}
	return id
}

func listPickings(ctx context.Context, client *keypad.Client) {
	pickings, err := client.FetchPickings(ctx)
	if err != nil {
		log.Fatalf("Failed to list pickings: %v", err)
	}

	if len(pickings) == 0 {
		fmt.Println("no open pickings")
		return
	}
	for _, p := range pickings {
		fmt.Printf("%d\t%s\n", p.ID, p.Status)
	}
}

func pullPicking(ctx context.Context, client *keypad.Client, dir string, id int64) {
	picking, err := client.FetchPicking(ctx, id)
	if err != nil {
		log.Fatalf("Failed to fetch picking %d: %v", id, err)
	}

	path, err := keypad.SavePickingFile(dir, picking)
	if err != nil {
		log.Fatalf("Failed to save picking file: %v", err)
	}
	fmt.Printf("saved %s (%d items, %s)\n", path, len(picking.OrderItems), picking.Status)
}

func pushPicking(ctx context.Context, client *keypad.Client, dir string, id int64, finish bool) {
	records, err := keypad.ReadPickingFile(keypad.PickingFilePath(dir, id))
	if err != nil {
		log.Fatalf("Failed to read picking file: %v", err)
	}

	req := keypad.UpdateRequest{OrderItems: records}
	if finish {
		finished := "finished"
		req.Status = &finished
	}

	snapshot, err := client.PushUpdate(ctx, id, req)
	if err != nil {
		log.Fatalf("Failed to push picking %d: %v", id, err)
	}

	picked := 0
	for _, item := range snapshot.OrderItems {
		if item.PickedQuantity != nil {
			picked++
		}
	}
	fmt.Printf("picking %d is now %s (%d/%d items picked)\n",
		snapshot.ID, snapshot.Status, picked, len(snapshot.OrderItems))
}
