package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"SketchBoard/internal/config"
	boardnet "SketchBoard/internal/net"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"
	"SketchBoard/internal/ui"
)

// Usage:
//
//	sketchboard [config.toml|config.yaml]   draw, optionally sharing the board
//	sketchboard sketchboard://host:port      watch a shared board
//	sketchboard browse                      list boards shared on the LAN
func main() {
	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], boardnet.Scheme):
		runViewer(args[1])
	case len(args) > 1 && args[1] == "browse":
		runBrowse()
	default:
		path := ""
		if len(args) > 1 {
			path = args[1]
		}
		runHost(path)
	}
}

func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runHost(configPath string) {
	log.Println("Starting SketchBoard")
	cfg := loadConfig(configPath)
	opts, err := cfg.BoardOptions()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	sink, err := cfg.Sink()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	board, err := state.NewBoard(opts)
	if err != nil {
		log.Fatalf("Failed to create board: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shareLink := ""
	if cfg.Share.Enabled {
		shareLink = startSharing(ctx, cfg.Share, board)
	}

	a := ui.NewApp(board, sink, shareLink)

	if configPath != "" {
		w, err := config.Watch(configPath, func(c config.Config) {
			applyToolDefaults(a.Toolbar, c)
		})
		if err != nil {
			log.Printf("[CONFIG] Live reload disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	a.Run()
}

// applyToolDefaults pushes the tool section of a reloaded config into the
// toolbar. Canvas size and codec changes need a restart.
func applyToolDefaults(tb *ui.Toolbar, c config.Config) {
	tool, err := tools.ParseID(c.Tools.Default)
	if err != nil {
		log.Printf("[CONFIG] %v", err)
		return
	}
	fg, err := config.ParseColor(c.Tools.Color)
	if err != nil {
		log.Printf("[CONFIG] %v", err)
		return
	}
	fyne.Do(func() {
		tb.ApplyDefaults(tool, fg, c.Tools.Width)
	})
}

// startSharing runs the snapshot hub and returns the link viewers open.
func startSharing(ctx context.Context, share config.Share, board *state.Board) string {
	hub := boardnet.NewHub()
	publish := func() {
		data, err := board.ExportSnapshot()
		if err != nil {
			log.Printf("[SHARE] %v", err)
			return
		}
		hub.Publish(data)
	}
	board.OnCommit = publish
	publish()

	go func() {
		if err := hub.ListenAndServe(ctx, share.Port); err != nil {
			log.Printf("[SHARE] %v", err)
		}
	}()

	if share.Advertise {
		server, err := boardnet.Advertise(share.Port, board.ID())
		if err != nil {
			log.Printf("[SHARE] mDNS disabled: %v", err)
		} else {
			go func() {
				<-ctx.Done()
				server.Shutdown()
			}()
		}
	}

	ip, err := boardnet.GetOutgoingIP()
	if err != nil {
		log.Printf("[SHARE] %v", err)
		ip = "127.0.0.1"
	}
	link := boardnet.ShareLink(ip, share.Port)
	log.Printf("[SHARE] Viewers can open %s", link)
	return link
}

func runViewer(link string) {
	log.Println("Starting as VIEWER")
	url, err := boardnet.ViewerURL(link)
	if err != nil {
		log.Fatalf("%v", err)
	}
	v := ui.NewViewer(link)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		time.Sleep(500 * time.Millisecond) // Give UI time to launch
		first := true
		err := boardnet.Subscribe(ctx, url, func(data []byte) {
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				log.Printf("[SHARE] Bad snapshot: %v", err)
				return
			}
			if first {
				v.SetStatus("Connected to " + link)
				first = false
			}
			v.SetSnapshot(img)
		})
		if err != nil {
			v.SetStatus(fmt.Sprintf("Disconnected: %v", err))
		}
	}()
	v.Run()
}

func runBrowse() {
	links, err := boardnet.Browse(3 * time.Second)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(links) == 0 {
		fmt.Println("No shared boards found")
		return
	}
	for _, l := range links {
		fmt.Println(l)
	}
}
