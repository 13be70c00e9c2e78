package main

import (
	"context"
	"log"
	stdnet "net"
	"os"
	"os/signal"
	"syscall"

	"CollageBoard/internal/catalog"
	"CollageBoard/internal/config"
	"CollageBoard/internal/net"
	"CollageBoard/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Starting editor host")
	store := state.NewStore(cfg.Editor.Options())

	// Sample images arrive asynchronously; the editor is usable meanwhile.
	catalog.LoadAsync(ctx, sampleCatalog(cfg.Catalog), store)

	bridge := net.NewBridge(store, cfg.Bridge.AllowedOrigins...)
	err = bridge.Serve(ctx, cfg.Bridge.Addr, func(addr stdnet.Addr) {
		link, err := net.ShareLink(addr)
		if err != nil {
			log.Printf("Could not build share link: %v", err)
		} else {
			log.Printf("Renderers can connect at %s", link)
		}

		if !cfg.Bridge.Advertise {
			return
		}
		server, err := net.Advertise(cfg.Bridge.Instance, addr.(*stdnet.TCPAddr).Port)
		if err != nil {
			log.Printf("mDNS advertisement disabled: %v", err)
			return
		}
		go func() {
			<-ctx.Done()
			server.Shutdown()
		}()
	})
	if err != nil {
		log.Fatalf("bridge: %v", err)
	}

	undo, redo := store.HistoryCounts()
	log.Printf("Editor host stopped (revision %d, %d undo / %d redo entries)", store.State().Revision, undo, redo)
}

func sampleCatalog(c config.CatalogConfig) catalog.Catalog {
	if c.Dir != "" {
		return catalog.Dir{Path: c.Dir}
	}
	if refs := catalog.FromStrings(c.Images); len(refs) > 0 {
		return refs
	}
	return catalog.DefaultSamples
}
