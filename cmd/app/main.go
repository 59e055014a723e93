package main

import (
	"net/http"
	"os"

	"github.com/0x0FACED/go-dcel/pkg/config"
	"github.com/0x0FACED/go-dcel/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("dcel-voronoi", "Incremental Voronoi diagrams on a half-edge mesh.")
	configPath = app.Flag("config", "Path to a YAML config file.").Short('c').String()
	addr       = app.Flag("addr", "Listen address, overrides server.addr.").String()
)

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := loadConfig()
	if err != nil {
		app.Fatalf("%v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	srv, err := newServer(cfg)
	if err != nil {
		app.Fatalf("%v", err)
	}

	log := logger.New(srv.level)
	defer log.Sync()

	log.Info("[app] server started", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, srv.routes()); err != nil {
		log.Fatal("[app] ListenAndServe", zap.Error(err))
	}
}
