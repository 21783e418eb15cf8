package main

import (
	"flag"
	"os"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	textureDir := flag.String("texture-dir", "textures", "Directory containing image textures")
	maxTextureSize := flag.Int("max-texture-size", 2048, "Downscale textures larger than this; 0 keeps full size")
	level := flag.String("log-level", "notice", "Log level: debug, info, notice, warning or error")
	flag.Parse()

	logger := log.New("web")
	logLevel, err := log.ParseLevel(*level)
	if err != nil {
		logger.Error(err)
		os.Exit(1)
	}
	log.SetLevel(logLevel)

	// Create and start web server
	webServer := server.NewServer(*port, scene.Options{
		TextureDir:     *textureDir,
		MaxTextureSize: *maxTextureSize,
	})

	logger.Noticef("Path Tracer Web Server")
	logger.Noticef("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
