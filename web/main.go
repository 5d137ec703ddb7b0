package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of TOML scene files")
	flag.Parse()
	defer glog.Flush()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)

	glog.Infof("Phong Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		glog.Exitf("Error starting server: %v", err)
	}
}
