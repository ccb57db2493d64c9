package main

import (
	"embed"
	"io/fs"
)

// The browser keyboard view, served by internal/server.
//
//go:embed all:frontend
var viewFiles embed.FS

func viewAssets() fs.FS {
	sub, err := fs.Sub(viewFiles, "frontend")
	if err != nil {
		panic(err)
	}
	return sub
}
