package catalogue

import (
	"embed"
	"io/fs"
)

//go:embed data
var sampleData embed.FS

// SampleFS returns the built-in catalogue of three Crown Courts.
func SampleFS() fs.FS {
	sub, err := fs.Sub(sampleData, "data")
	if err != nil {
		panic(err)
	}
	return sub
}
