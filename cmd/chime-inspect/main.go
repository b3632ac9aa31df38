package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"chime/formats"
)

func main() {
	flag.Parse()

	name := flag.Arg(0)
	if name == "" {
		log.Fatalln("usage: chime-inspect <file>")
	}

	f, err := os.Open(name)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	dec, err := formats.DefaultRegistry().Lookup(name)
	if err != nil {
		log.Fatalln(err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		log.Fatalln(err)
	}
	defer src.Close()

	frames := 0
	buf := make([]float32, 8192)
	for {
		n, err := src.ReadSamples(buf)
		frames += n / src.Channels()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalln(err)
		}
	}

	seconds := float64(frames) / float64(src.SampleRate())
	fmt.Printf("%s: %d Hz, %d channel(s), %d frames (%.2fs)\n",
		name, src.SampleRate(), src.Channels(), frames, seconds)
}
