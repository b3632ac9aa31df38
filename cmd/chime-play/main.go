package main

import (
	"flag"
	"log"
	"time"

	"chime/audio"
	"chime/formats"
)

func main() {
	root := flag.String("root", ".", "asset root directory")
	stream := flag.Bool("stream", false, "decode incrementally instead of preloading")
	loops := flag.Int("loops", 0, "extra passes, -1 for infinite")
	volume := flag.Float64("volume", 1, "volume 0..1")
	pitch := flag.Float64("pitch", 1, "playback rate multiplier")
	flag.Parse()

	name := flag.Arg(0)
	if name == "" {
		log.Fatalln("usage: chime-play [flags] <file>")
	}

	eng, err := audio.New(audio.Config{
		RootDir:  *root,
		Decoders: formats.DefaultRegistry(),
	})
	if err != nil {
		log.Fatalln(err)
	}
	defer eng.Close()

	var snd *audio.Sound
	if *stream {
		snd, err = eng.LoadStreamedSound(name)
	} else {
		snd, err = eng.LoadSound(name)
	}
	if err != nil {
		log.Fatalln(err)
	}

	if err := snd.SetLoops(*loops); err != nil {
		log.Fatalln(err)
	}
	if err := snd.SetVolume(float32(*volume)); err != nil {
		log.Fatalln(err)
	}
	if err := snd.SetPitch(float32(*pitch)); err != nil {
		log.Fatalln(err)
	}

	ch, err := eng.Play(snd)
	if err != nil {
		log.Fatalln(err)
	}

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		if err := eng.Update(); err != nil {
			log.Fatalln(err)
		}
		if ch.State() == audio.StateStopped {
			break
		}
	}

	// Let the device drain its buffered blocks.
	time.Sleep(200 * time.Millisecond)
}
